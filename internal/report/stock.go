package report

import (
	"sort"
	"strings"

	"khata/internal/domain"
	"khata/internal/ledger"
)

// StockRows joins a valuation with the full product master. Every product
// appears, including those with no activity, ordered by name.
func StockRows(v *ledger.Valuation, products []domain.Product) []domain.StockRow {
	snaps := v.Snapshot(products)
	rows := make([]domain.StockRow, 0, len(products))
	for i := range products {
		p := &products[i]
		s := snaps[p.ID]
		rows = append(rows, domain.StockRow{
			ProductID:           p.ID,
			Name:                p.Name,
			Unit:                p.Unit,
			OpeningQuantity:     p.OpeningQuantity,
			PurchasedQty:        s.PurchasedQty,
			SoldQty:             s.SoldQty,
			OnHand:              s.OnHand,
			UnitPrice:           p.UnitPrice,
			WeightedAverageCost: ledger.Round2(s.WeightedAverageCost),
			StockValue:          ledger.Round2(s.StockValue()),
			Revenue:             ledger.Round2(s.Revenue),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows
}

// Valuation reports the total stock value held in products.
func Valuation(v *ledger.Valuation, products []domain.Product) domain.ValuationReport {
	return domain.ValuationReport{
		Date:       v.AsOf(),
		StockValue: ledger.Round2(ledger.StockValue(v.Snapshot(products))),
	}
}
