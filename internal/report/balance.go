package report

import (
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/ledger"
)

// BalanceSheetBuilder derives a simplified balance sheet as of one instant.
type BalanceSheetBuilder struct {
	asOf       time.Time
	receivable float64
	payable    float64
	stock      *ledger.Valuation
}

// NewBalanceSheetBuilder creates a builder for asOf (inclusive).
func NewBalanceSheetBuilder(asOf time.Time) *BalanceSheetBuilder {
	return &BalanceSheetBuilder{asOf: asOf, stock: ledger.NewValuation(asOf)}
}

// AddInvoice counts the invoice's outstanding amount as receivable and its
// lines as stock sold.
func (b *BalanceSheetBuilder) AddInvoice(inv *domain.Invoice) error {
	if inv.Date.After(b.asOf) {
		return nil
	}
	if err := b.stock.AddSale(inv); err != nil {
		return err
	}
	b.receivable += inv.Due()
	return nil
}

// AddPurchase counts the purchase's outstanding amount as payable and its
// lines as stock received.
func (b *BalanceSheetBuilder) AddPurchase(p *domain.Purchase) error {
	if p.Date.After(b.asOf) {
		return nil
	}
	if err := b.stock.AddPurchase(p); err != nil {
		return err
	}
	b.payable += p.Due()
	return nil
}

// ActiveProductIDs lists the products whose stock must be valued.
func (b *BalanceSheetBuilder) ActiveProductIDs() []uuid.UUID {
	return b.stock.ActiveProductIDs()
}

// Build values the stock of products and assembles the sheet. Totals are sums
// of the rounded components, so assets.total and equity balance exactly.
func (b *BalanceSheetBuilder) Build(products []domain.Product) domain.BalanceSheet {
	inventory := ledger.Round2(ledger.StockValue(b.stock.Snapshot(products)))
	receivable := ledger.Round2(b.receivable)
	payable := ledger.Round2(b.payable)

	assets := domain.BalanceSheetAssets{
		Inventory:          inventory,
		AccountsReceivable: receivable,
	}
	assets.Total = assets.Inventory + assets.AccountsReceivable
	liabilities := domain.BalanceSheetLiabilities{AccountsPayable: payable}
	liabilities.Total = liabilities.AccountsPayable

	return domain.BalanceSheet{
		AsOf:        b.asOf,
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      assets.Total - liabilities.Total,
	}
}

// CompareBalanceSheets returns both snapshots with end minus start deltas.
func CompareBalanceSheets(start, end domain.BalanceSheet) domain.BalanceSheetRange {
	return domain.BalanceSheetRange{
		From: start,
		To:   end,
		Delta: domain.BalanceSheetDelta{
			Assets:      ledger.Round2(end.Assets.Total - start.Assets.Total),
			Liabilities: ledger.Round2(end.Liabilities.Total - start.Liabilities.Total),
			Equity:      ledger.Round2(end.Equity - start.Equity),
		},
	}
}
