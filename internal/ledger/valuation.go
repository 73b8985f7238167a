package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
)

type productActivity struct {
	purchasedQty float64
	purchaseCost float64
	soldQty      float64
	revenue      float64
}

// Valuation accumulates purchase and sales history up to a cutoff instant and
// values stock at weighted-average purchase cost. Opening quantity carries no
// cost of its own: a product with no purchases up to the cutoff is valued at
// zero. Lines without a product reference are ignored.
//
// A Valuation is not safe for concurrent use.
type Valuation struct {
	asOf     time.Time
	activity map[uuid.UUID]*productActivity
}

// NewValuation starts an empty valuation as of asOf (inclusive).
func NewValuation(asOf time.Time) *Valuation {
	return &Valuation{asOf: asOf, activity: make(map[uuid.UUID]*productActivity)}
}

// AsOf is the cutoff instant.
func (v *Valuation) AsOf() time.Time {
	return v.asOf
}

// AddSale records the product lines of an invoice dated on or before the
// cutoff. A malformed invoice is rejected as a whole and leaves the valuation
// unchanged.
func (v *Valuation) AddSale(inv *domain.Invoice) error {
	if inv.Date.After(v.asOf) {
		return nil
	}
	if err := CheckDocument(&inv.LedgerDocument); err != nil {
		return err
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		if item.ProductID == nil {
			continue
		}
		a := v.product(*item.ProductID)
		a.soldQty += item.Quantity
		a.revenue += item.Amount()
	}
	return nil
}

// AddPurchase records the product lines of a purchase dated on or before the
// cutoff, with the same rejection rule as AddSale.
func (v *Valuation) AddPurchase(p *domain.Purchase) error {
	if p.Date.After(v.asOf) {
		return nil
	}
	if err := CheckDocument(&p.LedgerDocument); err != nil {
		return err
	}
	for i := range p.Items {
		item := &p.Items[i]
		if item.ProductID == nil {
			continue
		}
		a := v.product(*item.ProductID)
		a.purchasedQty += item.Quantity
		a.purchaseCost += item.Amount()
	}
	return nil
}

// AverageCost is the weighted-average purchase cost of a product, or zero when
// nothing was purchased up to the cutoff.
func (v *Valuation) AverageCost(productID uuid.UUID) float64 {
	a, ok := v.activity[productID]
	if !ok || a.purchasedQty <= 0 {
		return 0
	}
	return a.purchaseCost / a.purchasedQty
}

// ActiveProductIDs lists products with any purchase or sale activity, sorted
// for deterministic output.
func (v *Valuation) ActiveProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(v.activity))
	for id := range v.activity {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// Snapshot values every product in products. Products with no activity still
// appear, with zero movement.
func (v *Valuation) Snapshot(products []domain.Product) map[uuid.UUID]domain.ValuationSnapshot {
	out := make(map[uuid.UUID]domain.ValuationSnapshot, len(products))
	for i := range products {
		p := &products[i]
		out[p.ID] = v.snapshotOf(p)
	}
	return out
}

// StockValue sums the value of every snapshot. Negative on-hand quantities
// contribute nothing.
func StockValue(snaps map[uuid.UUID]domain.ValuationSnapshot) float64 {
	var total float64
	for _, s := range snaps {
		total += s.StockValue()
	}
	return total
}

func (v *Valuation) snapshotOf(p *domain.Product) domain.ValuationSnapshot {
	s := domain.ValuationSnapshot{
		ProductID:       p.ID,
		AsOf:            v.asOf,
		OpeningQuantity: p.OpeningQuantity,
		OnHand:          float64(p.OpeningQuantity),
	}
	a, ok := v.activity[p.ID]
	if !ok {
		return s
	}
	s.PurchasedQty = a.purchasedQty
	s.PurchaseCost = a.purchaseCost
	s.SoldQty = a.soldQty
	s.Revenue = a.revenue
	s.OnHand = float64(p.OpeningQuantity) + a.purchasedQty - a.soldQty
	s.WeightedAverageCost = v.AverageCost(p.ID)
	return s
}

func (v *Valuation) product(id uuid.UUID) *productActivity {
	a, ok := v.activity[id]
	if !ok {
		a = &productActivity{}
		v.activity[id] = a
	}
	return a
}
