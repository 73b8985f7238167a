package report

import (
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/ledger"
)

type periodSales struct {
	qty     float64
	revenue float64
}

// ProfitAndLossBuilder applies one weighted-average cost per product, taken
// from purchases up to the period end, to every sale inside the period.
type ProfitAndLossBuilder struct {
	period Window
	cost   *ledger.Valuation
	sold   map[uuid.UUID]*periodSales
}

// NewProfitAndLossBuilder creates a builder for period. cutoff is the cost
// snapshot instant: the period end, or now when the period is open-ended.
func NewProfitAndLossBuilder(period Window, cutoff time.Time) *ProfitAndLossBuilder {
	return &ProfitAndLossBuilder{
		period: period,
		cost:   ledger.NewValuation(cutoff),
		sold:   make(map[uuid.UUID]*periodSales),
	}
}

// AddSale includes the product lines of an invoice dated inside the period.
func (b *ProfitAndLossBuilder) AddSale(inv *domain.Invoice) error {
	if !b.period.Contains(inv.Date) {
		return nil
	}
	if err := ledger.CheckDocument(&inv.LedgerDocument); err != nil {
		return err
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		if item.ProductID == nil {
			continue
		}
		s, ok := b.sold[*item.ProductID]
		if !ok {
			s = &periodSales{}
			b.sold[*item.ProductID] = s
		}
		s.qty += item.Quantity
		s.revenue += item.Amount()
	}
	return nil
}

// AddPurchase feeds the cost snapshot.
func (b *ProfitAndLossBuilder) AddPurchase(p *domain.Purchase) error {
	return b.cost.AddPurchase(p)
}

// Build returns the rounded statement.
func (b *ProfitAndLossBuilder) Build(period domain.ReportPeriod) domain.ProfitAndLoss {
	var revenue, cogs float64
	for id, s := range b.sold {
		revenue += s.revenue
		cogs += s.qty * b.cost.AverageCost(id)
	}
	return domain.ProfitAndLoss{
		Period:      period,
		Revenue:     ledger.Round2(revenue),
		COGS:        ledger.Round2(cogs),
		GrossProfit: ledger.Round2(revenue - cogs),
	}
}
