// Package report aggregates ledger documents into financial and tax summaries.
// Every builder accumulates unrounded values and rounds only in Build. A
// builder rejects a malformed document with an error and leaves its running
// totals untouched, so callers can log the record and keep going.
package report

import (
	"time"

	"khata/internal/domain"
	"khata/internal/ledger"
)

// Window is an inclusive instant range. A nil bound is open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

// SalesSummaryBuilder totals invoices.
type SalesSummaryBuilder struct {
	count    int
	subTotal float64
	total    float64
	paid     float64
	tax      domain.TaxBreakdown
}

// Add includes one invoice.
func (b *SalesSummaryBuilder) Add(inv *domain.Invoice) error {
	if err := ledger.CheckDocument(&inv.LedgerDocument); err != nil {
		return err
	}
	b.count++
	b.subTotal += inv.SubTotal
	b.total += inv.Total
	b.paid += inv.PaidAmount
	b.tax = b.tax.Add(inv.TaxBreakdown)
	return nil
}

// Build returns the rounded summary.
func (b *SalesSummaryBuilder) Build() domain.SalesSummary {
	return domain.SalesSummary{
		Count:    b.count,
		SubTotal: ledger.Round2(b.subTotal),
		Total:    ledger.Round2(b.total),
		Paid:     ledger.Round2(b.paid),
		CGST:     ledger.Round2(b.tax.CGST),
		SGST:     ledger.Round2(b.tax.SGST),
		IGST:     ledger.Round2(b.tax.IGST),
		Due:      ledger.Round2(b.total - b.paid),
	}
}
