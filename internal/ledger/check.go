package ledger

import (
	"fmt"

	"khata/internal/domain"
)

// CheckLines rejects line items that cannot take part in arithmetic.
func CheckLines(items domain.LineItems) error {
	for i := range items {
		item := &items[i]
		switch {
		case !finite(item.Quantity) || !finite(item.UnitPrice) || !finite(item.GSTPercent):
			return fmt.Errorf("items[%d]: non-finite value", i)
		case item.Quantity <= 0:
			return fmt.Errorf("items[%d]: quantity %v is not positive", i, item.Quantity)
		case item.UnitPrice < 0:
			return fmt.Errorf("items[%d]: negative unit price %v", i, item.UnitPrice)
		case item.GSTPercent < 0:
			return fmt.Errorf("items[%d]: negative GST rate %v", i, item.GSTPercent)
		}
	}
	return nil
}

// CheckDocument verifies the stored arithmetic of a ledger document: total
// equals sub-total plus tax within Tolerance, the paid amount lies within
// [0, total] and the status is the one StatusFor derives.
func CheckDocument(doc *domain.LedgerDocument) error {
	for _, v := range []float64{doc.SubTotal, doc.Total, doc.PaidAmount, doc.CGST, doc.SGST, doc.IGST} {
		if !finite(v) {
			return fmt.Errorf("document %s: non-finite amount", doc.ID)
		}
	}
	if doc.CGST < 0 || doc.SGST < 0 || doc.IGST < 0 {
		return fmt.Errorf("document %s: negative tax component", doc.ID)
	}
	if !AmountsEqual(doc.Total, doc.SubTotal+doc.TaxBreakdown.Total()) {
		return fmt.Errorf("document %s: total %.2f does not equal sub-total %.2f plus tax %.2f",
			doc.ID, doc.Total, doc.SubTotal, doc.TaxBreakdown.Total())
	}
	if doc.PaidAmount < 0 || doc.PaidAmount > doc.Total+Tolerance {
		return fmt.Errorf("document %s: paid amount %.2f outside [0, %.2f]", doc.ID, doc.PaidAmount, doc.Total)
	}
	if want := StatusFor(doc.Total, doc.PaidAmount); doc.Status != want {
		return fmt.Errorf("document %s: status %q, want %q", doc.ID, doc.Status, want)
	}
	return CheckLines(doc.Items)
}
