package report

import (
	"errors"
	"iter"

	"khata/internal/domain"
)

// InvoiceRow flattens an invoice into an export record.
func InvoiceRow(inv *domain.Invoice) domain.InvoiceRow {
	return domain.InvoiceRow{
		DocumentNumber:   inv.DocumentNumber,
		Date:             inv.Date,
		CounterpartyName: inv.Counterparty.Name,
		SubTotal:         inv.SubTotal,
		Tax:              inv.TaxBreakdown.Total(),
		Total:            inv.Total,
	}
}

// InvoiceRows maps an invoice stream to export rows lazily, leaving out records
// that could not be decoded. The upstream cursor is released as soon as the
// consumer stops.
func InvoiceRows(invoices iter.Seq2[domain.Invoice, error]) iter.Seq2[domain.InvoiceRow, error] {
	return func(yield func(domain.InvoiceRow, error) bool) {
		for inv, err := range invoices {
			if errors.Is(err, domain.ErrMalformedRecord) {
				continue
			}
			if err != nil {
				yield(domain.InvoiceRow{}, err)
				return
			}
			if !yield(InvoiceRow(&inv), nil) {
				return
			}
		}
	}
}
