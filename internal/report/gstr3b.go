package report

import (
	"math"

	"khata/internal/domain"
	"khata/internal/ledger"
)

// GSTR3BBuilder nets outward tax on invoices against input credit on purchases.
type GSTR3BBuilder struct {
	outTaxable float64
	outTax     domain.TaxBreakdown
	inTaxable  float64
	inTax      domain.TaxBreakdown
}

// AddInvoice adds outward liability.
func (b *GSTR3BBuilder) AddInvoice(inv *domain.Invoice) error {
	if err := ledger.CheckDocument(&inv.LedgerDocument); err != nil {
		return err
	}
	b.outTaxable += inv.SubTotal
	b.outTax = b.outTax.Add(inv.TaxBreakdown)
	return nil
}

// AddPurchase adds input credit.
func (b *GSTR3BBuilder) AddPurchase(p *domain.Purchase) error {
	if err := ledger.CheckDocument(&p.LedgerDocument); err != nil {
		return err
	}
	b.inTaxable += p.SubTotal
	b.inTax = b.inTax.Add(p.TaxBreakdown)
	return nil
}

// Build returns the rounded summary. Net payable never goes below zero.
func (b *GSTR3BBuilder) Build(period domain.ReportPeriod) domain.GSTR3BSummary {
	outward := domain.GSTR3BOutward{
		TaxableValue: ledger.Round2(b.outTaxable),
		CGST:         ledger.Round2(b.outTax.CGST),
		SGST:         ledger.Round2(b.outTax.SGST),
		IGST:         ledger.Round2(b.outTax.IGST),
		TotalTax:     ledger.Round2(b.outTax.Total()),
		GrossValue:   ledger.Round2(b.outTaxable + b.outTax.Total()),
	}
	inward := domain.GSTR3BInward{
		TaxableValue: ledger.Round2(b.inTaxable),
		CGST:         ledger.Round2(b.inTax.CGST),
		SGST:         ledger.Round2(b.inTax.SGST),
		IGST:         ledger.Round2(b.inTax.IGST),
		TotalTax:     ledger.Round2(b.inTax.Total()),
	}
	return domain.GSTR3BSummary{
		Period:        period,
		Outward:       outward,
		Inward:        inward,
		NetTaxPayable: ledger.Round2(math.Max(0, outward.TotalTax-inward.TotalTax)),
	}
}
