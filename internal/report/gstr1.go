package report

import (
	"sort"

	"khata/internal/domain"
	"khata/internal/ledger"
)

// interStateThreshold is the invoice-level IGST above which a supply counts
// as inter-state.
const interStateThreshold = 0.0001

type hsnTotals struct {
	taxable float64
	tax     float64
	total   float64
}

// GSTR1Builder summarises outward supplies.
type GSTR1Builder struct {
	totals domain.TaxBucket
	b2b    domain.TaxBucket
	b2c    domain.TaxBucket
	intra  domain.TaxBucket
	inter  domain.TaxBucket
	byRate map[float64]*domain.TaxBucket
	byHSN  map[string]*hsnTotals
}

// NewGSTR1Builder creates an empty builder.
func NewGSTR1Builder() *GSTR1Builder {
	return &GSTR1Builder{
		byRate: make(map[float64]*domain.TaxBucket),
		byHSN:  make(map[string]*hsnTotals),
	}
}

// Add classifies one invoice. Party type follows the buyer's registration;
// supply type follows the invoice-level IGST. Rate and HSN rows are rebuilt
// from the line items.
func (b *GSTR1Builder) Add(inv *domain.Invoice) error {
	if err := ledger.CheckDocument(&inv.LedgerDocument); err != nil {
		return err
	}
	supply := domain.SupplyIntraState
	if inv.IGST > interStateThreshold {
		supply = domain.SupplyInterState
	}

	lineTax := make([]domain.TaxBreakdown, len(inv.Items))
	for i := range inv.Items {
		amount := inv.Items[i].Amount()
		if amount <= 0 {
			continue
		}
		t, err := ledger.SplitTax(amount, inv.Items[i].GSTPercent, supply)
		if err != nil {
			return err
		}
		lineTax[i] = t
	}

	addDocument(&b.totals, &inv.LedgerDocument)
	if ledger.IsRegistered(inv.Counterparty) {
		addDocument(&b.b2b, &inv.LedgerDocument)
	} else {
		addDocument(&b.b2c, &inv.LedgerDocument)
	}
	if supply == domain.SupplyInterState {
		b.inter.TaxableValue += inv.SubTotal
		b.inter.IGST += inv.IGST
		b.inter.Total += inv.SubTotal + inv.IGST
	} else {
		b.intra.TaxableValue += inv.SubTotal
		b.intra.CGST += inv.CGST
		b.intra.SGST += inv.SGST
		b.intra.Total += inv.SubTotal + inv.CGST + inv.SGST
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		amount := item.Amount()
		if amount <= 0 {
			continue
		}
		t := lineTax[i]
		r, ok := b.byRate[item.GSTPercent]
		if !ok {
			r = &domain.TaxBucket{}
			b.byRate[item.GSTPercent] = r
		}
		r.TaxableValue += amount
		r.CGST += t.CGST
		r.SGST += t.SGST
		r.IGST += t.IGST
		r.Total += amount + t.Total()

		if item.HSN == "" {
			continue
		}
		h, ok := b.byHSN[item.HSN]
		if !ok {
			h = &hsnTotals{}
			b.byHSN[item.HSN] = h
		}
		h.taxable += amount
		h.tax += t.Total()
		h.total += amount + t.Total()
	}
	return nil
}

// Build returns the rounded summary with rates ascending and HSN codes sorted.
func (b *GSTR1Builder) Build(period domain.ReportPeriod) domain.GSTR1Summary {
	out := domain.GSTR1Summary{
		Period: period,
		Totals: roundBucket(b.totals),
		ByPartyType: domain.GSTR1PartyType{
			B2B: roundBucket(b.b2b),
			B2C: roundBucket(b.b2c),
		},
		BySupplyType: domain.GSTR1SupplyType{
			Intra: roundBucket(b.intra),
			Inter: roundBucket(b.inter),
		},
		ByRate: make([]domain.GSTR1RateRow, 0, len(b.byRate)),
		ByHSN:  make([]domain.GSTR1HSNRow, 0, len(b.byHSN)),
	}
	for rate, bucket := range b.byRate {
		out.ByRate = append(out.ByRate, domain.GSTR1RateRow{Rate: rate, TaxBucket: roundBucket(*bucket)})
	}
	sort.Slice(out.ByRate, func(i, j int) bool { return out.ByRate[i].Rate < out.ByRate[j].Rate })

	for code, h := range b.byHSN {
		out.ByHSN = append(out.ByHSN, domain.GSTR1HSNRow{
			HSN:          code,
			TaxableValue: ledger.Round2(h.taxable),
			Tax:          ledger.Round2(h.tax),
			Total:        ledger.Round2(h.total),
		})
	}
	sort.Slice(out.ByHSN, func(i, j int) bool { return out.ByHSN[i].HSN < out.ByHSN[j].HSN })
	return out
}

func addDocument(bucket *domain.TaxBucket, doc *domain.LedgerDocument) {
	bucket.TaxableValue += doc.SubTotal
	bucket.CGST += doc.CGST
	bucket.SGST += doc.SGST
	bucket.IGST += doc.IGST
	bucket.Total += doc.Total
}

func roundBucket(b domain.TaxBucket) domain.TaxBucket {
	return domain.TaxBucket{
		TaxableValue: ledger.Round2(b.TaxableValue),
		CGST:         ledger.Round2(b.CGST),
		SGST:         ledger.Round2(b.SGST),
		IGST:         ledger.Round2(b.IGST),
		Total:        ledger.Round2(b.Total),
	}
}
