package service

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"khata/internal/domain"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/port"
	"khata/internal/report"
)

// RangeInput selects a reporting period. From and To are calendar dates in
// the business zone or RFC 3339 instants; either may be empty.
type RangeInput struct {
	From  string
	To    string
	Query string
}

// ReportService computes read-only summaries of a tenant's ledger. Reports
// read documents without a snapshot transaction, so a document written
// while a report runs may or may not be included.
type ReportService interface {
	Stock(ctx context.Context, actor domain.Actor) ([]domain.StockRow, error)
	Sales(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.SalesSummary, error)
	Counts(ctx context.Context, actor domain.Actor) (*domain.EntityCounts, error)
	Valuation(ctx context.Context, actor domain.Actor, asOf string) (*domain.ValuationReport, error)
	ProfitAndLoss(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.ProfitAndLoss, error)
	BalanceSheet(ctx context.Context, actor domain.Actor, asOf string) (*domain.BalanceSheet, error)
	BalanceSheetRange(ctx context.Context, actor domain.Actor, from, to string) (*domain.BalanceSheetRange, error)
	GSTR1(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.GSTR1Summary, error)
	GSTR3B(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.GSTR3BSummary, error)
}

type reportService struct {
	invoiceRepo  port.InvoiceRepository
	purchaseRepo port.PurchaseRepository
	productRepo  port.ProductRepository
	customerRepo port.CustomerRepository
	calendar     ledger.BusinessCalendar
	now          func() time.Time
	log          zerolog.Logger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	invoiceRepo port.InvoiceRepository,
	purchaseRepo port.PurchaseRepository,
	productRepo port.ProductRepository,
	customerRepo port.CustomerRepository,
	calendar ledger.BusinessCalendar,
) ReportService {
	return &reportService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		calendar:     calendar,
		now:          time.Now,
		log:          logger.WithComponent("service.report"),
	}
}

func (s *reportService) Stock(ctx context.Context, actor domain.Actor) ([]domain.StockRow, error) {
	asOf := s.now().UTC()
	valuation := ledger.NewValuation(asOf)
	if err := s.feedValuation(ctx, actor.TenantID, valuation, "stock"); err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListByTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	return report.StockRows(valuation, products), nil
}

func (s *reportService) Sales(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.SalesSummary, error) {
	window, err := s.window(input.From, input.To)
	if err != nil {
		return nil, err
	}
	filter := domain.LedgerFilter{From: window.From, To: window.To, Query: input.Query}

	var b report.SalesSummaryBuilder
	err = aggregate(s.log, "sales", s.invoiceRepo.Stream(ctx, actor.TenantID, filter), invoiceID, b.Add)
	if err != nil {
		return nil, err
	}
	summary := b.Build()
	return &summary, nil
}

func (s *reportService) Counts(ctx context.Context, actor domain.Actor) (*domain.EntityCounts, error) {
	products, err := s.productRepo.Count(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.Count(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.Count(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	return &domain.EntityCounts{Products: products, Customers: customers, Invoices: invoices}, nil
}

func (s *reportService) Valuation(ctx context.Context, actor domain.Actor, asOf string) (*domain.ValuationReport, error) {
	cutoff, err := s.asOf("date", asOf)
	if err != nil {
		return nil, err
	}
	valuation := ledger.NewValuation(cutoff)
	if err := s.feedValuation(ctx, actor.TenantID, valuation, "valuation"); err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetByIDs(ctx, actor.TenantID, valuation.ActiveProductIDs())
	if err != nil {
		return nil, err
	}
	result := report.Valuation(valuation, products)
	return &result, nil
}

func (s *reportService) ProfitAndLoss(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.ProfitAndLoss, error) {
	window, err := s.window(input.From, input.To)
	if err != nil {
		return nil, err
	}
	cutoff := s.now().UTC()
	if window.To != nil {
		cutoff = *window.To
	}

	b := report.NewProfitAndLossBuilder(window, cutoff)
	sales := s.invoiceRepo.Stream(ctx, actor.TenantID, domain.LedgerFilter{From: window.From, To: window.To})
	if err := aggregate(s.log, "pl", sales, invoiceID, b.AddSale); err != nil {
		return nil, err
	}
	purchases := s.purchaseRepo.Stream(ctx, actor.TenantID, domain.LedgerFilter{To: &cutoff})
	if err := aggregate(s.log, "pl", purchases, purchaseID, b.AddPurchase); err != nil {
		return nil, err
	}
	result := b.Build(period(input.From, input.To))
	return &result, nil
}

func (s *reportService) BalanceSheet(ctx context.Context, actor domain.Actor, asOf string) (*domain.BalanceSheet, error) {
	cutoff, err := s.asOf("date", asOf)
	if err != nil {
		return nil, err
	}
	sheets, err := s.balanceSheets(ctx, actor.TenantID, cutoff)
	if err != nil {
		return nil, err
	}
	return &sheets[0], nil
}

func (s *reportService) BalanceSheetRange(ctx context.Context, actor domain.Actor, from, to string) (*domain.BalanceSheetRange, error) {
	start, err := s.asOf("from", from)
	if err != nil {
		return nil, err
	}
	end, err := s.asOf("to", to)
	if err != nil {
		return nil, err
	}
	sheets, err := s.balanceSheets(ctx, actor.TenantID, start, end)
	if err != nil {
		return nil, err
	}
	result := report.CompareBalanceSheets(sheets[0], sheets[1])
	return &result, nil
}

func (s *reportService) GSTR1(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.GSTR1Summary, error) {
	window, err := s.window(input.From, input.To)
	if err != nil {
		return nil, err
	}
	b := report.NewGSTR1Builder()
	invoices := s.invoiceRepo.Stream(ctx, actor.TenantID, domain.LedgerFilter{From: window.From, To: window.To})
	if err := aggregate(s.log, "gstr1", invoices, invoiceID, b.Add); err != nil {
		return nil, err
	}
	result := b.Build(period(input.From, input.To))
	return &result, nil
}

func (s *reportService) GSTR3B(ctx context.Context, actor domain.Actor, input RangeInput) (*domain.GSTR3BSummary, error) {
	window, err := s.window(input.From, input.To)
	if err != nil {
		return nil, err
	}
	filter := domain.LedgerFilter{From: window.From, To: window.To}

	var b report.GSTR3BBuilder
	if err := aggregate(s.log, "gstr3b", s.invoiceRepo.Stream(ctx, actor.TenantID, filter), invoiceID, b.AddInvoice); err != nil {
		return nil, err
	}
	if err := aggregate(s.log, "gstr3b", s.purchaseRepo.Stream(ctx, actor.TenantID, filter), purchaseID, b.AddPurchase); err != nil {
		return nil, err
	}
	result := b.Build(period(input.From, input.To))
	return &result, nil
}

// balanceSheets builds one sheet per cutoff from a single pass over the
// documents dated up to the latest cutoff.
func (s *reportService) balanceSheets(ctx context.Context, tenantID uuid.UUID, cutoffs ...time.Time) ([]domain.BalanceSheet, error) {
	latest := cutoffs[0]
	builders := make([]*report.BalanceSheetBuilder, len(cutoffs))
	for i, c := range cutoffs {
		builders[i] = report.NewBalanceSheetBuilder(c)
		if c.After(latest) {
			latest = c
		}
	}
	filter := domain.LedgerFilter{To: &latest}

	addInvoice := func(inv *domain.Invoice) error {
		for _, b := range builders {
			if err := b.AddInvoice(inv); err != nil {
				return err
			}
		}
		return nil
	}
	addPurchase := func(p *domain.Purchase) error {
		for _, b := range builders {
			if err := b.AddPurchase(p); err != nil {
				return err
			}
		}
		return nil
	}
	if err := aggregate(s.log, "balance_sheet", s.invoiceRepo.Stream(ctx, tenantID, filter), invoiceID, addInvoice); err != nil {
		return nil, err
	}
	if err := aggregate(s.log, "balance_sheet", s.purchaseRepo.Stream(ctx, tenantID, filter), purchaseID, addPurchase); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, b := range builders {
		for _, id := range b.ActiveProductIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	products, err := s.productRepo.GetByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	sheets := make([]domain.BalanceSheet, len(builders))
	for i, b := range builders {
		sheets[i] = b.Build(products)
	}
	return sheets, nil
}

// feedValuation streams every document dated up to the valuation instant.
func (s *reportService) feedValuation(ctx context.Context, tenantID uuid.UUID, v *ledger.Valuation, name string) error {
	asOf := v.AsOf()
	filter := domain.LedgerFilter{To: &asOf}
	if err := aggregate(s.log, name, s.invoiceRepo.Stream(ctx, tenantID, filter), invoiceID, v.AddSale); err != nil {
		return err
	}
	return aggregate(s.log, name, s.purchaseRepo.Stream(ctx, tenantID, filter), purchaseID, v.AddPurchase)
}

func (s *reportService) window(from, to string) (report.Window, error) {
	start, err := s.calendar.StartOfDay(from)
	if err != nil {
		return report.Window{}, domain.NewValidationError("from", err.Error())
	}
	end, err := s.calendar.EndOfDay(to)
	if err != nil {
		return report.Window{}, domain.NewValidationError("to", err.Error())
	}
	if start != nil && end != nil && end.Before(*start) {
		return report.Window{}, domain.NewValidationError("to", "must not be before from")
	}
	return report.Window{From: start, To: end}, nil
}

// asOf resolves an inclusive snapshot instant. A bare date covers the whole
// business day; an empty value means now.
func (s *reportService) asOf(field, value string) (time.Time, error) {
	t, err := s.calendar.EndOfDay(value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, err.Error())
	}
	if t == nil {
		return s.now().UTC(), nil
	}
	return *t, nil
}

func period(from, to string) domain.ReportPeriod {
	var p domain.ReportPeriod
	if from != "" {
		p.From = &from
	}
	if to != "" {
		p.To = &to
	}
	return p
}

func invoiceID(inv *domain.Invoice) uuid.UUID { return inv.ID }
func purchaseID(p *domain.Purchase) uuid.UUID { return p.ID }

// aggregate feeds docs into add. A record that could not be decoded or that
// add rejects is logged and skipped. Any other stream error aborts the report.
func aggregate[T any](log zerolog.Logger, name string, docs iter.Seq2[T, error], id func(*T) uuid.UUID, add func(*T) error) error {
	skipped := 0
	for doc, err := range docs {
		if errors.Is(err, domain.ErrMalformedRecord) {
			skipped++
			log.Warn().Err(err).
				Str("report", name).
				Str("document_id", id(&doc).String()).
				Msg("skipping undecodable ledger record")
			continue
		}
		if err != nil {
			return err
		}
		if err := add(&doc); err != nil {
			skipped++
			log.Warn().Err(err).
				Str("report", name).
				Str("document_id", id(&doc).String()).
				Msg("skipping malformed ledger record")
		}
	}
	if skipped > 0 {
		log.Warn().Str("report", name).Int("skipped", skipped).Msg("report built with skipped records")
	}
	return nil
}
