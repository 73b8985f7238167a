package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"khata/internal/domain"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/port"
)

// LineInput is one requested document line. A line that references a
// product takes its name and HSN from the product master; price and GST rate
// default from the product when omitted.
type LineInput struct {
	ProductID  *uuid.UUID `json:"product_id"`
	Name       string     `json:"name" validate:"max=255"`
	Quantity   *float64   `json:"qty" validate:"omitempty,gt=0"`
	Unit       string     `json:"unit" validate:"max=32"`
	UnitPrice  *float64   `json:"price" validate:"omitempty,gte=0"`
	GSTPercent *float64   `json:"gst_percent" validate:"omitempty,gte=0,lte=100"`
	HSN        string     `json:"hsn" validate:"max=16"`
}

// CounterpartyInput is a manually entered buyer or vendor.
type CounterpartyInput struct {
	Name      string `json:"name" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"max=32"`
	GSTIN     string `json:"gstin" validate:"omitempty,len=15,alphanum"`
	StateCode string `json:"state_code" validate:"max=8"`
	Address   string `json:"address" validate:"max=1000"`
}

func (c *CounterpartyInput) manual() domain.ManualCounterparty {
	return domain.ManualCounterparty{
		Name:      strings.TrimSpace(c.Name),
		Phone:     strings.TrimSpace(c.Phone),
		GSTIN:     strings.ToUpper(strings.TrimSpace(c.GSTIN)),
		StateCode: strings.ToUpper(strings.TrimSpace(c.StateCode)),
		Address:   strings.TrimSpace(c.Address),
	}
}

// CreateInvoiceInput is the DTO for issuing an invoice. CustomerID takes
// precedence over Customer; with neither the invoice goes to a walk-in buyer.
type CreateInvoiceInput struct {
	CustomerID *uuid.UUID         `json:"customer_id"`
	Customer   *CounterpartyInput `json:"customer"`
	Items      []LineInput        `json:"items" validate:"required,min=1,dive"`
	Series     string             `json:"series" validate:"omitempty,max=20,excludesall=/"`
	Date       string             `json:"date"`
	PaidAmount *float64           `json:"paid_amount"`
	Notes      string             `json:"notes" validate:"max=2000"`
}

// Counterparty returns the tagged buyer reference, or nil for a walk-in.
func (in *CreateInvoiceInput) Counterparty() domain.CounterpartyRef {
	switch {
	case in.CustomerID != nil:
		return domain.KnownCounterparty{ID: *in.CustomerID}
	case in.Customer != nil && strings.TrimSpace(in.Customer.Name) != "":
		return in.Customer.manual()
	default:
		return nil
	}
}

// CreatePurchaseInput is the DTO for recording a purchase.
type CreatePurchaseInput struct {
	Vendor     CounterpartyInput `json:"vendor"`
	Items      []LineInput       `json:"items" validate:"required,min=1,dive"`
	Date       string            `json:"date"`
	PaidAmount *float64          `json:"paid_amount"`
	Notes      string            `json:"notes" validate:"max=2000"`
}

// ListDocumentsInput narrows invoice and purchase listings. From and To are
// calendar dates or RFC 3339 instants.
type ListDocumentsInput struct {
	From        string
	To          string
	Query       string
	Status      string
	Outstanding bool
	Offset      int
	Limit       int
}

// LedgerOptions tunes the ledger service.
type LedgerOptions struct {
	DefaultSeries   string
	Calendar        ledger.BusinessCalendar
	DefaultPageSize int
	MaxPageSize     int
}

// LedgerService issues and maintains invoices and purchases.
type LedgerService interface {
	CreateInvoice(ctx context.Context, actor domain.Actor, seller domain.TaxParty, input CreateInvoiceInput) (*domain.Invoice, error)
	CreatePurchase(ctx context.Context, actor domain.Actor, tenant domain.TaxParty, input CreatePurchaseInput) (*domain.Purchase, error)
	UpdateInvoicePayment(ctx context.Context, actor domain.Actor, id uuid.UUID, proposedPaid float64) (*domain.Invoice, error)
	UpdatePurchasePayment(ctx context.Context, actor domain.Actor, id uuid.UUID, proposedPaid float64) (*domain.Purchase, error)
	GetInvoice(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Invoice, error)
	GetPurchase(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Purchase, error)
	ListInvoices(ctx context.Context, actor domain.Actor, input ListDocumentsInput) ([]domain.Invoice, domain.Page, error)
	ListPurchases(ctx context.Context, actor domain.Actor, input ListDocumentsInput) ([]domain.Purchase, domain.Page, error)
	AdjustOpeningStock(ctx context.Context, actor domain.Actor, productID uuid.UUID, qty int64) (*domain.Product, error)
}

type ledgerService struct {
	allocator    *ledger.Allocator
	invoiceRepo  port.InvoiceRepository
	purchaseRepo port.PurchaseRepository
	productRepo  port.ProductRepository
	customerRepo port.CustomerRepository
	opts         LedgerOptions
	now          func() time.Time
	log          zerolog.Logger
}

// NewLedgerService creates a new LedgerService implementation.
func NewLedgerService(
	allocator *ledger.Allocator,
	invoiceRepo port.InvoiceRepository,
	purchaseRepo port.PurchaseRepository,
	productRepo port.ProductRepository,
	customerRepo port.CustomerRepository,
	opts LedgerOptions,
) LedgerService {
	if opts.DefaultSeries == "" {
		opts.DefaultSeries = domain.DefaultSeries
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &ledgerService{
		allocator:    allocator,
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		opts:         opts,
		now:          time.Now,
		log:          logger.WithComponent("service.ledger"),
	}
}

func (s *ledgerService) CreateInvoice(ctx context.Context, actor domain.Actor, seller domain.TaxParty, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	series := strings.ToUpper(strings.TrimSpace(input.Series))
	if series == "" {
		series = s.opts.DefaultSeries
	}
	date, err := s.documentDate(input.Date)
	if err != nil {
		return nil, err
	}

	buyer, customerID, err := s.resolveBuyer(ctx, actor.TenantID, input.Counterparty())
	if err != nil {
		return nil, err
	}
	items, err := s.resolveLines(ctx, actor.TenantID, input.Items)
	if err != nil {
		return nil, err
	}
	doc, err := buildDocument(actor, date, buyer, items, ledger.SaleSupplyType(seller, buyer.TaxParty()), input.PaidAmount, input.Notes)
	if err != nil {
		return nil, err
	}

	number, err := s.allocator.Next(ctx, actor.TenantID, series, s.opts.Calendar.Day(date))
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		LedgerDocument: doc,
		DocumentNumber: number.DocumentNumber,
		Series:         number.Series,
		FiscalYear:     number.FiscalYear,
		CustomerID:     customerID,
	}
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		s.log.Error().Err(err).
			Str("tenant_id", actor.TenantID.String()).
			Str("document_number", inv.DocumentNumber).
			Msg("persisting invoice failed, sequence number consumed")
		return nil, err
	}

	s.log.Debug().
		Str("tenant_id", actor.TenantID.String()).
		Str("document_number", inv.DocumentNumber).
		Float64("total", inv.Total).
		Msg("invoice created")
	return inv, nil
}

func (s *ledgerService) CreatePurchase(ctx context.Context, actor domain.Actor, tenant domain.TaxParty, input CreatePurchaseInput) (*domain.Purchase, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	date, err := s.documentDate(input.Date)
	if err != nil {
		return nil, err
	}

	m := input.Vendor.manual()
	vendor := domain.Counterparty{Name: m.Name, Phone: m.Phone, GSTIN: m.GSTIN, StateCode: m.StateCode, Address: m.Address}
	items, err := s.resolveLines(ctx, actor.TenantID, input.Items)
	if err != nil {
		return nil, err
	}
	doc, err := buildDocument(actor, date, vendor, items, ledger.PurchaseSupplyType(tenant, vendor.TaxParty()), input.PaidAmount, input.Notes)
	if err != nil {
		return nil, err
	}

	p := &domain.Purchase{LedgerDocument: doc}
	if err := s.purchaseRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("tenant_id", actor.TenantID.String()).
		Str("purchase_id", p.ID.String()).
		Float64("total", p.Total).
		Msg("purchase recorded")
	return p, nil
}

func (s *ledgerService) UpdateInvoicePayment(ctx context.Context, actor domain.Actor, id uuid.UUID, proposedPaid float64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	state := ledger.ApplyPayment(inv.Total, proposedPaid)
	return s.invoiceRepo.UpdatePayment(ctx, actor.TenantID, id, state.PaidAmount, state.Status)
}

func (s *ledgerService) UpdatePurchasePayment(ctx context.Context, actor domain.Actor, id uuid.UUID, proposedPaid float64) (*domain.Purchase, error) {
	p, err := s.purchaseRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	state := ledger.ApplyPayment(p.Total, proposedPaid)
	return s.purchaseRepo.UpdatePayment(ctx, actor.TenantID, id, state.PaidAmount, state.Status)
}

func (s *ledgerService) GetInvoice(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, actor.TenantID, id)
}

func (s *ledgerService) GetPurchase(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Purchase, error) {
	return s.purchaseRepo.GetByID(ctx, actor.TenantID, id)
}

func (s *ledgerService) ListInvoices(ctx context.Context, actor domain.Actor, input ListDocumentsInput) ([]domain.Invoice, domain.Page, error) {
	filter, err := s.listFilter(input)
	if err != nil {
		return nil, domain.Page{}, err
	}
	invoices, total, err := s.invoiceRepo.List(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return invoices, domain.Page{Total: total, Offset: filter.Offset, Limit: filter.Limit}, nil
}

func (s *ledgerService) ListPurchases(ctx context.Context, actor domain.Actor, input ListDocumentsInput) ([]domain.Purchase, domain.Page, error) {
	filter, err := s.listFilter(input)
	if err != nil {
		return nil, domain.Page{}, err
	}
	purchases, total, err := s.purchaseRepo.List(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return purchases, domain.Page{Total: total, Offset: filter.Offset, Limit: filter.Limit}, nil
}

func (s *ledgerService) AdjustOpeningStock(ctx context.Context, actor domain.Actor, productID uuid.UUID, qty int64) (*domain.Product, error) {
	p, err := s.productRepo.SetOpeningQuantity(ctx, actor.TenantID, productID, qty)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Str("tenant_id", actor.TenantID.String()).
		Str("product_id", productID.String()).
		Int64("opening_quantity", qty).
		Msg("opening stock adjusted")
	return p, nil
}

// documentDate parses the requested document date, defaulting to now.
func (s *ledgerService) documentDate(value string) (time.Time, error) {
	t, err := s.opts.Calendar.StartOfDay(value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", err.Error())
	}
	if t == nil {
		return s.now().UTC(), nil
	}
	return *t, nil
}

func (s *ledgerService) resolveBuyer(ctx context.Context, tenantID uuid.UUID, ref domain.CounterpartyRef) (domain.Counterparty, *uuid.UUID, error) {
	switch r := ref.(type) {
	case domain.KnownCounterparty:
		customer, err := s.customerRepo.GetByID(ctx, tenantID, r.ID)
		if err != nil {
			return domain.Counterparty{}, nil, err
		}
		id := customer.ID
		return customer.Snapshot(), &id, nil
	case domain.ManualCounterparty:
		return domain.Counterparty{
			Name:      r.Name,
			Phone:     r.Phone,
			GSTIN:     r.GSTIN,
			StateCode: r.StateCode,
			Address:   r.Address,
		}, nil, nil
	default:
		return domain.Counterparty{Name: domain.WalkInCustomerName}, nil, nil
	}
}

func (s *ledgerService) resolveLines(ctx context.Context, tenantID uuid.UUID, lines []LineInput) (domain.LineItems, error) {
	items := make(domain.LineItems, 0, len(lines))
	for i := range lines {
		in := &lines[i]
		item := domain.LineItem{
			Name: strings.TrimSpace(in.Name),
			Unit: strings.TrimSpace(in.Unit),
			HSN:  strings.TrimSpace(in.HSN),
		}
		if in.ProductID != nil {
			p, err := s.productRepo.GetByID(ctx, tenantID, *in.ProductID)
			if err != nil {
				return nil, fmt.Errorf("items[%d]: %w", i, err)
			}
			id := p.ID
			item.ProductID = &id
			item.Name = p.Name
			item.HSN = p.HSN
			item.UnitPrice = p.UnitPrice
			item.GSTPercent = p.GSTPercent
			if item.Unit == "" {
				item.Unit = p.Unit
			}
		} else if item.Name == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].name", i), "is required for a line without product")
		}

		item.Quantity = 1
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}
		if in.GSTPercent != nil {
			item.GSTPercent = *in.GSTPercent
		}
		items = append(items, item)
	}
	if err := ledger.CheckLines(items); err != nil {
		return nil, domain.NewValidationError("items", err.Error())
	}
	return items, nil
}

// buildDocument splits tax per line and derives the document totals. Stored
// components are rounded to two decimals and the total is their exact sum.
func buildDocument(
	actor domain.Actor,
	date time.Time,
	party domain.Counterparty,
	items domain.LineItems,
	supply domain.SupplyType,
	paid *float64,
	notes string,
) (domain.LedgerDocument, error) {
	var subTotal float64
	var tax domain.TaxBreakdown
	for i := range items {
		amount := items[i].Amount()
		lineTax, err := ledger.SplitTax(amount, items[i].GSTPercent, supply)
		if err != nil {
			return domain.LedgerDocument{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		subTotal += amount
		tax = tax.Add(lineTax)
	}
	tax = domain.TaxBreakdown{
		CGST: ledger.Round2(tax.CGST),
		SGST: ledger.Round2(tax.SGST),
		IGST: ledger.Round2(tax.IGST),
	}
	subTotal = ledger.Round2(subTotal)
	total := ledger.Round2(subTotal + tax.Total())

	var proposed float64
	if paid != nil {
		proposed = *paid
	}
	payment := ledger.ApplyPayment(total, proposed)

	doc := domain.LedgerDocument{
		ID:           uuid.New(),
		TenantID:     actor.TenantID,
		Date:         date,
		Counterparty: party,
		Items:        items,
		TaxBreakdown: tax,
		SubTotal:     subTotal,
		Total:        total,
		PaidAmount:   payment.PaidAmount,
		Status:       payment.Status,
		Notes:        strings.TrimSpace(notes),
		CreatedBy:    actor.UserID,
	}
	if err := ledger.CheckDocument(&doc); err != nil {
		return domain.LedgerDocument{}, domain.InconsistencyError("%v", err)
	}
	return doc, nil
}

func (s *ledgerService) listFilter(input ListDocumentsInput) (domain.LedgerFilter, error) {
	from, err := s.opts.Calendar.StartOfDay(input.From)
	if err != nil {
		return domain.LedgerFilter{}, domain.NewValidationError("from", err.Error())
	}
	to, err := s.opts.Calendar.EndOfDay(input.To)
	if err != nil {
		return domain.LedgerFilter{}, domain.NewValidationError("to", err.Error())
	}
	filter := domain.LedgerFilter{
		From:        from,
		To:          to,
		Query:       strings.TrimSpace(input.Query),
		Outstanding: input.Outstanding,
		Offset:      input.Offset,
		Limit:       input.Limit,
	}
	if input.Status != "" {
		status, ok := domain.ParsePaymentStatus(strings.ToLower(input.Status))
		if !ok {
			return domain.LedgerFilter{}, domain.NewValidationError("status", "must be one of unpaid, partial, paid")
		}
		filter.Status = status
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = s.opts.DefaultPageSize
	}
	if filter.Limit > s.opts.MaxPageSize {
		filter.Limit = s.opts.MaxPageSize
	}
	return filter, nil
}
