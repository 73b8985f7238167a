package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/ledger"
	"khata/internal/service"
	"khata/mocks"
)

type ledgerFixture struct {
	store     *mocks.MockSequenceStore
	invoices  *mocks.MockInvoiceRepo
	purchases *mocks.MockPurchaseRepo
	products  *mocks.MockProductRepo
	customers *mocks.MockCustomerRepo
	svc       service.LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		store:     new(mocks.MockSequenceStore),
		invoices:  new(mocks.MockInvoiceRepo),
		purchases: new(mocks.MockPurchaseRepo),
		products:  new(mocks.MockProductRepo),
		customers: new(mocks.MockCustomerRepo),
	}
	f.svc = service.NewLedgerService(
		ledger.NewAllocator(f.store, 3),
		f.invoices, f.purchases, f.products, f.customers,
		service.LedgerOptions{DefaultSeries: "MAIN", Calendar: calendar, DefaultPageSize: 20, MaxPageSize: 100},
	)
	return f
}

var seller = domain.TaxParty{GSTIN: "27AAAAA0000A1Z5", StateCode: "27"}

func TestLedgerService_CreateInvoice_InterStateManualBuyer(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()

	f.store.On("Increment", mock.Anything, domain.SequenceKey{TenantID: actor.TenantID, Series: "MAIN", FiscalYear: "24-25"}).
		Return(int64(7), nil)
	f.invoices.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := f.svc.CreateInvoice(context.Background(), actor, seller, service.CreateInvoiceInput{
		Customer: &service.CounterpartyInput{Name: "Bangalore Traders", GSTIN: "29bbbbb1111b1z5"},
		Items:    []service.LineInput{{Name: "Service", Quantity: ptr(2.0), UnitPrice: ptr(500.0), GSTPercent: ptr(18.0)}},
		Date:     "2024-04-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "24-25/MAIN/000007", inv.DocumentNumber)
	assert.Equal(t, "24-25", inv.FiscalYear)
	assert.Equal(t, "29BBBBB1111B1Z5", inv.Counterparty.GSTIN)
	assert.Equal(t, 1000.0, inv.SubTotal)
	assert.Equal(t, domain.TaxBreakdown{IGST: 180}, inv.TaxBreakdown)
	assert.Equal(t, 1180.0, inv.Total)
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.Status)
	assert.Equal(t, actor.UserID, inv.CreatedBy)
	assert.True(t, ledger.AmountsEqual(inv.Total, inv.SubTotal+inv.TaxBreakdown.Total()))
	f.invoices.AssertExpectations(t)
}

func TestLedgerService_CreateInvoice_MarchDateUsesPreviousFiscalYear(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()

	f.store.On("Increment", mock.Anything, domain.SequenceKey{TenantID: actor.TenantID, Series: "B2B", FiscalYear: "23-24"}).
		Return(int64(1), nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.CreateInvoice(context.Background(), actor, seller, service.CreateInvoiceInput{
		Items:  []service.LineInput{{Name: "Item", UnitPrice: ptr(100.0)}},
		Series: "b2b",
		Date:   "2024-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, "23-24/B2B/000001", inv.DocumentNumber)
}

func TestLedgerService_CreateInvoice_WalkInIntraState(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()

	f.store.On("Increment", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.CreateInvoice(context.Background(), actor, seller, service.CreateInvoiceInput{
		Items:      []service.LineInput{{Name: "Item", UnitPrice: ptr(1000.0), GSTPercent: ptr(18.0)}},
		PaidAmount: ptr(500.0),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.WalkInCustomerName, inv.Counterparty.Name)
	assert.Nil(t, inv.CustomerID)
	assert.Equal(t, domain.TaxBreakdown{CGST: 90, SGST: 90}, inv.TaxBreakdown)
	assert.Equal(t, 500.0, inv.PaidAmount)
	assert.Equal(t, domain.PaymentStatusPartial, inv.Status)
}

func TestLedgerService_CreateInvoice_KnownCustomerAndProductLine(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	productID := uuid.New()
	customerID := uuid.New()

	f.customers.On("GetByID", mock.Anything, actor.TenantID, customerID).Return(&domain.Customer{
		ID: customerID, Name: "Pune Retail", GSTIN: "27CCCCC2222C1Z5", Address: domain.Address{City: "Pune"},
	}, nil)
	f.products.On("GetByID", mock.Anything, actor.TenantID, productID).Return(&domain.Product{
		ID: productID, Name: "Widget", UnitPrice: 250, GSTPercent: 12, Unit: "pcs", HSN: "8471",
	}, nil)
	f.store.On("Increment", mock.Anything, mock.Anything).Return(int64(3), nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)

	inv, err := f.svc.CreateInvoice(context.Background(), actor, seller, service.CreateInvoiceInput{
		CustomerID: &customerID,
		Items:      []service.LineInput{{ProductID: &productID, Name: "ignored", Quantity: ptr(4.0)}},
	})

	require.NoError(t, err)
	require.NotNil(t, inv.CustomerID)
	assert.Equal(t, customerID, *inv.CustomerID)
	assert.Equal(t, "Pune Retail", inv.Counterparty.Name)
	assert.Equal(t, "Pune", inv.Counterparty.Address)

	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, "8471", item.HSN)
	assert.Equal(t, "pcs", item.Unit)
	assert.Equal(t, 250.0, item.UnitPrice)
	assert.Equal(t, 4.0, item.Quantity)
	assert.Equal(t, domain.TaxBreakdown{CGST: 60, SGST: 60}, inv.TaxBreakdown)
	assert.Equal(t, 1120.0, inv.Total)
}

func TestLedgerService_CreateInvoice_ValidationBeforeAllocation(t *testing.T) {
	tests := []struct {
		name  string
		input service.CreateInvoiceInput
		field string
	}{
		{"no items", service.CreateInvoiceInput{}, "items"},
		{"negative quantity", service.CreateInvoiceInput{Items: []service.LineInput{{Name: "X", Quantity: ptr(-1.0)}}}, "items[0].qty"},
		{"gst above 100", service.CreateInvoiceInput{Items: []service.LineInput{{Name: "X", GSTPercent: ptr(120.0)}}}, "items[0].gst_percent"},
		{"manual line without name", service.CreateInvoiceInput{Items: []service.LineInput{{UnitPrice: ptr(10.0)}}}, "items[0].name"},
		{"series with slash", service.CreateInvoiceInput{Series: "A/B", Items: []service.LineInput{{Name: "X"}}}, "series"},
		{"bad date", service.CreateInvoiceInput{Date: "01/04/2024", Items: []service.LineInput{{Name: "X"}}}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()

			_, err := f.svc.CreateInvoice(context.Background(), testActor(), seller, tt.input)

			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			f.store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
			f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestLedgerService_CreateInvoice_UnknownProduct(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	productID := uuid.New()

	f.products.On("GetByID", mock.Anything, actor.TenantID, productID).Return(nil, domain.ErrProductNotFound)

	_, err := f.svc.CreateInvoice(context.Background(), actor, seller, service.CreateInvoiceInput{
		Items: []service.LineInput{{ProductID: &productID}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
}

func TestLedgerService_CreateInvoice_PersistFailureConsumesNumber(t *testing.T) {
	f := newLedgerFixture()
	boom := errors.New("connection reset")

	f.store.On("Increment", mock.Anything, mock.Anything).Return(int64(9), nil).Once()
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(boom)

	_, err := f.svc.CreateInvoice(context.Background(), testActor(), seller, service.CreateInvoiceInput{
		Items: []service.LineInput{{Name: "X", UnitPrice: ptr(1.0)}},
	})

	assert.ErrorIs(t, err, boom)
	f.store.AssertNumberOfCalls(t, "Increment", 1)
}

func TestLedgerService_CreatePurchase_MissingVendorStateIsIntra(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()

	f.purchases.On("Create", mock.Anything, mock.AnythingOfType("*domain.Purchase")).Return(nil)

	p, err := f.svc.CreatePurchase(context.Background(), actor, seller, service.CreatePurchaseInput{
		Vendor: service.CounterpartyInput{Name: "Local Supplier"},
		Items:  []service.LineInput{{Name: "Raw", Quantity: ptr(10.0), UnitPrice: ptr(100.0), GSTPercent: ptr(5.0)}},
		Date:   "2024-06-15",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TaxBreakdown{CGST: 25, SGST: 25}, p.TaxBreakdown)
	assert.Equal(t, 1050.0, p.Total)
	f.store.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
}

func TestLedgerService_CreatePurchase_InterStateVendor(t *testing.T) {
	f := newLedgerFixture()

	f.purchases.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := f.svc.CreatePurchase(context.Background(), testActor(), seller, service.CreatePurchaseInput{
		Vendor: service.CounterpartyInput{Name: "Delhi Wholesale", StateCode: "07"},
		Items:  []service.LineInput{{Name: "Raw", UnitPrice: ptr(1000.0), GSTPercent: ptr(18.0)}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TaxBreakdown{IGST: 180}, p.TaxBreakdown)
}

func TestLedgerService_CreatePurchase_VendorRequired(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.CreatePurchase(context.Background(), testActor(), seller, service.CreatePurchaseInput{
		Items: []service.LineInput{{Name: "Raw"}},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerService_UpdateInvoicePayment(t *testing.T) {
	tests := []struct {
		name       string
		proposed   float64
		wantPaid   float64
		wantStatus domain.PaymentStatus
	}{
		{"zero", 0, 0, domain.PaymentStatusUnpaid},
		{"partial", 250, 250, domain.PaymentStatusPartial},
		{"exact", 500, 500, domain.PaymentStatusPaid},
		{"overpayment clamps", 600, 500, domain.PaymentStatusPaid},
		{"negative clamps", -10, 0, domain.PaymentStatusUnpaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()
			actor := testActor()
			id := uuid.New()
			existing := &domain.Invoice{LedgerDocument: domain.LedgerDocument{ID: id, Total: 500, PaidAmount: 500, Status: domain.PaymentStatusPaid}}
			updated := &domain.Invoice{LedgerDocument: domain.LedgerDocument{ID: id, Total: 500, PaidAmount: tt.wantPaid, Status: tt.wantStatus}}

			f.invoices.On("GetByID", mock.Anything, actor.TenantID, id).Return(existing, nil)
			f.invoices.On("UpdatePayment", mock.Anything, actor.TenantID, id, tt.wantPaid, tt.wantStatus).Return(updated, nil)

			inv, err := f.svc.UpdateInvoicePayment(context.Background(), actor, id, tt.proposed)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, inv.Status)
			f.invoices.AssertExpectations(t)
		})
	}
}

func TestLedgerService_UpdatePurchasePayment_Idempotent(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	id := uuid.New()
	existing := &domain.Purchase{LedgerDocument: domain.LedgerDocument{ID: id, Total: 800}}
	updated := &domain.Purchase{LedgerDocument: domain.LedgerDocument{ID: id, Total: 800, PaidAmount: 300, Status: domain.PaymentStatusPartial}}

	f.purchases.On("GetByID", mock.Anything, actor.TenantID, id).Return(existing, nil)
	f.purchases.On("UpdatePayment", mock.Anything, actor.TenantID, id, 300.0, domain.PaymentStatusPartial).Return(updated, nil)

	first, err := f.svc.UpdatePurchasePayment(context.Background(), actor, id, 300)
	require.NoError(t, err)
	second, err := f.svc.UpdatePurchasePayment(context.Background(), actor, id, 300)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	f.purchases.AssertNumberOfCalls(t, "UpdatePayment", 2)
}

func TestLedgerService_UpdateInvoicePayment_NotFound(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	id := uuid.New()

	f.invoices.On("GetByID", mock.Anything, actor.TenantID, id).Return(nil, domain.ErrInvoiceNotFound)

	_, err := f.svc.UpdateInvoicePayment(context.Background(), actor, id, 10)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.invoices.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_ListInvoices_BuildsFilter(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()

	f.invoices.On("List", mock.Anything, actor.TenantID, mock.MatchedBy(func(fl domain.LedgerFilter) bool {
		return fl.From != nil && fl.From.Format("2006-01-02T15:04:05Z07:00") == "2024-03-31T18:30:00Z" &&
			fl.To != nil && fl.To.Format("2006-01-02T15:04:05.000Z07:00") == "2024-04-30T18:29:59.999Z" &&
			fl.Status == domain.PaymentStatusPartial && fl.Query == "acme" && fl.Limit == 100 && fl.Offset == 0
	})).Return([]domain.Invoice{}, 7, nil)

	_, page, err := f.svc.ListInvoices(context.Background(), actor, service.ListDocumentsInput{
		From: "2024-04-01", To: "2024-04-30", Query: " acme ", Status: "PARTIAL", Offset: -3, Limit: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Page{Total: 7, Offset: 0, Limit: 100}, page)
	f.invoices.AssertExpectations(t)
}

func TestLedgerService_ListPurchases_ConfiguredPageSizes(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	svc := service.NewLedgerService(
		ledger.NewAllocator(f.store, 3),
		f.invoices, f.purchases, f.products, f.customers,
		service.LedgerOptions{DefaultSeries: "MAIN", Calendar: calendar, DefaultPageSize: 50, MaxPageSize: 250},
	)

	f.purchases.On("List", mock.Anything, actor.TenantID, mock.MatchedBy(func(fl domain.LedgerFilter) bool {
		return fl.Limit == 50
	})).Return([]domain.Purchase{}, 3, nil).Once()
	f.purchases.On("List", mock.Anything, actor.TenantID, mock.MatchedBy(func(fl domain.LedgerFilter) bool {
		return fl.Limit == 250
	})).Return([]domain.Purchase{}, 3, nil).Once()

	_, page, err := svc.ListPurchases(context.Background(), actor, service.ListDocumentsInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.Page{Total: 3, Limit: 50}, page)

	_, page, err = svc.ListPurchases(context.Background(), actor, service.ListDocumentsInput{Offset: 40, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.Page{Total: 3, Offset: 40, Limit: 250}, page)
	f.purchases.AssertExpectations(t)
}

func TestLedgerService_ListPurchases_InvalidStatus(t *testing.T) {
	f := newLedgerFixture()

	_, _, err := f.svc.ListPurchases(context.Background(), testActor(), service.ListDocumentsInput{Status: "overdue"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerService_AdjustOpeningStock(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	productID := uuid.New()

	f.products.On("SetOpeningQuantity", mock.Anything, actor.TenantID, productID, int64(25)).
		Return(&domain.Product{ID: productID, OpeningQuantity: 25}, nil)

	p, err := f.svc.AdjustOpeningStock(context.Background(), actor, productID, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(25), p.OpeningQuantity)

	f.products.AssertExpectations(t)
}

func TestLedgerService_AdjustOpeningStock_Shortfall(t *testing.T) {
	f := newLedgerFixture()
	actor := testActor()
	productID := uuid.New()

	f.products.On("SetOpeningQuantity", mock.Anything, actor.TenantID, productID, int64(-5)).
		Return(&domain.Product{ID: productID, OpeningQuantity: -5}, nil)

	p, err := f.svc.AdjustOpeningStock(context.Background(), actor, productID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), p.OpeningQuantity)
	f.products.AssertExpectations(t)
}
