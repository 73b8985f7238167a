package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/service"
)

// MockLedgerService is a mock implementation of service.LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateInvoice(ctx context.Context, actor domain.Actor, seller domain.TaxParty, input service.CreateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, seller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockLedgerService) CreatePurchase(ctx context.Context, actor domain.Actor, tenant domain.TaxParty, input service.CreatePurchaseInput) (*domain.Purchase, error) {
	args := m.Called(ctx, actor, tenant, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockLedgerService) UpdateInvoicePayment(ctx context.Context, actor domain.Actor, id uuid.UUID, proposedPaid float64) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, id, proposedPaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockLedgerService) UpdatePurchasePayment(ctx context.Context, actor domain.Actor, id uuid.UUID, proposedPaid float64) (*domain.Purchase, error) {
	args := m.Called(ctx, actor, id, proposedPaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockLedgerService) GetInvoice(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockLedgerService) GetPurchase(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Purchase, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockLedgerService) ListInvoices(ctx context.Context, actor domain.Actor, input service.ListDocumentsInput) ([]domain.Invoice, domain.Page, error) {
	args := m.Called(ctx, actor, input)
	page, _ := args.Get(1).(domain.Page)
	if args.Get(0) == nil {
		return nil, page, args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), page, args.Error(2)
}

func (m *MockLedgerService) ListPurchases(ctx context.Context, actor domain.Actor, input service.ListDocumentsInput) ([]domain.Purchase, domain.Page, error) {
	args := m.Called(ctx, actor, input)
	page, _ := args.Get(1).(domain.Page)
	if args.Get(0) == nil {
		return nil, page, args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), page, args.Error(2)
}

func (m *MockLedgerService) AdjustOpeningStock(ctx context.Context, actor domain.Actor, productID uuid.UUID, qty int64) (*domain.Product, error) {
	args := m.Called(ctx, actor, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
