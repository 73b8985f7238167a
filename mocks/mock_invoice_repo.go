package mocks

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paid float64, status domain.PaymentStatus) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, id, paid, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) Stream(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) iter.Seq2[domain.Invoice, error] {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return Seq[domain.Invoice](nil, nil)
	}
	return args.Get(0).(iter.Seq2[domain.Invoice, error])
}

func (m *MockInvoiceRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}
