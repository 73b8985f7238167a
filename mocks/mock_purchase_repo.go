package mocks

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockPurchaseRepo is a mock implementation of port.PurchaseRepository.
type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Purchase, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) ([]domain.Purchase, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Int(1), args.Error(2)
}

func (m *MockPurchaseRepo) UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paid float64, status domain.PaymentStatus) (*domain.Purchase, error) {
	args := m.Called(ctx, tenantID, id, paid, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepo) Stream(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) iter.Seq2[domain.Purchase, error] {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return Seq[domain.Purchase](nil, nil)
	}
	return args.Get(0).(iter.Seq2[domain.Purchase, error])
}
