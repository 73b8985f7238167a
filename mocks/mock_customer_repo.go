package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockCustomerRepo is a mock implementation of port.CustomerRepository.
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}
