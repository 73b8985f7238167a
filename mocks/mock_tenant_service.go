package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/service"
)

// MockTenantService is a mock implementation of service.TenantService.
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) EnsureProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) GetProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantService) UpdateProfile(ctx context.Context, actor domain.Actor, input service.UpdateTenantInput) (*domain.Tenant, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
