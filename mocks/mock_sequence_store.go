package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
)

// MockSequenceStore is a mock implementation of port.SequenceStore.
type MockSequenceStore struct {
	mock.Mock
}

func (m *MockSequenceStore) Increment(ctx context.Context, key domain.SequenceKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceStore) Current(ctx context.Context, key domain.SequenceKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
