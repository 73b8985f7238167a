package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"khata/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, obj port.ArchiveObject) (*port.StoredObject, error) {
	args := m.Called(ctx, obj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredObject), args.Error(1)
}

func (m *MockObjectStorage) PresignDownload(ctx context.Context, bucket, key, filename string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, filename, expiry)
	return args.String(0), args.Error(1)
}
