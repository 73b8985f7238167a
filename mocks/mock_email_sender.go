package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExportReady(ctx context.Context, notice port.ExportNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
