package mocks

import (
	"context"
	"io"
	"iter"

	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) StreamInvoiceRows(ctx context.Context, actor domain.Actor, input service.RangeInput) (iter.Seq2[domain.InvoiceRow, error], error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq2[domain.InvoiceRow, error]), args.Error(1)
}

func (m *MockExportService) WriteInvoicesCSV(ctx context.Context, actor domain.Actor, input service.RangeInput, w io.Writer) (int, error) {
	args := m.Called(ctx, actor, input, w)
	return args.Int(0), args.Error(1)
}

func (m *MockExportService) ArchiveInvoicesCSV(ctx context.Context, actor domain.Actor, input service.RangeInput) (*domain.ExportArchive, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportArchive), args.Error(1)
}

func (m *MockExportService) WriteGSTR1XLSX(ctx context.Context, actor domain.Actor, input service.RangeInput, w io.Writer) error {
	args := m.Called(ctx, actor, input, w)
	return args.Error(0)
}
