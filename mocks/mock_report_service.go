package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Stock(ctx context.Context, actor domain.Actor) ([]domain.StockRow, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockRow), args.Error(1)
}

func (m *MockReportService) Sales(ctx context.Context, actor domain.Actor, input service.RangeInput) (*domain.SalesSummary, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

func (m *MockReportService) Counts(ctx context.Context, actor domain.Actor) (*domain.EntityCounts, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntityCounts), args.Error(1)
}

func (m *MockReportService) Valuation(ctx context.Context, actor domain.Actor, asOf string) (*domain.ValuationReport, error) {
	args := m.Called(ctx, actor, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationReport), args.Error(1)
}

func (m *MockReportService) ProfitAndLoss(ctx context.Context, actor domain.Actor, input service.RangeInput) (*domain.ProfitAndLoss, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLoss), args.Error(1)
}

func (m *MockReportService) BalanceSheet(ctx context.Context, actor domain.Actor, asOf string) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, actor, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportService) BalanceSheetRange(ctx context.Context, actor domain.Actor, from, to string) (*domain.BalanceSheetRange, error) {
	args := m.Called(ctx, actor, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetRange), args.Error(1)
}

func (m *MockReportService) GSTR1(ctx context.Context, actor domain.Actor, input service.RangeInput) (*domain.GSTR1Summary, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTR1Summary), args.Error(1)
}

func (m *MockReportService) GSTR3B(ctx context.Context, actor domain.Actor, input service.RangeInput) (*domain.GSTR3BSummary, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTR3BSummary), args.Error(1)
}
