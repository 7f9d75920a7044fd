package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/taxtable"
)

// MockCalculatorService is a mock implementation of service.CalculatorService.
type MockCalculatorService struct {
	mock.Mock
}

func (m *MockCalculatorService) ledger(args mock.Arguments) (*breakdown.Ledger, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*breakdown.Ledger), args.Error(1)
}

func (m *MockCalculatorService) PPh21(ctx context.Context, in *domain.PPh21Input) (*breakdown.Ledger, error) {
	return m.ledger(m.Called(ctx, in))
}

func (m *MockCalculatorService) PPh22(ctx context.Context, in *domain.PPh22Input) (*breakdown.Ledger, error) {
	return m.ledger(m.Called(ctx, in))
}

func (m *MockCalculatorService) PPh23(ctx context.Context, in *domain.PPh23Input) (*breakdown.Ledger, error) {
	return m.ledger(m.Called(ctx, in))
}

func (m *MockCalculatorService) PPh4_2(ctx context.Context, in *domain.PPh4_2Input) (*breakdown.Ledger, error) {
	return m.ledger(m.Called(ctx, in))
}

func (m *MockCalculatorService) PPN(ctx context.Context, in *domain.PPNInput) (*breakdown.Ledger, error) {
	return m.ledger(m.Called(ctx, in))
}

func (m *MockCalculatorService) PPnBM(ctx context.Context, in *domain.PPnBMInput) (*breakdown.Ledger, error) {
	return m.ledger(m.Called(ctx, in))
}

func (m *MockCalculatorService) Tables() *taxtable.Set {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*taxtable.Set)
}

func (m *MockCalculatorService) Version() string {
	args := m.Called()
	return args.String(0)
}
