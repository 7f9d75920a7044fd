package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Render(ctx context.Context, kind domain.TaxKind, format domain.ExportFormat, l *breakdown.Ledger) (*service.Export, error) {
	args := m.Called(ctx, kind, format, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}
