package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/calc"
	"github.com/kadcom/pphc/internal/domain"
	"github.com/kadcom/pphc/internal/observability/metrics"
	"github.com/kadcom/pphc/internal/taxtable"
)

// CalculatorService runs the tax engines for callers that hold a request
// context. Returned ledgers belong to the caller, who should Release them
// once rendered.
type CalculatorService interface {
	PPh21(ctx context.Context, in *domain.PPh21Input) (*breakdown.Ledger, error)
	PPh22(ctx context.Context, in *domain.PPh22Input) (*breakdown.Ledger, error)
	PPh23(ctx context.Context, in *domain.PPh23Input) (*breakdown.Ledger, error)
	PPh4_2(ctx context.Context, in *domain.PPh4_2Input) (*breakdown.Ledger, error)
	PPN(ctx context.Context, in *domain.PPNInput) (*breakdown.Ledger, error)
	PPnBM(ctx context.Context, in *domain.PPnBMInput) (*breakdown.Ledger, error)
	Tables() *taxtable.Set
	Version() string
}

type calculatorService struct {
	engine *calc.Context
	log    *zap.Logger
}

// NewCalculatorService creates a new CalculatorService implementation.
func NewCalculatorService(engine *calc.Context, log *zap.Logger) CalculatorService {
	if engine == nil {
		engine = calc.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &calculatorService{engine: engine, log: log.Named("calculator")}
}

func (s *calculatorService) PPh21(ctx context.Context, in *domain.PPh21Input) (*breakdown.Ledger, error) {
	if in != nil {
		in.ApplyDefaults()
	}
	return s.run(ctx, domain.TaxPPh21, func() (*breakdown.Ledger, error) { return s.engine.PPh21(in) })
}

func (s *calculatorService) PPh22(ctx context.Context, in *domain.PPh22Input) (*breakdown.Ledger, error) {
	return s.run(ctx, domain.TaxPPh22, func() (*breakdown.Ledger, error) { return s.engine.PPh22(in) })
}

func (s *calculatorService) PPh23(ctx context.Context, in *domain.PPh23Input) (*breakdown.Ledger, error) {
	return s.run(ctx, domain.TaxPPh23, func() (*breakdown.Ledger, error) { return s.engine.PPh23(in) })
}

func (s *calculatorService) PPh4_2(ctx context.Context, in *domain.PPh4_2Input) (*breakdown.Ledger, error) {
	return s.run(ctx, domain.TaxPPh4_2, func() (*breakdown.Ledger, error) { return s.engine.PPh4_2(in) })
}

func (s *calculatorService) PPN(ctx context.Context, in *domain.PPNInput) (*breakdown.Ledger, error) {
	if in != nil {
		in.ApplyDefaults()
	}
	return s.run(ctx, domain.TaxPPN, func() (*breakdown.Ledger, error) { return s.engine.PPN(in) })
}

func (s *calculatorService) PPnBM(ctx context.Context, in *domain.PPnBMInput) (*breakdown.Ledger, error) {
	return s.run(ctx, domain.TaxPPnBM, func() (*breakdown.Ledger, error) { return s.engine.PPnBM(in) })
}

func (s *calculatorService) Tables() *taxtable.Set { return s.engine.Tables() }

func (s *calculatorService) Version() string { return calc.Version() }

func (s *calculatorService) run(ctx context.Context, kind domain.TaxKind, fn func() (*breakdown.Ledger, error)) (*breakdown.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	l, err := fn()
	elapsed := time.Since(start)

	rows := 0
	if l != nil {
		rows = l.Len()
	}
	metrics.ObserveCalculation(string(kind), metrics.Result(err), rows, elapsed)

	if err != nil {
		s.log.Warn("calculation rejected",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil, err
	}
	s.log.Debug("calculation complete",
		zap.String("kind", string(kind)),
		zap.Int("rows", rows),
		zap.String("total_tax", l.TotalTax.String()),
		zap.Duration("elapsed", elapsed),
	)
	return l, nil
}
