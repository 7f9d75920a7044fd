package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kadcom/pphc/internal/breakdown"
	"github.com/kadcom/pphc/internal/calc"
	"github.com/kadcom/pphc/internal/config"
	"github.com/kadcom/pphc/internal/handler"
	"github.com/kadcom/pphc/internal/logger"
	"github.com/kadcom/pphc/internal/observability/metrics"
	"github.com/kadcom/pphc/internal/router"
	"github.com/kadcom/pphc/internal/service"
	"github.com/kadcom/pphc/internal/taxtable"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize the engine
	engine, err := newEngine(cfg, zl)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	// Initialize services
	calcSvc := service.NewCalculatorService(engine, zl)
	exportSvc := service.NewExportService(zl)
	var tokens service.TokenService
	if cfg.Auth.Enabled() {
		tokens = service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	}

	// Initialize handlers
	calcH := handler.NewCalculationHandler(calcSvc, exportSvc)
	tablesH := handler.NewTablesHandler(calcSvc)
	healthH := handler.NewHealthHandler(calcSvc)

	// Setup router
	opts := router.Options{
		Logger:       zl,
		CORSOrigins:  cfg.CORS.AllowedOrigins,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Tokens:       tokens,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	r := router.Setup(opts, calcH, tablesH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.String("tables", engine.Tables().Name),
			zap.Bool("auth", cfg.Auth.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newEngine builds the calculation context from the calc settings.
func newEngine(cfg *config.Config, zl *zap.Logger) (*calc.Context, error) {
	policy, err := breakdown.ParseTextPolicy(cfg.Calc.TextPolicy)
	if err != nil {
		return nil, err
	}
	opts := []calc.Option{
		calc.WithTextPolicy(policy),
		calc.WithLogger(zl.Named("calc")),
	}

	if cfg.Calc.TablesFile != "" {
		set, err := taxtable.LoadFile(cfg.Calc.TablesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tax tables: %w", err)
		}
		opts = append(opts, calc.WithTables(set))
	}
	if cfg.Calc.MaxRows > 0 {
		opts = append(opts, calc.WithAllocator(breakdown.NewLimitAllocator(cfg.Calc.MaxRows)))
	}
	return calc.New(opts...), nil
}
