package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kadcom/pphc/internal/handler"
	"github.com/kadcom/pphc/internal/middleware"
	"github.com/kadcom/pphc/internal/service"
)

// Options carries the router settings that come from configuration.
type Options struct {
	Logger       *zap.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
	// MetricsPath exposes the prometheus handler when non-empty.
	MetricsPath string
	// Tokens guards /api/v1 when non-nil.
	Tokens service.TokenService
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	opts Options,
	calcH *handler.CalculationHandler,
	tablesH *handler.TablesHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(opts.CORSOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(opts.Tokens))

	v1.GET("/version", tablesH.Version)

	calc := v1.Group("/calculations")
	calc.Use(middleware.BodyLimit(opts.MaxBodyBytes))
	calc.POST("/pph21", calcH.PPh21)
	calc.POST("/pph22", calcH.PPh22)
	calc.POST("/pph23", calcH.PPh23)
	calc.POST("/pph4-2", calcH.PPh4_2)
	calc.POST("/ppn", calcH.PPN)
	calc.POST("/ppnbm", calcH.PPnBM)

	tables := v1.Group("/tables")
	tables.GET("/ptkp", tablesH.PTKP)
	tables.GET("/pasal17", tablesH.Pasal17)
	tables.GET("/ter/:category", tablesH.TER)
	tables.GET("/ter/:category/rate", tablesH.TERRate)

	return r
}
