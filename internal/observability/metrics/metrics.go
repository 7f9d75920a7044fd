package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "pphc_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	calculationsTotal  *prometheus.CounterVec
	calculationLatency *prometheus.HistogramVec
	ledgerRows         *prometheus.HistogramVec

	exportsTotal  *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
)

// Init registers the collectors with the default registry. Calls after the
// first are no-ops; the Observe helpers are safe to call before Init.
func Init() {
	registerOnce.Do(func() {
		calculationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculations_total",
				Help: "Total tax calculations by kind and result",
			},
			[]string{"kind", "result"},
		)
		calculationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calculation_latency_seconds",
				Help:    "Tax calculation latency in seconds",
				Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
			},
			[]string{"kind"},
		)
		ledgerRows = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ledger_rows",
				Help:    "Breakdown rows produced per calculation",
				Buckets: prometheus.LinearBuckets(4, 4, 10),
			},
			[]string{"kind"},
		)

		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total breakdown exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Breakdown export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		)

		prometheus.MustRegister(
			calculationsTotal,
			calculationLatency,
			ledgerRows,
			exportsTotal,
			exportLatency,
			httpRequests,
		)
	})
}

// ObserveCalculation records one engine run.
func ObserveCalculation(kind, result string, rows int, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if calculationsTotal != nil {
		calculationsTotal.WithLabelValues(kind, result).Inc()
	}
	if calculationLatency != nil {
		calculationLatency.WithLabelValues(kind).Observe(duration.Seconds())
	}
	if ledgerRows != nil && result == ResultSuccess {
		ledgerRows.WithLabelValues(kind).Observe(float64(rows))
	}
}

// ObserveExport records one rendering of a breakdown.
func ObserveExport(format, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// IncHTTPRequest counts a served request.
func IncHTTPRequest(method, route, status string) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, status).Inc()
	}
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
