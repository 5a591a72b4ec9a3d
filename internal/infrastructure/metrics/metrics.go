package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	OperationsTotal  *prometheus.CounterVec
	OperationErrors  *prometheus.CounterVec
	DepositsApproved prometheus.Counter
	WagersSettled    *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		OperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mhbank_operations_total",
			Help: "Total number of committed ledger operations",
		}, []string{"operation"}),

		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mhbank_operation_errors_total",
			Help: "Total number of rejected or failed ledger operations",
		}, []string{"operation", "reason"}),

		DepositsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mhbank_deposits_approved_total",
			Help: "Total number of approved deposits",
		}),

		WagersSettled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mhbank_wagers_settled_total",
			Help: "Total number of settled wagers by outcome",
		}, []string{"outcome"}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mhbank_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mhbank_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}
