package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricQueryExecuted       = "query.executed"
	MetricExportFilter        = "export.filter"
	MetricExportCompleted     = "export.completed"
	MetricExportDuration      = "export.duration"
	MetricExportRows          = "export.rows"
	MetricCircuitBreakerState = "circuit_breaker.state"
)

type PrometheusMetrics struct {
	queriesTotal        *prometheus.CounterVec
	queryDuration       *prometheus.HistogramVec
	exportFiltersTotal  *prometheus.CounterVec
	exportsTotal        *prometheus.CounterVec
	exportDuration      prometheus.Histogram
	exportRows          prometheus.Histogram
	circuitBreakerState *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the operations metrics with reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "operations_queries_total",
				Help: "Total number of paginated operations queries",
			},
			[]string{"entity", "status"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "operations_query_duration_milliseconds",
				Help:    "Paginated query duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"entity"},
		),
		exportFiltersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "operations_export_filters_total",
				Help: "Total number of export filter groups processed by outcome",
			},
			[]string{"filter", "outcome"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "operations_exports_total",
				Help: "Total number of exports by status",
			},
			[]string{"status"},
		),
		exportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "operations_export_duration_milliseconds",
				Help:    "Export duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 16),
			},
		),
		exportRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "operations_export_rows",
				Help:    "Rows returned by a single export",
				Buckets: prometheus.ExponentialBuckets(1, 10, 6),
			},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "operations_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricQueryExecuted:
		m.queriesTotal.WithLabelValues(tags["entity"], tags["status"]).Inc()
	case MetricExportFilter:
		m.exportFiltersTotal.WithLabelValues(tags["filter"], tags["outcome"]).Inc()
	case MetricExportCompleted:
		if status := tags["status"]; status != "" {
			m.exportsTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricExportDuration:
		m.exportDuration.Observe(float64(duration.Milliseconds()))
	default:
		m.queryDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricExportRows:
		m.exportRows.Observe(value)
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}
