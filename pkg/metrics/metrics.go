// Package metrics records codec activity as Prometheus metrics.
//
// The commands are short-lived, so metrics are exported by writing a textfile
// for the node exporter textfile collector rather than by serving HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	OpDecode = "decode"
	OpEncode = "encode"
)

// Metrics holds all Prometheus metrics for codec operations
type Metrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	recordsTotal      *prometheus.CounterVec
	comparisonsTotal  *prometheus.CounterVec
	archiveOpsTotal   *prometheus.CounterVec
}

// NewMetrics creates the metrics on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ypbank_codec_operations_total",
				Help: "Total number of decode and encode calls",
			},
			[]string{"format", "operation", "status"},
		),

		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ypbank_codec_operation_duration_seconds",
				Help:    "Duration of decode and encode calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "operation"},
		),

		recordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ypbank_codec_records_total",
				Help: "Total number of records decoded or encoded",
			},
			[]string{"format", "operation"},
		),

		comparisonsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ypbank_comparisons_total",
				Help: "Total number of record set comparisons by outcome",
			},
			[]string{"result"},
		),

		archiveOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ypbank_archive_operations_total",
				Help: "Total number of archive operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records one codec call
func (m *Metrics) RecordOperation(format, operation string, records int, duration time.Duration, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.operationsTotal.WithLabelValues(format, operation, status).Inc()
	m.operationDuration.WithLabelValues(format, operation).Observe(duration.Seconds())
	if err == nil {
		m.recordsTotal.WithLabelValues(format, operation).Add(float64(records))
	}
}

// RecordComparison records the outcome of a comparison
func (m *Metrics) RecordComparison(identical bool) {
	result := "different"
	if identical {
		result = "identical"
	}
	m.comparisonsTotal.WithLabelValues(result).Inc()
}

// RecordArchiveOperation records one archive call
func (m *Metrics) RecordArchiveOperation(operation string, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.archiveOpsTotal.WithLabelValues(operation, status).Inc()
}

// WriteTextfile writes every metric in the Prometheus text format to path
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
