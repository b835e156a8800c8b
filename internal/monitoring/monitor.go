// Package monitoring exposes Prometheus metrics for the decision layer.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor collects operation metrics for the kitchen decision layer.
type Monitor struct {
	registry *prometheus.Registry

	operationTotal    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	queueDepth        *prometheus.GaugeVec
	openBreaches      prometheus.Gauge
}

// NewMonitor creates a monitor with its own registry.
func NewMonitor() *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		operationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kitchenops_operation_total",
				Help: "Operations executed, by name and envelope status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kitchenops_operation_duration_seconds",
				Help:    "Operation execution time",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		queueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kitchenops_station_queue_depth",
				Help: "Pending tickets observed per station",
			},
			[]string{"station"},
		),
		openBreaches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "kitchenops_open_sla_breaches",
				Help: "Open SLA breaches observed at last check",
			},
		),
	}

	m.registry.MustRegister(
		m.operationTotal,
		m.operationDuration,
		m.queueDepth,
		m.openBreaches,
	)
	return m
}

// Registry returns the backing registry for the /metrics handler.
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records one executed operation with its envelope status and
// duration.
func (m *Monitor) RecordOperation(operation, status string, elapsed time.Duration) {
	m.operationTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordQueueDepth records the pending ticket count observed for a station.
func (m *Monitor) RecordQueueDepth(station string, depth int) {
	m.queueDepth.WithLabelValues(station).Set(float64(depth))
}

// RecordOpenBreaches records the number of open SLA breaches observed.
func (m *Monitor) RecordOpenBreaches(count int) {
	m.openBreaches.Set(float64(count))
}
