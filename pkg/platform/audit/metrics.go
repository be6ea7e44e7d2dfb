package audit

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit tracking.
type Metrics struct {
	Tracked         prometheus.Counter
	Dropped         prometheus.Counter
	PersistFailures prometheus.Counter
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics returns the singleton Metrics instance with audit metrics registered.
// Safe to call multiple times; metrics are only registered once.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			Tracked: promauto.NewCounter(prometheus.CounterOpts{
				Name: "veritas_audit_tracked_total",
				Help: "Total number of audit events successfully tracked",
			}),
			Dropped: promauto.NewCounter(prometheus.CounterOpts{
				Name: "veritas_audit_dropped_total",
				Help: "Total number of audit events dropped due to a full buffer",
			}),
			PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
				Name: "veritas_audit_persist_failures_total",
				Help: "Total number of audit event persistence failures",
			}),
		}
	})
	return metricsInstance
}

// IncTracked increments the tracked counter.
func (m *Metrics) IncTracked() {
	m.Tracked.Inc()
}

// IncDropped increments the dropped counter.
func (m *Metrics) IncDropped() {
	m.Dropped.Inc()
}

// IncPersistFailures increments the persist failures counter.
func (m *Metrics) IncPersistFailures() {
	m.PersistFailures.Inc()
}
