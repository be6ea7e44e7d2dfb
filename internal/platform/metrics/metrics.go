package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	ExtractionsTotal  *prometheus.CounterVec
	DecisionOutcomes  *prometheus.CounterVec
	EvidenceLatency   *prometheus.HistogramVec
	EvaluateLatency   prometheus.Histogram
	ProviderFailures  *prometheus.CounterVec
	GovernmentLookups *prometheus.CounterVec
	EndpointLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ExtractionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veritas_extractions_total",
			Help: "Total number of document extractions, labeled by detected doc type",
		}, []string{"doc_type"}),
		DecisionOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veritas_decision_outcomes_total",
			Help: "Total number of full-KYC decisions, labeled by outcome",
		}, []string{"outcome"}),
		EvidenceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veritas_evidence_latency_seconds",
			Help:    "Latency of per-source evidence gathering in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veritas_evaluate_latency_seconds",
			Help:    "End to end latency of a full-KYC evaluation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ProviderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veritas_provider_failures_total",
			Help: "Total number of external provider failures, labeled by provider and category",
		}, []string{"provider", "category"}),
		GovernmentLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veritas_government_lookups_total",
			Help: "Total number of government registry lookups, labeled by status",
		}, []string{"status"}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veritas_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementExtraction records one document extraction by detected type.
func (m *Metrics) IncrementExtraction(docType string) {
	m.ExtractionsTotal.WithLabelValues(docType).Inc()
}

// IncrementOutcome records one full-KYC decision outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	m.DecisionOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveEvidenceLatency records per-source evidence gathering latency.
func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveEvaluateLatency records end to end evaluation latency.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	m.EvaluateLatency.Observe(d.Seconds())
}

// IncrementProviderFailure records one categorized external provider failure.
func (m *Metrics) IncrementProviderFailure(provider, category string) {
	m.ProviderFailures.WithLabelValues(provider, category).Inc()
}

// IncrementGovernmentLookup records one registry lookup by outcome status.
func (m *Metrics) IncrementGovernmentLookup(status string) {
	m.GovernmentLookups.WithLabelValues(status).Inc()
}

// ObserveEndpointLatency records HTTP endpoint latency.
func (m *Metrics) ObserveEndpointLatency(endpoint string, d time.Duration) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}
