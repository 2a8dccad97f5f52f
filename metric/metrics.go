// Package metric defines the prometheus collectors for the question
// answering pipeline and a registry that owns them.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all pipeline metrics.
type Metrics struct {
	QueriesServed       *prometheus.CounterVec
	ValidationOutcomes  *prometheus.CounterVec
	TriplesCommitted    prometheus.Counter
	PhaseDuration       *prometheus.HistogramVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	CollaboratorRetries *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		QueriesServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontoquery",
				Subsystem: "pipeline",
				Name:      "queries_served_total",
				Help:      "Total number of queries answered, by envelope status",
			},
			[]string{"status"},
		),

		ValidationOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontoquery",
				Subsystem: "validation",
				Name:      "outcomes_total",
				Help:      "Total number of validation attempts, by outcome",
			},
			[]string{"outcome"},
		),

		TriplesCommitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ontoquery",
				Subsystem: "validation",
				Name:      "triples_committed_total",
				Help:      "Total number of triples committed, including entailed triples",
			},
		),

		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ontoquery",
				Subsystem: "pipeline",
				Name:      "phase_duration_seconds",
				Help:      "Phase execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"phase"},
		),

		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ontoquery",
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Total number of answer cache hits",
			},
		),

		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "ontoquery",
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Total number of answer cache misses",
			},
		),

		CollaboratorRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontoquery",
				Subsystem: "collaborator",
				Name:      "retries_total",
				Help:      "Total number of retried collaborator calls",
			},
			[]string{"collaborator"},
		),
	}
}

// RecordQueryServed increments the served-query counter for a status.
func (m *Metrics) RecordQueryServed(status string) {
	m.QueriesServed.WithLabelValues(status).Inc()
}

// RecordValidationOutcome increments the validation outcome counter.
func (m *Metrics) RecordValidationOutcome(outcome string) {
	m.ValidationOutcomes.WithLabelValues(outcome).Inc()
}

// RecordTriplesCommitted adds to the committed-triple counter.
func (m *Metrics) RecordTriplesCommitted(n int) {
	m.TriplesCommitted.Add(float64(n))
}

// RecordPhaseDuration records a phase execution time.
func (m *Metrics) RecordPhaseDuration(phase string, d time.Duration) {
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordCacheHit increments the answer cache hit counter.
func (m *Metrics) RecordCacheHit() { m.CacheHits.Inc() }

// RecordCacheMiss increments the answer cache miss counter.
func (m *Metrics) RecordCacheMiss() { m.CacheMisses.Inc() }

// RecordCollaboratorRetry increments the retry counter for a collaborator.
func (m *Metrics) RecordCollaboratorRetry(collaborator string) {
	m.CollaboratorRetries.WithLabelValues(collaborator).Inc()
}

// Registry owns the prometheus registry and the pipeline metrics.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewRegistry creates a registry with the pipeline metrics and Go
// runtime collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}

	r.prometheusRegistry.MustRegister(
		r.Metrics.QueriesServed,
		r.Metrics.ValidationOutcomes,
		r.Metrics.TriplesCommitted,
		r.Metrics.PhaseDuration,
		r.Metrics.CacheHits,
		r.Metrics.CacheMisses,
		r.Metrics.CollaboratorRetries,
	)

	r.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// Handler returns an HTTP handler serving the registry in the
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
}
