// Package metrics exposes review activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.ReviewMetrics = (*Metrics)(nil)

// Metrics provides observability for the applicant store. Each instance
// owns its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Records read by the last load
	LoadedRecords prometheus.Gauge

	// Load latency
	LoadLatency prometheus.Histogram

	// Decisions by verdict and outcome
	Decisions *prometheus.CounterVec

	// Decision latency including persistence
	DecisionLatency *prometheus.HistogramVec

	// Records per status
	StatusRecords *prometheus.GaugeVec

	// HTTP requests by route and status code
	HTTPRequests *prometheus.CounterVec
}

// New creates a Metrics instance with all reviewdesk metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		LoadedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reviewdesk_loaded_records",
			Help: "Number of applicant records read by the last load",
		}),

		LoadLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reviewdesk_load_duration_seconds",
			Help:    "Duration of loading the backing source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reviewdesk_decisions_total",
			Help: "Total decisions by verdict and outcome",
		}, []string{"decision", "outcome"}), // outcome: "saved", "not_found", "persist_failed"

		DecisionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reviewdesk_decision_duration_seconds",
			Help:    "Duration of applying and persisting a decision",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"decision"}),

		StatusRecords: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "reviewdesk_applicants",
			Help: "Current number of applicants by status",
		}, []string{"status"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reviewdesk_http_requests_total",
			Help: "HTTP API requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// ObserveLoad records a completed load.
func (m *Metrics) ObserveLoad(n int, d time.Duration) {
	if m != nil {
		m.LoadedRecords.Set(float64(n))
		m.LoadLatency.Observe(d.Seconds())
	}
}

// ObserveDecision records a decision attempt.
func (m *Metrics) ObserveDecision(decision, outcome string, d time.Duration) {
	if m != nil {
		m.Decisions.WithLabelValues(decision, outcome).Inc()
		m.DecisionLatency.WithLabelValues(decision).Observe(d.Seconds())
	}
}

// SetStatusCount publishes the number of records in a status.
func (m *Metrics) SetStatusCount(status string, n int) {
	if m != nil {
		m.StatusRecords.WithLabelValues(status).Set(float64(n))
	}
}

// IncrementRequest records a served HTTP request.
func (m *Metrics) IncrementRequest(route, code string) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, code).Inc()
	}
}

// Registry returns the registry holding every metric.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
