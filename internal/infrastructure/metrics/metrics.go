// Package metrics holds the Prometheus collectors of the statistics service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Namespace = "clinic"
	Subsystem = "stats"
)

// Request outcomes
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type Metrics struct {
	RequestsTotal         *prometheus.CounterVec
	RequestDuration       *prometheus.HistogramVec
	DegradedSectionsTotal *prometheus.CounterVec
	ServiceStrategyTotal  *prometheus.CounterVec
	FallbackSkippedRows   prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg. A nil reg uses a fresh registry
// so tests never collide on the default one.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "requests_total",
				Help:      "Statistics requests by view and outcome",
			},
			[]string{"view", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent computing a statistics view",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"view"},
		),
		DegradedSectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "degraded_sections_total",
				Help:      "Sections returned empty because their computation failed",
			},
			[]string{"section"},
		),
		ServiceStrategyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "service_strategy_total",
				Help:      "Service popularity computations by strategy",
			},
			[]string{"strategy"},
		),
		FallbackSkippedRows: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "fallback_skipped_rows_total",
				Help:      "Joined rows skipped by the fallback service aggregation",
			},
		),
		gatherer: reg,
	}
}

// ObserveRequest records one finished view computation.
func (m *Metrics) ObserveRequest(view, outcome string, started time.Time) {
	m.RequestsTotal.WithLabelValues(view, outcome).Inc()
	m.RequestDuration.WithLabelValues(view).Observe(time.Since(started).Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
