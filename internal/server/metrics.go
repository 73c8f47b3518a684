// Package server exposes search counters over HTTP in Prometheus
// exposition format.
package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one search process. It
// implements search.Recorder, so a Pipeline can feed it directly.
//
// Each Metrics owns its registry. Constructing a second instance never
// collides with the first, which keeps tests independent.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	pairsTested   prometheus.Counter
	pairsSurvived prometheus.Counter
	triplesFound  prometheus.Counter
	stageDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, along with the Go
// runtime collector, on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		pairsTested: factory.NewCounter(prometheus.CounterOpts{
			Name: "triple_pairs_tested_total",
			Help: "Candidate (a, b) pairs evaluated by the pair filter.",
		}),
		pairsSurvived: factory.NewCounter(prometheus.CounterOpts{
			Name: "triple_pairs_survived_total",
			Help: "Pairs that passed the D(n) pair condition.",
		}),
		triplesFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "triple_triples_found_total",
			Help: "Complete triples emitted by the extension stage.",
		}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "triple_stage_duration_seconds",
			Help:    "Wall-clock duration of each pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		}, []string{"stage"}),
	}
	registry.MustRegister(collectors.NewGoCollector())

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// AddPairsTested records evaluated candidates.
func (m *Metrics) AddPairsTested(n uint64) { m.pairsTested.Add(float64(n)) }

// AddPairsSurvived records surviving pairs.
func (m *Metrics) AddPairsSurvived(n uint64) { m.pairsSurvived.Add(float64(n)) }

// AddTriplesFound records emitted triples.
func (m *Metrics) AddTriplesFound(n uint64) { m.triplesFound.Add(float64(n)) }

// ObserveStageDuration records one stage's wall-clock time.
func (m *Metrics) ObserveStageDuration(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WritePrometheus serves the registry in exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
