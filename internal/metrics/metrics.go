package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's Prometheus collectors on a private
// registry so multiple services can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	events        prometheus.Counter
	shortfall     prometheus.Counter
}

// New registers the scheduling collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Total schedule generation runs",
	}, []string{"algorithm", "outcome"})

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_solve_duration_seconds",
		Help:    "Duration of allocator runs in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})

	events := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_events_total",
		Help: "Total scheduled events emitted",
	})

	shortfall := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_shortfall_periods_total",
		Help: "Total requested periods left unscheduled",
	})

	registry.MustRegister(runs, solveDuration, events, shortfall)

	return &Metrics{
		registry:      registry,
		runs:          runs,
		solveDuration: solveDuration,
		events:        events,
		shortfall:     shortfall,
	}
}

// Registry exposes the underlying registry for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records one allocator run.
func (m *Metrics) ObserveRun(algorithm, outcome string, duration time.Duration, events, shortfall int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(algorithm, outcome).Inc()
	m.solveDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	m.events.Add(float64(events))
	m.shortfall.Add(float64(shortfall))
}
