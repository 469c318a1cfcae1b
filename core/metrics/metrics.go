// Package metrics defines the Prometheus collectors for journal sync runs and
// exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"journal-loader/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the loader.
type Metrics struct {
	RecordsTotal   *prometheus.CounterVec
	RunsTotal      *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	LastRunRecords *prometheus.GaugeVec
	RunsInFlight   prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_sync_records_total",
				Help: "Journal records processed by outcome.",
			},
			[]string{"outcome"},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_sync_runs_total",
				Help: "Sync runs by result (completed, aborted) and mode (write, dry_run).",
			},
			[]string{"result", "mode"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "journal_sync_run_duration_seconds",
				Help:    "Wall time of a sync run in seconds.",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		LastRunRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "journal_sync_last_run_records",
				Help: "Record counts of the last completed run by outcome.",
			},
			[]string{"outcome"},
		),
		RunsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "journal_sync_runs_in_flight",
				Help: "Number of sync runs currently executing.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RecordsTotal,
		m.RunsTotal,
		m.RunDuration,
		m.LastRunRecords,
		m.RunsInFlight,
	)

	return m
}

// ObserveOutcome implements reconcile.Observer.
func (m *Metrics) ObserveOutcome(o reconcile.Outcome) {
	m.RecordsTotal.WithLabelValues(string(o)).Inc()
}

// RunStarted marks a run as in flight.
func (m *Metrics) RunStarted() {
	m.RunsInFlight.Inc()
}

// RunFinished records the end of a run. A nil summary means the run aborted.
func (m *Metrics) RunFinished(dryRun bool, summary *reconcile.Summary, elapsed time.Duration) {
	m.RunsInFlight.Dec()
	m.RunDuration.Observe(elapsed.Seconds())

	mode := "write"
	if dryRun {
		mode = "dry_run"
	}

	if summary == nil {
		m.RunsTotal.WithLabelValues("aborted", mode).Inc()
		return
	}

	m.RunsTotal.WithLabelValues("completed", mode).Inc()
	for _, o := range reconcile.Outcomes {
		m.LastRunRecords.WithLabelValues(string(o)).Set(float64(summary.Count(o)))
	}
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
