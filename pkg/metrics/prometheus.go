// Package metrics provides Prometheus metrics for the driftwatch
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace string
	subsystem string
	enabled   bool
	registry  prometheus.Registerer

	// Synthesis metrics
	batchesGenerated  prometheus.Counter
	daysSynthesized   prometheus.Counter
	eventsSynthesized prometheus.Counter

	// Alerting metrics
	alertCycles     prometheus.Counter
	cycleFailures   prometheus.Counter
	daysScored      prometheus.Counter
	alertsRaised    prometheus.Counter
	scoringDuration prometheus.Histogram

	// Catalog metrics
	catalogEvents prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "driftwatch",
		subsystem: "pipeline",
		enabled:   true,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.batchesGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_generated_total",
		Help:      "Total number of log batches synthesized",
	})

	m.daysSynthesized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "days_synthesized_total",
		Help:      "Total number of simulated days synthesized",
	})

	m.eventsSynthesized = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_synthesized_total",
		Help:      "Total number of individual event values drawn",
	})

	m.alertCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alert_cycles_total",
		Help:      "Total number of completed live alert cycles",
	})

	m.cycleFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_failures_total",
		Help:      "Total number of alert cycles aborted by recoverable errors",
	})

	m.daysScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "days_scored_total",
		Help:      "Total number of days scored against the baseline",
	})

	m.alertsRaised = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alerts_raised_total",
		Help:      "Total number of days whose score reached the alert threshold",
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_seconds",
		Help:      "Time spent generating and scoring one live batch",
		Buckets:   prometheus.DefBuckets,
	})

	m.catalogEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_events",
		Help:      "Number of events in the loaded catalog",
	})
}

// RecordBatch records a synthesized batch of the given shape.
func RecordBatch(days, events int) {
	if !globalManager.enabled {
		return
	}
	globalManager.batchesGenerated.Inc()
	globalManager.daysSynthesized.Add(float64(days))
	globalManager.eventsSynthesized.Add(float64(days * events))
}

// RecordCycle records one completed alert cycle.
func RecordCycle() {
	if !globalManager.enabled {
		return
	}
	globalManager.alertCycles.Inc()
}

// RecordCycleFailure records an alert cycle aborted by a recoverable
// error.
func RecordCycleFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.cycleFailures.Inc()
}

// RecordScores records the per-day outcomes of one cycle.
func RecordScores(days, alerts int) {
	if !globalManager.enabled {
		return
	}
	globalManager.daysScored.Add(float64(days))
	globalManager.alertsRaised.Add(float64(alerts))
}

// ObserveScoringDuration records how long one generate-and-score phase
// took.
func ObserveScoringDuration(d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.scoringDuration.Observe(d.Seconds())
}

// SetCatalogSize sets the loaded catalog size.
func SetCatalogSize(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.catalogEvents.Set(float64(n))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
