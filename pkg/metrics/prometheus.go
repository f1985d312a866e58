// Package metrics provides Prometheus metrics for the regatta scoring engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core scoring metrics
	computations        prometheus.Counter
	computationDuration prometheus.Histogram
	computationFailures *prometheus.CounterVec
	tiesResolved        *prometheus.CounterVec

	// Scale gauges - size of the last computed event
	fleetSize prometheus.Gauge
	raceCount prometheus.Gauge

	// Snapshot and export metrics
	snapshotLoadDuration prometheus.Histogram
	exportsWritten       prometheus.Counter
	exportErrors         prometheus.Counter
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
		namespace:        "regatta",
		subsystem:        "series",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.computations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "computations_total",
		Help:      "Total number of series results computed",
	})

	m.computationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "computation_duration_seconds",
		Help:      "Histogram of end-to-end series computation duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.computationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computation_failures_total",
			Help:      "Total number of failed computations by failure kind",
		},
		[]string{"kind"},
	)

	m.tiesResolved = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ties_resolved_total",
			Help:      "Total number of NET ties resolved, by deciding rule",
		},
		[]string{"rule"},
	)

	m.fleetSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fleet_size",
		Help:      "Number of boats ranked in the last computed event",
	})

	m.raceCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "race_count",
		Help:      "Number of races scored in the last computed event",
	})

	m.snapshotLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_load_duration_seconds",
		Help:      "Histogram of snapshot load duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.exportsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_written_total",
		Help:      "Total number of result tables exported",
	})

	m.exportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_errors_total",
		Help:      "Total number of failed result exports",
	})
}

// Registry returns the registry backing the global manager, for callers that
// want to expose or gather the metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}

// RecordComputation records one successful computation and its duration.
func RecordComputation(seconds float64) {
	if globalManager.enabled {
		globalManager.computations.Inc()
		globalManager.computationDuration.Observe(seconds)
	}
}

// RecordComputationFailure records a failed computation by kind, e.g.
// "validation" or "data_inconsistency".
func RecordComputationFailure(kind string) {
	if globalManager.enabled {
		globalManager.computationFailures.WithLabelValues(kind).Inc()
	}
}

// RecordTieResolved records one NET tie settled by the given rule.
func RecordTieResolved(rule string) {
	if globalManager.enabled {
		globalManager.tiesResolved.WithLabelValues(rule).Inc()
	}
}

// UpdateFleetSize sets the number of boats in the last computed event.
func UpdateFleetSize(n int) {
	if globalManager.enabled {
		globalManager.fleetSize.Set(float64(n))
	}
}

// UpdateRaceCount sets the number of races in the last computed event.
func UpdateRaceCount(n int) {
	if globalManager.enabled {
		globalManager.raceCount.Set(float64(n))
	}
}

// RecordSnapshotLoad records the duration of one snapshot load.
func RecordSnapshotLoad(seconds float64) {
	if globalManager.enabled {
		globalManager.snapshotLoadDuration.Observe(seconds)
	}
}

// RecordExport records one successfully written result table.
func RecordExport() {
	if globalManager.enabled {
		globalManager.exportsWritten.Inc()
	}
}

// RecordExportError records one failed result export.
func RecordExportError() {
	if globalManager.enabled {
		globalManager.exportErrors.Inc()
	}
}
