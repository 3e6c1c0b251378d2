package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// normalization pipeline.
type Metrics struct {
	SnapshotBuilds        *prometheus.CounterVec // labels: outcome={full,degraded}
	SourceErrors          *prometheus.CounterVec // labels: source={facilities,registry}
	CacheLookups          *prometheus.CounterVec // labels: result={hit,miss}
	SnapshotBuildDuration prometheus.Histogram

	// Gauges describing the most recent snapshot.
	FacilitiesLoaded  prometheus.Gauge
	FeaturesDropped   prometheus.Gauge
	CapacityFallbacks prometheus.Gauge
	RegistryRows      prometheus.Gauge
	PipelineReady     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SnapshotBuilds,
		m.SourceErrors,
		m.CacheLookups,
		m.SnapshotBuildDuration,
		m.FacilitiesLoaded,
		m.FeaturesDropped,
		m.CapacityFallbacks,
		m.RegistryRows,
		m.PipelineReady,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evac_dashboard",
			Name:      "snapshot_builds_total",
			Help:      "Snapshot rebuilds by outcome (full = both sources loaded, degraded = at least one diagnostic).",
		}, []string{"outcome"}),
		SourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evac_dashboard",
			Name:      "source_errors_total",
			Help:      "Source load failures recovered as empty collections.",
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evac_dashboard",
			Name:      "cache_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		SnapshotBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "evac_dashboard",
			Name:      "snapshot_build_duration_seconds",
			Help:      "Duration of a full load-normalize-assemble cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		FacilitiesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "evac_dashboard",
			Name:      "facilities_loaded",
			Help:      "Normalized facilities in the current snapshot.",
		}),
		FeaturesDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "evac_dashboard",
			Name:      "features_dropped",
			Help:      "Features discarded for unresolvable geometry in the current snapshot.",
		}),
		CapacityFallbacks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "evac_dashboard",
			Name:      "capacity_fallbacks",
			Help:      "Facilities that received the default capacity in the current snapshot.",
		}),
		RegistryRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "evac_dashboard",
			Name:      "registry_rows",
			Help:      "Normalized registry rows in the current snapshot.",
		}),
		PipelineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "evac_dashboard",
			Name:      "pipeline_ready",
			Help:      "1 once the pipeline has built at least one snapshot.",
		}),
	}
}
