// Package metrics provides Prometheus metrics for the vitalis engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline metrics
	recomputes         prometheus.Counter
	recomputeDuration  prometheus.Histogram
	snapshotDuplicates prometheus.Counter
	readinessScore     prometheus.Gauge
	seriesLength       *prometheus.GaugeVec

	// Fetch boundary metrics
	fetchErrors    *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	syncsTriggered prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vitalis",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recomputes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recomputes_total",
		Help:      "Total number of full pipeline recomputations",
	})

	m.recomputeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_duration_milliseconds",
		Help:      "Histogram of full recompute duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_duplicates_total",
		Help:      "Snapshots skipped because their fingerprint was already computed",
	})

	m.readinessScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "readiness_score",
		Help:      "Most recently published composite readiness score (0-100)",
	})

	m.seriesLength = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "series_length",
			Help:      "Record count per raw input series in the latest snapshot",
		},
		[]string{"series"},
	)

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_errors_total",
			Help:      "Upstream fetch failures per series (each defaults that series to empty)",
		},
		[]string{"series"},
	)

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_milliseconds",
		Help:      "Histogram of full five-series fetch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.syncsTriggered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "syncs_total",
		Help:      "Total number of upstream sync rounds triggered",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses by endpoint and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers delegating to the global manager.

// RecordRecompute counts one full pipeline recomputation.
func RecordRecompute() {
	globalManager.recomputes.Inc()
}

// RecordRecomputeDuration records one recompute duration in milliseconds.
func RecordRecomputeDuration(ms float64) {
	globalManager.recomputeDuration.Observe(ms)
}

// RecordSnapshotDuplicate counts a snapshot skipped by fingerprint dedupe.
func RecordSnapshotDuplicate() {
	globalManager.snapshotDuplicates.Inc()
}

// UpdateReadinessScore publishes the latest composite score.
func UpdateReadinessScore(value int) {
	globalManager.readinessScore.Set(float64(value))
}

// UpdateSeriesLength publishes the record count of one raw series.
func UpdateSeriesLength(series string, n int) {
	globalManager.seriesLength.WithLabelValues(series).Set(float64(n))
}

// RecordFetchError counts one failed upstream series fetch.
func RecordFetchError(series string) {
	globalManager.fetchErrors.WithLabelValues(series).Inc()
}

// RecordFetchDuration records one full fetch round duration in milliseconds.
func RecordFetchDuration(ms float64) {
	globalManager.fetchDuration.Observe(ms)
}

// RecordSync counts one triggered upstream sync round.
func RecordSync() {
	globalManager.syncsTriggered.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordHTTPError counts one HTTP error response by type.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage publishes current heap allocation.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount publishes the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager, for serving
// on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
