// Package metrics provides Prometheus metrics for the salary comparison service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset Metrics - what was loaded at startup
	recordsLoaded     *prometheus.GaugeVec
	rowsSkipped       *prometheus.CounterVec
	recordAnomalies   *prometheus.CounterVec
	detailedAvailable prometheus.Gauge
	jurisdictions     prometheus.Gauge

	// Query Metrics - one pass of filter/aggregate/derive/project
	dashboardQueries     prometheus.Counter
	dashboardEmpty       prometheus.Counter
	dashboardLatency     prometheus.Histogram
	filteredRecords      prometheus.Histogram
	viewCacheHits        prometheus.Counter
	viewCacheMisses      prometheus.Counter
	exportsTotal         *prometheus.CounterVec
	renderLatency        *prometheus.HistogramVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

var configureMu sync.Mutex //nolint:gochecknoglobals // guards Configure

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure rebuilds the global manager with opts on a fresh registry,
// so a changed namespace or label set never collides with the metrics
// registered at init. Call it once at startup, before serving.
func Configure(opts ...Option) *prometheus.Registry {
	configureMu.Lock()
	defer configureMu.Unlock()

	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
	return registry
}

// RefreshInterval is how often the caller should refresh system gauges.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// Enabled reports whether the global manager records anything.
func Enabled() bool {
	return globalManager.enabled
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "salary",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.recordsLoaded = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_loaded",
		Help:        "Number of district records loaded per source layer",
		ConstLabels: labels,
	}, []string{"source"})

	m.rowsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_skipped_total",
		Help:        "Total number of malformed CSV rows skipped while loading",
		ConstLabels: labels,
	}, []string{"source"})

	m.recordAnomalies = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "record_anomalies_total",
		Help:        "Total number of loaded records flagged as suspicious, by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.detailedAvailable = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "detailed_source_available",
		Help:        "1 when the detailed district source was loaded, 0 otherwise",
		ConstLabels: labels,
	})

	m.jurisdictions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "jurisdictions",
		Help:        "Number of distinct jurisdictions in the merged dataset",
		ConstLabels: labels,
	})

	m.dashboardQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queries_total",
		Help:        "Total number of dashboard views computed or served",
		ConstLabels: labels,
	})

	m.dashboardEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "empty_selections_total",
		Help:        "Total number of selections that matched no records",
		ConstLabels: labels,
	})

	m.dashboardLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "query_latency_milliseconds",
		Help:        "Histogram of filter/aggregate/project latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.filteredRecords = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filtered_records",
		Help:        "Histogram of records surviving the selection filter",
		Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		ConstLabels: labels,
	})

	m.viewCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "view_cache_hits_total",
		Help:        "Total number of dashboard views served from cache",
		ConstLabels: labels,
	})

	m.viewCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "view_cache_misses_total",
		Help:        "Total number of dashboard views recomputed",
		ConstLabels: labels,
	})

	m.exportsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "exports_total",
		Help:        "Total number of exports produced, by format",
		ConstLabels: labels,
	}, []string{"format"})

	m.renderLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_latency_milliseconds",
		Help:        "Histogram of chart/export rendering latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"format"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "Histogram of HTTP request durations in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        "by_component_total",
		Help:        "Total errors by component",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        "by_type_total",
		Help:        "Total errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "errors",
		Name:        "by_endpoint_total",
		Help:        "Total errors by HTTP endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_bytes",
		Help:        "Current allocated heap memory in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Histogram of average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// Dataset metrics.

// UpdateRecordsLoaded sets the number of records loaded from a source layer.
func UpdateRecordsLoaded(source string, count int) {
	if globalManager.enabled {
		globalManager.recordsLoaded.WithLabelValues(source).Set(float64(count))
	}
}

// RecordRowsSkipped adds skipped malformed rows for a source layer.
func RecordRowsSkipped(source string, count int) {
	if globalManager.enabled && count > 0 {
		globalManager.rowsSkipped.WithLabelValues(source).Add(float64(count))
	}
}

// RecordAnomaly counts one suspicious record of the given kind.
func RecordAnomaly(kind string) {
	if globalManager.enabled {
		globalManager.recordAnomalies.WithLabelValues(kind).Inc()
	}
}

// UpdateDetailedAvailable flags whether detailed data participates.
func UpdateDetailedAvailable(available bool) {
	if !globalManager.enabled {
		return
	}
	if available {
		globalManager.detailedAvailable.Set(1)
		return
	}
	globalManager.detailedAvailable.Set(0)
}

// UpdateJurisdictionCount sets the number of distinct jurisdictions.
func UpdateJurisdictionCount(count int) {
	if globalManager.enabled {
		globalManager.jurisdictions.Set(float64(count))
	}
}

// Query metrics.

// RecordDashboardQuery counts one dashboard view request.
func RecordDashboardQuery() {
	if globalManager.enabled {
		globalManager.dashboardQueries.Inc()
	}
}

// RecordEmptySelection counts a selection that matched nothing.
func RecordEmptySelection() {
	if globalManager.enabled {
		globalManager.dashboardEmpty.Inc()
	}
}

// RecordDashboardLatency observes the recompute latency in milliseconds.
func RecordDashboardLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.dashboardLatency.Observe(latencyMs)
	}
}

// RecordFilteredRecords observes how many records survived a filter.
func RecordFilteredRecords(count int) {
	if globalManager.enabled {
		globalManager.filteredRecords.Observe(float64(count))
	}
}

// RecordViewCacheHit counts a view served from cache.
func RecordViewCacheHit() {
	if globalManager.enabled {
		globalManager.viewCacheHits.Inc()
	}
}

// RecordViewCacheMiss counts a view that had to be recomputed.
func RecordViewCacheMiss() {
	if globalManager.enabled {
		globalManager.viewCacheMisses.Inc()
	}
}

// RecordExport counts one export in the given format (png, xlsx, csv).
func RecordExport(format string) {
	if globalManager.enabled {
		globalManager.exportsTotal.WithLabelValues(format).Inc()
	}
}

// RecordRenderLatency observes rendering latency for a format.
func RecordRenderLatency(format string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.renderLatency.WithLabelValues(format).Observe(latencyMs)
	}
}

// HTTP metrics.

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Error metrics.

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System metrics.

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
