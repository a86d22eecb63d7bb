// Package metrics provides Prometheus metrics for the leaderboard builder.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "vlaboard"
	defaultSubsystem = "pipeline"
)

// Build outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Manager manages all Prometheus metrics of the builder.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Build metrics
	builds            *prometheus.CounterVec
	buildDuration     prometheus.Histogram
	buildLastUnix     prometheus.Gauge
	rowsRead          prometheus.Gauge
	rowsSkipped       prometheus.Gauge
	rowsReference     prometheus.Gauge
	modelsTotal       prometheus.Gauge
	leaderboardSize   *prometheus.GaugeVec
	derivedAggregates *prometheus.GaugeVec
	verifyViolations  prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Repository metrics
	repositoryQueryLatency prometheus.Histogram

	errorsByComponent *prometheus.CounterVec
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
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.builds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "builds_total",
		Help:      "Total number of leaderboard builds by outcome",
	}, []string{"status"})

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_milliseconds",
		Help:      "Histogram of end-to-end build duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.buildLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_last_success_unix",
		Help:      "Unix time of the last successful build",
	})

	m.rowsRead = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_read",
		Help:      "Spreadsheet data rows read by the last build",
	})

	m.rowsSkipped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped",
		Help:      "Rows without a model name in the last build",
	})

	m.rowsReference = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_reference",
		Help:      "Rows quoting another paper's results in the last build",
	})

	m.modelsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "models_total",
		Help:      "Distinct models in the last build",
	})

	m.leaderboardSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_entries",
		Help:      "Entries per leaderboard and category in the last build",
	}, []string{"benchmark", "category"})

	m.derivedAggregates = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "derived_aggregates",
		Help:      "Aggregates computed from sub-metrics in the last build",
	}, []string{"benchmark"})

	m.verifyViolations = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "verify_violations",
		Help:      "Invariant violations found in the last build",
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

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_query_latency_milliseconds",
		Help:      "Histogram of published-leaderboard query latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})
}

// RecordBuild counts a build and, on success, observes its duration.
func RecordBuild(status string, durationMs float64) {
	globalManager.builds.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		globalManager.buildDuration.Observe(durationMs)
	}
}

// UpdateLastBuild sets the time of the last successful build.
func UpdateLastBuild(unix float64) {
	globalManager.buildLastUnix.Set(unix)
}

// UpdateRows sets the row counters of the last build.
func UpdateRows(read, skipped, reference int) {
	globalManager.rowsRead.Set(float64(read))
	globalManager.rowsSkipped.Set(float64(skipped))
	globalManager.rowsReference.Set(float64(reference))
}

// UpdateModelsTotal sets the number of distinct models.
func UpdateModelsTotal(count int) {
	globalManager.modelsTotal.Set(float64(count))
}

// UpdateLeaderboardEntries sets the size of one leaderboard category.
func UpdateLeaderboardEntries(benchmark, category string, count int) {
	globalManager.leaderboardSize.WithLabelValues(benchmark, category).Set(float64(count))
}

// UpdateDerivedAggregates sets how many aggregates of a benchmark were derived.
func UpdateDerivedAggregates(benchmark string, count int) {
	globalManager.derivedAggregates.WithLabelValues(benchmark).Set(float64(count))
}

// UpdateVerifyViolations sets the invariant violation count of the last build.
func UpdateVerifyViolations(count int) {
	globalManager.verifyViolations.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRepositoryQueryLatency records repository query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the text exposition format, for
// batch runs scraped through a node-exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
