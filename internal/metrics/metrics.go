// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	// Attribution Metrics
	AttributionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attribution_runs_total",
			Help: "Total number of attribution runs",
		},
		[]string{"window_days"},
	)

	AttributionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "attribution_run_duration_seconds",
			Help:    "Duration of a full analysis run (resolve, LTV, aggregation) in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	AttributionUsers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "attribution_users",
			Help: "Users by attribution class in the most recent run",
		},
		[]string{"class"}, // "attributed", "preserved", "organic", "unresolved"
	)

	UnresolvedReferences = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "attribution_unresolved_references_total",
			Help: "Total number of attributions pointing at content missing from the catalog",
		},
	)

	// Sweep Metrics
	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of window sensitivity sweeps in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SweepPoints = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_points_total",
			Help: "Total number of (window, genre) points computed by sweeps",
		},
	)

	SweepErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_errors_total",
			Help: "Total number of failed sweeps",
		},
	)

	// Dataset Metrics
	DatasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Total number of dataset loads",
		},
		[]string{"source", "result"},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of records in the loaded dataset",
		},
		[]string{"kind"}, // "content", "user"
	)

	DatasetLastLoad = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_last_load_timestamp",
			Help: "Unix timestamp of the last successful dataset load",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "analysis", "sweep"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RunCounts carries the per-class user counts of one attribution run.
type RunCounts struct {
	Attributed int
	Preserved  int
	Organic    int
	Unresolved int
}

// RecordAttributionRun records one completed analysis run.
func RecordAttributionRun(windowDays int, duration time.Duration, counts RunCounts) {
	AttributionRuns.WithLabelValues(strconv.Itoa(windowDays)).Inc()
	AttributionDuration.Observe(duration.Seconds())
	AttributionUsers.WithLabelValues("attributed").Set(float64(counts.Attributed))
	AttributionUsers.WithLabelValues("preserved").Set(float64(counts.Preserved))
	AttributionUsers.WithLabelValues("organic").Set(float64(counts.Organic))
	AttributionUsers.WithLabelValues("unresolved").Set(float64(counts.Unresolved))
	if counts.Unresolved > 0 {
		UnresolvedReferences.Add(float64(counts.Unresolved))
	}
}

// RecordSweep records a sensitivity sweep.
func RecordSweep(duration time.Duration, points int, err error) {
	SweepDuration.Observe(duration.Seconds())
	if err != nil {
		SweepErrors.Inc()
		return
	}
	SweepPoints.Add(float64(points))
}

// RecordDatasetLoad records a dataset load from source.
func RecordDatasetLoad(source string, duration time.Duration, contentItems, users int, err error) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		DatasetLoads.WithLabelValues(source, ResultError).Inc()
		return
	}
	DatasetLoads.WithLabelValues(source, ResultSuccess).Inc()
	DatasetRecords.WithLabelValues("content").Set(float64(contentItems))
	DatasetRecords.WithLabelValues("user").Set(float64(users))
	DatasetLastLoad.Set(float64(time.Now().Unix()))
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordCacheHit records a cache hit for cacheType.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for cacheType.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// SetCacheSize sets the current entry count for cacheType.
func SetCacheSize(cacheType string, entries int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
