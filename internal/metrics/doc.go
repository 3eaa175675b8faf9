// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at /metrics:

	curl http://localhost:8421/metrics

# Available Metrics

Attribution:
  - attribution_runs_total{window_days}: completed analysis runs (counter)
  - attribution_run_duration_seconds: resolve, LTV and aggregation time (histogram)
  - attribution_users{class}: attributed, preserved, organic and unresolved users
    in the most recent run (gauge)
  - attribution_unresolved_references_total: attributions to unknown content (counter)

Sweep:
  - sweep_duration_seconds, sweep_points_total, sweep_errors_total

Dataset:
  - dataset_loads_total{source,result}, dataset_load_duration_seconds{source}
  - dataset_records{kind}, dataset_last_load_timestamp

Database:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table,error_type}

Cache:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}, cache_entries{cache_type}

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests, api_rate_limit_hits_total{endpoint}

# Usage

	start := time.Now()
	result, err := engine.Run(ctx, 7)
	metrics.RecordAttributionRun(7, time.Since(start), metrics.RunCounts{...})
*/
package metrics
