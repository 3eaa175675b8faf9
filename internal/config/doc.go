// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package config provides centralized configuration management for ContentROI.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH, ./config.yaml or /etc/contentroi/config.yaml), then
environment variables. Later layers win.

# Example config.yaml

	dataset:
	  source: csv
	  content_path: /data/content.csv
	  users_path: /data/users.csv
	analysis:
	  default_window_days: 7
	  sweep_windows: [3, 7, 14]
	  sweep_genres: [Sci-Fi, Comedy]
	database:
	  path: /data/contentroi.duckdb
	  persist_results: true

# Environment Variables

Dataset:
  - DATASET_SOURCE: csv, duckdb or generated (default: generated)
  - CONTENT_PATH, USERS_PATH: CSV inputs for the csv source
  - SEED_MOCK_DATA: seed the DuckDB store with generated data when empty
  - MOCK_SEED, MOCK_SHOWS, MOCK_USERS: generator parameters
  - STRICT_ALL_ERRORS: report every malformed record, not just the first

Analysis:
  - ATTRIBUTION_WINDOW_DAYS: default window (default: 7)
  - SWEEP_WINDOWS: comma-separated windows (default: 3,7,14)
  - SWEEP_GENRES: comma-separated genres (default: Sci-Fi,Comedy)
  - SWEEP_MAX_PARALLEL: concurrent sweep points (default: number of CPUs)
  - TOP_N: default leaderboard size (default: 5)
  - ANALYSIS_AS_OF_DATE: churn reference date (default: 2025-01-15)
  - CHURN_AFTER_DAYS: inactivity threshold for churn (default: 30)

Infrastructure:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, PERSIST_RESULTS
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - CACHE_TTL
  - REFRESH_ENABLED, REFRESH_INTERVAL
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
