// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package main is the entry point for the ContentROI server.

ContentROI attributes subscriber signups to content releases (last touch within
a window), computes per-user lifetime value, rolls both up into per-show ROI and
per-genre CAC, LTV and LTV:CAC, and sweeps the attribution window to show how
sensitive those numbers are. Results are served as JSON under /api/v1.

# Application Architecture

	RootSupervisor ("contentroi")
	├── DataSupervisor ("data-layer")
	│   └── Dataset refresh (if REFRESH_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB, opened when DATASET_SOURCE=duckdb or PERSIST_RESULTS=true
 4. Dataset: CSV files, DuckDB tables or the seeded generator
 5. Analysis engine: result cache and optional persistence
 6. Supervisor tree and HTTP server

# Example Usage

Generated dataset, console logs:

	export LOG_FORMAT=console
	./contentroi

CSV files with results persisted to DuckDB:

	export DATASET_SOURCE=csv
	export CONTENT_PATH=/data/content.csv
	export USERS_PATH=/data/users.csv
	export PERSIST_RESULTS=true
	./contentroi

DuckDB tables seeded on first start and reloaded hourly:

	export DATASET_SOURCE=duckdb
	export SEED_MOCK_DATA=true
	export REFRESH_ENABLED=true
	./contentroi

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT, then the database is checkpointed and
closed.
*/
package main
