// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
database_schema.go - Database Schema Management

Tables:
  - content: the content catalog (one row per show)
  - users: the user ledger; attributed_show_id is NULL for organic users
  - analysis_runs: one row per persisted attribution run
  - show_financials, genre_financials: the per-run rollups
  - sweeps, sweep_rows: persisted sensitivity sweeps

seq preserves the order records were written in, so a dataset or sweep read
back from the store lists records in the same order as its source.

Ratios that are undefined (zero cost, zero users) are stored as NULL.
content and users carry no unique constraint because ReplaceDataset deletes
and reinserts them in one transaction; id uniqueness is enforced by dataset
validation before anything is written.
Columns added after the first release are also applied with
ADD COLUMN IF NOT EXISTS so existing database files pick them up.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS content (
		show_id VARCHAR NOT NULL,
		title VARCHAR NOT NULL DEFAULT '',
		genre VARCHAR NOT NULL,
		release_date DATE NOT NULL,
		production_cost DOUBLE NOT NULL,
		seq INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id VARCHAR NOT NULL,
		sign_up_date DATE NOT NULL,
		last_active_date DATE NOT NULL,
		monthly_revenue DOUBLE NOT NULL,
		attributed_show_id VARCHAR,
		seq INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS analysis_runs (
		run_id VARCHAR PRIMARY KEY,
		window_days INTEGER NOT NULL,
		generated_at TIMESTAMP NOT NULL,
		attributed_users INTEGER NOT NULL,
		preserved_users INTEGER NOT NULL,
		organic_users INTEGER NOT NULL,
		unresolved_users INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS show_financials (
		run_id VARCHAR NOT NULL,
		show_id VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		genre VARCHAR NOT NULL,
		attributed_users INTEGER NOT NULL,
		total_revenue DOUBLE NOT NULL,
		production_cost DOUBLE NOT NULL,
		roi DOUBLE,
		PRIMARY KEY (run_id, show_id)
	)`,

	`CREATE TABLE IF NOT EXISTS genre_financials (
		run_id VARCHAR NOT NULL,
		genre VARCHAR NOT NULL,
		total_revenue DOUBLE NOT NULL,
		total_production_cost DOUBLE NOT NULL,
		total_attributed_users INTEGER NOT NULL,
		cac_per_user DOUBLE,
		ltv_per_user DOUBLE,
		ltv_to_cac DOUBLE,
		PRIMARY KEY (run_id, genre)
	)`,

	`CREATE TABLE IF NOT EXISTS sweeps (
		sweep_id VARCHAR PRIMARY KEY,
		generated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sweep_rows (
		sweep_id VARCHAR NOT NULL,
		window_days INTEGER NOT NULL,
		genre VARCHAR NOT NULL,
		ltv_to_cac DOUBLE,
		seq INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (sweep_id, window_days, genre)
	)`,

	`ALTER TABLE sweep_rows ADD COLUMN IF NOT EXISTS seq INTEGER DEFAULT 0`,
}

// createIndexes creates secondary indexes for common lookups.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}
	return nil
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_content_release ON content(release_date)`,
	`CREATE INDEX IF NOT EXISTS idx_users_signup ON users(sign_up_date)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_generated ON analysis_runs(generated_at)`,
}
