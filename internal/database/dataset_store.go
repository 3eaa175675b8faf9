// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/metrics"
	"github.com/tomtom215/contentroi/internal/models"
)

// ReplaceDataset atomically replaces the content and users tables with d.
func (db *DB) ReplaceDataset(ctx context.Context, d *dataset.Dataset) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("REPLACE", "dataset", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	for _, table := range []string{"users", "content"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = insertCatalog(ctx, tx, d.Catalog); err != nil {
		return err
	}
	if err = insertLedger(ctx, tx, d.Ledger); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	logging.Info().
		Int("content_items", len(d.Catalog)).
		Int("users", len(d.Ledger)).
		Dur("duration", time.Since(start)).
		Msg("Dataset written to DuckDB")
	return nil
}

func insertCatalog(ctx context.Context, tx *sql.Tx, catalog []models.ContentItem) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO content
		(show_id, title, genre, release_date, production_cost, seq)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare content insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range catalog {
		item := &catalog[i]
		if _, err := stmt.ExecContext(ctx, item.ID, item.Title, item.Genre, item.ReleaseTime, item.ProductionCost, i); err != nil {
			return fmt.Errorf("failed to insert content %s: %w", item.ID, err)
		}
	}
	return nil
}

func insertLedger(ctx context.Context, tx *sql.Tx, ledger []models.UserRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO users
		(user_id, sign_up_date, last_active_date, monthly_revenue, attributed_show_id, seq)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare users insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range ledger {
		u := &ledger[i]
		var attributed sql.NullString
		if !u.IsOrganic() {
			attributed = sql.NullString{String: u.AttributedContentID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, u.ID, u.SignupTime, u.LastActiveTime, u.MonthlyRevenue, attributed, i); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}
	return nil
}

// LoadCatalog reads the content table in insertion order.
func (db *DB) LoadCatalog(ctx context.Context) (catalog []models.ContentItem, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", "content", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `SELECT show_id, title, genre, release_date, production_cost
		FROM content ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer closeWithLog(rows, "rows")

	catalog = make([]models.ContentItem, 0)
	for rows.Next() {
		var item models.ContentItem
		if err = rows.Scan(&item.ID, &item.Title, &item.Genre, &item.ReleaseTime, &item.ProductionCost); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		item.ReleaseTime = item.ReleaseTime.UTC()
		catalog = append(catalog, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate content: %w", err)
	}
	return catalog, nil
}

// LoadLedger reads the users table in insertion order. Derived fields
// (lifetime months, LTV) are left zero.
func (db *DB) LoadLedger(ctx context.Context) (ledger []models.UserRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", "users", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `SELECT user_id, sign_up_date, last_active_date, monthly_revenue, attributed_show_id
		FROM users ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ledger = make([]models.UserRecord, 0)
	for rows.Next() {
		var (
			u          models.UserRecord
			attributed sql.NullString
		)
		if err = rows.Scan(&u.ID, &u.SignupTime, &u.LastActiveTime, &u.MonthlyRevenue, &attributed); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.SignupTime = u.SignupTime.UTC()
		u.LastActiveTime = u.LastActiveTime.UTC()
		u.AttributedContentID = attributed.String
		ledger = append(ledger, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return ledger, nil
}

// LoadDataset reads and validates the stored catalog and ledger.
func (db *DB) LoadDataset(ctx context.Context, opts dataset.LoadOptions) (*dataset.Dataset, error) {
	catalog, err := db.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := db.LoadLedger(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.New(catalog, ledger, dataset.SourceDuckDB, opts)
}

// DatasetCounts returns the number of stored content items and users.
func (db *DB) DatasetCounts(ctx context.Context) (contentItems, users int, err error) {
	row := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM content),
		(SELECT COUNT(*) FROM users)`)
	if err := row.Scan(&contentItems, &users); err != nil {
		return 0, 0, fmt.Errorf("failed to count dataset rows: %w", err)
	}
	return contentItems, users, nil
}
