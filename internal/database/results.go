// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/metrics"
	"github.com/tomtom215/contentroi/internal/models"
)

// ratioArg binds an undefined ratio as NULL.
func ratioArg(r models.Ratio) sql.NullFloat64 {
	return sql.NullFloat64{Float64: r.Value, Valid: r.Valid}
}

func ratioFromNull(n sql.NullFloat64) models.Ratio {
	if !n.Valid {
		return models.Undefined()
	}
	return models.Defined(n.Float64)
}

// SaveRun persists a run header together with its show and genre rollups.
func (db *DB) SaveRun(ctx context.Context, run *models.AnalysisRun) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("INSERT", "analysis_runs", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	if _, err = tx.ExecContext(ctx, `INSERT INTO analysis_runs
		(run_id, window_days, generated_at, attributed_users, preserved_users, organic_users, unresolved_users)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.WindowDays, run.GeneratedAt.UTC(),
		run.AttributedUsers, run.PreservedUsers, run.OrganicUsers, run.UnresolvedUsers); err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	if err = insertShowFinancials(ctx, tx, run.RunID, run.Shows); err != nil {
		return err
	}
	if err = insertGenreFinancials(ctx, tx, run.RunID, run.Genres); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis run: %w", err)
	}

	logging.Ctx(ctx).Debug().
		Str("run_id", run.RunID).
		Int("shows", len(run.Shows)).
		Int("genres", len(run.Genres)).
		Msg("Analysis run persisted")
	return nil
}

func insertShowFinancials(ctx context.Context, tx *sql.Tx, runID string, shows []models.ShowFinancials) error {
	if len(shows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO show_financials
		(run_id, show_id, title, genre, attributed_users, total_revenue, production_cost, roi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare show_financials insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range shows {
		s := &shows[i]
		if _, err := stmt.ExecContext(ctx, runID, s.ContentID, s.Title, s.Genre,
			s.AttributedUserCount, s.TotalRevenue, s.ProductionCost, ratioArg(s.ROI)); err != nil {
			return fmt.Errorf("failed to insert show financials %s: %w", s.ContentID, err)
		}
	}
	return nil
}

func insertGenreFinancials(ctx context.Context, tx *sql.Tx, runID string, genres []models.GenreFinancials) error {
	if len(genres) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO genre_financials
		(run_id, genre, total_revenue, total_production_cost, total_attributed_users, cac_per_user, ltv_per_user, ltv_to_cac)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare genre_financials insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range genres {
		g := &genres[i]
		if _, err := stmt.ExecContext(ctx, runID, g.Genre, g.TotalRevenue, g.TotalProductionCost,
			g.TotalAttributedUsers, ratioArg(g.CACPerUser), ratioArg(g.LTVPerUser), ratioArg(g.LTVToCAC)); err != nil {
			return fmt.Errorf("failed to insert genre financials %s: %w", g.Genre, err)
		}
	}
	return nil
}

// LatestRuns returns up to limit run headers, newest first. Shows and
// genres are not loaded; use GetRun for the full record.
func (db *DB) LatestRuns(ctx context.Context, limit int) (runs []models.AnalysisRun, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("SELECT", "analysis_runs", time.Since(start), err) }()

	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.QueryContext(ctx, `SELECT run_id, window_days, generated_at,
		attributed_users, preserved_users, organic_users, unresolved_users
		FROM analysis_runs ORDER BY generated_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer closeWithLog(rows, "rows")

	runs = make([]models.AnalysisRun, 0)
	for rows.Next() {
		var r models.AnalysisRun
		if err = rows.Scan(&r.RunID, &r.WindowDays, &r.GeneratedAt,
			&r.AttributedUsers, &r.PreservedUsers, &r.OrganicUsers, &r.UnresolvedUsers); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		r.GeneratedAt = r.GeneratedAt.UTC()
		runs = append(runs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run with its show and genre rollups. It returns
// ErrRunNotFound for an unknown id.
func (db *DB) GetRun(ctx context.Context, runID string) (*models.AnalysisRun, error) {
	var r models.AnalysisRun
	err := db.conn.QueryRowContext(ctx, `SELECT run_id, window_days, generated_at,
		attributed_users, preserved_users, organic_users, unresolved_users
		FROM analysis_runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.WindowDays, &r.GeneratedAt,
			&r.AttributedUsers, &r.PreservedUsers, &r.OrganicUsers, &r.UnresolvedUsers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis run %s: %w", runID, err)
	}
	r.GeneratedAt = r.GeneratedAt.UTC()

	if r.Shows, err = db.runShows(ctx, runID); err != nil {
		return nil, err
	}
	if r.Genres, err = db.runGenres(ctx, runID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *DB) runShows(ctx context.Context, runID string) ([]models.ShowFinancials, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT show_id, title, genre, attributed_users,
		total_revenue, production_cost, roi
		FROM show_financials WHERE run_id = ? ORDER BY show_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query show financials: %w", err)
	}
	defer closeWithLog(rows, "rows")

	shows := make([]models.ShowFinancials, 0)
	for rows.Next() {
		var (
			s   models.ShowFinancials
			roi sql.NullFloat64
		)
		if err := rows.Scan(&s.ContentID, &s.Title, &s.Genre, &s.AttributedUserCount,
			&s.TotalRevenue, &s.ProductionCost, &roi); err != nil {
			return nil, fmt.Errorf("failed to scan show financials: %w", err)
		}
		s.ROI = ratioFromNull(roi)
		shows = append(shows, s)
	}
	return shows, rows.Err()
}

func (db *DB) runGenres(ctx context.Context, runID string) ([]models.GenreFinancials, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT genre, total_revenue, total_production_cost,
		total_attributed_users, cac_per_user, ltv_per_user, ltv_to_cac
		FROM genre_financials WHERE run_id = ? ORDER BY genre`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query genre financials: %w", err)
	}
	defer closeWithLog(rows, "rows")

	genres := make([]models.GenreFinancials, 0)
	for rows.Next() {
		var (
			g             models.GenreFinancials
			cac, ltv, rat sql.NullFloat64
		)
		if err := rows.Scan(&g.Genre, &g.TotalRevenue, &g.TotalProductionCost,
			&g.TotalAttributedUsers, &cac, &ltv, &rat); err != nil {
			return nil, fmt.Errorf("failed to scan genre financials: %w", err)
		}
		g.CACPerUser = ratioFromNull(cac)
		g.LTVPerUser = ratioFromNull(ltv)
		g.LTVToCAC = ratioFromNull(rat)
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// SaveSweep persists one sweep grid under sweepID.
func (db *DB) SaveSweep(ctx context.Context, sweepID string, generatedAt time.Time, rows []models.SweepRow) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("INSERT", "sweep_rows", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	if _, err = tx.ExecContext(ctx, `INSERT INTO sweeps (sweep_id, generated_at) VALUES (?, ?)`,
		sweepID, generatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert sweep: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sweep_rows (sweep_id, window_days, genre, ltv_to_cac, seq) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sweep_rows insert: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := range rows {
		if _, err = stmt.ExecContext(ctx, sweepID, rows[i].WindowDays, rows[i].Genre, ratioArg(rows[i].LTVToCAC), i); err != nil {
			return fmt.Errorf("failed to insert sweep row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sweep: %w", err)
	}
	return nil
}

// LoadSweep returns the rows of a persisted sweep in the order they were saved.
func (db *DB) LoadSweep(ctx context.Context, sweepID string) ([]models.SweepRow, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT window_days, genre, ltv_to_cac
		FROM sweep_rows WHERE sweep_id = ? ORDER BY seq, window_days, genre`, sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep rows: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.SweepRow, 0)
	for rows.Next() {
		var (
			r     models.SweepRow
			ratio sql.NullFloat64
		)
		if err := rows.Scan(&r.WindowDays, &r.Genre, &ratio); err != nil {
			return nil, fmt.Errorf("failed to scan sweep row: %w", err)
		}
		r.LTVToCAC = ratioFromNull(ratio)
		out = append(out, r)
	}
	return out, rows.Err()
}
