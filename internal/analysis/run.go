// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package analysis

import (
	"context"
	"time"

	"github.com/tomtom215/contentroi/internal/attribution"
	"github.com/tomtom215/contentroi/internal/cache"
	"github.com/tomtom215/contentroi/internal/financials"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/ltv"
	"github.com/tomtom215/contentroi/internal/metrics"
	"github.com/tomtom215/contentroi/internal/models"
)

// Result is the complete output of one analysis run.
type Result struct {
	Run models.AnalysisRun
	// Ledger is the resolved ledger with lifetime months and LTV filled in.
	Ledger   []models.UserRecord
	Enriched []models.EnrichedUser
	GenreLTV []models.GenreLTV
	// UnresolvedIDs lists content ids referenced by users but missing from
	// the catalog.
	UnresolvedIDs  []string
	DatasetVersion uint64
	Duration       time.Duration
}

// Summary computes the dashboard summary for genre, or for all users when
// genre is empty.
func (r *Result) Summary(genre string) models.Summary {
	return financials.Summarize(r.Enriched, r.Run.WindowDays, genre)
}

type runKey struct {
	Version    uint64 `json:"version"`
	WindowDays int    `json:"window_days"`
}

// Run analyzes the dataset with the given attribution window. The boolean
// reports whether the result came from the cache.
//
// Concurrent calls for the same window share one computation, which runs to
// completion even if the caller that started it goes away.
func (e *Engine) Run(ctx context.Context, windowDays int) (*Result, bool, error) {
	if err := attribution.ValidateWindow(windowDays); err != nil {
		return nil, false, err
	}
	snap, err := e.snapshot()
	if err != nil {
		return nil, false, err
	}

	key := cache.GenerateKey("run", runKey{Version: snap.version, WindowDays: windowDays})
	res, cached, err := e.results.GetOrLoad(key, func() (*Result, error) {
		return e.compute(context.WithoutCancel(ctx), snap, windowDays)
	})
	recordCache(cacheTypeAnalysis, cached, e.results.Len())
	if err != nil {
		return nil, false, err
	}
	return res, cached, nil
}

func (e *Engine) compute(ctx context.Context, snap snapshot, windowDays int) (*Result, error) {
	start := time.Now()
	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)

	resolved, stats, err := snap.index.Resolve(snap.data.Ledger, windowDays)
	if err != nil {
		return nil, err
	}
	ledger := ltv.Compute(resolved)
	report := financials.Aggregate(ledger, snap.data.Catalog)
	enriched := financials.Enrich(ledger, snap.data.Catalog, e.opts.Churn)

	res := &Result{
		Run: models.AnalysisRun{
			RunID:           runID,
			WindowDays:      windowDays,
			GeneratedAt:     time.Now().UTC(),
			AttributedUsers: stats.Attributed,
			PreservedUsers:  stats.Preserved,
			OrganicUsers:    stats.Organic,
			UnresolvedUsers: report.UnresolvedUsers,
			Shows:           report.Shows,
			Genres:          report.Genres,
		},
		Ledger:         ledger,
		Enriched:       enriched,
		GenreLTV:       financials.LTVByGenre(enriched),
		UnresolvedIDs:  report.UnresolvedIDs,
		DatasetVersion: snap.version,
	}
	res.Duration = time.Since(start)

	if report.UnresolvedUsers > 0 {
		logging.Ctx(ctx).Warn().
			Int("users", report.UnresolvedUsers).
			Strs("content_ids", report.UnresolvedIDs).
			Msg("Attributions reference content missing from the catalog; excluded from rollups")
	}

	metrics.RecordAttributionRun(windowDays, res.Duration, metrics.RunCounts{
		Attributed: stats.Attributed,
		Preserved:  stats.Preserved,
		Organic:    stats.Organic,
		Unresolved: report.UnresolvedUsers,
	})

	logging.Ctx(ctx).Info().
		Int("window_days", windowDays).
		Int("attributed", stats.Attributed).
		Int("preserved", stats.Preserved).
		Int("organic", stats.Organic).
		Int("shows", len(report.Shows)).
		Dur("duration", res.Duration).
		Msg("Analysis run complete")

	if e.opts.Store != nil {
		if err := e.opts.Store.SaveRun(ctx, &res.Run); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to persist analysis run")
		}
	}
	return res, nil
}
