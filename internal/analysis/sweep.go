// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/contentroi/internal/cache"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/metrics"
	"github.com/tomtom215/contentroi/internal/models"
	"github.com/tomtom215/contentroi/internal/sweep"
)

// SweepResult is one window sensitivity sweep.
type SweepResult struct {
	SweepID     string            `json:"sweep_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Windows     []int             `json:"windows"`
	Genres      []string          `json:"genres"`
	Rows        []models.SweepRow `json:"rows"`
	Duration    time.Duration     `json:"-"`
}

type sweepKey struct {
	Version uint64   `json:"version"`
	Windows []int    `json:"windows"`
	Genres  []string `json:"genres"`
}

// Sweep computes LTV:CAC for each genre at each window. Windows are
// deduplicated and sorted before evaluation; an empty genre list selects
// every catalog genre. The boolean reports whether the result was cached.
func (e *Engine) Sweep(ctx context.Context, windows []int, genres []string) (*SweepResult, bool, error) {
	windows, err := sweep.NormalizeWindows(windows)
	if err != nil {
		return nil, false, err
	}
	snap, err := e.snapshot()
	if err != nil {
		return nil, false, err
	}
	if len(genres) == 0 {
		genres = snap.data.Genres()
	}

	key := cache.GenerateKey("sweep", sweepKey{Version: snap.version, Windows: windows, Genres: genres})
	res, cached, err := e.sweeps.GetOrLoad(key, func() (*SweepResult, error) {
		return e.computeSweep(context.WithoutCancel(ctx), snap, windows, genres)
	})
	recordCache(cacheTypeSweep, cached, e.sweeps.Len())
	if err != nil {
		return nil, false, err
	}
	return res, cached, nil
}

func (e *Engine) computeSweep(ctx context.Context, snap snapshot, windows []int, genres []string) (*SweepResult, error) {
	start := time.Now()
	rows, err := snap.sweeper.Run(ctx, snap.data.Ledger, windows, genres)
	duration := time.Since(start)
	metrics.RecordSweep(duration, len(rows), err)
	if err != nil {
		return nil, err
	}

	res := &SweepResult{
		SweepID:     uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Windows:     windows,
		Genres:      genres,
		Rows:        rows,
		Duration:    duration,
	}

	logging.Ctx(ctx).Info().
		Str("sweep_id", res.SweepID).
		Ints("windows", windows).
		Strs("genres", genres).
		Int("points", len(rows)).
		Dur("duration", duration).
		Msg("Sensitivity sweep complete")

	if e.opts.Store != nil {
		if err := e.opts.Store.SaveSweep(ctx, res.SweepID, res.GeneratedAt, res.Rows); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("sweep_id", res.SweepID).Msg("Failed to persist sweep")
		}
	}
	return res, nil
}
