// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package sweep measures how per-genre LTV:CAC responds to the attribution
// window.
//
// Every window is attributed from scratch against the original ledger;
// results from one window never feed another. Windows are evaluated
// concurrently, each into its own result slot, and the output is ordered by
// window ascending and then by the requested genre order, so repeated sweeps
// over the same inputs return identical rows.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/contentroi/internal/attribution"
	"github.com/tomtom215/contentroi/internal/financials"
	"github.com/tomtom215/contentroi/internal/ltv"
	"github.com/tomtom215/contentroi/internal/models"
)

// Sweeper runs sensitivity sweeps over a fixed catalog.
type Sweeper struct {
	catalog     []models.ContentItem
	index       *attribution.Index
	maxParallel int
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithMaxParallel bounds the number of windows evaluated at once.
// Values <= 0 use runtime.NumCPU().
func WithMaxParallel(n int) Option {
	return func(s *Sweeper) {
		s.maxParallel = n
	}
}

// WithIndex reuses an existing attribution index for the catalog.
func WithIndex(idx *attribution.Index) Option {
	return func(s *Sweeper) {
		s.index = idx
	}
}

// New creates a Sweeper for the catalog.
func New(catalog []models.ContentItem, opts ...Option) *Sweeper {
	s := &Sweeper{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.index == nil {
		s.index = attribution.NewIndex(catalog)
	}
	if s.maxParallel <= 0 {
		s.maxParallel = runtime.NumCPU()
	}
	return s
}

// NormalizeWindows validates windows and returns them deduplicated and
// sorted ascending.
func NormalizeWindows(windows []int) ([]int, error) {
	seen := make(map[int]struct{}, len(windows))
	out := make([]int, 0, len(windows))
	for _, w := range windows {
		if err := attribution.ValidateWindow(w); err != nil {
			return nil, err
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Ints(out)
	return out, nil
}

// Genres returns the distinct catalog genres sorted by name.
func Genres(catalog []models.ContentItem) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range catalog {
		if _, ok := seen[catalog[i].Genre]; ok {
			continue
		}
		seen[catalog[i].Genre] = struct{}{}
		out = append(out, catalog[i].Genre)
	}
	sort.Strings(out)
	return out
}

// Run evaluates every window against ledger and reports LTV:CAC for each
// requested genre. An empty genre list selects every catalog genre. A genre
// without attributed users at some window gets an undefined ratio.
func (s *Sweeper) Run(ctx context.Context, ledger []models.UserRecord, windows []int, genres []string) ([]models.SweepRow, error) {
	windows, err := NormalizeWindows(windows)
	if err != nil {
		return nil, err
	}
	if len(genres) == 0 {
		genres = Genres(s.catalog)
	}

	slots := make([][]models.SweepRow, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)
	for i, window := range windows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := s.point(ledger, window, genres)
			if err != nil {
				return fmt.Errorf("window %d: %w", window, err)
			}
			slots[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.SweepRow, 0, len(windows)*len(genres))
	for _, rows := range slots {
		out = append(out, rows...)
	}
	return out, nil
}

// point computes one window's rows from the untouched ledger.
func (s *Sweeper) point(ledger []models.UserRecord, window int, genres []string) ([]models.SweepRow, error) {
	resolved, _, err := s.index.Resolve(ledger, window)
	if err != nil {
		return nil, err
	}
	byGenre := financials.AggregateByGenre(ltv.Compute(resolved), s.catalog)

	rows := make([]models.SweepRow, len(genres))
	for i, genre := range genres {
		rows[i] = models.SweepRow{WindowDays: window, Genre: genre}
		if gf, ok := financials.FindGenre(byGenre, genre); ok {
			rows[i].LTVToCAC = gf.LTVToCAC
		}
	}
	return rows, nil
}

// Sweep is a convenience wrapper around New(catalog).Run.
func Sweep(ctx context.Context, catalog []models.ContentItem, ledger []models.UserRecord, windows []int, genres []string) ([]models.SweepRow, error) {
	return New(catalog).Run(ctx, ledger, windows, genres)
}
