// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/contentroi/internal/attribution"
	"github.com/tomtom215/contentroi/internal/cache"
	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/financials"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/metrics"
	"github.com/tomtom215/contentroi/internal/models"
	"github.com/tomtom215/contentroi/internal/sweep"
)

// Cache type labels used in metrics.
const (
	cacheTypeAnalysis = "analysis"
	cacheTypeSweep    = "sweep"
)

// DefaultCacheTTL is used when Options.CacheTTL is not positive.
const DefaultCacheTTL = 5 * time.Minute

// ErrNoDataset is returned when the engine has no dataset loaded.
var ErrNoDataset = errors.New("no dataset loaded")

// ResultStore persists analysis output. *database.DB implements it.
type ResultStore interface {
	SaveRun(ctx context.Context, run *models.AnalysisRun) error
	SaveSweep(ctx context.Context, sweepID string, generatedAt time.Time, rows []models.SweepRow) error
}

// Options configures an Engine.
type Options struct {
	Churn       financials.ChurnPolicy
	MaxParallel int
	CacheTTL    time.Duration
	// Store is optional.
	Store ResultStore
}

// snapshot is the dataset state a single computation works against.
type snapshot struct {
	data    *dataset.Dataset
	index   *attribution.Index
	sweeper *sweep.Sweeper
	version uint64
}

// Engine runs analyses over the current dataset.
type Engine struct {
	mu      sync.RWMutex
	current snapshot

	opts    Options
	results *cache.Cache[*Result]
	sweeps  *cache.Cache[*SweepResult]
	logger  zerolog.Logger
}

// New creates an engine over d. d may be nil until the first Replace.
func New(d *dataset.Dataset, opts Options) *Engine {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	e := &Engine{
		opts:    opts,
		results: cache.New[*Result](opts.CacheTTL),
		sweeps:  cache.New[*SweepResult](opts.CacheTTL),
		logger:  logging.WithComponent("analysis"),
	}
	if d != nil {
		e.current = e.newSnapshot(d, 1)
	}
	return e
}

func (e *Engine) newSnapshot(d *dataset.Dataset, version uint64) snapshot {
	idx := attribution.NewIndex(d.Catalog)
	return snapshot{
		data:    d,
		index:   idx,
		sweeper: sweep.New(d.Catalog, sweep.WithIndex(idx), sweep.WithMaxParallel(e.opts.MaxParallel)),
		version: version,
	}
}

// Close releases the result caches.
func (e *Engine) Close() {
	e.results.Close()
	e.sweeps.Close()
}

// Replace swaps in a new dataset and drops every cached result.
// Computations already running finish against the previous dataset.
func (e *Engine) Replace(d *dataset.Dataset) {
	e.mu.Lock()
	e.current = e.newSnapshot(d, e.current.version+1)
	version := e.current.version
	e.mu.Unlock()

	e.results.Clear()
	e.sweeps.Clear()
	metrics.SetCacheSize(cacheTypeAnalysis, 0)
	metrics.SetCacheSize(cacheTypeSweep, 0)

	e.logger.Info().
		Uint64("version", version).
		Str("source", d.Source).
		Int("content_items", len(d.Catalog)).
		Int("users", len(d.Ledger)).
		Msg("Dataset replaced")
}

func (e *Engine) snapshot() (snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current.data == nil {
		return snapshot{}, ErrNoDataset
	}
	return e.current, nil
}

// Stats describes the loaded dataset. It returns ErrNoDataset before the
// first dataset is loaded.
func (e *Engine) Stats() (models.DatasetStats, error) {
	snap, err := e.snapshot()
	if err != nil {
		return models.DatasetStats{}, err
	}
	stats := snap.data.Stats()
	stats.Version = snap.version
	return stats, nil
}

// Dataset returns the loaded dataset, or nil.
func (e *Engine) Dataset() *dataset.Dataset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.data
}

// recordCache updates the cache metrics after a lookup.
func recordCache(cacheType string, cached bool, entries int) {
	if cached {
		metrics.RecordCacheHit(cacheType)
	} else {
		metrics.RecordCacheMiss(cacheType)
	}
	metrics.SetCacheSize(cacheType, entries)
}
