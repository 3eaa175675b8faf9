// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/logging"
)

// DefaultRefreshInterval is used when RefreshServiceConfig.Interval is not positive.
const DefaultRefreshInterval = 15 * time.Minute

// refreshTimeout bounds one load-and-warm cycle.
const refreshTimeout = 5 * time.Minute

// DatasetLoader produces a fresh dataset. *SourceLoader satisfies it.
type DatasetLoader interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// AnalysisEngine is the part of *analysis.Engine the refresh service drives.
type AnalysisEngine interface {
	Replace(d *dataset.Dataset)
	Run(ctx context.Context, windowDays int) (*analysis.Result, bool, error)
}

// RefreshServiceConfig holds configuration for the refresh service.
type RefreshServiceConfig struct {
	// Interval between reloads.
	Interval time.Duration

	// WarmWindows are analysed right after each swap so the cache is hot and,
	// when persistence is on, a run is recorded per refresh.
	WarmWindows []int
}

// RefreshService periodically reloads the dataset and swaps it into the engine.
//
// A failed load is logged and the engine keeps serving the previous dataset;
// the service itself only stops when its context is canceled.
type RefreshService struct {
	loader  DatasetLoader
	engine  AnalysisEngine
	config  RefreshServiceConfig
	trigger chan struct{}
	logger  zerolog.Logger
	name    string
}

// NewRefreshService creates a refresh service.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout the codebase
func NewRefreshService(loader DatasetLoader, engine AnalysisEngine, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}
	return &RefreshService{
		loader:  loader,
		engine:  engine,
		config:  cfg,
		trigger: make(chan struct{}, 1),
		logger:  logger.With().Str("service", "dataset-refresh").Logger(),
		name:    "dataset-refresh",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Ints("warm_windows", s.config.WarmWindows).
		Msg("Dataset refresh service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Dataset refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.logger.Debug().Msg("Scheduled dataset refresh triggered")
			s.Refresh(ctx)
		case <-s.trigger:
			s.logger.Debug().Msg("Manual dataset refresh triggered")
			s.Refresh(ctx)
		}
	}
}

// RefreshNow asks a running service to refresh at its next opportunity.
// Requests made while one is already pending are coalesced.
func (s *RefreshService) RefreshNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Refresh performs one reload cycle and reports whether the dataset was swapped.
func (s *RefreshService) Refresh(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()
	ctx = logging.ContextWithNewCorrelationID(ctx)

	start := time.Now()
	d, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Dataset refresh failed, keeping current dataset")
		return false
	}

	s.engine.Replace(d)

	for _, window := range s.config.WarmWindows {
		if _, _, err := s.engine.Run(ctx, window); err != nil {
			s.logger.Warn().Err(err).Int("window_days", window).Msg("Cache warm-up run failed")
		}
	}

	s.logger.Info().
		Str("source", d.Source).
		Int("content_items", len(d.Catalog)).
		Int("users", len(d.Ledger)).
		Dur("duration", time.Since(start)).
		Msg("Dataset refreshed")
	return true
}

// String names the service in suture events.
func (s *RefreshService) String() string {
	return s.name
}
