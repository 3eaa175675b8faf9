// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

import (
	"context"
	"time"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/models"
)

// RunStore reads persisted analysis results. *database.DB implements it.
type RunStore interface {
	Ping(ctx context.Context) error
	LatestRuns(ctx context.Context, limit int) ([]models.AnalysisRun, error)
	GetRun(ctx context.Context, runID string) (*models.AnalysisRun, error)
	LoadSweep(ctx context.Context, sweepID string) ([]models.SweepRow, error)
}

// HandlerConfig carries the request defaults.
type HandlerConfig struct {
	Version           string
	DefaultWindowDays int
	SweepWindows      []int
	SweepGenres       []string
	TopN              int
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_analysis.go: analysis endpoints
//   - handlers_runs.go: persisted run and sweep endpoints
type Handler struct {
	engine    *analysis.Engine
	runs      RunStore
	cfg       HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler serving results from engine.
//
// Example:
//
//	handler := api.NewHandler(engine, api.HandlerConfig{DefaultWindowDays: 7, TopN: 5})
//	handler.SetRunStore(db)
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
//	http.ListenAndServe(":8421", router.SetupChi())
func NewHandler(engine *analysis.Engine, cfg HandlerConfig) *Handler {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// SetRunStore enables the persisted run endpoints and the database health
// check. Without a store those endpoints answer 503.
func (h *Handler) SetRunStore(store RunStore) {
	h.runs = store
}
