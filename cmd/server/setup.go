// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/api"
	"github.com/tomtom215/contentroi/internal/config"
	"github.com/tomtom215/contentroi/internal/database"
	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/financials"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/supervisor/services"
)

// needsDatabase reports whether DuckDB has to be opened.
func needsDatabase(cfg *config.Config) bool {
	return cfg.Dataset.Source == config.SourceDuckDB || cfg.Database.PersistResults
}

func generatorConfig(cfg *config.Config) dataset.GeneratorConfig {
	gen := dataset.DefaultGeneratorConfig()
	gen.Seed = cfg.Dataset.MockSeed
	gen.Shows = cfg.Dataset.MockShows
	gen.Users = cfg.Dataset.MockUsers
	return gen
}

// openDatabase opens DuckDB and seeds it when SEED_MOCK_DATA is set.
func openDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Dataset.SeedMockData {
		seeded, err := db.SeedIfEmpty(ctx, generatorConfig(cfg))
		if err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			return nil, fmt.Errorf("failed to seed mock data: %w", err)
		}
		logging.Info().Bool("seeded", seeded).Msg("Mock data seeding checked (SEED_MOCK_DATA=true)")
	}

	logging.Info().Str("path", cfg.Database.Path).Bool("persist_results", cfg.Database.PersistResults).
		Msg("Database initialized successfully")
	return db, nil
}

// newSourceLoader builds the loader for the configured dataset source. db may be nil.
func newSourceLoader(cfg *config.Config, db *database.DB) *services.SourceLoader {
	loader := &services.SourceLoader{
		Source:      cfg.Dataset.Source,
		ContentPath: cfg.Dataset.ContentPath,
		UsersPath:   cfg.Dataset.UsersPath,
		Options:     dataset.LoadOptions{AllErrors: cfg.Dataset.StrictAllErrors},
		Generator:   generatorConfig(cfg),
	}
	if db != nil {
		loader.Store = db
	}
	return loader
}

// engineOptions maps configuration onto analysis options. db may be nil.
func engineOptions(cfg *config.Config, db *database.DB) (analysis.Options, error) {
	asOf, err := cfg.Analysis.AsOf()
	if err != nil {
		return analysis.Options{}, err
	}
	opts := analysis.Options{
		Churn:       financials.ChurnPolicy{AsOf: asOf, InactiveDays: cfg.Analysis.ChurnAfterDays},
		MaxParallel: cfg.Analysis.MaxParallel,
		CacheTTL:    cfg.Cache.TTL,
	}
	if db != nil && cfg.Database.PersistResults {
		opts.Store = db
	}
	return opts, nil
}

func handlerConfig(cfg *config.Config, version string) api.HandlerConfig {
	return api.HandlerConfig{
		Version:           version,
		DefaultWindowDays: cfg.Analysis.DefaultWindowDays,
		SweepWindows:      cfg.Analysis.SweepWindows,
		SweepGenres:       cfg.Analysis.SweepGenres,
		TopN:              cfg.Analysis.TopN,
	}
}

func refreshConfig(cfg *config.Config) services.RefreshServiceConfig {
	return services.RefreshServiceConfig{
		Interval:    cfg.Refresh.Interval,
		WarmWindows: []int{cfg.Analysis.DefaultWindowDays},
	}
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}
}
