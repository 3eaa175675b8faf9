// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/api"
	"github.com/tomtom215/contentroi/internal/config"
	"github.com/tomtom215/contentroi/internal/database"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/metrics"
	"github.com/tomtom215/contentroi/internal/supervisor"
	"github.com/tomtom215/contentroi/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version, runtime.Version())

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("ContentROI stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("dataset_source", cfg.Dataset.Source).
		Int("default_window_days", cfg.Analysis.DefaultWindowDays).
		Bool("refresh_enabled", cfg.Refresh.Enabled).
		Msg("Starting ContentROI with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *database.DB
	if needsDatabase(cfg) {
		var err error
		if db, err = openDatabase(ctx, cfg); err != nil {
			return err
		}
		defer closeDatabase(db)
	}

	loader := newSourceLoader(cfg, db)
	d, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	opts, err := engineOptions(cfg, db)
	if err != nil {
		return err
	}
	engine := analysis.New(d, opts)
	defer engine.Close()

	stats, _ := engine.Stats()
	logging.Info().
		Str("source", stats.Source).
		Int("content_items", stats.ContentItems).
		Int("users", stats.Users).
		Strs("genres", stats.Genres).
		Msg("Dataset loaded")

	handler := api.NewHandler(engine, handlerConfig(cfg, version))
	if db != nil {
		handler.SetRunStore(db)
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	server := newHTTPServer(cfg, router.SetupChi())

	// Bridges zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	if cfg.Refresh.Enabled {
		tree.AddDataService(services.NewRefreshService(loader, engine, refreshConfig(cfg), logging.WithComponent("refresh")))
		logging.Info().Dur("interval", cfg.Refresh.Interval).Msg("Dataset refresh service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

func closeDatabase(db *database.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Database checkpoint failed")
	}
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}
