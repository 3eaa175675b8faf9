// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package supervisor provides process supervision for ContentROI using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("contentroi")
	├── DataSupervisor ("data-layer")
	│   └── RefreshService (if REFRESH_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing dataset refresh restarts inside the data layer and never takes the
HTTP server down; the API keeps answering from the last good dataset.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	tree.AddDataService(services.NewRefreshService(loader, engine, refreshCfg, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Configuration

TreeConfig controls restart behavior. Zero fields take suture's defaults:
FailureThreshold 5, FailureDecay 30 seconds, FailureBackoff 15 seconds and a
10 second per-service shutdown timeout.

# What Is NOT Supervised

DuckDB is an embedded library, not a service; its connection pool lives in
the database package and is closed by main after the tree stops.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logger.Warn("service did not stop", "service", svc.Name)
	}
*/
package supervisor
