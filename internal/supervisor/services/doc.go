// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package services provides suture.Service wrappers for ContentROI components.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the ListenAndServe pattern to Serve

Dataset Refresh (RefreshService):
  - Reloads the dataset from the configured source on an interval
  - Swaps it into the analysis engine, which invalidates cached results
  - Optionally re-runs warm-up windows so persisted runs track each refresh

SourceLoader reads the dataset from CSV files, the DuckDB store or the
synthetic generator and is shared by startup and the refresh service.

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

A failed dataset refresh is not a crash: it is logged and the previous
dataset keeps serving.
*/
package services
