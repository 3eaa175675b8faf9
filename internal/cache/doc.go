// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package cache provides a thread-safe, typed in-memory cache with TTL support.

The analysis engine caches one result per attribution window and one sweep
grid per (windows, genres) request. Every cache is cleared when the dataset
is replaced, so a stale entry can only outlive its data by the TTL when the
dataset itself has not changed.

# Usage

	results := cache.New[*analysis.Result](5 * time.Minute)
	defer results.Close()

	key := cache.GenerateKey("run", map[string]int{"window_days": 7})
	res, cached, err := results.GetOrLoad(key, func() (*analysis.Result, error) {
	    return engine.compute(ctx, 7)
	})

GenerateKey hashes JSON-encoded parameters (goccy/go-json) with SHA-256, so
structurally equal parameter values map to the same key.
*/
package cache
