// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package analysis runs the attribution pipeline over the loaded dataset and
// caches the results.
//
// An Engine owns one immutable dataset at a time. Run resolves last-touch
// attribution for a window, computes LTV, aggregates per-show and per-genre
// financials and enriches the ledger. Sweep evaluates LTV:CAC across several
// windows. Both are cached per dataset version; Replace swaps the dataset and
// invalidates every cached result.
//
// Usage:
//
//	engine := analysis.New(d, analysis.Options{
//	    Churn:       financials.ChurnPolicy{AsOf: asOf, InactiveDays: 30},
//	    MaxParallel: 4,
//	    CacheTTL:    5 * time.Minute,
//	})
//	defer engine.Close()
//
//	res, cached, err := engine.Run(ctx, 7)
//
// When Options.Store is set every freshly computed run and sweep is
// persisted. Persistence failures are logged and do not fail the analysis.
package analysis
