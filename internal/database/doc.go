// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package database persists datasets and analysis results in DuckDB.
//
// # Overview
//
// DuckDB is an optional backing store. When the dataset source is "duckdb"
// the content catalog and subscriber ledger are read from the content and
// users tables; when result persistence is enabled every analysis run and
// sweep is written so that historical results can be compared.
//
// # Files
//
//   - database.go: connection lifecycle and pool configuration
//   - database_schema.go: table and index creation
//   - dataset_store.go: catalog and ledger replace/load
//   - results.go: analysis run and sweep persistence
//   - seed.go: first-start seeding from the synthetic generator
//   - errors.go: transaction and close helpers
//
// # Schema
//
// Undefined ratios (ROI when cost is zero, CAC when a genre has no
// attributed users) are stored as NULL and read back as undefined. The
// content and users tables carry a seq column so that a round trip keeps
// the original record order, which attribution tie-breaking does not
// depend on but CSV export does.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if _, err := db.SeedIfEmpty(ctx, dataset.DefaultGeneratorConfig()); err != nil {
//	    return err
//	}
//	d, err := db.LoadDataset(ctx, dataset.LoadOptions{})
//
// # Thread Safety
//
// DB is safe for concurrent use. An in-memory database is limited to a
// single connection so every caller sees the same data.
package database
