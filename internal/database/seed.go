// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/logging"
)

// SeedIfEmpty writes a generated dataset when the content and users tables
// are both empty. It reports whether seeding happened. Existing data is never
// overwritten.
func (db *DB) SeedIfEmpty(ctx context.Context, cfg dataset.GeneratorConfig) (bool, error) {
	contentItems, users, err := db.DatasetCounts(ctx)
	if err != nil {
		return false, err
	}
	if contentItems > 0 || users > 0 {
		logging.Debug().
			Int("content_items", contentItems).
			Int("users", users).
			Msg("DuckDB already holds a dataset, skipping seed")
		return false, nil
	}

	logging.Info().Uint64("seed", cfg.Seed).Int("shows", cfg.Shows).Int("users", cfg.Users).
		Msg("Seeding DuckDB with generated dataset...")

	d, err := dataset.Generate(cfg)
	if err != nil {
		return false, fmt.Errorf("failed to generate seed dataset: %w", err)
	}
	if err := db.ReplaceDataset(ctx, d); err != nil {
		return false, fmt.Errorf("failed to write seed dataset: %w", err)
	}
	return true, nil
}
