// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/metrics"
)

// ErrNoDatasetStore is returned when the duckdb source is selected without a store.
var ErrNoDatasetStore = errors.New("duckdb dataset source requires a database")

// DatasetStore reads a validated dataset from persistent storage.
// Satisfied by *database.DB.
type DatasetStore interface {
	LoadDataset(ctx context.Context, opts dataset.LoadOptions) (*dataset.Dataset, error)
}

// SourceLoader loads the dataset from the configured source.
type SourceLoader struct {
	Source      string
	ContentPath string
	UsersPath   string
	Options     dataset.LoadOptions
	Store       DatasetStore
	Generator   dataset.GeneratorConfig
}

// Load reads the dataset and records the load in the dataset metrics.
func (l *SourceLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	start := time.Now()
	d, err := l.load(ctx)

	var contentItems, users int
	if d != nil {
		contentItems, users = len(d.Catalog), len(d.Ledger)
	}
	metrics.RecordDatasetLoad(l.Source, time.Since(start), contentItems, users, err)
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", l.Source, err)
	}

	logging.Ctx(ctx).Debug().
		Str("source", l.Source).
		Int("content_items", len(d.Catalog)).
		Int("users", len(d.Ledger)).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")
	return d, nil
}

func (l *SourceLoader) load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch l.Source {
	case dataset.SourceCSV:
		return dataset.LoadFiles(l.ContentPath, l.UsersPath, l.Options)
	case dataset.SourceDuckDB:
		if l.Store == nil {
			return nil, ErrNoDatasetStore
		}
		return l.Store.LoadDataset(ctx, l.Options)
	case dataset.SourceGenerated:
		return dataset.Generate(l.Generator)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", l.Source)
	}
}
