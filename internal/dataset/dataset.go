// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package dataset loads, validates and generates the content catalog and user
// ledger the analysis runs over.
//
// Every record passes through the same validation regardless of where it came
// from (CSV files, the DuckDB store or the synthetic generator). A record that
// violates a structural rule is rejected with a *RecordError wrapping
// ErrMalformedRecord; nothing is coerced or silently dropped.
package dataset

import (
	"sort"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
	"github.com/tomtom215/contentroi/internal/validation"
)

// Dataset source names.
const (
	SourceCSV       = "csv"
	SourceDuckDB    = "duckdb"
	SourceGenerated = "generated"
)

// LoadOptions controls validation behavior.
type LoadOptions struct {
	// AllErrors reports every malformed record joined with errors.Join
	// instead of stopping at the first one.
	AllErrors bool
}

// Dataset is an immutable catalog and ledger pair.
type Dataset struct {
	Catalog  []models.ContentItem
	Ledger   []models.UserRecord
	Source   string
	LoadedAt time.Time
}

// New validates the records and wraps them in a Dataset.
func New(catalog []models.ContentItem, ledger []models.UserRecord, source string, opts LoadOptions) (*Dataset, error) {
	if err := Validate(catalog, ledger, opts); err != nil {
		return nil, err
	}
	return &Dataset{
		Catalog:  catalog,
		Ledger:   ledger,
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}, nil
}

// Genres returns the distinct catalog genres sorted by name.
func (d *Dataset) Genres() []string {
	seen := make(map[string]struct{})
	genres := make([]string, 0)
	for i := range d.Catalog {
		if _, ok := seen[d.Catalog[i].Genre]; ok {
			continue
		}
		seen[d.Catalog[i].Genre] = struct{}{}
		genres = append(genres, d.Catalog[i].Genre)
	}
	sort.Strings(genres)
	return genres
}

// Stats summarizes the dataset.
func (d *Dataset) Stats() models.DatasetStats {
	return models.DatasetStats{
		Source:       d.Source,
		ContentItems: len(d.Catalog),
		Users:        len(d.Ledger),
		Genres:       d.Genres(),
		LoadedAt:     d.LoadedAt,
	}
}

// Validate checks every record and rejects duplicate ids.
func Validate(catalog []models.ContentItem, ledger []models.UserRecord, opts LoadOptions) error {
	c := &collector{all: opts.AllErrors}

	seenContent := make(map[string]struct{}, len(catalog))
	for i := range catalog {
		if rerr := checkContent(&catalog[i], 0, seenContent); rerr != nil && c.add(rerr) {
			return c.err()
		}
	}

	seenUsers := make(map[string]struct{}, len(ledger))
	for i := range ledger {
		if rerr := checkUser(&ledger[i], 0, seenUsers); rerr != nil && c.add(rerr) {
			return c.err()
		}
	}
	return c.err()
}

func checkContent(item *models.ContentItem, line int, seen map[string]struct{}) *RecordError {
	if verr := validation.ValidateStruct(item); verr != nil {
		return &RecordError{Kind: KindContent, Line: line, ID: item.ID, Field: verr.Errors()[0].Field(), Reason: verr.Error()}
	}
	if _, dup := seen[item.ID]; dup {
		return &RecordError{Kind: KindContent, Line: line, ID: item.ID, Field: "show_id", Reason: "duplicate id"}
	}
	seen[item.ID] = struct{}{}
	return nil
}

func checkUser(u *models.UserRecord, line int, seen map[string]struct{}) *RecordError {
	if verr := validation.ValidateStruct(u); verr != nil {
		return &RecordError{Kind: KindUser, Line: line, ID: u.ID, Field: verr.Errors()[0].Field(), Reason: verr.Error()}
	}
	if _, dup := seen[u.ID]; dup {
		return &RecordError{Kind: KindUser, Line: line, ID: u.ID, Field: "user_id", Reason: "duplicate id"}
	}
	seen[u.ID] = struct{}{}
	return nil
}
