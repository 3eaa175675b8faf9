// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

const contentCSV = `show_id,title,genre,release_date,production_cost
S1,Nebula,Sci-Fi,2024-01-01,1000
S2,Laughs,Comedy,2024-02-01,0
`

const usersCSV = `user_id,sign_up_date,last_active_date,monthly_revenue,attributed_show_id
U1,2024-01-03,2024-01-03,10,
U2,2024-02-02,2024-05-10,14.99,S2
`

func TestLoadCatalogCSV(t *testing.T) {
	t.Parallel()

	items, err := LoadCatalogCSV(strings.NewReader(contentCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadCatalogCSV() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	want := models.ContentItem{
		ID: "S1", Title: "Nebula", Genre: "Sci-Fi",
		ReleaseTime:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductionCost: 1000,
	}
	if items[0] != want {
		t.Errorf("items[0] = %+v, want %+v", items[0], want)
	}
}

func TestLoadCatalogCSV_ColumnOrderAndBOM(t *testing.T) {
	t.Parallel()

	in := "\ufeffgenre, Show_ID ,production_cost,release_date,title\nDrama,S9,5,2023-05-05,Nine\n"
	items, err := LoadCatalogCSV(strings.NewReader(in), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadCatalogCSV() error = %v", err)
	}
	if items[0].ID != "S9" || items[0].Genre != "Drama" || items[0].ProductionCost != 5 {
		t.Errorf("unexpected item %+v", items[0])
	}
}

func TestLoadLedgerCSV(t *testing.T) {
	t.Parallel()

	ledger, err := LoadLedgerCSV(strings.NewReader(usersCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadLedgerCSV() error = %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("got %d users, want 2", len(ledger))
	}
	if !ledger[0].IsOrganic() {
		t.Error("empty attributed_show_id should load as organic")
	}
	if ledger[1].AttributedContentID != "S2" || ledger[1].MonthlyRevenue != 14.99 {
		t.Errorf("unexpected user %+v", ledger[1])
	}
}

func TestLoadCSV_MalformedRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		load      func() error
		wantLine  int
		wantField string
	}{
		{
			name: "negative cost",
			load: func() error {
				_, err := LoadCatalogCSV(strings.NewReader("show_id,title,genre,release_date,production_cost\nS1,T,Drama,2024-01-01,-5\n"), LoadOptions{})
				return err
			},
			wantLine: 2, wantField: "production_cost",
		},
		{
			name: "organic genre",
			load: func() error {
				_, err := LoadCatalogCSV(strings.NewReader("show_id,title,genre,release_date,production_cost\nS1,T,Drama,2024-01-01,5\nS2,T,Organic,2024-01-01,5\n"), LoadOptions{})
				return err
			},
			wantLine: 3, wantField: "genre",
		},
		{
			name: "bad date",
			load: func() error {
				_, err := LoadCatalogCSV(strings.NewReader("show_id,title,genre,release_date,production_cost\nS1,T,Drama,01/02/2024,5\n"), LoadOptions{})
				return err
			},
			wantLine: 2, wantField: "release_date",
		},
		{
			name: "duplicate content id",
			load: func() error {
				_, err := LoadCatalogCSV(strings.NewReader("show_id,title,genre,release_date,production_cost\nS1,T,Drama,2024-01-01,5\nS1,U,Drama,2024-01-02,5\n"), LoadOptions{})
				return err
			},
			wantLine: 3, wantField: "show_id",
		},
		{
			name: "missing column",
			load: func() error {
				_, err := LoadCatalogCSV(strings.NewReader("show_id,title,genre,release_date\n"), LoadOptions{})
				return err
			},
			wantLine: 1, wantField: "production_cost",
		},
		{
			name: "last active before signup",
			load: func() error {
				_, err := LoadLedgerCSV(strings.NewReader("user_id,sign_up_date,last_active_date,monthly_revenue,attributed_show_id\nU1,2024-02-01,2024-01-01,10,\n"), LoadOptions{})
				return err
			},
			wantLine: 2, wantField: "last_active_date",
		},
		{
			name: "negative revenue",
			load: func() error {
				_, err := LoadLedgerCSV(strings.NewReader("user_id,sign_up_date,last_active_date,monthly_revenue\nU1,2024-02-01,2024-03-01,-1\n"), LoadOptions{})
				return err
			},
			wantLine: 2, wantField: "monthly_revenue",
		},
		{
			name: "missing revenue",
			load: func() error {
				_, err := LoadLedgerCSV(strings.NewReader("user_id,sign_up_date,last_active_date,monthly_revenue\nU1,2024-02-01,2024-03-01,\n"), LoadOptions{})
				return err
			},
			wantLine: 2, wantField: "monthly_revenue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.load()
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("error = %v, want ErrMalformedRecord", err)
			}
			var rerr *RecordError
			if !errors.As(err, &rerr) {
				t.Fatalf("error %v is not a *RecordError", err)
			}
			if rerr.Line != tt.wantLine || rerr.Field != tt.wantField {
				t.Errorf("RecordError line=%d field=%q, want line=%d field=%q", rerr.Line, rerr.Field, tt.wantLine, tt.wantField)
			}
		})
	}
}

func TestLoadCSV_AllErrors(t *testing.T) {
	t.Parallel()

	in := "user_id,sign_up_date,last_active_date,monthly_revenue\n" +
		"U1,2024-02-01,2024-01-01,10\n" +
		"U2,2024-02-01,2024-03-01,10\n" +
		"U3,2024-02-01,2024-03-01,-4\n"

	_, err := LoadLedgerCSV(strings.NewReader(in), LoadOptions{AllErrors: true})
	if err == nil {
		t.Fatal("expected error")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("got %d errors, want 2", n)
	}
	if !errors.Is(err, ErrMalformedRecord) {
		t.Error("joined error should match ErrMalformedRecord")
	}

	_, err = LoadLedgerCSV(strings.NewReader(in), LoadOptions{})
	var rerr *RecordError
	if !errors.As(err, &rerr) || rerr.ID != "U1" {
		t.Errorf("fail-fast load should stop at U1, got %v", err)
	}
}

func TestRecordError_Message(t *testing.T) {
	t.Parallel()

	err := &RecordError{Kind: KindUser, Line: 4, ID: "U9", Field: "monthly_revenue", Reason: "must be non-negative"}
	want := "malformed user record at line 4 (U9): monthly_revenue: must be non-negative"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWriteAndReload(t *testing.T) {
	t.Parallel()

	ds, err := Generate(GeneratorConfig{Seed: 3, Shows: 20, Users: 200, PriorAttributionShare: 0.2})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.csv")
	usersPath := filepath.Join(dir, "users.csv")

	var buf bytes.Buffer
	if err := WriteCatalogCSV(&buf, ds.Catalog); err != nil {
		t.Fatalf("WriteCatalogCSV() error = %v", err)
	}
	if err := os.WriteFile(contentPath, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := WriteLedgerCSV(&buf, ds.Ledger); err != nil {
		t.Fatalf("WriteLedgerCSV() error = %v", err)
	}
	if err := os.WriteFile(usersPath, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFiles(contentPath, usersPath, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if loaded.Source != SourceCSV {
		t.Errorf("Source = %q", loaded.Source)
	}
	if !reflect.DeepEqual(loaded.Catalog, ds.Catalog) {
		t.Error("reloaded catalog differs from generated catalog")
	}
	if !reflect.DeepEqual(loaded.Ledger, ds.Ledger) {
		t.Error("reloaded ledger differs from generated ledger")
	}
}

func TestLoadFiles_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFiles(filepath.Join(t.TempDir(), "nope.csv"), "also-nope.csv", LoadOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := GeneratorConfig{Seed: 77, Shows: 30, Users: 300, PriorAttributionShare: 0.1}
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !reflect.DeepEqual(a.Catalog, b.Catalog) || !reflect.DeepEqual(a.Ledger, b.Ledger) {
		t.Error("same seed should produce identical datasets")
	}

	cfg.Seed = 78
	c, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reflect.DeepEqual(a.Ledger, c.Ledger) {
		t.Error("different seeds should produce different ledgers")
	}
}

func TestGenerate_Shape(t *testing.T) {
	t.Parallel()

	ds, err := Generate(GeneratorConfig{Seed: 1, Shows: 50, Users: 500})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(ds.Catalog) != 50 || len(ds.Ledger) != 500 {
		t.Fatalf("got %d shows and %d users", len(ds.Catalog), len(ds.Ledger))
	}
	for i := 1; i < len(ds.Catalog); i++ {
		if ds.Catalog[i].ReleaseTime.Before(ds.Catalog[i-1].ReleaseTime) {
			t.Fatal("catalog should be sorted by release date")
		}
	}
	for _, u := range ds.Ledger {
		if !u.IsOrganic() {
			t.Fatalf("user %s has an attribution without PriorAttributionShare", u.ID)
		}
		if u.LastActiveTime.Before(u.SignupTime) || u.MonthlyRevenue < 6 {
			t.Fatalf("user %s violates generator invariants: %+v", u.ID, u)
		}
	}
	if err := Validate(ds.Catalog, ds.Ledger, LoadOptions{}); err != nil {
		t.Errorf("generated dataset should validate, got %v", err)
	}
	if got := ds.Stats(); got.ContentItems != 50 || got.Users != 500 || got.Source != SourceGenerated || len(got.Genres) == 0 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	t.Parallel()

	bad := []GeneratorConfig{
		{Shows: -1},
		{NearReleaseShare: 1.5},
		{PriorAttributionShare: -0.1},
		{ReleaseStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ReleaseEnd: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, cfg := range bad {
		if _, err := Generate(cfg); err == nil {
			t.Errorf("Generate(%+v) should fail", cfg)
		}
	}
}

func TestDataset_New(t *testing.T) {
	t.Parallel()

	catalog := []models.ContentItem{{ID: "S1", Genre: "Drama", ReleaseTime: time.Now()}}
	ledger := []models.UserRecord{
		{ID: "U1", SignupTime: time.Now(), LastActiveTime: time.Now().Add(time.Hour)},
		{ID: "U1", SignupTime: time.Now(), LastActiveTime: time.Now().Add(time.Hour)},
	}
	_, err := New(catalog, ledger, SourceDuckDB, LoadOptions{})
	var rerr *RecordError
	if !errors.As(err, &rerr) || rerr.Field != "user_id" || rerr.Line != 0 {
		t.Errorf("New() error = %v, want duplicate user_id", err)
	}
}
