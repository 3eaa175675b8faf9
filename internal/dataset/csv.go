// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// Column names of the catalog and ledger files.
var (
	ContentColumns = []string{"show_id", "title", "genre", "release_date", "production_cost"}
	UserColumns    = []string{"user_id", "sign_up_date", "last_active_date", "monthly_revenue", "attributed_show_id"}
	ledgerOutput   = append(append([]string{}, UserColumns...), "lifetime_months", "ltv")
)

// header maps column names to positions.
type header map[string]int

func readHeader(r *csv.Reader, kind RecordKind, required []string) (header, error) {
	names, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &RecordError{Kind: kind, Line: 1, Reason: "missing header row"}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", kind, err)
	}

	h := make(header, len(names))
	for i, name := range names {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, &RecordError{Kind: kind, Line: 1, Field: col, Reason: "missing column"}
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(models.DateLayout, s)
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	return strconv.ParseFloat(s, 64)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// LoadCatalogCSV parses a content catalog CSV.
func LoadCatalogCSV(r io.Reader, opts LoadOptions) ([]models.ContentItem, error) {
	cr := newReader(r)
	h, err := readHeader(cr, KindContent, ContentColumns)
	if err != nil {
		return nil, err
	}

	c := &collector{all: opts.AllErrors}
	seen := make(map[string]struct{})
	var items []models.ContentItem

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read content line %d: %w", line, err)
		}

		item, rerr := parseContentRow(h, row, line)
		if rerr == nil {
			rerr = checkContent(&item, line, seen)
		}
		if rerr != nil {
			if c.add(rerr) {
				return nil, c.err()
			}
			continue
		}
		items = append(items, item)
	}

	if c.failed() {
		return nil, c.err()
	}
	return items, nil
}

func parseContentRow(h header, row []string, line int) (models.ContentItem, *RecordError) {
	item := models.ContentItem{
		ID:    h.get(row, "show_id"),
		Title: h.get(row, "title"),
		Genre: h.get(row, "genre"),
	}

	release, err := parseDate(h.get(row, "release_date"))
	if err != nil {
		return item, &RecordError{Kind: KindContent, Line: line, ID: item.ID, Field: "release_date", Reason: err.Error()}
	}
	item.ReleaseTime = release

	cost, err := parseAmount(h.get(row, "production_cost"))
	if err != nil {
		return item, &RecordError{Kind: KindContent, Line: line, ID: item.ID, Field: "production_cost", Reason: err.Error()}
	}
	item.ProductionCost = cost
	return item, nil
}

// LoadLedgerCSV parses a user ledger CSV. An empty attributed_show_id marks an
// organic user. Extra columns such as lifetime_months are ignored.
func LoadLedgerCSV(r io.Reader, opts LoadOptions) ([]models.UserRecord, error) {
	cr := newReader(r)
	h, err := readHeader(cr, KindUser, UserColumns[:4])
	if err != nil {
		return nil, err
	}

	c := &collector{all: opts.AllErrors}
	seen := make(map[string]struct{})
	var ledger []models.UserRecord

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read user line %d: %w", line, err)
		}

		u, rerr := parseUserRow(h, row, line)
		if rerr == nil {
			rerr = checkUser(&u, line, seen)
		}
		if rerr != nil {
			if c.add(rerr) {
				return nil, c.err()
			}
			continue
		}
		ledger = append(ledger, u)
	}

	if c.failed() {
		return nil, c.err()
	}
	return ledger, nil
}

func parseUserRow(h header, row []string, line int) (models.UserRecord, *RecordError) {
	u := models.UserRecord{
		ID:                  h.get(row, "user_id"),
		AttributedContentID: h.get(row, "attributed_show_id"),
	}

	signup, err := parseDate(h.get(row, "sign_up_date"))
	if err != nil {
		return u, &RecordError{Kind: KindUser, Line: line, ID: u.ID, Field: "sign_up_date", Reason: err.Error()}
	}
	u.SignupTime = signup

	lastActive, err := parseDate(h.get(row, "last_active_date"))
	if err != nil {
		return u, &RecordError{Kind: KindUser, Line: line, ID: u.ID, Field: "last_active_date", Reason: err.Error()}
	}
	u.LastActiveTime = lastActive

	revenue, err := parseAmount(h.get(row, "monthly_revenue"))
	if err != nil {
		return u, &RecordError{Kind: KindUser, Line: line, ID: u.ID, Field: "monthly_revenue", Reason: err.Error()}
	}
	u.MonthlyRevenue = revenue
	return u, nil
}

// LoadFiles reads the catalog and ledger CSV files into a Dataset.
func LoadFiles(contentPath, usersPath string, opts LoadOptions) (*Dataset, error) {
	catalog, err := loadFile(contentPath, func(r io.Reader) ([]models.ContentItem, error) {
		return LoadCatalogCSV(r, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", contentPath, err)
	}

	ledger, err := loadFile(usersPath, func(r io.Reader) ([]models.UserRecord, error) {
		return LoadLedgerCSV(r, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("load users %s: %w", usersPath, err)
	}

	return &Dataset{
		Catalog:  catalog,
		Ledger:   ledger,
		Source:   SourceCSV,
		LoadedAt: time.Now().UTC(),
	}, nil
}

func loadFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file
	return parse(f)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCatalogCSV writes the catalog in the format LoadCatalogCSV reads.
func WriteCatalogCSV(w io.Writer, catalog []models.ContentItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ContentColumns); err != nil {
		return err
	}
	for i := range catalog {
		item := &catalog[i]
		if err := cw.Write([]string{
			item.ID,
			item.Title,
			item.Genre,
			item.ReleaseTime.Format(models.DateLayout),
			formatAmount(item.ProductionCost),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLedgerCSV writes the ledger with lifetime and LTV columns appended.
func WriteLedgerCSV(w io.Writer, ledger []models.UserRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerOutput); err != nil {
		return err
	}
	for i := range ledger {
		u := &ledger[i]
		if err := cw.Write([]string{
			u.ID,
			u.SignupTime.Format(models.DateLayout),
			u.LastActiveTime.Format(models.DateLayout),
			formatAmount(u.MonthlyRevenue),
			u.AttributedContentID,
			strconv.Itoa(u.LifetimeMonths),
			formatAmount(u.LTV),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
