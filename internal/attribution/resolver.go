// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package attribution

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// MaxWindowDays bounds the attribution window accepted anywhere in the system.
const MaxWindowDays = models.MaxWindowDays

// ErrInvalidWindow is returned for windows outside [0, MaxWindowDays].
var ErrInvalidWindow = errors.New("invalid attribution window")

// Stats counts how each user in a resolved ledger was classified.
type Stats struct {
	// Attributed users matched a content item in this window.
	Attributed int `json:"attributed"`
	// Preserved users had no match but kept a prior attribution.
	Preserved int `json:"preserved"`
	// Organic users have no attribution after resolution.
	Organic int `json:"organic"`
}

// ValidateWindow checks that a window is usable.
func ValidateWindow(windowDays int) error {
	if windowDays < 0 || windowDays > MaxWindowDays {
		return fmt.Errorf("%w: %d days (must be 0 to %d)", ErrInvalidWindow, windowDays, MaxWindowDays)
	}
	return nil
}

// eligible reports whether signup falls inside [release, release+window].
func eligible(release, signup time.Time, windowDays int) bool {
	if signup.Before(release) {
		return false
	}
	return !signup.After(release.AddDate(0, 0, windowDays))
}

// preferred reports whether a beats b as the last touch.
func preferred(a, b *models.ContentItem) bool {
	if !a.ReleaseTime.Equal(b.ReleaseTime) {
		return a.ReleaseTime.After(b.ReleaseTime)
	}
	return a.ID < b.ID
}

// Index is a release-ordered view of the catalog for fast last-touch lookups.
type Index struct {
	// items sorted by release ascending; equal releases by id descending so the
	// preferred item of a release group is always the last one.
	items []models.ContentItem
}

// NewIndex builds an Index over a copy of the catalog.
func NewIndex(catalog []models.ContentItem) *Index {
	items := make([]models.ContentItem, len(catalog))
	copy(items, catalog)
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].ReleaseTime.Equal(items[j].ReleaseTime) {
			return items[i].ReleaseTime.Before(items[j].ReleaseTime)
		}
		return items[i].ID > items[j].ID
	})
	return &Index{items: items}
}

// Len returns the number of indexed content items.
func (ix *Index) Len() int {
	return len(ix.items)
}

// Match returns the last-touch content item for a signup, if any.
func (ix *Index) Match(signup time.Time, windowDays int) (models.ContentItem, bool) {
	// First item released strictly after the signup.
	upper := sort.Search(len(ix.items), func(i int) bool {
		return ix.items[i].ReleaseTime.After(signup)
	})
	if upper == 0 {
		return models.ContentItem{}, false
	}
	// The window check is monotone in release time, so only the latest
	// candidate needs testing.
	candidate := ix.items[upper-1]
	if !eligible(candidate.ReleaseTime, signup, windowDays) {
		return models.ContentItem{}, false
	}
	return candidate, true
}

// Resolve applies last-touch attribution to a copy of the ledger.
func (ix *Index) Resolve(ledger []models.UserRecord, windowDays int) ([]models.UserRecord, Stats, error) {
	var stats Stats
	if err := ValidateWindow(windowDays); err != nil {
		return nil, stats, err
	}

	out := models.CloneLedger(ledger)
	for i := range out {
		if item, ok := ix.Match(out[i].SignupTime, windowDays); ok {
			out[i].AttributedContentID = item.ID
			stats.Attributed++
			continue
		}
		if out[i].IsOrganic() {
			stats.Organic++
		} else {
			stats.Preserved++
		}
	}
	return out, stats, nil
}

// Resolve is a convenience wrapper that indexes the catalog and resolves the ledger.
func Resolve(catalog []models.ContentItem, ledger []models.UserRecord, windowDays int) ([]models.UserRecord, error) {
	out, _, err := NewIndex(catalog).Resolve(ledger, windowDays)
	return out, err
}

// ResolveBruteForce applies the same rule as Resolve by scanning the full
// catalog for every user. It is quadratic and meant for verification.
func ResolveBruteForce(catalog []models.ContentItem, ledger []models.UserRecord, windowDays int) ([]models.UserRecord, error) {
	if err := ValidateWindow(windowDays); err != nil {
		return nil, err
	}

	out := models.CloneLedger(ledger)
	for i := range out {
		var best *models.ContentItem
		for j := range catalog {
			item := &catalog[j]
			if !eligible(item.ReleaseTime, out[i].SignupTime, windowDays) {
				continue
			}
			if best == nil || preferred(item, best) {
				best = item
			}
		}
		if best != nil {
			out[i].AttributedContentID = best.ID
		}
	}
	return out, nil
}
