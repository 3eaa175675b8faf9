// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package financials

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/contentroi/internal/models"
)

// SortMetric selects the ranking key for TopShows.
type SortMetric string

const (
	SortByROI     SortMetric = "roi"
	SortByRevenue SortMetric = "revenue"
	SortByUsers   SortMetric = "users"
)

// ParseSortMetric parses a metric name, defaulting to ROI for an empty string.
func ParseSortMetric(s string) (SortMetric, error) {
	switch SortMetric(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByROI:
		return SortByROI, nil
	case SortByRevenue:
		return SortByRevenue, nil
	case SortByUsers:
		return SortByUsers, nil
	default:
		return "", fmt.Errorf("unknown sort metric %q (want roi, revenue or users)", s)
	}
}

func compareFloatDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

// RankShows returns a sorted copy of shows: descending by metric, undefined
// ROI last, ties by content id ascending.
func RankShows(shows []models.ShowFinancials, metric SortMetric) []models.ShowFinancials {
	ranked := make([]models.ShowFinancials, len(shows))
	copy(ranked, shows)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		var c int
		switch metric {
		case SortByRevenue:
			c = compareFloatDesc(a.TotalRevenue, b.TotalRevenue)
		case SortByUsers:
			c = compareFloatDesc(float64(a.AttributedUserCount), float64(b.AttributedUserCount))
		default:
			c = models.CompareDesc(a.ROI, b.ROI)
		}
		if c != 0 {
			return c < 0
		}
		return a.ContentID < b.ContentID
	})
	return ranked
}

// TopShows returns the first n shows by metric. n <= 0 returns all of them.
func TopShows(shows []models.ShowFinancials, metric SortMetric, n int) []models.ShowFinancials {
	ranked := RankShows(shows, metric)
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
