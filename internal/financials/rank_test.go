// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package financials

import (
	"testing"

	"github.com/tomtom215/contentroi/internal/models"
)

func rankFixture() []models.ShowFinancials {
	return []models.ShowFinancials{
		{ContentID: "S4", TotalRevenue: 50, AttributedUserCount: 5, ROI: models.Undefined()},
		{ContentID: "S2", TotalRevenue: 200, AttributedUserCount: 2, ROI: models.Defined(0.5)},
		{ContentID: "S1", TotalRevenue: 200, AttributedUserCount: 9, ROI: models.Defined(0.5)},
		{ContentID: "S3", TotalRevenue: 10, AttributedUserCount: 2, ROI: models.Defined(-0.9)},
	}
}

func ids(shows []models.ShowFinancials) []string {
	out := make([]string, len(shows))
	for i := range shows {
		out[i] = shows[i].ContentID
	}
	return out
}

func TestRankShows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		metric SortMetric
		want   []string
	}{
		{SortByROI, []string{"S1", "S2", "S3", "S4"}},
		{SortByRevenue, []string{"S1", "S2", "S4", "S3"}},
		{SortByUsers, []string{"S1", "S4", "S2", "S3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			t.Parallel()
			got := ids(RankShows(rankFixture(), tt.metric))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("RankShows(%s) = %v, want %v", tt.metric, got, tt.want)
				}
			}
		})
	}
}

func TestTopShows_Limit(t *testing.T) {
	t.Parallel()

	shows := rankFixture()
	top := TopShows(shows, SortByROI, 2)
	if len(top) != 2 || top[0].ContentID != "S1" || top[1].ContentID != "S2" {
		t.Errorf("TopShows(2) = %v", ids(top))
	}
	if all := TopShows(shows, SortByROI, 0); len(all) != len(shows) {
		t.Errorf("TopShows(0) returned %d rows, want %d", len(all), len(shows))
	}
	if all := TopShows(shows, SortByROI, 100); len(all) != len(shows) {
		t.Errorf("TopShows(100) returned %d rows, want %d", len(all), len(shows))
	}
	if shows[0].ContentID != "S4" {
		t.Error("TopShows reordered its input")
	}
}

func TestParseSortMetric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SortMetric
		wantErr bool
	}{
		{"", SortByROI, false},
		{"roi", SortByROI, false},
		{"Revenue", SortByRevenue, false},
		{" users ", SortByUsers, false},
		{"ltv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSortMetric(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortMetric(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSortMetric(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
