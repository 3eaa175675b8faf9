// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package financials

import (
	"testing"

	"github.com/tomtom215/contentroi/internal/models"
)

func enrichFixture() ([]models.UserRecord, []models.ContentItem) {
	catalog := []models.ContentItem{
		{ID: "S1", Title: "Nebula", Genre: "Sci-Fi", ReleaseTime: day("2024-12-01"), ProductionCost: 500},
		{ID: "S2", Title: "Laughs", Genre: "Comedy", ReleaseTime: day("2024-12-10"), ProductionCost: 100},
	}
	ledger := []models.UserRecord{
		{ID: "U1", SignupTime: day("2024-12-03"), LastActiveTime: day("2025-01-10"), AttributedContentID: "S1", LifetimeMonths: 1, LTV: 30},
		{ID: "U2", SignupTime: day("2024-12-05"), LastActiveTime: day("2024-12-06"), AttributedContentID: "S1", LifetimeMonths: 1, LTV: 10},
		{ID: "U3", SignupTime: day("2024-12-12"), LastActiveTime: day("2025-01-14"), AttributedContentID: "S2", LifetimeMonths: 1, LTV: 50},
		{ID: "U4", SignupTime: day("2024-11-01"), LastActiveTime: day("2024-11-02"), LifetimeMonths: 1, LTV: 99},
		{ID: "U5", SignupTime: day("2024-11-01"), LastActiveTime: day("2025-01-15"), AttributedContentID: "MISSING", LifetimeMonths: 2, LTV: 7},
	}
	return ledger, catalog
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	ledger, catalog := enrichFixture()
	churn := ChurnPolicy{AsOf: day("2025-01-15"), InactiveDays: 30}
	enriched := Enrich(ledger, catalog, churn)

	if len(enriched) != len(ledger) {
		t.Fatalf("got %d rows, want %d", len(enriched), len(ledger))
	}

	u1 := enriched[0]
	if u1.Genre != "Sci-Fi" || u1.Title != "Nebula" || u1.ProductionCost != 500 {
		t.Errorf("U1 join = %+v", u1)
	}
	if u1.DaysSinceRelease == nil || *u1.DaysSinceRelease != 2 {
		t.Errorf("U1 DaysSinceRelease = %v, want 2", u1.DaysSinceRelease)
	}
	if u1.IsChurned {
		t.Error("U1 active 5 days before as-of should not be churned")
	}
	if !enriched[1].IsChurned {
		t.Error("U2 inactive for 40 days should be churned")
	}

	for _, i := range []int{3, 4} {
		eu := enriched[i]
		if eu.Genre != models.OrganicGenre || eu.DaysSinceRelease != nil || eu.ProductionCost != 0 {
			t.Errorf("%s should be enriched as organic, got %+v", eu.UserID, eu)
		}
	}
	if enriched[4].AttributedContentID != "MISSING" {
		t.Error("unresolved attribution should be carried through unchanged")
	}
}

func TestChurnPolicy_Boundary(t *testing.T) {
	t.Parallel()

	p := ChurnPolicy{AsOf: day("2025-01-31"), InactiveDays: 30}
	if p.Churned(day("2025-01-01")) {
		t.Error("exactly 30 days inactive should not be churned")
	}
	if !p.Churned(day("2024-12-31")) {
		t.Error("31 days inactive should be churned")
	}
	if (ChurnPolicy{}).Churned(day("2000-01-01")) {
		t.Error("zero policy should never report churn")
	}
}

func TestLTVByGenre(t *testing.T) {
	t.Parallel()

	ledger, catalog := enrichFixture()
	got := LTVByGenre(Enrich(ledger, catalog, ChurnPolicy{}))

	if len(got) != 2 {
		t.Fatalf("got %d genres, want 2 (organic excluded)", len(got))
	}
	if got[0].Genre != "Comedy" || got[0].AvgLTV != 50 || got[0].AttributedUsers != 1 {
		t.Errorf("first genre = %+v, want Comedy avg 50", got[0])
	}
	if got[1].Genre != "Sci-Fi" || got[1].AvgLTV != 20 || got[1].TotalLTV != 40 {
		t.Errorf("second genre = %+v, want Sci-Fi avg 20", got[1])
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	ledger, catalog := enrichFixture()
	enriched := Enrich(ledger, catalog, ChurnPolicy{AsOf: day("2025-01-15"), InactiveDays: 30})

	all := Summarize(enriched, 7, "")
	if all.Users != 5 || all.AttributedUsers != 3 || all.OrganicUsers != 2 || all.TotalRevenue != 196 {
		t.Errorf("Summarize(all) = %+v", all)
	}
	if !all.AvgLTV.Valid || !approx(all.AvgLTV.Value, 39.2) {
		t.Errorf("AvgLTV = %+v, want 39.2", all.AvgLTV)
	}
	if all.ChurnedUsers != 2 {
		t.Errorf("ChurnedUsers = %d, want 2", all.ChurnedUsers)
	}

	scifi := Summarize(enriched, 7, "Sci-Fi")
	if scifi.Users != 2 || scifi.AttributedUsers != 2 || scifi.OrganicUsers != 0 || scifi.TotalRevenue != 40 {
		t.Errorf("Summarize(Sci-Fi) = %+v", scifi)
	}

	organic := Summarize(enriched, 7, models.OrganicGenre)
	if organic.Users != 2 || organic.AttributedUsers != 0 || organic.OrganicUsers != 2 || organic.TotalRevenue != 106 {
		t.Errorf("Summarize(Organic) = %+v", organic)
	}
	if !organic.AvgLTV.Valid || !approx(organic.AvgLTV.Value, 53) || organic.ChurnedUsers != 1 {
		t.Errorf("Summarize(Organic) avg/churn = %+v", organic)
	}

	none := Summarize(enriched, 7, "Horror")
	if none.Users != 0 || none.AttributedUsers != 0 || none.AvgLTV.Valid {
		t.Errorf("Summarize(Horror) should have undefined average, got %+v", none)
	}
}

func TestSummarize_IncludesOrganicInTotals(t *testing.T) {
	t.Parallel()

	enriched := []models.EnrichedUser{
		{UserID: "U1", Genre: "Drama", AttributedContentID: "S1", LTV: 10},
		{UserID: "U2", Genre: models.OrganicGenre, LTV: 90},
	}

	got := Summarize(enriched, 7, "")
	if got.Users != 2 || got.AttributedUsers != 1 || got.OrganicUsers != 1 {
		t.Errorf("counts = %+v", got)
	}
	if got.TotalRevenue != 100 {
		t.Errorf("TotalRevenue = %v, want 100", got.TotalRevenue)
	}
	if !got.AvgLTV.Valid || !approx(got.AvgLTV.Value, 50) {
		t.Errorf("AvgLTV = %+v, want 50", got.AvgLTV)
	}

	drama := Summarize(enriched, 7, "Drama")
	if drama.TotalRevenue != 10 || !approx(drama.AvgLTV.Value, 10) {
		t.Errorf("Summarize(Drama) = %+v", drama)
	}
}
