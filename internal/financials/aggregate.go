// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package financials

import (
	"sort"

	"github.com/tomtom215/contentroi/internal/models"
)

// Report is the full rollup of one LTV-populated ledger.
type Report struct {
	// Shows is sorted by content id ascending.
	Shows []models.ShowFinancials `json:"shows"`
	// Genres is sorted by genre name ascending.
	Genres []models.GenreFinancials `json:"genres"`
	// OrganicUsers were excluded because they carry no attribution.
	OrganicUsers int `json:"organic_users"`
	// UnresolvedUsers reference content missing from the catalog.
	UnresolvedUsers int `json:"unresolved_users"`
	// UnresolvedIDs lists the distinct missing content ids, sorted.
	UnresolvedIDs []string `json:"unresolved_ids,omitempty"`
}

// CatalogByID indexes the catalog by content id. The first occurrence of a
// duplicate id wins.
func CatalogByID(catalog []models.ContentItem) map[string]models.ContentItem {
	byID := make(map[string]models.ContentItem, len(catalog))
	for i := range catalog {
		if _, exists := byID[catalog[i].ID]; !exists {
			byID[catalog[i].ID] = catalog[i]
		}
	}
	return byID
}

// Aggregate rolls an LTV-populated ledger up by show and by genre in one pass.
//
// Organic users and users whose attribution does not resolve to a catalog
// item are excluded from both views and counted separately.
func Aggregate(ledger []models.UserRecord, catalog []models.ContentItem) Report {
	byID := CatalogByID(catalog)

	var report Report
	shows := make(map[string]*models.ShowFinancials)
	unresolved := make(map[string]struct{})

	for i := range ledger {
		u := &ledger[i]
		if u.IsOrganic() {
			report.OrganicUsers++
			continue
		}
		item, ok := byID[u.AttributedContentID]
		if !ok {
			report.UnresolvedUsers++
			unresolved[u.AttributedContentID] = struct{}{}
			continue
		}
		sf, ok := shows[item.ID]
		if !ok {
			sf = &models.ShowFinancials{
				ContentID:      item.ID,
				Title:          item.Title,
				Genre:          item.Genre,
				ProductionCost: item.ProductionCost,
			}
			shows[item.ID] = sf
		}
		sf.AttributedUserCount++
		sf.TotalRevenue += u.LTV
	}

	report.Shows = make([]models.ShowFinancials, 0, len(shows))
	for _, sf := range shows {
		sf.ROI = models.Divide(sf.TotalRevenue-sf.ProductionCost, sf.ProductionCost)
		report.Shows = append(report.Shows, *sf)
	}
	sort.Slice(report.Shows, func(i, j int) bool {
		return report.Shows[i].ContentID < report.Shows[j].ContentID
	})

	report.Genres = GenreRollup(report.Shows)

	if len(unresolved) > 0 {
		report.UnresolvedIDs = make([]string, 0, len(unresolved))
		for id := range unresolved {
			report.UnresolvedIDs = append(report.UnresolvedIDs, id)
		}
		sort.Strings(report.UnresolvedIDs)
	}
	return report
}

// AggregateByShow returns per-show financials for attributed, resolvable users.
func AggregateByShow(ledger []models.UserRecord, catalog []models.ContentItem) []models.ShowFinancials {
	return Aggregate(ledger, catalog).Shows
}

// AggregateByGenre returns per-genre financials for attributed, resolvable users.
func AggregateByGenre(ledger []models.UserRecord, catalog []models.ContentItem) []models.GenreFinancials {
	return Aggregate(ledger, catalog).Genres
}

// GenreRollup groups show financials by genre.
func GenreRollup(shows []models.ShowFinancials) []models.GenreFinancials {
	type totals struct {
		revenue float64
		cost    float64
		users   int
	}
	byGenre := make(map[string]*totals)
	for i := range shows {
		t, ok := byGenre[shows[i].Genre]
		if !ok {
			t = &totals{}
			byGenre[shows[i].Genre] = t
		}
		t.revenue += shows[i].TotalRevenue
		t.cost += shows[i].ProductionCost
		t.users += shows[i].AttributedUserCount
	}

	genres := make([]models.GenreFinancials, 0, len(byGenre))
	for genre, t := range byGenre {
		genres = append(genres, NewGenreFinancials(genre, t.revenue, t.cost, t.users))
	}
	sort.Slice(genres, func(i, j int) bool {
		return genres[i].Genre < genres[j].Genre
	})
	return genres
}

// NewGenreFinancials derives the per-user ratios for a genre's totals.
//
// CAC and LTV per user are undefined without attributed users. CAC is also
// undefined when the genre's total production cost is zero, which in turn
// leaves LTV:CAC undefined.
func NewGenreFinancials(genre string, revenue, cost float64, users int) models.GenreFinancials {
	gf := models.GenreFinancials{
		Genre:                genre,
		TotalRevenue:         revenue,
		TotalProductionCost:  cost,
		TotalAttributedUsers: users,
	}
	if users == 0 {
		return gf
	}
	if cost > 0 {
		gf.CACPerUser = models.Divide(cost, float64(users))
	}
	gf.LTVPerUser = models.Divide(revenue, float64(users))
	gf.LTVToCAC = models.DivideRatios(gf.LTVPerUser, gf.CACPerUser)
	return gf
}

// FindGenre returns the rollup for one genre.
func FindGenre(genres []models.GenreFinancials, genre string) (models.GenreFinancials, bool) {
	for i := range genres {
		if genres[i].Genre == genre {
			return genres[i], true
		}
	}
	return models.GenreFinancials{}, false
}
