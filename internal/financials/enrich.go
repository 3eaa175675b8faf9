// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package financials

import (
	"sort"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// ChurnPolicy decides when a user counts as churned.
type ChurnPolicy struct {
	// AsOf is the reference date churn is measured from.
	AsOf time.Time
	// InactiveDays is the number of days without activity after which a user
	// is churned. The comparison is strict.
	InactiveDays int
}

// Churned reports whether a user last active at lastActive is churned.
func (p ChurnPolicy) Churned(lastActive time.Time) bool {
	if p.AsOf.IsZero() {
		return false
	}
	return daysBetween(lastActive, p.AsOf) > p.InactiveDays
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// Enrich joins an LTV-populated ledger with the catalog.
//
// Organic users and users whose attribution does not resolve get the
// OrganicGenre label, zero production cost and no days-since-release.
func Enrich(ledger []models.UserRecord, catalog []models.ContentItem, churn ChurnPolicy) []models.EnrichedUser {
	byID := CatalogByID(catalog)

	out := make([]models.EnrichedUser, len(ledger))
	for i := range ledger {
		u := &ledger[i]
		eu := models.EnrichedUser{
			UserID:              u.ID,
			SignupTime:          u.SignupTime,
			LastActiveTime:      u.LastActiveTime,
			MonthlyRevenue:      u.MonthlyRevenue,
			AttributedContentID: u.AttributedContentID,
			Genre:               models.OrganicGenre,
			LifetimeMonths:      u.LifetimeMonths,
			LTV:                 u.LTV,
			IsChurned:           churn.Churned(u.LastActiveTime),
		}
		if item, ok := byID[u.AttributedContentID]; ok && !u.IsOrganic() {
			eu.Title = item.Title
			eu.Genre = item.Genre
			eu.ProductionCost = item.ProductionCost
			days := daysBetween(item.ReleaseTime, u.SignupTime)
			eu.DaysSinceRelease = &days
		}
		out[i] = eu
	}
	return out
}

// LTVByGenre averages LTV over attributed users per genre, sorted by average
// LTV descending with ties by genre name.
func LTVByGenre(enriched []models.EnrichedUser) []models.GenreLTV {
	byGenre := make(map[string]*models.GenreLTV)
	for i := range enriched {
		eu := &enriched[i]
		if eu.Genre == models.OrganicGenre {
			continue
		}
		g, ok := byGenre[eu.Genre]
		if !ok {
			g = &models.GenreLTV{Genre: eu.Genre}
			byGenre[eu.Genre] = g
		}
		g.AttributedUsers++
		g.TotalLTV += eu.LTV
	}

	out := make([]models.GenreLTV, 0, len(byGenre))
	for _, g := range byGenre {
		g.AvgLTV = g.TotalLTV / float64(g.AttributedUsers)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgLTV != out[j].AvgLTV {
			return out[i].AvgLTV > out[j].AvgLTV
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// Summarize computes headline metrics for one genre, or for every user when
// genre is empty. Organic users count toward the unfiltered totals and can be
// selected with genre OrganicGenre. AvgLTV is averaged over Users.
func Summarize(enriched []models.EnrichedUser, windowDays int, genre string) models.Summary {
	s := models.Summary{Genre: genre, WindowDays: windowDays}
	for i := range enriched {
		eu := &enriched[i]
		if genre != "" && eu.Genre != genre {
			continue
		}
		s.Users++
		if eu.Genre == models.OrganicGenre {
			s.OrganicUsers++
		} else {
			s.AttributedUsers++
		}
		s.TotalRevenue += eu.LTV
		if eu.IsChurned {
			s.ChurnedUsers++
		}
	}
	s.AvgLTV = models.Divide(s.TotalRevenue, float64(s.Users))
	return s
}
