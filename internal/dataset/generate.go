// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// genreProfile is the relative frequency and typical production cost of a genre.
type genreProfile struct {
	name     string
	weight   float64
	baseCost float64
}

var genreProfiles = []genreProfile{
	{"Sci-Fi", 0.15, 30_000_000},
	{"Comedy", 0.18, 5_000_000},
	{"Documentary", 0.10, 1_000_000},
	{"Drama", 0.20, 10_000_000},
	{"Thriller", 0.12, 12_000_000},
	{"Romance", 0.12, 4_000_000},
	{"Animation", 0.08, 18_000_000},
	{"Horror", 0.05, 3_000_000},
}

const (
	minProductionCost = 100_000
	meanMonthsActive  = 6
	campaignSpreadDay = 3
)

// GeneratorConfig controls synthetic dataset generation. Zero fields take the
// defaults from DefaultGeneratorConfig.
type GeneratorConfig struct {
	// Seed makes generation reproducible; the same config always yields the
	// same dataset.
	Seed  uint64
	Shows int
	Users int
	// ReleaseStart and ReleaseEnd bound release and signup dates.
	ReleaseStart time.Time
	ReleaseEnd   time.Time
	// NearReleaseShare is the fraction of users who sign up within a few days
	// of a release.
	NearReleaseShare float64
	// PriorAttributionShare is the fraction of users given a random existing
	// attribution before any resolver runs.
	PriorAttributionShare float64
}

// DefaultGeneratorConfig returns the default generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:             42,
		Shows:            500,
		Users:            10_000,
		ReleaseStart:     time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		ReleaseEnd:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		NearReleaseShare: 0.30,
	}
}

func (c GeneratorConfig) withDefaults() GeneratorConfig {
	d := DefaultGeneratorConfig()
	if c.Shows == 0 {
		c.Shows = d.Shows
	}
	if c.Users == 0 {
		c.Users = d.Users
	}
	if c.ReleaseStart.IsZero() {
		c.ReleaseStart = d.ReleaseStart
	}
	if c.ReleaseEnd.IsZero() {
		c.ReleaseEnd = d.ReleaseEnd
	}
	if c.NearReleaseShare == 0 {
		c.NearReleaseShare = d.NearReleaseShare
	}
	return c
}

func (c GeneratorConfig) validate() error {
	switch {
	case c.Shows < 0 || c.Users < 0:
		return fmt.Errorf("generator sizes must be non-negative (shows=%d users=%d)", c.Shows, c.Users)
	case c.ReleaseEnd.Before(c.ReleaseStart):
		return fmt.Errorf("generator release range is inverted (%s > %s)",
			c.ReleaseStart.Format(models.DateLayout), c.ReleaseEnd.Format(models.DateLayout))
	case c.NearReleaseShare < 0 || c.NearReleaseShare > 1:
		return fmt.Errorf("near release share %v out of range [0,1]", c.NearReleaseShare)
	case c.PriorAttributionShare < 0 || c.PriorAttributionShare > 1:
		return fmt.Errorf("prior attribution share %v out of range [0,1]", c.PriorAttributionShare)
	}
	return nil
}

// Generate builds a synthetic catalog and ledger.
//
// A share of users sign up within a few days of a random release, which gives
// the resolver a signal to find; the rest sign up uniformly over the release
// range. Generation uses its own seeded source and never touches global state.
func Generate(cfg GeneratorConfig) (*Dataset, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &generator{
		rng:  rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		cfg:  cfg,
		span: int(cfg.ReleaseEnd.Sub(cfg.ReleaseStart).Hours() / 24),
	}

	catalog := g.catalog()
	ledger := g.ledger(catalog)

	return New(catalog, ledger, SourceGenerated, LoadOptions{})
}

type generator struct {
	rng  *rand.Rand
	cfg  GeneratorConfig
	span int
}

func (g *generator) randomDate() time.Time {
	return g.cfg.ReleaseStart.AddDate(0, 0, g.rng.IntN(g.span+1))
}

func (g *generator) pickGenre() genreProfile {
	x := g.rng.Float64()
	var acc float64
	for _, p := range genreProfiles {
		acc += p.weight
		if x < acc {
			return p
		}
	}
	return genreProfiles[len(genreProfiles)-1]
}

// poisson draws from a Poisson distribution using Knuth's method.
func (g *generator) poisson(mean float64) int {
	limit := math.Exp(-mean)
	k := 0
	p := 1.0
	for {
		p *= g.rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

func (g *generator) catalog() []models.ContentItem {
	items := make([]models.ContentItem, g.cfg.Shows)
	for i := range items {
		p := g.pickGenre()
		cost := math.Round(p.baseCost + g.rng.NormFloat64()*p.baseCost*0.25)
		items[i] = models.ContentItem{
			ID:             fmt.Sprintf("show_%04d", i+1),
			Title:          fmt.Sprintf("%s Series %d", strings.ToUpper(p.name[:3]), i+1),
			Genre:          p.name,
			ReleaseTime:    g.randomDate(),
			ProductionCost: math.Max(minProductionCost, cost),
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ReleaseTime.Before(items[j].ReleaseTime)
	})
	return items
}

func (g *generator) ledger(catalog []models.ContentItem) []models.UserRecord {
	users := make([]models.UserRecord, g.cfg.Users)
	for i := range users {
		var signup time.Time
		if len(catalog) > 0 && g.rng.Float64() < g.cfg.NearReleaseShare {
			release := catalog[g.rng.IntN(len(catalog))].ReleaseTime
			signup = release.AddDate(0, 0, g.rng.IntN(2*campaignSpreadDay+1)-campaignSpreadDay)
		} else {
			signup = g.randomDate()
		}

		u := models.UserRecord{
			ID:             fmt.Sprintf("user_%05d", i+1),
			SignupTime:     signup,
			LastActiveTime: signup.AddDate(0, g.poisson(meanMonthsActive), 0),
			MonthlyRevenue: math.Round((g.rng.ExpFloat64()*8+6)*100) / 100,
		}
		if len(catalog) > 0 && g.cfg.PriorAttributionShare > 0 && g.rng.Float64() < g.cfg.PriorAttributionShare {
			u.AttributedContentID = catalog[g.rng.IntN(len(catalog))].ID
		}
		users[i] = u
	}
	return users
}
