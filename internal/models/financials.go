// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package models

import "time"

// ShowFinancials is the per-content rollup of attributed users.
//
// ROI is (TotalRevenue - ProductionCost) / ProductionCost and is undefined for
// zero-cost content.
type ShowFinancials struct {
	ContentID           string  `json:"show_id"`
	Title               string  `json:"title"`
	Genre               string  `json:"genre"`
	AttributedUserCount int     `json:"attributed_users"`
	TotalRevenue        float64 `json:"total_revenue"`
	ProductionCost      float64 `json:"production_cost"`
	ROI                 Ratio   `json:"roi"`
}

// GenreFinancials is the per-genre acquisition rollup.
//
// Only content with at least one attributed user contributes revenue, cost
// and users to its genre.
type GenreFinancials struct {
	Genre                string  `json:"genre"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalProductionCost  float64 `json:"total_production_cost"`
	TotalAttributedUsers int     `json:"total_attributed_users"`
	CACPerUser           Ratio   `json:"cac_per_user"`
	LTVPerUser           Ratio   `json:"ltv_per_user"`
	LTVToCAC             Ratio   `json:"ltv_to_cac"`
}

// SweepRow is one point of the attribution window sensitivity sweep.
type SweepRow struct {
	WindowDays int    `json:"window_days"`
	Genre      string `json:"genre"`
	LTVToCAC   Ratio  `json:"ltv_to_cac"`
}

// EnrichedUser is a ledger row joined with its attributed content.
//
// Genre is OrganicGenre for organic users and for users whose attribution
// points at content missing from the catalog. DaysSinceRelease is nil for both.
type EnrichedUser struct {
	UserID              string    `json:"user_id"`
	SignupTime          time.Time `json:"sign_up_date"`
	LastActiveTime      time.Time `json:"last_active_date"`
	MonthlyRevenue      float64   `json:"monthly_revenue"`
	AttributedContentID string    `json:"attributed_show_id,omitempty"`
	Title               string    `json:"title,omitempty"`
	Genre               string    `json:"genre"`
	ProductionCost      float64   `json:"production_cost"`
	DaysSinceRelease    *int      `json:"days_since_release"`
	LifetimeMonths      int       `json:"lifetime_months"`
	LTV                 float64   `json:"ltv"`
	IsChurned           bool      `json:"is_churned"`
}

// GenreLTV is the average lifetime value of attributed users in one genre.
type GenreLTV struct {
	Genre           string  `json:"genre"`
	AttributedUsers int     `json:"attributed_users"`
	AvgLTV          float64 `json:"avg_ltv"`
	TotalLTV        float64 `json:"total_ltv"`
}

// Summary holds the headline numbers for one analysis run, optionally
// restricted to a single genre.
type Summary struct {
	Genre           string  `json:"genre,omitempty"`
	WindowDays      int     `json:"window_days"`
	Users           int     `json:"users"`
	AttributedUsers int     `json:"attributed_users"`
	OrganicUsers    int     `json:"organic_users"`
	AvgLTV          Ratio   `json:"avg_ltv"`
	TotalRevenue    float64 `json:"total_revenue"`
	ChurnedUsers    int     `json:"churned_users"`
}

// AnalysisRun is the persisted record of one attribution run.
type AnalysisRun struct {
	RunID           string            `json:"run_id"`
	WindowDays      int               `json:"window_days"`
	GeneratedAt     time.Time         `json:"generated_at"`
	AttributedUsers int               `json:"attributed_users"`
	PreservedUsers  int               `json:"preserved_users"`
	OrganicUsers    int               `json:"organic_users"`
	UnresolvedUsers int               `json:"unresolved_users"`
	Shows           []ShowFinancials  `json:"shows,omitempty"`
	Genres          []GenreFinancials `json:"genres,omitempty"`
}
