// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package models

import "time"

// OrganicGenre is the reserved genre label for users no content item drove.
// Catalog items may not use it.
const OrganicGenre = "Organic"

// MaxWindowDays is the largest attribution window, in days, the system accepts.
const MaxWindowDays = 3650

// DateLayout is the calendar date format used by CSV datasets and query parameters.
const DateLayout = "2006-01-02"

// ContentItem is one title in the content catalog.
//
// Fields:
//   - ID: Unique content identifier (e.g. "SHOW_001")
//   - Title: Display title
//   - Genre: Genre label, never OrganicGenre
//   - ReleaseTime: Release date; attribution windows open here
//   - ProductionCost: Non-negative cost in the dataset currency
type ContentItem struct {
	ID             string    `json:"show_id" validate:"required"`
	Title          string    `json:"title"`
	Genre          string    `json:"genre" validate:"required,notorganic"`
	ReleaseTime    time.Time `json:"release_date" validate:"required"`
	ProductionCost float64   `json:"production_cost" validate:"gte=0"`
}

// UserRecord is one subscriber in the user ledger.
//
// AttributedContentID is empty for organic users. LifetimeMonths and LTV are
// zero until the ledger has been through the LTV calculator.
type UserRecord struct {
	ID                  string    `json:"user_id" validate:"required"`
	SignupTime          time.Time `json:"sign_up_date" validate:"required"`
	LastActiveTime      time.Time `json:"last_active_date" validate:"required,gtefield=SignupTime"`
	MonthlyRevenue      float64   `json:"monthly_revenue" validate:"gte=0"`
	AttributedContentID string    `json:"attributed_show_id,omitempty"`
	LifetimeMonths      int       `json:"lifetime_months,omitempty"`
	LTV                 float64   `json:"ltv,omitempty"`
}

// IsOrganic reports whether the user has no content attribution.
func (u *UserRecord) IsOrganic() bool {
	return u.AttributedContentID == ""
}

// CloneLedger returns a shallow copy of the ledger slice. UserRecord holds no
// reference types, so the copy is fully independent of the input.
func CloneLedger(ledger []UserRecord) []UserRecord {
	if ledger == nil {
		return nil
	}
	out := make([]UserRecord, len(ledger))
	copy(out, ledger)
	return out
}
