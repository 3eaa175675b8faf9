// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package ltv computes subscriber lifetime and lifetime value.
//
// Lifetime is counted in calendar months: the difference of (year, month)
// pairs between signup and last activity, ignoring the day of month, with a
// floor of one month. A user who signs up on Jan 31 and was last active on
// Feb 1 therefore has a lifetime of one month, as does a same-day user.
package ltv

import (
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// MinLifetimeMonths is the lifetime assigned to users active for less than a
// full calendar month.
const MinLifetimeMonths = 1

// MonthsBetween returns the calendar-month distance from a to b with the
// minimum lifetime floor applied.
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < MinLifetimeMonths {
		return MinLifetimeMonths
	}
	return months
}

// Value returns monthly revenue times lifetime months.
func Value(monthlyRevenue float64, lifetimeMonths int) float64 {
	return monthlyRevenue * float64(lifetimeMonths)
}

// Compute returns a copy of the ledger with LifetimeMonths and LTV filled in.
func Compute(ledger []models.UserRecord) []models.UserRecord {
	out := models.CloneLedger(ledger)
	for i := range out {
		out[i].LifetimeMonths = MonthsBetween(out[i].SignupTime, out[i].LastActiveTime)
		out[i].LTV = Value(out[i].MonthlyRevenue, out[i].LifetimeMonths)
	}
	return out
}
