// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

// Request structs for the analysis endpoints. Query parameters are parsed into
// these and checked with validateRequest before the engine is called.
//
// The custom tags come from internal/validation:
//   - nonnegwindow: attribution window in [0, 3650] days
//   - notorganic: genre is not the reserved "Organic" label

// WindowRequest is the query for endpoints that only take a window.
type WindowRequest struct {
	Window int `json:"window" validate:"nonnegwindow"`
}

// ShowsRequest represents the validated query parameters for /analysis/shows.
//
// Fields:
//   - Window: attribution window in days
//   - Sort: ranking metric (roi, revenue or users)
//   - Limit: number of shows to return, 0 for all
//   - Genre: optional genre filter
type ShowsRequest struct {
	Window int    `json:"window" validate:"nonnegwindow"`
	Sort   string `json:"sort" validate:"omitempty,oneof=roi revenue users"`
	Limit  int    `json:"limit" validate:"min=0,max=10000"`
	Genre  string `json:"genre" validate:"omitempty,max=100,notorganic"`
}

// SummaryRequest represents the validated query parameters for /analysis/summary.
// Genre may be "Organic" to summarize unattributed users.
type SummaryRequest struct {
	Window int    `json:"window" validate:"nonnegwindow"`
	Genre  string `json:"genre" validate:"omitempty,max=100"`
}

// UsersRequest represents the validated query parameters for /analysis/users.
// Genre may be "Organic" here to list unattributed users.
type UsersRequest struct {
	Window int    `json:"window" validate:"nonnegwindow"`
	Limit  int    `json:"limit" validate:"min=1,max=1000"`
	Offset int    `json:"offset" validate:"min=0"`
	Genre  string `json:"genre" validate:"omitempty,max=100"`
}

// SweepRequest represents the validated query parameters for /analysis/sweep.
type SweepRequest struct {
	Windows []int    `json:"windows" validate:"min=1,max=50,dive,nonnegwindow"`
	Genres  []string `json:"genres" validate:"max=50,dive,required,max=100,notorganic"`
}

// RunsRequest represents the validated query parameters for /runs.
type RunsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=100"`
}
