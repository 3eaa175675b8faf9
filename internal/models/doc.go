// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package models defines data structures for the ContentROI application.

This package contains the catalog and ledger records the analysis runs over,
the financial rollups it produces, and the API response envelope shared by
every HTTP endpoint. It is the single source of truth for data structure
definitions and has no dependencies on other internal packages.

Key Components:

  - ContentItem: One title in the content catalog (release date, genre, production cost)
  - UserRecord: One subscriber in the user ledger (signup, last activity, revenue, attribution)
  - Ratio: Optional derived metric, undefined when its denominator is zero
  - ShowFinancials / GenreFinancials: Per-show ROI and per-genre CAC/LTV rollups
  - SweepRow: One (window, genre) point of the sensitivity sweep
  - EnrichedUser / GenreLTV / Summary: Dashboard-oriented views of an analysis run
  - APIResponse: Standardized API response wrapper

Undefined Metrics:

Ratios whose denominator is zero are never reported as NaN, infinity or zero.
They are carried as a Ratio with Valid set to false and serialize as JSON null:

	roi := models.Divide(revenue-cost, cost)
	if !roi.Valid {
	    // production cost was zero
	}

Organic Users:

A UserRecord with an empty AttributedContentID is organic. The reserved genre
label OrganicGenre is used in enriched views for these users and may never
appear as a catalog genre.

Thread Safety:

All types are plain values. Slices of records are treated as immutable once
loaded; every analysis step returns fresh copies rather than mutating input.
*/
package models
