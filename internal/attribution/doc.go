// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package attribution assigns each subscriber to the content item that drove
their signup under a last-touch model.

# Model

A content item is eligible for a user when the user signed up on or after the
item's release and no later than release + window days (both ends inclusive).
Among the eligible items the one with the latest release wins. Items released
on the same instant are broken by the lexicographically smallest content id so
results never depend on catalog order.

When no item is eligible the user's existing attribution is kept. Running the
resolver therefore never turns an attributed user into an organic one; a user
becomes attributed only through a match or a prior attribution.

# Implementation

NewIndex sorts the catalog once by release time. Each lookup is a binary search
for the last item released at or before the signup, followed by a single
window check, giving O((n + m) log n) for n items and m users. The Index is
immutable after construction and safe for concurrent use, so one Index can
serve every window of a sensitivity sweep.

ResolveBruteForce implements the same rule as a direct scan over the catalog
and exists as a reference for property tests.

# Usage Example

	idx := attribution.NewIndex(catalog)
	resolved, stats, err := idx.Resolve(ledger, 7)
	if err != nil {
	    return err
	}
	logging.Info().
	    Int("attributed", stats.Attributed).
	    Int("organic", stats.Organic).
	    Msg("Attribution complete")

The input ledger is never modified.
*/
package attribution
