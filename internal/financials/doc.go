// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

/*
Package financials rolls an attributed, LTV-populated ledger up into per-show
and per-genre acquisition economics.

Per show, TotalRevenue is the summed LTV of its attributed users and ROI is
(revenue - cost) / cost. Per genre, CAC is total production cost divided by
attributed users and LTV:CAC compares average LTV with that CAC.

Organic users never contribute to either view. Users whose attribution names
content missing from the catalog are excluded as well and reported through
Report.UnresolvedUsers. Every ratio is a models.Ratio so zero denominators
surface as undefined values instead of NaN or infinity.

The package also produces the dashboard views: Enrich joins users with their
content, LTVByGenre and Summarize aggregate the enriched rows, and TopShows
ranks shows by ROI, revenue or attributed users with a total order.
*/
package financials
