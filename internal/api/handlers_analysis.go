// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/dataset"
	"github.com/tomtom215/contentroi/internal/financials"
	"github.com/tomtom215/contentroi/internal/models"
)

// defaultUsersPageSize is the page size of /analysis/users when no limit is given.
const defaultUsersPageSize = 100

// runMetadata builds response metadata for a result.
func runMetadata(res *analysis.Result, cached bool) models.Metadata {
	meta := models.Metadata{
		Cached:     cached,
		WindowDays: intPtr(res.Run.WindowDays),
		RunID:      res.Run.RunID,
	}
	if !cached {
		meta.QueryTimeMS = res.Duration.Milliseconds()
	}
	return meta
}

// runForWindow runs the analysis for window. On failure it writes the error
// response and returns a nil result.
func (h *Handler) runForWindow(w http.ResponseWriter, r *http.Request, window int) (*analysis.Result, bool) {
	res, cached, err := h.engine.Run(r.Context(), window)
	if err != nil {
		respondEngineError(w, err)
		return nil, false
	}
	return res, cached
}

// window reads the window query parameter.
func (h *Handler) window(r *http.Request) (int, *models.APIError) {
	return getIntParam(r, "window", h.cfg.DefaultWindowDays)
}

// AnalysisShows returns per-show financials ranked by the sort metric.
//
// Query: window, sort (roi|revenue|users, default roi), limit (default top_n,
// 0 for all), genre.
func (h *Handler) AnalysisShows(w http.ResponseWriter, r *http.Request) {
	window, apiErr := h.window(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	limit, apiErr := getIntParam(r, "limit", h.cfg.TopN)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := ShowsRequest{
		Window: window,
		Sort:   strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort"))),
		Limit:  limit,
		Genre:  strings.TrimSpace(r.URL.Query().Get("genre")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	metric, err := financials.ParseSortMetric(req.Sort)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	res, cached := h.runForWindow(w, r, req.Window)
	if res == nil {
		return
	}

	shows := res.Run.Shows
	if req.Genre != "" {
		filtered := make([]models.ShowFinancials, 0)
		for i := range shows {
			if shows[i].Genre == req.Genre {
				filtered = append(filtered, shows[i])
			}
		}
		shows = filtered
	}

	respondSuccess(w, financials.TopShows(shows, metric, req.Limit), runMetadata(res, cached))
}

// AnalysisGenres returns per-genre CAC, LTV and LTV:CAC.
func (h *Handler) AnalysisGenres(w http.ResponseWriter, r *http.Request) {
	req, ok := h.windowRequest(w, r)
	if !ok {
		return
	}
	res, cached := h.runForWindow(w, r, req.Window)
	if res == nil {
		return
	}
	respondSuccess(w, res.Run.Genres, runMetadata(res, cached))
}

// AnalysisGenreLTV returns the average and total LTV of attributed users per
// genre, ordered by average LTV descending.
func (h *Handler) AnalysisGenreLTV(w http.ResponseWriter, r *http.Request) {
	req, ok := h.windowRequest(w, r)
	if !ok {
		return
	}
	res, cached := h.runForWindow(w, r, req.Window)
	if res == nil {
		return
	}
	respondSuccess(w, res.GenreLTV, runMetadata(res, cached))
}

func (h *Handler) windowRequest(w http.ResponseWriter, r *http.Request) (WindowRequest, bool) {
	window, apiErr := h.window(r)
	if apiErr == nil {
		req := WindowRequest{Window: window}
		if apiErr = validateRequest(&req); apiErr == nil {
			return req, true
		}
	}
	respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
	return WindowRequest{}, false
}

// AnalysisSummary returns headline metrics, optionally for one genre.
func (h *Handler) AnalysisSummary(w http.ResponseWriter, r *http.Request) {
	window, apiErr := h.window(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	req := SummaryRequest{
		Window: window,
		Genre:  strings.TrimSpace(r.URL.Query().Get("genre")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	res, cached := h.runForWindow(w, r, req.Window)
	if res == nil {
		return
	}
	respondSuccess(w, res.Summary(req.Genre), runMetadata(res, cached))
}

// AnalysisUsers returns one page of the enriched ledger.
func (h *Handler) AnalysisUsers(w http.ResponseWriter, r *http.Request) {
	window, apiErr := h.window(r)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	limit, apiErr := getIntParam(r, "limit", defaultUsersPageSize)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	offset, apiErr := getIntParam(r, "offset", 0)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	req := UsersRequest{
		Window: window,
		Limit:  limit,
		Offset: offset,
		Genre:  strings.TrimSpace(r.URL.Query().Get("genre")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	res, cached := h.runForWindow(w, r, req.Window)
	if res == nil {
		return
	}

	rows := res.Enriched
	if req.Genre != "" {
		filtered := make([]models.EnrichedUser, 0)
		for i := range rows {
			if rows[i].Genre == req.Genre {
				filtered = append(filtered, rows[i])
			}
		}
		rows = filtered
	}

	total := len(rows)
	start := min(req.Offset, total)
	end := min(start+req.Limit, total)

	meta := runMetadata(res, cached)
	meta.Pagination = &models.PaginationInfo{
		Limit:      req.Limit,
		Offset:     req.Offset,
		HasMore:    end < total,
		TotalCount: total,
	}
	respondSuccess(w, rows[start:end], meta)
}

// AnalysisUsersExport streams the resolved ledger, with lifetime months and
// LTV, as CSV.
func (h *Handler) AnalysisUsersExport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.windowRequest(w, r)
	if !ok {
		return
	}
	res, _ := h.runForWindow(w, r, req.Window)
	if res == nil {
		return
	}

	var buf bytes.Buffer
	if err := dataset.WriteLedgerCSV(&buf, res.Ledger); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to export ledger", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="users_window_%d.csv"`, req.Window))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// AnalysisSweep returns LTV:CAC for each genre across attribution windows.
//
// Query: windows (comma-separated, default from config), genres
// (comma-separated, default from config; "all" selects every catalog genre).
func (h *Handler) AnalysisSweep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	windows := h.cfg.SweepWindows
	if raw := q.Get("windows"); raw != "" {
		parsed, apiErr := parseCommaSeparatedInts("windows", raw)
		if apiErr != nil {
			respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
			return
		}
		windows = parsed
	}

	genres := h.cfg.SweepGenres
	if raw := strings.TrimSpace(q.Get("genres")); raw != "" {
		genres = parseCommaSeparated(raw)
		if strings.EqualFold(raw, "all") {
			genres = nil
		}
	}

	req := SweepRequest{Windows: windows, Genres: genres}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	res, cached, err := h.engine.Sweep(r.Context(), req.Windows, req.Genres)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	meta := models.Metadata{Cached: cached}
	if !cached {
		meta.QueryTimeMS = res.Duration.Milliseconds()
	}
	respondSuccess(w, res, meta)
}
