// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/contentroi/internal/models"
)

const defaultRunsLimit = 20

// Runs lists persisted run headers, newest first.
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondEngineError(w, ErrPersistenceDisabled)
		return
	}
	limit, apiErr := getIntParam(r, "limit", defaultRunsLimit)
	if apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	req := RunsRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	runs, err := h.runs.LatestRuns(r.Context(), req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to list analysis runs", err)
		return
	}
	respondSuccess(w, runs, models.Metadata{})
}

// RunByID returns one persisted run with its show and genre rollups.
func (h *Handler) RunByID(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondEngineError(w, ErrPersistenceDisabled)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	run, err := h.runs.GetRun(r.Context(), id)
	if err != nil {
		status, code := classifyError(err)
		if status == http.StatusNotFound {
			respondError(w, status, code, "analysis run not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to load analysis run", err)
		return
	}
	respondSuccess(w, run, models.Metadata{RunID: run.RunID, WindowDays: intPtr(run.WindowDays)})
}

// SweepByID returns the rows of one persisted sweep.
func (h *Handler) SweepByID(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondEngineError(w, ErrPersistenceDisabled)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	rows, err := h.runs.LoadSweep(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to load sweep", err)
		return
	}
	if len(rows) == 0 {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "sweep not found", nil)
		return
	}
	respondSuccess(w, rows, models.Metadata{})
}
