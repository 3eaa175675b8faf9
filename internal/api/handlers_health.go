// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// Health reports dataset stats, database reachability and uptime.
//
// Status is "healthy" when a dataset is loaded and the database (if any)
// answers, "degraded" when the database is configured but unreachable, and
// "unavailable" before the first dataset load.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:  "healthy",
		Version: h.cfg.Version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	stats, err := h.engine.Stats()
	if err != nil {
		health.Status = "unavailable"
	} else {
		health.Dataset = stats
	}

	if h.runs != nil {
		health.DatabaseReady = h.runs.Ping(r.Context()) == nil
		if !health.DatabaseReady && health.Status == "healthy" {
			health.Status = "degraded"
		}
	}

	respondSuccess(w, health, models.Metadata{})
}

// HealthLive returns 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady returns 200 once a dataset is loaded, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	_, err := h.engine.Stats()
	ready := err == nil

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"dataset_loaded": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
