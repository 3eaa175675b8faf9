// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package api exposes the analysis engine over HTTP using the Chi router.
//
// Every JSON endpoint answers with the models.APIResponse envelope:
//
//	{"status": "success", "data": ..., "metadata": {"timestamp": ..., "window_days": 7}}
//
// Errors carry a machine-readable code (VALIDATION_ERROR, NOT_FOUND,
// INTERNAL_ERROR, DATABASE_ERROR, SERVICE_UNAVAILABLE, RATE_LIMIT_EXCEEDED).
// Undefined ratios are serialized as null.
//
// Routes:
//
//	GET /api/v1/health                     health and dataset stats
//	GET /api/v1/health/live                liveness probe
//	GET /api/v1/health/ready               readiness probe
//	GET /api/v1/analysis/shows             per-show ROI, ranked
//	GET /api/v1/analysis/genres            per-genre CAC, LTV and LTV:CAC
//	GET /api/v1/analysis/genres/ltv        average and total LTV per genre
//	GET /api/v1/analysis/summary           headline metrics, optional genre filter
//	GET /api/v1/analysis/users             enriched ledger, paged
//	GET /api/v1/analysis/users/export      resolved ledger as CSV
//	GET /api/v1/analysis/sweep             LTV:CAC across attribution windows
//	GET /api/v1/runs                       persisted run headers
//	GET /api/v1/runs/{id}                  one persisted run
//	GET /metrics                           Prometheus metrics
package api
