// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/contentroi/internal/analysis"
	"github.com/tomtom215/contentroi/internal/attribution"
	"github.com/tomtom215/contentroi/internal/database"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrPersistenceDisabled is returned by run endpoints when results are not
// being stored.
var ErrPersistenceDisabled = errors.New("result persistence is disabled")

// classifyError maps an engine or store error to an HTTP status and code.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, attribution.ErrInvalidWindow):
		return http.StatusBadRequest, ErrCodeValidation
	case errors.Is(err, analysis.ErrNoDataset), errors.Is(err, ErrPersistenceDisabled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	case errors.Is(err, database.ErrRunNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}
