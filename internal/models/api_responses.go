// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"genre": "Sci-Fi", "ltv_to_cac": 0.42}],
//	  "metadata": {
//	    "timestamp": "2025-11-28T12:00:00Z",
//	    "query_time_ms": 45,
//	    "window_days": 7
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "window must be at most 3650",
//	    "details": {"field": "window"}
//	  },
//	  "metadata": {"timestamp": "2025-11-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when response was generated
//   - QueryTimeMS: Analysis time in milliseconds (0 if cached)
//   - Cached: Whether the analysis result was served from cache
//   - WindowDays: Attribution window the data was computed with, when applicable
//   - RunID: Identifier of the analysis run backing the response
//   - Pagination: Page information for paged endpoints
type Metadata struct {
	Timestamp   time.Time       `json:"timestamp"`
	QueryTimeMS int64           `json:"query_time_ms,omitempty"`
	Cached      bool            `json:"cached,omitempty"`
	WindowDays  *int            `json:"window_days,omitempty"`
	RunID       string          `json:"run_id,omitempty"`
	Pagination  *PaginationInfo `json:"pagination,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - BAD_REQUEST: Malformed request
//   - NOT_FOUND: Resource doesn't exist
//   - DATABASE_ERROR: Persistence failure
//   - INTERNAL_ERROR: Analysis failure
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo contains offset pagination metadata for the enriched ledger.
type PaginationInfo struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
	TotalCount int  `json:"total_count"`
}

// DatasetStats describes the dataset currently loaded into the engine.
type DatasetStats struct {
	Source       string    `json:"source"`
	ContentItems int       `json:"content_items"`
	Users        int       `json:"users"`
	Genres       []string  `json:"genres"`
	LoadedAt     time.Time `json:"loaded_at"`
	Version      uint64    `json:"version"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status        string       `json:"status"`
	Version       string       `json:"version"`
	Dataset       DatasetStats `json:"dataset"`
	DatabaseReady bool         `json:"database_ready"`
	Uptime        float64      `json:"uptime_seconds"`
}
