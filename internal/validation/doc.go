// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages. It is used at two boundaries: dataset records as they are loaded,
// and HTTP query parameters as they are parsed.
//
// # Quick Start
//
//	type ShowsRequest struct {
//	    Window int    `json:"window" validate:"nonnegwindow"`
//	    Sort   string `json:"sort" validate:"omitempty,oneof=roi revenue users"`
//	    Limit  int    `json:"limit" validate:"min=0,max=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - notorganic: string must not equal the reserved "Organic" genre label
//   - nonnegwindow: integer attribution window in [0, models.MaxWindowDays]
//
// # Field Names
//
// Errors name fields by their json tag when present ("production_cost"
// rather than "ProductionCost"), so messages match CSV headers and query
// parameters.
//
// # Thread Safety
//
// The validator instance is created once via sync.Once and caches struct
// metadata; it is safe for concurrent use.
package validation
