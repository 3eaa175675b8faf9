// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package database

import (
	"database/sql"
	"errors"
	"io"

	"github.com/tomtom215/contentroi/internal/logging"
)

// ErrRunNotFound is returned when a persisted analysis run does not exist.
var ErrRunNotFound = errors.New("analysis run not found")

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource in an error path where the Close error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// rollbackOnError rolls tx back if *errp is set, logging rollback failures.
//
//	defer rollbackOnError(tx, &err)
func rollbackOnError(tx *sql.Tx, errp *error) {
	if *errp == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		logging.Error().Err(rbErr).AnErr("original_error", *errp).Msg("Transaction rollback failed")
	}
}
