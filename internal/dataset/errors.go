// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package dataset

import (
	"database/sql"
	"errors"
)

// Sentinel errors returned by query methods. Callers distinguish them with
// errors.Is to choose the HTTP status and error code.
var (
	// ErrNotFound indicates no rows matched the query criteria.
	ErrNotFound = errors.New("no matching records")

	// ErrInvalidInput indicates a malformed query parameter that survived
	// handler-level validation (e.g. an empty genre after trimming).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotLoaded indicates the export has not been loaded yet.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// isNoRows reports whether err is the empty-result sentinel from database/sql.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ignoreNoRows maps sql.ErrNoRows to nil for metric recording. An empty
// result set is a valid outcome, not a query failure.
func ignoreNoRows(err error) error {
	if isNoRows(err) {
		return nil
	}
	return err
}
