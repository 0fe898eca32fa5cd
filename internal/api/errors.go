// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"errors"
	"net/http"

	"github.com/steamlens/steamlens/internal/dataset"
	"github.com/steamlens/steamlens/internal/recommend"
)

// respondDomainError maps domain sentinel errors onto HTTP status codes and
// stable error codes:
//
//	ErrInvalidInput             -> 400 VALIDATION_ERROR
//	ErrNotFound / unknown id    -> 404 NOT_FOUND
//	ErrNotLoaded / ErrNotTrained-> 503 NOT_READY
//	anything else               -> 500 COMPUTATION_ERROR
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dataset.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, dataset.ErrNotFound),
		errors.Is(err, recommend.ErrUnknownUser),
		errors.Is(err, recommend.ErrUnknownItem):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, dataset.ErrNotLoaded):
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "dataset not loaded yet", err)
	case errors.Is(err, recommend.ErrNotTrained):
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "recommendation models not trained yet", err)
	default:
		respondError(w, http.StatusInternalServerError, "COMPUTATION_ERROR", "query failed", err)
	}
}
