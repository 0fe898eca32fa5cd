// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/steamlens/steamlens/internal/cache"
	"github.com/steamlens/steamlens/internal/models"
)

// UserIDRequest carries a validated user ID path parameter.
type UserIDRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

// RecomendacionJuego returns titles similar to the given item based on
// name and genre content similarity.
//
// Method: GET
// Path: /recomendacion_juego/{item_id}
func (h *Handler) RecomendacionJuego(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"item_id must be an integer", nil)
		return
	}

	cacheKey := cache.GenerateKey("recomendacion_juego", itemID)
	if h.serveCached(w, cacheKey, start) {
		return
	}

	items, message, err := h.engine.SimilarItems(itemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := &models.ItemRecommendationsResponse{
		ItemID:  itemID,
		Items:   items,
		Message: message,
	}
	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

// RecomendacionUsuario returns titles recommended for the given user based
// on the libraries of their most similar neighbors.
//
// Method: GET
// Path: /recomendacion_usuario/{user_id}
func (h *Handler) RecomendacionUsuario(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := chi.URLParam(r, "user_id")
	if unescaped, err := url.PathUnescape(userID); err == nil {
		userID = unescaped
	}
	req := UserIDRequest{UserID: userID}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	cacheKey := cache.GenerateKey("recomendacion_usuario", req)
	if h.serveCached(w, cacheKey, start) {
		return
	}

	items, err := h.engine.RecommendForUser(userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := &models.UserRecommendationsResponse{
		UserID: userID,
		Items:  items,
	}
	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}
