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
)

// This file contains the analytical query endpoints. All five follow the same
// shape: decode and validate the path parameter, consult the response cache,
// run the DuckDB query, cache and return. The endpoint paths mirror the
// public API contract, including its Spanish-named sentiment route.

// GenreRequest carries a validated genre path parameter.
type GenreRequest struct {
	Genre string `json:"genre" validate:"required,max=100"`
}

// YearRankingRequest carries a validated review year plus the ranking size.
type YearRankingRequest struct {
	Year  int `json:"year" validate:"gte=0,lte=9999"`
	Limit int `json:"limit" validate:"gte=1,lte=50"`
}

// decodeGenre extracts and validates the genre path parameter.
func decodeGenre(w http.ResponseWriter, r *http.Request) (string, bool) {
	genre := chi.URLParam(r, "genre")
	if unescaped, err := url.PathUnescape(genre); err == nil {
		genre = unescaped
	}

	req := GenreRequest{Genre: genre}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return "", false
	}
	return genre, true
}

// decodeYear extracts and validates a numeric year path parameter.
func decodeYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"year must be an integer", nil)
		return 0, false
	}
	return year, true
}

// decodeRanking builds a validated ranking request from the year path
// parameter and the optional limit query parameter (default 3).
func decodeRanking(w http.ResponseWriter, r *http.Request) (YearRankingRequest, bool) {
	year, ok := decodeYear(w, r)
	if !ok {
		return YearRankingRequest{}, false
	}

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"limit must be an integer", nil)
			return YearRankingRequest{}, false
		}
		limit = parsed
	}

	req := YearRankingRequest{Year: year, Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return YearRankingRequest{}, false
	}
	return req, true
}

// PlayTimeGenre returns the release year with the most accumulated playtime
// for the given genre.
//
// Method: GET
// Path: /PlayTimeGenre/{genre}
func (h *Handler) PlayTimeGenre(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	genre, ok := decodeGenre(w, r)
	if !ok {
		return
	}

	cacheKey := cache.GenerateKey("PlayTimeGenre", GenreRequest{Genre: genre})
	if h.serveCached(w, cacheKey, start) {
		return
	}

	resp, err := h.store.YearWithMostPlaytimeForGenre(r.Context(), genre)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

// UserForGenre returns the user with the most accumulated hours for the
// given genre, together with per-year hour totals across all users.
//
// Method: GET
// Path: /UserForGenre/{genre}
func (h *Handler) UserForGenre(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	genre, ok := decodeGenre(w, r)
	if !ok {
		return
	}

	cacheKey := cache.GenerateKey("UserForGenre", GenreRequest{Genre: genre})
	if h.serveCached(w, cacheKey, start) {
		return
	}

	resp, err := h.store.TopUserAndYearlyHoursForGenre(r.Context(), genre)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

// UsersRecommend returns the most-endorsed titles for a review year. An
// endorsement is a recommending review with neutral or positive sentiment.
//
// Method: GET
// Path: /UsersRecommend/{year}
func (h *Handler) UsersRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := decodeRanking(w, r)
	if !ok {
		return
	}

	cacheKey := cache.GenerateKey("UsersRecommend", req)
	if h.serveCached(w, cacheKey, start) {
		return
	}

	resp, err := h.store.TopKRecommendedItems(r.Context(), req.Year, req.Limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

// UsersNotRecommend returns the most-detracted titles for a review year. A
// detraction is a non-recommending review with negative sentiment.
//
// Method: GET
// Path: /UsersNotRecommend/{year}
func (h *Handler) UsersNotRecommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := decodeRanking(w, r)
	if !ok {
		return
	}

	cacheKey := cache.GenerateKey("UsersNotRecommend", req)
	if h.serveCached(w, cacheKey, start) {
		return
	}

	resp, err := h.store.TopKLeastRecommendedItems(r.Context(), req.Year, req.Limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

// SentimentAnalysis returns review counts per sentiment label for titles
// released in the given year. Labels with zero counts are omitted.
//
// Method: GET
// Path: /sentiment_analysis/{year}
func (h *Handler) SentimentAnalysis(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, ok := decodeYear(w, r)
	if !ok {
		return
	}

	cacheKey := cache.GenerateKey("sentiment_analysis", year)
	if h.serveCached(w, cacheKey, start) {
		return
	}

	resp, err := h.store.SentimentBreakdown(r.Context(), year)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.cache.Set(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}
