// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"context"
	"time"

	"github.com/steamlens/steamlens/internal/cache"
	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/models"
)

// Version is the service version reported by the health endpoint. Overridden
// at build time via -ldflags.
var Version = "dev"

// QueryStore is the analytical query surface the handlers depend on. The
// dataset package provides the production implementation; tests substitute
// fakes.
type QueryStore interface {
	Ping(ctx context.Context) error
	Loaded() bool
	LoadedAt() time.Time
	RowCount() int64
	Stats(ctx context.Context) (*models.DatasetStats, error)
	YearWithMostPlaytimeForGenre(ctx context.Context, genre string) (*models.GenreYearResponse, error)
	TopUserAndYearlyHoursForGenre(ctx context.Context, genre string) (*models.GenreTopUserResponse, error)
	TopKRecommendedItems(ctx context.Context, year, k int) (*models.RankedItemsResponse, error)
	TopKLeastRecommendedItems(ctx context.Context, year, k int) (*models.RankedItemsResponse, error)
	SentimentBreakdown(ctx context.Context, year int) (*models.SentimentBreakdownResponse, error)
}

// Recommender is the recommendation surface the handlers depend on.
type Recommender interface {
	RecommendForUser(userID string) ([]string, error)
	SimilarItems(itemID int64) ([]string, string, error)
	IsTrained() bool
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor (this file)
//   - handlers_helpers.go: Shared response helpers
//   - handlers_queries.go: Playtime, review ranking, and sentiment endpoints
//   - handlers_recommend.go: Recommendation endpoints
//   - handlers_health.go: Health and stats endpoints
//   - errors.go: Domain error to HTTP status mapping
type Handler struct {
	store     QueryStore
	engine    Recommender
	config    *config.Config
	cache     *cache.Cache
	startTime time.Time
}

// NewHandler creates a new API handler. Query responses are cached with the
// configured TTL; the dataset is a static export, so cached entries never go
// stale within a process lifetime.
func NewHandler(store QueryStore, engine Recommender, cfg *config.Config) *Handler {
	ttl := 5 * time.Minute
	if cfg != nil && cfg.API.CacheTTL > 0 {
		ttl = cfg.API.CacheTTL
	}

	return &Handler{
		store:     store,
		engine:    engine,
		config:    cfg,
		cache:     cache.New(ttl, "api"),
		startTime: time.Now(),
	}
}

// ClearCache invalidates all cached query responses.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Query cache cleared")
	}
}

// GetCacheStats returns cache performance statistics.
func (h *Handler) GetCacheStats() cache.Stats {
	if h.cache != nil {
		return h.cache.GetStats()
	}
	return cache.Stats{}
}
