// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/steamlens/steamlens/internal/metrics"
	"github.com/steamlens/steamlens/internal/models"
)

// TopKRecommendedItems ranks items by the number of endorsing reviews posted
// in the given year. A review endorses an item when it recommends it and its
// sentiment is neutral or positive. Ties break toward the item that appears
// earlier in the export. Fewer than k matching items is not an error; the
// result simply has fewer entries.
func (s *Store) TopKRecommendedItems(ctx context.Context, year, k int) (*models.RankedItemsResponse, error) {
	return s.rankItemsByReviews(ctx, year, k, "top_recommended",
		"review_year = ? AND recommend AND sentiment >= 1")
}

// TopKLeastRecommendedItems ranks items by the number of detracting reviews
// posted in the given year. A review detracts when it does not recommend the
// item and its sentiment is negative. Both conditions must hold: a negative
// review that still recommends the item counts for neither ranking.
func (s *Store) TopKLeastRecommendedItems(ctx context.Context, year, k int) (*models.RankedItemsResponse, error) {
	return s.rankItemsByReviews(ctx, year, k, "least_recommended",
		"review_year = ? AND NOT recommend AND sentiment = 0")
}

func (s *Store) rankItemsByReviews(ctx context.Context, year, k int, operation, filter string) (*models.RankedItemsResponse, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", ErrInvalidInput)
	}
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT item_name, COUNT(*) AS reviews
		FROM interactions
		WHERE %s
		GROUP BY item_name
		ORDER BY reviews DESC, MIN(row_idx) ASC
		LIMIT ?`, filter)

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, query, year, k)
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("review ranking query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	resp := &models.RankedItemsResponse{
		Year:  year,
		Items: []models.RankedItem{},
	}
	rank := 1
	for rows.Next() {
		item := models.RankedItem{Rank: rank}
		if err := rows.Scan(&item.ItemName, &item.Reviews); err != nil {
			return nil, fmt.Errorf("failed to scan ranked item: %w", err)
		}
		resp.Items = append(resp.Items, item)
		rank++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review ranking iteration failed: %w", err)
	}

	return resp, nil
}
