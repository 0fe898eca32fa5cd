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
	"github.com/steamlens/steamlens/internal/recommend"
)

// The store implements recommend.DataProvider for model training.
var _ recommend.DataProvider = (*Store)(nil)

// Interactions returns all user-item playtime records in export order.
func (s *Store) Interactions(ctx context.Context) ([]recommend.Interaction, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, `
		SELECT user_id, item_id, item_name, playtime_minutes
		FROM interactions
		ORDER BY row_idx`)
	metrics.RecordDBQuery("interactions", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("interactions query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	interactions := make([]recommend.Interaction, 0, s.RowCount())
	for rows.Next() {
		var inter recommend.Interaction
		if err := rows.Scan(&inter.UserID, &inter.ItemID, &inter.ItemName, &inter.PlaytimeMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, inter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("interactions iteration failed: %w", err)
	}

	return interactions, nil
}

// Items returns the item catalog deduplicated by ID. The first record of
// each item in export order is authoritative for name and genres, matching
// the content model's dedupe rule.
func (s *Store) Items(ctx context.Context) ([]recommend.Item, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, `
		SELECT item_id, item_name, genres
		FROM (
			SELECT item_id, item_name, genres,
				row_number() OVER (PARTITION BY item_id ORDER BY row_idx) AS rn,
				MIN(row_idx) OVER (PARTITION BY item_id) AS first_idx
			FROM interactions
		)
		WHERE rn = 1
		ORDER BY first_idx`)
	metrics.RecordDBQuery("items", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("items query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	items := []recommend.Item{}
	for rows.Next() {
		var item recommend.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Genres); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items iteration failed: %w", err)
	}

	return items, nil
}
