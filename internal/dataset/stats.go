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

// Stats returns summary counts over the loaded interactions table.
func (s *Store) Stats(ctx context.Context) (*models.DatasetStats, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := s.conn.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT user_id), COUNT(DISTINCT item_id)
		FROM interactions`)

	stats := &models.DatasetStats{}
	err := row.Scan(&stats.Rows, &stats.Users, &stats.Items)
	metrics.RecordDBQuery("stats", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}

	stats.LoadedAt = s.LoadedAt()
	return stats, nil
}
