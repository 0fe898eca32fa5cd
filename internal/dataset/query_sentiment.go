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

// sentimentLabels maps stored sentiment codes to response labels.
var sentimentLabels = map[int]string{
	0: "Negative",
	1: "Neutral",
	2: "Positive",
}

// SentimentBreakdown counts reviews by sentiment for titles released in the
// given year. The year filters on the title's release year, not the year the
// review was posted. Labels with zero reviews are omitted from the result,
// and a year with no reviewed titles at all yields an empty map.
func (s *Store) SentimentBreakdown(ctx context.Context, year int) (*models.SentimentBreakdownResponse, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, `
		SELECT sentiment, COUNT(*) AS reviews
		FROM interactions
		WHERE TRY_CAST(release_year AS INTEGER) = ?
		GROUP BY sentiment`, year)
	metrics.RecordDBQuery("sentiment", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("sentiment query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	resp := &models.SentimentBreakdownResponse{
		Year:   year,
		Counts: make(map[string]int64),
	}
	for rows.Next() {
		var sentiment int
		var count int64
		if err := rows.Scan(&sentiment, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment count: %w", err)
		}
		label, ok := sentimentLabels[sentiment]
		if !ok {
			// Load-time validation rejects codes outside {0,1,2}
			return nil, fmt.Errorf("unexpected sentiment code %d", sentiment)
		}
		if count > 0 {
			resp.Counts[label] = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sentiment iteration failed: %w", err)
	}

	return resp, nil
}
