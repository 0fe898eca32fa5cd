// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/metrics"
)

// Load ingests the export file into the interactions table, replacing any
// previously loaded data. Supported formats are parquet and CSV, chosen by
// file extension.
//
// The loaded schema normalizes the raw export:
//   - playtime_minutes is clamped to non-negative
//   - release_year stays VARCHAR because the export contains sentinel values
//     like "unavailable"; year queries TRY_CAST it per row
//   - review_year is TRY_CAST to INTEGER at load, unparseable values become NULL
//   - row_idx preserves the export's row order for deterministic tie-breaks
func (s *Store) Load(ctx context.Context) error {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	source, err := sourceExpr(s.cfg.Path)
	if err != nil {
		return err
	}

	start := time.Now()

	createSQL := fmt.Sprintf(`
		CREATE OR REPLACE TABLE interactions AS
		SELECT
			row_number() OVER () AS row_idx,
			CAST(user_id AS VARCHAR) AS user_id,
			CAST(item_id AS BIGINT) AS item_id,
			CAST(item_name AS VARCHAR) AS item_name,
			COALESCE(CAST(genres AS VARCHAR), '') AS genres,
			greatest(COALESCE(CAST(playtime_forever AS DOUBLE), 0), 0) AS playtime_minutes,
			CAST(release_anio AS VARCHAR) AS release_year,
			TRY_CAST(reviews_anio AS INTEGER) AS review_year,
			COALESCE(CAST(reviews_recommend AS BOOLEAN), false) AS recommend,
			CAST(sentiment_analysis AS INTEGER) AS sentiment
		FROM %s`, source)

	if _, err := s.conn.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to load export %s: %w", s.cfg.Path, err)
	}

	if err := s.validateLoaded(ctx); err != nil {
		return err
	}

	var rows int64
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM interactions").Scan(&rows); err != nil {
		return fmt.Errorf("failed to count loaded rows: %w", err)
	}

	s.mu.Lock()
	s.loaded = true
	s.rowCount = rows
	s.loadedAt = time.Now()
	s.mu.Unlock()

	elapsed := time.Since(start)
	metrics.DatasetRows.Set(float64(rows))
	metrics.DatasetLoadDuration.Observe(elapsed.Seconds())

	logging.Info().
		Str("path", s.cfg.Path).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg("Dataset export loaded")

	return nil
}

// validateLoaded rejects exports whose sentiment labels fall outside the
// supported {0, 1, 2} range. A bad export fails fast at startup rather than
// producing silently wrong sentiment breakdowns.
func (s *Store) validateLoaded(ctx context.Context) error {
	var bad int64
	err := s.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interactions WHERE sentiment IS NULL OR sentiment NOT IN (0, 1, 2)",
	).Scan(&bad)
	if err != nil {
		return fmt.Errorf("failed to validate sentiment labels: %w", err)
	}
	if bad > 0 {
		return fmt.Errorf("export contains %d rows with sentiment outside {0,1,2}", bad)
	}
	return nil
}

// sourceExpr builds the DuckDB table function call for the export file.
func sourceExpr(path string) (string, error) {
	escaped := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return fmt.Sprintf("read_parquet('%s')", escaped), nil
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s', header=true)", escaped), nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want .parquet or .csv)", filepath.Ext(path))
	}
}
