// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/steamlens/steamlens/internal/metrics"
	"github.com/steamlens/steamlens/internal/models"
)

// YearWithMostPlaytimeForGenre returns the release year whose titles in the
// given genre accumulated the most playtime hours.
//
// Genre matching is a substring match against the row's genres value, so
// "Action" matches rows tagged "Action;Indie". Rows whose release year is not
// parseable as an integer (e.g. "unavailable") are excluded. Ties break
// toward the earlier year.
func (s *Store) YearWithMostPlaytimeForGenre(ctx context.Context, genre string) (*models.GenreYearResponse, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, fmt.Errorf("%w: genre must not be empty", ErrInvalidInput)
	}
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	row := s.conn.QueryRowContext(ctx, `
		SELECT release_year, SUM(playtime_minutes) / 60.0 AS hours
		FROM interactions
		WHERE contains(genres, ?) AND TRY_CAST(release_year AS INTEGER) IS NOT NULL
		GROUP BY release_year
		ORDER BY hours DESC, release_year ASC
		LIMIT 1`, genre)

	var resp models.GenreYearResponse
	err := row.Scan(&resp.Year, &resp.TotalHours)
	metrics.RecordDBQuery("playtime_genre", time.Since(start), ignoreNoRows(err))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: no playtime records for genre %q", ErrNotFound, genre)
		}
		return nil, fmt.Errorf("playtime query failed: %w", err)
	}

	resp.Genre = genre
	return &resp, nil
}

// TopUserAndYearlyHoursForGenre returns the user with the most accumulated
// hours in the given genre plus the genre's per-year hour totals across all
// users.
//
// Unlike the playtime query, this one keeps rows only when the release year
// parses to an integer of at least 100, filtering both sentinel values and
// truncated two-digit years. When no rows match, an empty response is
// returned rather than an error: an unknown genre yields an empty breakdown,
// which callers serve as a normal result.
func (s *Store) TopUserAndYearlyHoursForGenre(ctx context.Context, genre string) (*models.GenreTopUserResponse, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, fmt.Errorf("%w: genre must not be empty", ErrInvalidInput)
	}
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}

	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	resp := &models.GenreTopUserResponse{
		Genre:       genre,
		YearlyHours: []models.YearHours{},
	}

	start := time.Now()
	row := s.conn.QueryRowContext(ctx, `
		SELECT user_id, SUM(playtime_minutes) / 60.0 AS hours
		FROM interactions
		WHERE contains(genres, ?) AND TRY_CAST(release_year AS INTEGER) >= 100
		GROUP BY user_id
		ORDER BY hours DESC, MIN(row_idx) ASC
		LIMIT 1`, genre)

	err := row.Scan(&resp.UserID, &resp.TotalHours)
	metrics.RecordDBQuery("user_for_genre", time.Since(start), ignoreNoRows(err))
	if err != nil {
		if isNoRows(err) {
			return resp, nil
		}
		return nil, fmt.Errorf("top user query failed: %w", err)
	}

	yearly, err := s.yearlyHoursForGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	resp.YearlyHours = yearly

	return resp, nil
}

// yearlyHoursForGenre sums hours per release year across all users of the
// genre, newest year first.
func (s *Store) yearlyHoursForGenre(ctx context.Context, genre string) ([]models.YearHours, error) {
	start := time.Now()
	rows, err := s.conn.QueryContext(ctx, `
		SELECT release_year, SUM(playtime_minutes) / 60.0 AS hours
		FROM interactions
		WHERE contains(genres, ?) AND TRY_CAST(release_year AS INTEGER) >= 100
		GROUP BY release_year
		ORDER BY TRY_CAST(release_year AS INTEGER) DESC`, genre)
	metrics.RecordDBQuery("yearly_hours", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("yearly hours query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	yearly := []models.YearHours{}
	for rows.Next() {
		var yh models.YearHours
		if err := rows.Scan(&yh.Year, &yh.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan yearly hours: %w", err)
		}
		yearly = append(yearly, yh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("yearly hours iteration failed: %w", err)
	}

	return yearly, nil
}
