// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package models

import "time"

// GenreYearResponse is the payload for the playtime-by-genre query: the
// release year whose titles in the genre accumulated the most hours.
type GenreYearResponse struct {
	Genre      string  `json:"genre"`
	Year       string  `json:"year"`
	TotalHours float64 `json:"total_hours"`
}

// YearHours is one year's accumulated playtime in hours.
type YearHours struct {
	Year  string  `json:"year"`
	Hours float64 `json:"hours"`
}

// GenreTopUserResponse is the payload for the top-user-by-genre query.
// YearlyHours covers all users of the genre, not just the top user, and is
// ordered by year descending.
type GenreTopUserResponse struct {
	Genre       string      `json:"genre"`
	UserID      string      `json:"user_id"`
	TotalHours  float64     `json:"total_hours"`
	YearlyHours []YearHours `json:"yearly_hours"`
}

// RankedItem is one entry in a review-count ranking. Rank starts at 1.
type RankedItem struct {
	Rank     int    `json:"rank"`
	ItemName string `json:"item_name"`
	Reviews  int64  `json:"reviews"`
}

// RankedItemsResponse is the payload for the most/least recommended queries.
type RankedItemsResponse struct {
	Year  int          `json:"year"`
	Items []RankedItem `json:"items"`
}

// SentimentBreakdownResponse maps sentiment labels to review counts for
// titles released in the given year. Labels with a zero count are omitted.
type SentimentBreakdownResponse struct {
	Year   int              `json:"year"`
	Counts map[string]int64 `json:"counts"`
}

// ItemRecommendationsResponse is the payload for content-based item similarity.
type ItemRecommendationsResponse struct {
	ItemID  int64    `json:"item_id"`
	Items   []string `json:"recommended"`
	Message string   `json:"message,omitempty"`
}

// UserRecommendationsResponse is the payload for neighbor-based user recommendations.
type UserRecommendationsResponse struct {
	UserID string   `json:"user_id"`
	Items  []string `json:"recommended"`
}

// DatasetStats summarizes the loaded dataset, served at /api/v1/stats.
type DatasetStats struct {
	Rows     int64     `json:"rows"`
	Users    int64     `json:"users"`
	Items    int64     `json:"items"`
	LoadedAt time.Time `json:"loaded_at"`
}
