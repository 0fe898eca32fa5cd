// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/steamlens/steamlens/internal/config"
)

// testCSV is a small export exercising the interesting cases: a sentinel
// release year, a pre-1000 year caught by the >=100 guard, mixed review
// years, and both recommend polarities.
const testCSV = `user_id,item_id,item_name,genres,playtime_forever,release_anio,reviews_anio,reviews_recommend,sentiment_analysis
u1,1,Portal,Action;Puzzle,100,2015,2020,true,2
u1,2,Dota,Action,120,2016,2020,true,1
u2,2,Dota,Action,180,2016,2021,false,0
u2,3,Farm,Indie,300,unavailable,2020,true,2
u3,4,Old,Action,60,50,2020,false,0
`

func openTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg := &config.DatasetConfig{
		Path:         path,
		MaxMemory:    "512MB",
		Threads:      2,
		QueryTimeout: 10 * time.Second,
	}

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	return store
}

func TestLoadCountsRows(t *testing.T) {
	store := openTestStore(t)

	if !store.Loaded() {
		t.Error("expected store marked loaded")
	}
	if got := store.RowCount(); got != 5 {
		t.Errorf("expected 5 rows, got %d", got)
	}
	if store.LoadedAt().IsZero() {
		t.Error("expected LoadedAt set")
	}
}

func TestLoadRejectsBadSentiment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	bad := `user_id,item_id,item_name,genres,playtime_forever,release_anio,reviews_anio,reviews_recommend,sentiment_analysis
u1,1,Portal,Action,100,2015,2020,true,7
`
	if err := os.WriteFile(path, []byte(bad), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg := &config.DatasetConfig{Path: path, MaxMemory: "512MB", QueryTimeout: 10 * time.Second}
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closeQuietly(store)

	if err := store.Load(context.Background()); err == nil {
		t.Error("expected load failure for sentiment outside {0,1,2}")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	cfg := &config.DatasetConfig{Path: "/data/export.json", MaxMemory: "512MB", QueryTimeout: 10 * time.Second}
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closeQuietly(store)

	if err := store.Load(context.Background()); err == nil {
		t.Error("expected error for unsupported export format")
	}
}

func TestQueriesBeforeLoad(t *testing.T) {
	cfg := &config.DatasetConfig{Path: "/data/none.csv", MaxMemory: "512MB", QueryTimeout: 10 * time.Second}
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closeQuietly(store)

	ctx := context.Background()
	if _, err := store.YearWithMostPlaytimeForGenre(ctx, "Action"); err != ErrNotLoaded {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := store.Stats(ctx); err != ErrNotLoaded {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Rows != 5 || stats.Users != 3 || stats.Items != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestProviderInteractions(t *testing.T) {
	store := openTestStore(t)

	interactions, err := store.Interactions(context.Background())
	if err != nil {
		t.Fatalf("Interactions failed: %v", err)
	}
	if len(interactions) != 5 {
		t.Fatalf("expected 5 interactions, got %d", len(interactions))
	}
	// Export order preserved
	if interactions[0].UserID != "u1" || interactions[0].ItemName != "Portal" {
		t.Errorf("unexpected first interaction: %+v", interactions[0])
	}
	if interactions[0].PlaytimeMinutes != 100 {
		t.Errorf("expected 100 minutes, got %f", interactions[0].PlaytimeMinutes)
	}
}

func TestProviderItemsDeduplicated(t *testing.T) {
	store := openTestStore(t)

	items, err := store.Items(context.Background())
	if err != nil {
		t.Fatalf("Items failed: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 deduplicated items, got %d", len(items))
	}
	// First-appearance order: Portal, Dota, Farm, Old
	wantNames := []string{"Portal", "Dota", "Farm", "Old"}
	for i, want := range wantNames {
		if items[i].Name != want {
			t.Errorf("item %d: expected %q, got %q", i, want, items[i].Name)
		}
	}
	if items[0].Genres != "Action;Puzzle" {
		t.Errorf("unexpected genres: %q", items[0].Genres)
	}
}
