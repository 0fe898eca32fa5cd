// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package algorithms

import (
	"context"
	"errors"
	"testing"

	"github.com/steamlens/steamlens/internal/recommend"
)

func testInteractions() []recommend.Interaction {
	// alice and bob share two games; carol plays something else entirely.
	return []recommend.Interaction{
		{UserID: "alice", ItemID: 10, ItemName: "Portal", PlaytimeMinutes: 600},
		{UserID: "alice", ItemID: 20, ItemName: "Half-Life", PlaytimeMinutes: 300},
		{UserID: "bob", ItemID: 10, ItemName: "Portal", PlaytimeMinutes: 500},
		{UserID: "bob", ItemID: 20, ItemName: "Half-Life", PlaytimeMinutes: 400},
		{UserID: "bob", ItemID: 30, ItemName: "Dota 2", PlaytimeMinutes: 1000},
		{UserID: "carol", ItemID: 40, ItemName: "Stardew Valley", PlaytimeMinutes: 2000},
	}
}

func TestUserCFTrainAndRecommend(t *testing.T) {
	cf := NewUserNeighborCF(UserCFConfig{Neighbors: 2, ItemsPerNeighbor: 3, NumWorkers: 2})

	if cf.IsTrained() {
		t.Fatal("expected untrained model before Train")
	}

	if err := cf.Train(context.Background(), testInteractions()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if !cf.IsTrained() {
		t.Fatal("expected trained model after Train")
	}
	if cf.Version() != 1 {
		t.Errorf("expected version 1, got %d", cf.Version())
	}

	names, err := cf.Recommend("alice")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	// bob is alice's only overlapping neighbor; his top items lead with Dota 2
	if len(names) == 0 {
		t.Fatal("expected recommendations for alice")
	}
	if names[0] != "Dota 2" {
		t.Errorf("expected bob's top game first, got %v", names)
	}
	for i, a := range names {
		for _, b := range names[i+1:] {
			if a == b {
				t.Errorf("duplicate name in recommendations: %q", a)
			}
		}
	}
}

func TestUserCFRecommendUnknownUser(t *testing.T) {
	cf := NewUserNeighborCF(DefaultUserCFConfig())
	if err := cf.Train(context.Background(), testInteractions()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if _, err := cf.Recommend("nobody"); !errors.Is(err, recommend.ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
}

func TestUserCFRecommendBeforeTraining(t *testing.T) {
	cf := NewUserNeighborCF(DefaultUserCFConfig())

	if _, err := cf.Recommend("alice"); !errors.Is(err, recommend.ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}

func TestUserCFDisjointUserHasNoNeighbors(t *testing.T) {
	cf := NewUserNeighborCF(DefaultUserCFConfig())
	if err := cf.Train(context.Background(), testInteractions()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// carol shares no items with anyone, so cosine is zero everywhere
	names, err := cf.Recommend("carol")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no recommendations for disjoint user, got %v", names)
	}
}

func TestUserCFSumsDuplicateRecords(t *testing.T) {
	interactions := []recommend.Interaction{
		{UserID: "u1", ItemID: 1, ItemName: "A", PlaytimeMinutes: 100},
		{UserID: "u1", ItemID: 1, ItemName: "A", PlaytimeMinutes: 200},
		{UserID: "u1", ItemID: 2, ItemName: "B", PlaytimeMinutes: 250},
	}

	cf := NewUserNeighborCF(DefaultUserCFConfig())
	if err := cf.Train(context.Background(), interactions); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// Item 1 sums to 300 minutes, so it must rank above item 2 at 250
	if got := cf.userTopItems["u1"]; len(got) != 2 || got[0] != 1 {
		t.Errorf("expected item 1 ranked first after summing, got %v", got)
	}
}

func TestUserCFTrainCancelledContext(t *testing.T) {
	cf := NewUserNeighborCF(DefaultUserCFConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cf.Train(ctx, testInteractions()); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestUserCFNeighborOrderDeterministic(t *testing.T) {
	// u2 and u3 have identical vectors relative to u1; the tie must break
	// toward the smaller user ID every run.
	interactions := []recommend.Interaction{
		{UserID: "u1", ItemID: 1, ItemName: "A", PlaytimeMinutes: 100},
		{UserID: "u2", ItemID: 1, ItemName: "A", PlaytimeMinutes: 100},
		{UserID: "u3", ItemID: 1, ItemName: "A", PlaytimeMinutes: 100},
	}

	for run := 0; run < 5; run++ {
		cf := NewUserNeighborCF(UserCFConfig{Neighbors: 1, ItemsPerNeighbor: 1, NumWorkers: 3})
		if err := cf.Train(context.Background(), interactions); err != nil {
			t.Fatalf("Train failed: %v", err)
		}
		neighbors := cf.userNeighbors["u1"]
		if len(neighbors) != 1 || neighbors[0].ID != "u2" {
			t.Fatalf("run %d: expected u2 as tie-broken neighbor, got %v", run, neighbors)
		}
	}
}

func TestSparseCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b map[int64]float64
		want float64
	}{
		{"identical vectors", map[int64]float64{1: 3, 2: 4}, map[int64]float64{1: 3, 2: 4}, 1.0},
		{"orthogonal vectors", map[int64]float64{1: 5}, map[int64]float64{2: 5}, 0.0},
		{"empty vector", map[int64]float64{}, map[int64]float64{1: 1}, 0.0},
		// Accumulated playtime reaches six figures of minutes; similarity
		// must stay scale-invariant there.
		{"scaled vectors", map[int64]float64{1: 100000, 2: 50000}, map[int64]float64{1: 2000, 2: 1000}, 1.0},
		{"large half overlap", map[int64]float64{1: 100000}, map[int64]float64{1: 100000, 2: 100000}, 0.7071067811865476},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sparseCosine(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("sparseCosine = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestUserCFRanksNeighborsAtRealisticPlaytimes(t *testing.T) {
	// twin plays the same two games as alice in the same 2:1 ratio, just
	// far less of them; partial overlaps on a single game. Cosine says
	// twin (1.0) beats partial (~0.63) regardless of magnitude, so with a
	// single neighbor slot alice must get twin's remaining game, not
	// partial's.
	interactions := []recommend.Interaction{
		{UserID: "alice", ItemID: 1, ItemName: "Portal", PlaytimeMinutes: 100000},
		{UserID: "alice", ItemID: 2, ItemName: "Half-Life", PlaytimeMinutes: 50000},
		{UserID: "twin", ItemID: 1, ItemName: "Portal", PlaytimeMinutes: 2000},
		{UserID: "twin", ItemID: 2, ItemName: "Half-Life", PlaytimeMinutes: 1000},
		{UserID: "twin", ItemID: 3, ItemName: "Portal 2", PlaytimeMinutes: 500},
		{UserID: "partial", ItemID: 1, ItemName: "Portal", PlaytimeMinutes: 90000},
		{UserID: "partial", ItemID: 4, ItemName: "Rust", PlaytimeMinutes: 90000},
	}

	cf := NewUserNeighborCF(UserCFConfig{Neighbors: 1, ItemsPerNeighbor: 5, NumWorkers: 2})
	if err := cf.Train(context.Background(), interactions); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	neighbors := cf.userNeighbors["alice"]
	if len(neighbors) != 1 || neighbors[0].ID != "twin" {
		t.Fatalf("expected twin as nearest neighbor, got %v", neighbors)
	}
	if sim := neighbors[0].Similarity; sim < 0.9999 || sim > 1.0001 {
		t.Errorf("expected similarity ~1.0 for same-direction vectors, got %f", sim)
	}

	names, err := cf.Recommend("alice")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	found := false
	for _, name := range names {
		if name == "Rust" {
			t.Errorf("partial's game recommended over twin's: %v", names)
		}
		if name == "Portal 2" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected twin's Portal 2 in recommendations, got %v", names)
	}
}
