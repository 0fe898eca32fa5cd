// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package recommend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/recommend"
	"github.com/steamlens/steamlens/internal/recommend/algorithms"
)

// fakeProvider serves fixed training data without a database.
type fakeProvider struct {
	interactions []recommend.Interaction
	items        []recommend.Item
	err          error
}

func (f *fakeProvider) Interactions(_ context.Context) ([]recommend.Interaction, error) {
	return f.interactions, f.err
}

func (f *fakeProvider) Items(_ context.Context) ([]recommend.Item, error) {
	return f.items, f.err
}

func testConfig() *config.RecommendConfig {
	return &config.RecommendConfig{
		Neighbors:        5,
		ItemsPerNeighbor: 5,
		SimilarItems:     5,
		SampleRatio:      1.0,
		NumWorkers:       2,
	}
}

func testProvider() *fakeProvider {
	return &fakeProvider{
		interactions: []recommend.Interaction{
			{UserID: "alice", ItemID: 1, ItemName: "Portal", PlaytimeMinutes: 600},
			{UserID: "alice", ItemID: 2, ItemName: "Portal 2", PlaytimeMinutes: 300},
			{UserID: "bob", ItemID: 1, ItemName: "Portal", PlaytimeMinutes: 500},
			{UserID: "bob", ItemID: 3, ItemName: "Dota 2", PlaytimeMinutes: 900},
		},
		items: []recommend.Item{
			{ID: 1, Name: "Portal", Genres: "Puzzle;Action"},
			{ID: 2, Name: "Portal 2", Genres: "Puzzle;Action"},
			{ID: 3, Name: "Dota 2", Genres: "Strategy"},
		},
	}
}

// newTestEngine wires the production models the same way cmd/server does.
func newTestEngine(provider recommend.DataProvider, cfg *config.RecommendConfig) *recommend.Engine {
	return recommend.NewEngine(provider, cfg,
		algorithms.NewUserNeighborCF(algorithms.UserCFConfig{
			Neighbors:        cfg.Neighbors,
			ItemsPerNeighbor: cfg.ItemsPerNeighbor,
			MinSimilarity:    cfg.MinSimilarity,
			NumWorkers:       cfg.NumWorkers,
		}),
		algorithms.NewContentTFIDF(algorithms.ContentConfig{
			SampleRatio: cfg.SampleRatio,
		}),
	)
}

func TestEngineTrainAndLookups(t *testing.T) {
	engine := newTestEngine(testProvider(), testConfig())

	if engine.IsTrained() {
		t.Fatal("expected untrained engine before Train")
	}

	if err := engine.Train(context.Background()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if !engine.IsTrained() {
		t.Fatal("expected trained engine after Train")
	}

	status := engine.Status()
	if !status.Trained {
		t.Error("expected status.Trained")
	}
	if status.UserCount != 2 || status.ItemCount != 3 {
		t.Errorf("unexpected counts: users=%d items=%d", status.UserCount, status.ItemCount)
	}
	if status.InteractionCount != 4 {
		t.Errorf("expected 4 interactions, got %d", status.InteractionCount)
	}

	names, err := engine.RecommendForUser("alice")
	if err != nil {
		t.Fatalf("RecommendForUser failed: %v", err)
	}
	if len(names) == 0 {
		t.Error("expected recommendations for alice")
	}

	similar, _, err := engine.SimilarItems(1)
	if err != nil {
		t.Fatalf("SimilarItems failed: %v", err)
	}
	if len(similar) == 0 || similar[0] != "Portal 2" {
		t.Errorf("expected Portal 2 as most similar, got %v", similar)
	}
}

func TestEngineLookupsBeforeTraining(t *testing.T) {
	engine := newTestEngine(testProvider(), testConfig())

	if _, err := engine.RecommendForUser("alice"); !errors.Is(err, recommend.ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
	if _, _, err := engine.SimilarItems(1); !errors.Is(err, recommend.ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}

func TestEngineTrainProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("store closed")}
	engine := newTestEngine(provider, testConfig())

	if err := engine.Train(context.Background()); err == nil {
		t.Fatal("expected training error from failing provider")
	}
	if engine.Status().LastError == "" {
		t.Error("expected LastError recorded in status")
	}
}

func TestEngineTrainEmptyDataset(t *testing.T) {
	provider := &fakeProvider{}
	engine := newTestEngine(provider, testConfig())

	if err := engine.Train(context.Background()); err == nil {
		t.Fatal("expected error training on empty dataset")
	}
	if engine.IsTrained() {
		t.Error("engine must stay untrained after failed training")
	}
}

func TestEngineUnknownLookups(t *testing.T) {
	engine := newTestEngine(testProvider(), testConfig())
	if err := engine.Train(context.Background()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if _, err := engine.RecommendForUser("nobody"); !errors.Is(err, recommend.ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
	if _, _, err := engine.SimilarItems(999); !errors.Is(err, recommend.ErrUnknownItem) {
		t.Errorf("expected ErrUnknownItem, got %v", err)
	}
}
