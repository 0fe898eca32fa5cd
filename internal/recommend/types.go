// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package recommend provides the recommendation engine: a user-neighbor
// collaborative filter over playtime vectors and a content-based similarity
// model over item metadata. Models are trained from the dataset store at
// startup and serve read-only lookups afterward.
package recommend

import (
	"context"
	"errors"
	"time"
)

// Interaction is one user-item playtime record from the dataset.
type Interaction struct {
	// UserID is the Steam user identifier.
	UserID string `json:"user_id"`

	// ItemID is the Steam app identifier.
	ItemID int64 `json:"item_id"`

	// ItemName is the title of the item.
	ItemName string `json:"item_name"`

	// PlaytimeMinutes is accumulated playtime. Never negative; the dataset
	// loader clamps it.
	PlaytimeMinutes float64 `json:"playtime_minutes"`
}

// Item is a catalog entry with the metadata the content model trains on.
type Item struct {
	// ID is the Steam app identifier.
	ID int64 `json:"id"`

	// Name is the item title.
	Name string `json:"name"`

	// Genres is the raw genre field from the export, typically a delimited
	// list like "Action;Indie".
	Genres string `json:"genres"`
}

// DataProvider supplies training data. Implemented by the dataset store.
type DataProvider interface {
	// Interactions returns all user-item playtime records.
	Interactions(ctx context.Context) ([]Interaction, error)

	// Items returns the deduplicated item catalog.
	Items(ctx context.Context) ([]Item, error)
}

// Algorithm is the interface both recommendation models implement.
type Algorithm interface {
	// Name returns the algorithm identifier.
	Name() string

	// IsTrained returns whether the model has been trained.
	IsTrained() bool

	// Version returns the model version (incremented on each train).
	Version() int

	// LastTrainedAt returns when the model was last trained.
	LastTrainedAt() time.Time
}

// UserModel is the user-based model the engine trains and queries. The
// algorithms package provides the production implementation; keeping the
// dependency as an interface means this package never imports it, so the
// wiring happens in cmd/server.
type UserModel interface {
	Algorithm

	// Train fits the model to the full interaction set.
	Train(ctx context.Context, interactions []Interaction) error

	// Recommend returns item names drawn from the user's nearest neighbors.
	Recommend(userID string) ([]string, error)

	// UserCount returns the number of users in the trained model.
	UserCount() int
}

// ItemModel is the content-based model the engine trains and queries.
type ItemModel interface {
	Algorithm

	// Train fits the model to the item catalog.
	Train(ctx context.Context, items []Item) error

	// SimilarTo returns up to n item names most similar to the given item,
	// plus a message when fewer were found.
	SimilarTo(itemID int64, n int) ([]string, string, error)

	// ItemCount returns the number of items in the trained model.
	ItemCount() int
}

// TrainingStatus describes the engine's model state for health and stats
// endpoints.
type TrainingStatus struct {
	// Trained indicates both models have completed at least one training run.
	Trained bool `json:"trained"`

	// LastTrainedAt is when training last completed.
	LastTrainedAt time.Time `json:"last_trained_at,omitempty"`

	// LastTrainingDurationMS is how long the last training took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms,omitempty"`

	// LastError contains the last training error, if any.
	LastError string `json:"last_error,omitempty"`

	// InteractionCount is the number of interactions in the training set.
	InteractionCount int `json:"interaction_count"`

	// UserCount is the number of unique users.
	UserCount int `json:"user_count"`

	// ItemCount is the number of unique items.
	ItemCount int `json:"item_count"`

	// ModelVersion is the current model version.
	ModelVersion int `json:"model_version"`
}

// Sentinel errors returned by recommendation lookups.
var (
	// ErrNotTrained indicates the models have not completed training yet.
	ErrNotTrained = errors.New("models not trained")

	// ErrUnknownUser indicates the user has no interactions in the training set.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownItem indicates the item is not in the trained catalog.
	ErrUnknownItem = errors.New("unknown item")
)
