// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/metrics"
)

// Engine coordinates the two recommendation models and exposes lookup
// methods for the API layer. Training replaces both models' state under
// their own locks, so lookups stay available while a retrain runs.
type Engine struct {
	provider DataProvider
	cfg      *config.RecommendConfig

	userCF  UserModel
	content ItemModel

	mu     sync.RWMutex
	status TrainingStatus
}

// NewEngine creates an engine driving the given untrained models.
func NewEngine(provider DataProvider, cfg *config.RecommendConfig, userCF UserModel, content ItemModel) *Engine {
	return &Engine{
		provider: provider,
		cfg:      cfg,
		userCF:   userCF,
		content:  content,
	}
}

// Train fetches the dataset and fits both models. Safe to call again for a
// scheduled retrain; lookups served during training see the previous models.
func (e *Engine) Train(ctx context.Context) error {
	start := time.Now()

	interactions, err := e.provider.Interactions(ctx)
	if err != nil {
		e.recordTrainError(err)
		return fmt.Errorf("failed to fetch interactions: %w", err)
	}
	items, err := e.provider.Items(ctx)
	if err != nil {
		e.recordTrainError(err)
		return fmt.Errorf("failed to fetch items: %w", err)
	}
	if len(interactions) == 0 {
		err := errors.New("no interactions to train on")
		e.recordTrainError(err)
		return err
	}

	cfStart := time.Now()
	if err := e.userCF.Train(ctx, interactions); err != nil {
		metrics.RecordTraining(e.userCF.Name(), time.Since(cfStart), err)
		e.recordTrainError(err)
		return fmt.Errorf("user filter training failed: %w", err)
	}
	metrics.RecordTraining(e.userCF.Name(), time.Since(cfStart), nil)

	contentStart := time.Now()
	if err := e.content.Train(ctx, items); err != nil {
		metrics.RecordTraining(e.content.Name(), time.Since(contentStart), err)
		e.recordTrainError(err)
		return fmt.Errorf("content model training failed: %w", err)
	}
	metrics.RecordTraining(e.content.Name(), time.Since(contentStart), nil)

	elapsed := time.Since(start)

	e.mu.Lock()
	e.status = TrainingStatus{
		Trained:                true,
		LastTrainedAt:          time.Now(),
		LastTrainingDurationMS: elapsed.Milliseconds(),
		InteractionCount:       len(interactions),
		UserCount:              e.userCF.UserCount(),
		ItemCount:              e.content.ItemCount(),
		ModelVersion:           e.userCF.Version(),
	}
	e.mu.Unlock()

	metrics.ModelUsers.Set(float64(e.userCF.UserCount()))
	metrics.ModelItems.Set(float64(e.content.ItemCount()))

	logging.Info().
		Int("interactions", len(interactions)).
		Int("users", e.userCF.UserCount()).
		Int("items", e.content.ItemCount()).
		Dur("elapsed", elapsed).
		Msg("Recommendation models trained")

	return nil
}

func (e *Engine) recordTrainError(err error) {
	e.mu.Lock()
	e.status.LastError = err.Error()
	e.mu.Unlock()
}

// RecommendForUser returns item names drawn from the user's nearest
// neighbors' top played titles.
func (e *Engine) RecommendForUser(userID string) ([]string, error) {
	names, err := e.userCF.Recommend(userID)
	switch {
	case err == nil:
		metrics.RecordRecommendRequest(e.userCF.Name(), "ok")
	case errors.Is(err, ErrUnknownUser):
		metrics.RecordRecommendRequest(e.userCF.Name(), "not_found")
	default:
		metrics.RecordRecommendRequest(e.userCF.Name(), "error")
	}
	return names, err
}

// SimilarItems returns names of items most similar to the given item under
// the content model, plus a message when fewer than the configured count
// were found.
func (e *Engine) SimilarItems(itemID int64) ([]string, string, error) {
	names, message, err := e.content.SimilarTo(itemID, e.cfg.SimilarItems)
	switch {
	case err == nil:
		metrics.RecordRecommendRequest(e.content.Name(), "ok")
	case errors.Is(err, ErrUnknownItem):
		metrics.RecordRecommendRequest(e.content.Name(), "not_found")
	default:
		metrics.RecordRecommendRequest(e.content.Name(), "error")
	}
	return names, message, err
}

// IsTrained reports whether both models have completed training.
func (e *Engine) IsTrained() bool {
	return e.userCF.IsTrained() && e.content.IsTrained()
}

// Status returns a snapshot of the training state.
func (e *Engine) Status() TrainingStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}
