// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Trainer is the training surface of the recommendation engine. Keeping it
// an interface avoids a dependency on the recommend package and lets tests
// substitute fakes.
type Trainer interface {
	Train(ctx context.Context) error
}

// TrainerServiceConfig holds configuration for the training service.
type TrainerServiceConfig struct {
	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often to retrain. Zero disables periodic
	// retraining; the dataset is a static export, so models normally
	// rebuild only on process restart.
	TrainInterval time.Duration

	// TrainTimeout bounds a single training cycle. Default 30m.
	TrainTimeout time.Duration
}

// TrainerService runs the model training lifecycle under supervision.
type TrainerService struct {
	engine Trainer
	config TrainerServiceConfig
	logger zerolog.Logger
	name   string
}

// NewTrainerService creates a new training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(engine Trainer, cfg TrainerServiceConfig, logger zerolog.Logger) *TrainerService {
	return &TrainerService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "trainer").Logger(),
		name:   "trainer-service",
	}
}

// Serve implements the suture.Service interface. It trains on startup when
// configured, then either idles until shutdown or retrains on a ticker.
func (s *TrainerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("trainer service starting")

	if s.config.TrainOnStartup {
		if err := s.train(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn().Err(err).Msg("startup training failed")
		}
	}

	if s.config.TrainInterval <= 0 {
		// No periodic retraining; just hold the service slot until shutdown.
		<-ctx.Done()
		s.logger.Info().Msg("trainer service shutting down")
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// train performs one training cycle with its own timeout.
func (s *TrainerService) train(ctx context.Context) error {
	timeout := s.config.TrainTimeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	trainCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Msg("starting model training")

	if err := s.engine.Train(trainCtx); err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("model training complete")

	return nil
}

// String returns the service name for logging.
func (s *TrainerService) String() string {
	return s.name
}
