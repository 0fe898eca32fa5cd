// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeTrainer counts training invocations.
type fakeTrainer struct {
	calls atomic.Int64
	err   error
}

func (f *fakeTrainer) Train(_ context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestTrainerTrainsOnStartup(t *testing.T) {
	trainer := &fakeTrainer{}
	svc := NewTrainerService(trainer, TrainerServiceConfig{TrainOnStartup: true}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for trainer.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup training never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if got := trainer.calls.Load(); got != 1 {
		t.Errorf("expected 1 training run, got %d", got)
	}
}

func TestTrainerZeroIntervalBlocksUntilShutdown(t *testing.T) {
	trainer := &fakeTrainer{}
	svc := NewTrainerService(trainer, TrainerServiceConfig{}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if trainer.calls.Load() != 0 {
		t.Errorf("expected no training without startup flag, got %d", trainer.calls.Load())
	}
}

func TestTrainerPeriodicRetraining(t *testing.T) {
	trainer := &fakeTrainer{}
	cfg := TrainerServiceConfig{TrainInterval: 20 * time.Millisecond}
	svc := NewTrainerService(trainer, cfg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for trainer.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("periodic retraining never fired twice")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestTrainerSurvivesTrainingErrors(t *testing.T) {
	trainer := &fakeTrainer{err: errors.New("empty dataset")}
	cfg := TrainerServiceConfig{TrainOnStartup: true, TrainInterval: 20 * time.Millisecond}
	svc := NewTrainerService(trainer, cfg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for trainer.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("service stopped retrying after training error")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
