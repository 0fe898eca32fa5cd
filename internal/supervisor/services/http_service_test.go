// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// fakeHTTPServer simulates http.Server lifecycle behavior.
type fakeHTTPServer struct {
	listenErr    error
	shutdownErr  error
	shutdownDone atomic.Bool
	stopCh       chan struct{}
}

func newFakeHTTPServer(listenErr error) *fakeHTTPServer {
	return &fakeHTTPServer{
		listenErr: listenErr,
		stopCh:    make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopCh
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(_ context.Context) error {
	f.shutdownDone.Store(true)
	close(f.stopCh)
	return f.shutdownErr
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	server := newFakeHTTPServer(nil)
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop")
	}

	if !server.shutdownDone.Load() {
		t.Error("expected Shutdown to be called")
	}
}

func TestHTTPServiceStartupFailure(t *testing.T) {
	server := newFakeHTTPServer(errors.New("bind: address already in use"))
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected startup failure to propagate")
	}
}

func TestHTTPServiceName(t *testing.T) {
	svc := NewHTTPServerService(newFakeHTTPServer(nil), 0)
	if svc.String() != "http-server" {
		t.Errorf("unexpected name: %s", svc.String())
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("expected default timeout, got %v", svc.shutdownTimeout)
	}
}
