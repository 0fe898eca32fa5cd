// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package dataset provides read-only analytical access to a Steam playtime
// and review export through an embedded in-memory DuckDB instance. The export
// is loaded once at startup; every query after that runs against the loaded
// interactions table.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/logging"
)

// Store wraps the DuckDB connection and provides query methods over the
// loaded interactions table.
type Store struct {
	conn *sql.DB
	cfg  *config.DatasetConfig

	mu       sync.RWMutex
	loaded   bool
	rowCount int64
	loadedAt time.Time
}

// Open creates an in-memory DuckDB instance tuned from the config. The store
// holds no data until Load is called.
func Open(cfg *config.DatasetConfig) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "2GB"
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments. No extensions are needed for parquet/CSV ingestion.
	connStr := fmt.Sprintf(":memory:?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		conn: conn,
		cfg:  cfg,
	}

	if err := s.configureConnectionPool(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	logging.Info().
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("DuckDB store opened")

	return s, nil
}

// configureConnectionPool applies conservative pool limits. DuckDB is
// embedded, so connections are cheap, but unbounded growth wastes memory.
func (s *Store) configureConnectionPool() error {
	s.conn.SetMaxOpenConns(runtime.NumCPU() * 2)
	s.conn.SetMaxIdleConns(runtime.NumCPU())
	s.conn.SetConnMaxLifetime(0) // in-memory, connections never go stale

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()
	return s.conn.PingContext(ctx)
}

// Loaded reports whether the export has been loaded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LoadedAt returns when the export was loaded. Zero if not loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// RowCount returns the number of loaded interaction rows.
func (s *Store) RowCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rowCount
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// ensureContext applies the configured query timeout when the caller's
// context carries no deadline. Prevents hanging queries on large scans.
func (s *Store) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	return ctx, func() {}
}

// closeWithLog closes a resource and logs any error.
// Use this for cleanup operations where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // cleanup is best-effort
	}
}
