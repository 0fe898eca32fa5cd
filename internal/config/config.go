// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package config provides layered configuration for Steamlens using Koanf v2.
//
// Precedence (highest wins): environment variables > YAML config file >
// built-in defaults. The loaded Config is validated before being handed to
// the rest of the application.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the Steamlens server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// ReadTimeout bounds how long reading a request may take.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds how long writing a response may take.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment" validate:"oneof=development production"`
}

// DatasetConfig holds settings for the embedded DuckDB dataset store.
type DatasetConfig struct {
	// Path is the dataset export file (.parquet or .csv) loaded at startup.
	Path string `koanf:"path" validate:"required"`

	// MaxMemory is the DuckDB memory limit (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`

	// QueryTimeout is the default per-query timeout applied when the
	// caller's context carries no deadline.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// RecommendConfig holds similarity engine settings.
type RecommendConfig struct {
	// Neighbors is how many similar users to consult per request.
	Neighbors int `koanf:"neighbors" validate:"min=1,max=100"`

	// ItemsPerNeighbor is how many top items to take from each neighbor.
	ItemsPerNeighbor int `koanf:"items_per_neighbor" validate:"min=1,max=100"`

	// SimilarItems is how many content-similar items to return.
	SimilarItems int `koanf:"similar_items" validate:"min=1,max=100"`

	// SampleRatio bounds the candidate fraction scanned by the content
	// similarity search. 1.0 scans the full catalog.
	SampleRatio float64 `koanf:"sample_ratio" validate:"gt=0,lte=1"`

	// MinSimilarity filters out near-zero user similarities.
	MinSimilarity float64 `koanf:"min_similarity" validate:"gte=0,lt=1"`

	// NumWorkers is the parallelism for similarity precompute.
	// 0 uses runtime.NumCPU().
	NumWorkers int `koanf:"num_workers" validate:"min=0"`

	// TrainOnStartup triggers model training when the service starts.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval schedules periodic retraining. 0 disables it; the
	// dataset is a static export, so models normally rebuild only on
	// process restart.
	TrainInterval time.Duration `koanf:"train_interval"`
}

// APIConfig holds HTTP API behavior settings.
type APIConfig struct {
	// RateLimitRequests is the per-IP request budget per window.
	RateLimitRequests int `koanf:"rate_limit_requests" validate:"min=1"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CacheTTL is how long query responses are cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
