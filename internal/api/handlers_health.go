// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"net/http"
	"time"

	"github.com/steamlens/steamlens/internal/models"
)

// Health returns the overall service health: dataset connectivity, load
// state, and model training state. The service degrades rather than fails
// when models are still training.
//
// Method: GET
// Path: /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil
	datasetLoaded := h.store != nil && h.store.Loaded()
	modelsTrained := h.engine != nil && h.engine.IsTrained()

	status := "healthy"
	if !dbConnected || !datasetLoaded {
		status = "degraded"
	} else if !modelsTrained {
		status = "training"
	}

	health := models.HealthResponse{
		Status:    status,
		Version:   Version,
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
		Dataset:   datasetLoaded,
		Models:    modelsTrained,
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
//
// Method: GET
// Path: /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Ready means the dataset is loaded; query endpoints work even while the
// recommendation models are still training.
//
// Method: GET
// Path: /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil
	datasetLoaded := h.store != nil && h.store.Loaded()
	ready := dbConnected && datasetLoaded

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"dataset_loaded":     datasetLoaded,
			"models_trained":     h.engine != nil && h.engine.IsTrained(),
			"ready_to_serve":     ready,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Stats returns dataset summary statistics and cache performance.
//
// Method: GET
// Path: /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := h.store.Stats(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"dataset": stats,
		"cache":   h.GetCacheStats(),
	}, start, false)
}
