// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
		err       error
	}{
		{"successful query", "playtime_genre", 10 * time.Millisecond, nil},
		{"failed query with short error", "user_for_genre", 100 * time.Millisecond, errors.New("table missing")},
		{"failed query with long error - truncated to 50 chars", "sentiment", 50 * time.Millisecond,
			errors.New(strings.Repeat("x", 120))},
		{"fast query under 1ms", "stats", 500 * time.Microsecond, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Should not panic; histogram values are checked via scrape in integration
			RecordDBQuery(tt.operation, tt.duration, tt.err)
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"successful query", "GET", "/PlayTimeGenre/{genre}", "200", 25 * time.Millisecond},
		{"not found", "GET", "/UserForGenre/{genre}", "404", 2 * time.Millisecond},
		{"validation failure", "GET", "/UsersRecommend/{year}", "400", time.Millisecond},
		{"internal error", "GET", "/recomendacion_juego/{item_id}", "500", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
		})
	}
}

func TestTrackActiveRequestLifecycle(t *testing.T) {
	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}
}

func TestRecordTraining(t *testing.T) {
	RecordTraining("user_neighbor_cf", 2*time.Second, nil)
	RecordTraining("content_tfidf", time.Second, errors.New("no interactions loaded"))
}

func TestRecordRecommendRequest(t *testing.T) {
	for _, result := range []string{"ok", "not_found", "error"} {
		RecordRecommendRequest("user_neighbor_cf", result)
		RecordRecommendRequest("content_tfidf", result)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 50
	operationsPerGoroutine := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordDBQuery("playtime_genre", time.Duration(j)*time.Millisecond, nil)
				RecordAPIRequest("GET", "/PlayTimeGenre/{genre}", "200", time.Duration(j)*time.Millisecond)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}

	wg.Wait()
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		DatasetRows,
		DatasetLoadDuration,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		CacheHits,
		CacheMisses,
		CacheSize,
		CacheEvictions,
		TrainingDuration,
		TrainingErrors,
		ModelUsers,
		ModelItems,
		RecommendRequests,
		LastTrainSuccess,
		AppInfo,
		AppUptime,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("metric has no descriptors")
		}
	}
}

func BenchmarkRecordDBQuery(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordDBQuery("playtime_genre", 10*time.Millisecond, nil)
	}
}

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/PlayTimeGenre/{genre}", "200", 25*time.Millisecond)
	}
}
