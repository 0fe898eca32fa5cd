// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

Dataset metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, error_type
  - dataset_rows: Interaction rows loaded into the store (gauge)
  - dataset_load_duration_seconds: Export load duration (histogram)

API metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Cache metrics:
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total
    Labels: cache_type

Recommendation metrics:
  - recommend_training_duration_seconds: Model training duration (histogram)
    Labels: algorithm
  - recommend_training_errors_total: Training failures (counter)
    Labels: algorithm
  - recommend_model_users, recommend_model_items: Trained model sizes (gauges)
  - recommend_requests_total: Recommendation requests (counter)
    Labels: algorithm, result
  - recommend_last_train_success_timestamp: Last successful training (gauge)

# Cardinality Management

Endpoint labels use the registered route pattern rather than the raw URL, so
path parameters (genres, years, user IDs) never become label values. Error
types are truncated to 50 characters.

Example PromQL queries:

	# Request rate
	rate(api_requests_total[5m])

	# p95 latency
	histogram_quantile(0.95, rate(api_request_duration_seconds_bucket[5m]))

	# Cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

All metric recording functions are thread-safe; the Prometheus client library
handles synchronization internally.
*/
package metrics
