// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/steamlens/steamlens/internal/config"
)

// Router wires handlers and middleware into the HTTP route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from the handler and API configuration.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	if cfg != nil {
		mwConfig.CORSAllowedOrigins = cfg.API.CORSOrigins
		if cfg.API.RateLimitRequests > 0 {
			mwConfig.RateLimitRequests = cfg.API.RateLimitRequests
		}
		if cfg.API.RateLimitWindow > 0 {
			mwConfig.RateLimitWindow = cfg.API.RateLimitWindow
		}
	}

	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes using the Chi router.
//
// The query and recommendation endpoints live at the root of the path space
// rather than under /api/v1; their paths are the public contract consumed by
// existing clients and keep their original (partly Spanish) names.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled

	// Landing page
	r.Get("/", router.handler.Landing)

	// Analytical query endpoints
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/PlayTimeGenre/{genre}", router.handler.PlayTimeGenre)
		r.Get("/UserForGenre/{genre}", router.handler.UserForGenre)
		r.Get("/UsersRecommend/{year}", router.handler.UsersRecommend)
		r.Get("/UsersNotRecommend/{year}", router.handler.UsersNotRecommend)
		r.Get("/sentiment_analysis/{year}", router.handler.SentimentAnalysis)
	})

	// Recommendation endpoints, tighter limits since each request walks the
	// in-memory models.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitRecommend())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/recomendacion_juego/{item_id}", router.handler.RecomendacionJuego)
		r.Get("/recomendacion_usuario/{user_id}", router.handler.RecomendacionUsuario)
	})

	// Health endpoints with permissive rate limiting for monitoring tools
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Dataset statistics
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/api/v1/stats", router.handler.Stats)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
