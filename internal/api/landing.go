// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package api

import (
	"net/http"

	"github.com/steamlens/steamlens/internal/logging"
)

// landingHTML is the static index page listing the available endpoints.
const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Steamlens</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
li { margin: 0.4rem 0; }
</style>
</head>
<body>
<h1>Steamlens</h1>
<p>Read-only analytical queries and recommendations over a Steam playtime and review export.</p>
<h2>Queries</h2>
<ul>
<li><code>GET /PlayTimeGenre/{genre}</code> &mdash; release year with the most playtime for a genre</li>
<li><code>GET /UserForGenre/{genre}</code> &mdash; top user and yearly hours for a genre</li>
<li><code>GET /UsersRecommend/{year}</code> &mdash; most endorsed titles for a review year</li>
<li><code>GET /UsersNotRecommend/{year}</code> &mdash; most detracted titles for a review year</li>
<li><code>GET /sentiment_analysis/{year}</code> &mdash; review sentiment counts by release year</li>
</ul>
<h2>Recommendations</h2>
<ul>
<li><code>GET /recomendacion_juego/{item_id}</code> &mdash; titles similar to an item</li>
<li><code>GET /recomendacion_usuario/{user_id}</code> &mdash; titles recommended for a user</li>
</ul>
<h2>Operations</h2>
<ul>
<li><code>GET /api/v1/health</code>, <code>/api/v1/health/live</code>, <code>/api/v1/health/ready</code></li>
<li><code>GET /api/v1/stats</code> &mdash; dataset and cache statistics</li>
<li><code>GET /metrics</code> &mdash; Prometheus metrics</li>
</ul>
</body>
</html>
`

// Landing serves the HTML index page.
//
// Method: GET
// Path: /
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if _, err := w.Write([]byte(landingHTML)); err != nil {
		logging.Error().Err(err).Msg("Failed to write landing page")
	}
}
