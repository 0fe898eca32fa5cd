// Steamlens - Steam Playtime Analytics and Recommendation Service
// Copyright 2026 Steamlens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

// Package supervisor builds the suture supervision tree for Steamlens.
//
// Services are grouped into layers so that a crashing component only takes
// down its own layer while the rest of the process keeps serving. Supervisor
// events are forwarded to the structured logger through sutureslog.
package supervisor
