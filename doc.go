// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Spin API server.

Quickly Spin is a prize wheel with a persistent scoreboard. Participants sit
on the wheel in scoreboard order (score descending, then name); a spin picks
the wedge under the fixed pointer and awards the winner one point.

# Starting the Server

The server requires a database URL, from a flag, the environment or .env:

	DATABASE_URL=spin.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - SPIN_DURATION_MS (-spin-ms): Spin animation length (default: 3000)
  - SPIN_FRAME_MS (-frame-ms): Frame interval (default: 16)
  - CORS_ORIGINS (-origins): Allowed origins (default: *)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP and websocket handlers (participants, config, spin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - roster: Validation and logging over the score store
  - store: Participant persistence with atomic score updates
  - wheel: Wedge selection and easing math
  - spin: Per-session spin animation and awarding
  - models: Request/response types and sentinel errors
  - db: Driver selection and embedded migrations
  - cliparse: Configuration parsing

Shutdown on SIGINT or SIGTERM cancels every request and websocket session,
so spins in flight stop without awarding.

See package documentation for each component.
*/
package main
