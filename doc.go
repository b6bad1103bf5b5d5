// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Gameday Pool API server.

Gameday Pool runs a small prediction pool for a game-day party: priced
trivia questions settled by exact match or closest guess, a 10x10
squares grid with hidden digit permutations, and a net-balance ledger
the host settles up from afterwards.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_PASSWORD=secret go run main.go

Or with flags:

	go run main.go -p 3318 -t sqlite --admin-password secret

# Configuration

Required settings:

  - ADMIN_PASSWORD (--admin-password): Operator password for the admin surface

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): Connection string (required for postgres)
  - EVENT_FILE (-e): YAML event catalog (default: embedded catalog)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (submissions, squares, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging and JSON helpers
  - models: Request/response types
  - catalog: Event catalog loading and answer validation
  - grid: Squares board state and cell claims
  - settle: Pure settlement math and its storage loaders
  - auth: Admin password checking
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
