// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default: local SQLite file)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminPassword: Shared operator secret (required)
  - EventFile: Event catalog YAML path (default: embedded catalog)

# CLI Flags

	-p  Server port
	-d  Database URL
	-t  Database type
	-e  Event catalog file
	--admin-password  Operator password (prefer env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	EVENT_FILE     → -e
	ADMIN_PASSWORD → --admin-password

CLI flags take precedence over environment variables. A .env file is
loaded by main before parsing.

# Validation

ParseFlags returns an error if:

  - ADMIN_PASSWORD is missing
  - DatabaseType is neither sqlite nor postgres
  - DatabaseType is postgres but no DATABASE_URL is given
*/
package cliparse
