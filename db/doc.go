// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - submission: One row per submitted entry form (append-only)
  - answer: Validated answer text per (submission, question)
  - correct_answer: Operator-declared ground truth (mutable)
  - square_board: Singleton row holding the digit permutations and
    per-quarter scores
  - square_claim: One row per claimed grid cell

# Relationships

	submission 1──* answer
	submission 1──* square_claim

Foreign keys use ON DELETE CASCADE.

# Uniqueness

Two constraints carry the engine's invariants:

  - square_claim PRIMARY KEY (row_idx, col_idx): at most one owner per
    cell, enforced at insert time inside the submission transaction
  - square_board CHECK (id = 1): the board is a singleton

# Dialects

The schema and all queries use the portable SQL subset and $1
placeholders, so the same code runs against modernc.org/sqlite (default)
and lib/pq.
*/
package db
