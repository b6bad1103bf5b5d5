// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The SQL below sticks to the portable subset shared by SQLite and
// PostgreSQL; placeholders throughout the codebase use the $1 form,
// which both drivers accept.
const schema = `
-- Submissions (append-only; one row per submitted form)
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    contact_handle TEXT,
    contact_number TEXT,
    payment_method TEXT NOT NULL CHECK (payment_method IN ('cash', 'electronic')),
    total_owed REAL NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_full_name ON submission(full_name);

-- Answers (append-only; one row per answered question)
CREATE TABLE IF NOT EXISTS answer (
    submission_id TEXT NOT NULL REFERENCES submission(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL,
    answer_text TEXT NOT NULL,
    PRIMARY KEY (submission_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);

-- Operator-declared correct answers (mutable, last write wins)
CREATE TABLE IF NOT EXISTS correct_answer (
    question_id INTEGER PRIMARY KEY,
    answer_text TEXT NOT NULL
);

-- Singleton squares board: digit permutations (JSON arrays) plus the
-- per-quarter scores, all nullable until the operator enters them
CREATE TABLE IF NOT EXISTS square_board (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    row_digits TEXT NOT NULL,
    col_digits TEXT NOT NULL,
    q1_home INTEGER, q1_away INTEGER,
    q2_home INTEGER, q2_away INTEGER,
    q3_home INTEGER, q3_away INTEGER,
    q4_home INTEGER, q4_away INTEGER
);

-- Cell claims. The primary key on (row_idx, col_idx) is what enforces
-- at-most-one-owner-per-cell: concurrent claims of the same cell resolve
-- at insert time, not by pre-checking.
CREATE TABLE IF NOT EXISTS square_claim (
    row_idx INTEGER NOT NULL CHECK (row_idx BETWEEN 0 AND 9),
    col_idx INTEGER NOT NULL CHECK (col_idx BETWEEN 0 AND 9),
    submission_id TEXT NOT NULL REFERENCES submission(id) ON DELETE CASCADE,
    PRIMARY KEY (row_idx, col_idx)
);

CREATE INDEX IF NOT EXISTS idx_square_claim_submission ON square_claim(submission_id);
`
