// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package grid

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/danielhkuo/gameday-pool/models"
)

// Size is the board dimension; digits 0-9 on each axis.
const Size = 10

// QuarterScore holds one quarter's entered scores. Nil means the
// operator has not entered that team's score yet.
type QuarterScore struct {
	Home *int
	Away *int
}

// Board is the singleton squares board. RowDigits and ColDigits are
// uniform random permutations of 0..9, generated once and frozen: rows
// are keyed by the away team's score digit, columns by the home team's.
type Board struct {
	RowDigits []int
	ColDigits []int
	Scores    [4]QuarterScore
}

// Claim is one owned cell.
type Claim struct {
	Row          int
	Col          int
	SubmissionID string
	Name         string
}

// ConflictError reports the first requested cell that was already owned
// when the claim transaction tried to insert it.
type ConflictError struct {
	Row int
	Col int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Square %d,%d was just taken. Please pick another.", e.Row+1, e.Col+1)
}

// GetBoard returns the board, creating it on first access. Generation
// uses INSERT .. ON CONFLICT DO NOTHING so concurrent first reads agree
// on a single permutation pair.
func GetBoard(db *sql.DB) (Board, error) {
	var board Board
	err := scanBoard(db, &board)
	if err == nil {
		return board, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Board{}, fmt.Errorf("failed to load board: %w", err)
	}

	rowJSON, _ := json.Marshal(rand.Perm(Size))
	colJSON, _ := json.Marshal(rand.Perm(Size))

	_, err = db.Exec(`
		INSERT INTO square_board (id, row_digits, col_digits)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`, string(rowJSON), string(colJSON))
	if err != nil {
		return Board{}, fmt.Errorf("failed to initialize board: %w", err)
	}

	// Re-read rather than trusting our own permutations: a concurrent
	// initializer may have won the insert.
	if err := scanBoard(db, &board); err != nil {
		return Board{}, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

func scanBoard(db *sql.DB, board *Board) error {
	var rowJSON, colJSON string
	scores := make([]*int, 8)
	err := db.QueryRow(`
		SELECT row_digits, col_digits,
		       q1_home, q1_away, q2_home, q2_away,
		       q3_home, q3_away, q4_home, q4_away
		FROM square_board WHERE id = 1
	`).Scan(&rowJSON, &colJSON,
		&scores[0], &scores[1], &scores[2], &scores[3],
		&scores[4], &scores[5], &scores[6], &scores[7])
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(rowJSON), &board.RowDigits); err != nil {
		return fmt.Errorf("corrupt row digits: %w", err)
	}
	if err := json.Unmarshal([]byte(colJSON), &board.ColDigits); err != nil {
		return fmt.Errorf("corrupt col digits: %w", err)
	}
	for q := 0; q < 4; q++ {
		board.Scores[q] = QuarterScore{Home: scores[2*q], Away: scores[2*q+1]}
	}
	return nil
}

// SetScores replaces the whole quarter-score record. The engine does not
// require scores to be monotonic across quarters; the operator can
// overwrite freely and settlement recomputes from scratch.
func SetScores(db *sql.DB, scores [4]QuarterScore) error {
	if _, err := GetBoard(db); err != nil {
		return err
	}

	_, err := db.Exec(`
		UPDATE square_board SET
			q1_home = $1, q1_away = $2,
			q2_home = $3, q2_away = $4,
			q3_home = $5, q3_away = $6,
			q4_home = $7, q4_away = $8
		WHERE id = 1
	`,
		scores[0].Home, scores[0].Away,
		scores[1].Home, scores[1].Away,
		scores[2].Home, scores[2].Away,
		scores[3].Home, scores[3].Away,
	)
	if err != nil {
		return fmt.Errorf("failed to update scores: %w", err)
	}
	return nil
}

// Claims lists every owned cell with its owner's display name.
func Claims(db *sql.DB) ([]Claim, error) {
	rows, err := db.Query(`
		SELECT c.row_idx, c.col_idx, c.submission_id, s.full_name
		FROM square_claim c
		JOIN submission s ON s.id = c.submission_id
		ORDER BY c.row_idx, c.col_idx
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()

	var claims []Claim
	for rows.Next() {
		var c Claim
		if err := rows.Scan(&c.Row, &c.Col, &c.SubmissionID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// ClaimCells inserts claims for a submission inside the caller's
// transaction. Cells are inserted one at a time so a uniqueness
// violation can name the first unavailable cell; on conflict the caller
// must roll back the whole transaction, discarding the submission with
// its claims.
func ClaimCells(tx *sql.Tx, submissionID string, cells []models.CellRef) error {
	for _, cell := range cells {
		_, err := tx.Exec(`
			INSERT INTO square_claim (row_idx, col_idx, submission_id)
			VALUES ($1, $2, $3)
		`, cell.Row, cell.Col, submissionID)
		if err != nil {
			if isUniqueViolation(err) {
				return &ConflictError{Row: cell.Row, Col: cell.Col}
			}
			return fmt.Errorf("failed to insert claim: %w", err)
		}
	}
	return nil
}

// ParseSelections validates and deduplicates requested cells, preserving
// first-seen order, and enforces the per-submission cap.
func ParseSelections(cells []models.CellRef, maxPerSubmission int) ([]models.CellRef, error) {
	parsed := make([]models.CellRef, 0, len(cells))
	seen := make(map[models.CellRef]bool)
	for _, cell := range cells {
		if cell.Row < 0 || cell.Row >= Size || cell.Col < 0 || cell.Col >= Size {
			return nil, fmt.Errorf("square coordinates must be from 0 to %d", Size-1)
		}
		if seen[cell] {
			continue
		}
		seen[cell] = true
		parsed = append(parsed, cell)
	}

	if len(parsed) > maxPerSubmission {
		return nil, fmt.Errorf("you can select up to %d squares", maxPerSubmission)
	}
	return parsed, nil
}

// isUniqueViolation matches both drivers' uniqueness errors: modernc
// sqlite reports "UNIQUE constraint failed", lib/pq reports "duplicate
// key value violates unique constraint".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
