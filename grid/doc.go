// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package grid is the reservation store for the 10x10 squares board.

# Board

The board is a singleton row. On first access GetBoard generates two
independent uniform-random permutations of the digits 0-9 and persists
them; they are the secret mapping from grid position to final-score last
digit and never change afterwards:

	board, err := grid.GetBoard(db)

Concurrent first accesses are safe: initialization inserts with
ON CONFLICT DO NOTHING and re-reads, so every caller sees the same
permutations.

Convention (applied consistently everywhere): rows are keyed by the AWAY
team's score digit, columns by the HOME team's.

# Claims

Each cell is ownable by at most one submission. The invariant lives in
the square_claim primary key, not in application pre-checks:

	err := grid.ClaimCells(tx, submissionID, cells)

ClaimCells runs inside the caller's transaction, the same one that
inserts the submission row, so a conflict rolls the entire submission
back. On conflict it returns a *ConflictError naming the first
unavailable cell; the caller retries with a different selection.

ParseSelections deduplicates requested cells, checks bounds, and
enforces the per-submission cap before any database work.

# Scores

SetScores replaces the whole quarter-score record (nil = not yet
entered). Scores are freely overwritable; settlement always recomputes
from current state.
*/
package grid
