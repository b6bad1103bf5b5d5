// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package settle computes winners, pot splits, and the net-balance ledger.

# Design

The three settlement functions are pure: they take loaded state and
return derived results, never touching storage:

	trivia  := settle.Trivia(ev.Questions, correct, answers)
	squares := settle.Squares(ev.Squares.CostPerCell, board, claims)
	ledger  := settle.Ledger(trivia, squares, paidIn)

There is no cached or staged payout state anywhere: every read of the
admin dashboard re-runs these functions over current rows, so the
operator can overwrite correct answers or scores at any time without
corrupting anything.

The Load* helpers in load.go fetch the inputs (answers grouped by
question, declared correct answers, per-person paid-in sums).

# Payout Rules

Trivia, per question, collected = cost × answer count:

  - choice: every exact match wins (case-sensitive)
  - numeric: every submitter at minimum absolute distance wins, so a
    closest-guess rule, ties included
  - no declared answer, or no answers: nobody wins; intake is held

The split is collected / winners, rounded to cents at the point of
allocation. The rounding point matters: it decides the house remainder's
exact value under odd-cent splits.

Squares: pot = costPerCell × claimed cells; each quarter independently
pays round(pot/4) to the owner of the cell at (away-digit row,
home-digit column). An unscored quarter or an unclaimed winning cell
pays nobody and the share stays with the house.

# Ledger

People are keyed by display name (the only identity the pool has). For
each person net = owed − paidIn; positive means the pool owes them.
houseRemainder = totalCollected − totalOwed is what the operator keeps
from unresolved questions and unclaimed winning cells.
*/
package settle
