// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitRequest: entry form (name, contact, payment method, answers,
    square selections)
  - AdminLoginRequest: password
  - CorrectAnswersRequest: question ID → declared answer (blank clears)
  - ScoresRequest: q1..q4 → {home, away}
  - LookupRequest: last4 contact digits

# Response Types

Types for JSON responses:

  - SubmitResponse: ok, submissionId, answeredCount, squareCount, totalOwed
  - SquaresPublicView / SquaresRevealedView: the grid with and without the
    digit permutations
  - ResultsResponse: per-question aggregation (scatter points or bars)
  - AdminStateResponse: full settlement dashboard (breakdown, ledger,
    squares outcome, houseRemainder)
  - SubmissionView: one participant's own entry
  - ErrorResponse: error, message

# Display Helpers

Cosmetic derivations attached to people wherever they appear:

	models.Initials("Jane Q Doe") // "JD"
	models.ColorFor("Jane Q Doe") // deterministic palette pick

# Constants

Payment methods:

	PaymentCash       = "cash"
	PaymentElectronic = "electronic"

# Identity

A person is identified by typed display name only; the pool has no
accounts. Two submissions under the same name settle as one person. This
is a documented limitation of the design, not an oversight.
*/
package models
