// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the immutable event catalog and the answer validator.

# Event Catalog

An Event bundles everything configured per pool: the trivia questions,
squares grid pricing, and the two team names. It is loaded once at startup
from YAML and never changes while the server runs:

	ev, err := catalog.Load(cfg.EventFile) // "" loads the embedded default

The embedded default (event.yaml) is a full Super Bowl question set.

# Questions

Two kinds:

  - numeric: integer answer within inclusive [Min, Max] bounds
  - choice: answer must exactly match one of Options (case-sensitive)

Each question has a fixed cost collected from every participant who
answers it.

# Answer Validation

Normalize checks a raw answer (string, JSON number, or Go int) against a
question and returns the canonical stored form:

	text, answered, err := catalog.Normalize(q, raw)

A nil or blank answer means the question was skipped (answered=false, no
error, no cost). Invalid answers return a *ValidationError whose message
names the violated constraint and is safe to show to the participant.
*/
package catalog
