// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers implements the HTTP handlers for the pool server:
// participant submissions, the squares grid views, results aggregation,
// the guess lookup, and the admin settlement surface.
//
// Handlers are grouped into structs by concern, each constructed with
// the database handle, server config, and loaded event catalog. All
// admin endpoints check the X-Admin-Password header; settlement state
// is recomputed from stored facts on every read and never persisted.
package handlers
