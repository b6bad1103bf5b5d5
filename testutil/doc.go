// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared test helpers: a throwaway sqlite
// database with the full schema, a small fixed event catalog, fixture
// inserters, and HTTP request/response assertions.
package testutil
