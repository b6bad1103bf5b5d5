// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router maps HTTP routes to their handlers using Go 1.22
// method-and-path mux patterns, with request logging on every route.
package router
