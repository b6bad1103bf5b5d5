// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Logging

WithLogging wraps a handler with structured request/completion logs:

	mux.HandleFunc("POST /api/submissions", middleware.WithLogging(h.Submit))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusBadRequest, "answers payload is invalid")
	middleware.ParseJSONBody(r, &req)

ErrorResponse produces the models.ErrorResponse envelope with the HTTP
status text plus a human-readable message.

# Client IP

GetClientIP resolves the caller's address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr. Used for request logging
only; the pool stores no network identifiers.

CORS is not handled here; the router wraps the whole mux with
github.com/go-chi/cors.
*/
package middleware
