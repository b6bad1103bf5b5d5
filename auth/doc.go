// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth validates the shared operator secret.

The pool has exactly one privileged role: the operator, authenticated by
a single shared password supplied in the X-Admin-Password header on every
admin request. There are no sessions, tokens, or user accounts.

	if err := auth.CheckPassword(r.Header.Get("X-Admin-Password"), cfg.AdminPassword); err != nil {
		// 401
	}

Comparison is constant-time (crypto/hmac), and an empty configured
password fails closed.

Authorization happens entirely at the handler boundary; the settlement
engine itself performs no authentication.
*/
package auth
