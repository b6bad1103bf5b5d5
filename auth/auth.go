// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
)

var ErrInvalidPassword = errors.New("invalid admin password")

// CheckPassword compares a supplied operator password against the
// configured one in constant time. An empty configured password never
// matches, so a misconfigured server fails closed.
func CheckPassword(supplied, configured string) error {
	if configured == "" {
		return ErrInvalidPassword
	}
	if !hmac.Equal([]byte(supplied), []byte(configured)) {
		return ErrInvalidPassword
	}
	return nil
}
