// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes is the entropy of a capability token: 32 bytes = 256 bits.
const tokenBytes = 32

// GenerateToken creates a random capability token from a cryptographically
// secure source. The token is URL-safe base64 without padding, so it can be
// embedded directly in a path segment without percent-encoding.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// TokensMatch compares a presented token against a stored secret.
// Exact, case-sensitive, full-string comparison in constant time.
// No trimming, prefix matching, or case folding is applied.
func TokensMatch(presented, stored string) bool {
	if presented == "" || stored == "" {
		return false
	}
	return hmac.Equal([]byte(presented), []byte(stored))
}
