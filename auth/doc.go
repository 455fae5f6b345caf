// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides capability token generation and comparison.

There are no user accounts; possession of a token is the whole access
control model. Two kinds of tokens exist:

  - Management tokens grant edit rights over a sheet and its items.
    Generated once at sheet creation, stored with the sheet, never
    regenerated.
  - Claim tokens grant edit/cancel rights over exactly one claim.
    Generated once at claim creation.

# Token Generation

Tokens are 32 bytes (256 bits) from crypto/rand, URL-safe base64 encoded
without padding (43 characters, alphabet [A-Za-z0-9_-]):

	token, err := auth.GenerateToken()

They are never derived from an ID, timestamp, or counter, so a token
cannot be guessed from anything else the API reveals.

# Token Comparison

TokensMatch performs an exact, constant-time, full-string comparison:

	if !auth.TokensMatch(presented, sheet.ManagementToken) {
		// unauthorized
	}

An empty presented or stored token never matches.
*/
package auth
