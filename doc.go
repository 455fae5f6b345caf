// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the signup sheets API server.

Signup sheets are shareable event pages (potlucks, volunteer rosters)
listing needed items with quantities. Guests claim items through the
share link; organizers edit the sheet through a separate management
link. Possession of a link's token is the entire access model - there
are no accounts.

# Starting the Server

The server requires a database URL via environment variable, .env file,
or CLI flag:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3321 -d "postgres://..." -b "https://example.com"

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3321)
  - BASE_URL (-b): Frontend base for generated share/manage/claim links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sheets, items, claims)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Capability token generation and comparison
  - validate: Claim form validation and input sanitization
  - availability: Remaining-quantity derivation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
