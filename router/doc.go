// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the signup sheets API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Sheets:

	POST /sheets              - Create sheet with initial items
	GET  /sheets/{id}         - Public view (items, claims, availability)
	GET  /sheets/{id}/manage  - Management view (X-Management-Token)
	PUT  /sheets/{id}         - Update sheet (X-Management-Token)

Items:

	POST   /sheets/{id}/items - Add item (token, or public when the
	                            sheet allows guest additions)
	PUT    /items/{id}        - Update item (X-Management-Token)
	DELETE /items/{id}        - Delete item (X-Management-Token)

Claims:

	POST   /items/{id}/claims - Claim a slot (public, capacity checked)
	GET    /claims/{token}    - Resolve claim by its token
	PUT    /claims/{token}    - Edit claim fields
	DELETE /claims/{token}    - Cancel claim

# Handler Initialization

The router creates handler instances with dependency injection:

	sheetHandler := handlers.NewSheetHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, cfg)
	claimHandler := handlers.NewClaimHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
