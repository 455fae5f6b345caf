// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the signup sheets API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SheetHandler: Sheet creation, public view, management view, update
  - ItemHandler: Item add/update/delete
  - ClaimHandler: Claim admission, resolution by token, update, cancel

Handlers are created via constructor functions that accept *sql.DB and Config:

	sheetHandler := handlers.NewSheetHandler(db, cfg)

# Capability Model

There are no accounts. Three link shapes carry all access:

	/sheet/{id}                    - public view link (share freely)
	/sheet/{id}/edit/{mgmtToken}   - management link
	/claim/{claimToken}            - claim edit/cancel link

The API equivalent: management operations send X-Management-Token,
claim operations put the claim token in the path. Token checks are
exact, constant-time comparisons; a wrong token and a missing record
return the same 401.

# Claim Admission

CreateClaim is the only operation with a cross-record invariant:
claims on an item never exceed quantity_needed. The admission decision
(count check + insert) runs in one transaction that first locks the
item row with SELECT ... FOR UPDATE, so concurrent submissions on the
same item serialize instead of jointly overshooting the limit.

Claim update and delete carry no capacity check: an update never moves
a claim to another item, and a delete always frees exactly one slot.

# Availability

Remaining quantity is derived, never stored. Sheet views recompute it
from the claim rows on every read via the availability package.
*/
package handlers
