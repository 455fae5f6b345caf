// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - signup_sheet: Sheet metadata plus its management token
  - signup_item: Needed items, quantities, and requirement flags
  - claim: Guest claims plus their claim tokens

# Relationships

	signup_sheet 1──* signup_item 1──* claim

Both foreign keys use ON DELETE CASCADE: deleting a sheet removes its
items and their claims; deleting an item removes its claims.

# Constraints

  - signup_item.quantity_needed CHECK (>= 1)
  - signup_sheet.management_token UNIQUE
  - claim.claim_token UNIQUE

The claim-count-per-item capacity invariant cannot be expressed
declaratively here; it is enforced in the claim admission transaction
(handlers package) which locks the item row before counting.

# Indexes

Performance indexes on:

  - signup_sheet.management_token (unique)
  - signup_item.sheet_id
  - claim.item_id
  - claim.claim_token (unique)
*/
package db
