// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Signup sheets
CREATE TABLE IF NOT EXISTS signup_sheet (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    event_date DATE NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    allow_guest_additions BOOLEAN NOT NULL DEFAULT FALSE,
    management_token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_signup_sheet_management_token ON signup_sheet(management_token);

-- Items needed on a sheet
CREATE TABLE IF NOT EXISTS signup_item (
    id TEXT PRIMARY KEY,
    sheet_id TEXT NOT NULL REFERENCES signup_sheet(id) ON DELETE CASCADE,
    item_name TEXT NOT NULL,
    quantity_needed INTEGER NOT NULL CHECK (quantity_needed >= 1),
    require_name BOOLEAN NOT NULL DEFAULT FALSE,
    require_contact BOOLEAN NOT NULL DEFAULT FALSE,
    require_item_details BOOLEAN NOT NULL DEFAULT FALSE,
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_signup_item_sheet_id ON signup_item(sheet_id);

-- Guest claims against items
CREATE TABLE IF NOT EXISTS claim (
    id TEXT PRIMARY KEY,
    item_id TEXT NOT NULL REFERENCES signup_item(id) ON DELETE CASCADE,
    guest_name TEXT NOT NULL DEFAULT '',
    guest_contact TEXT,
    item_details TEXT,
    claim_token TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_claim_item_id ON claim(item_id);
CREATE INDEX IF NOT EXISTS idx_claim_claim_token ON claim(claim_token);
`
