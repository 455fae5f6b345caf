// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/lib/pq"

	"github.com/danielhkuo/signup-sheets/availability"
	"github.com/danielhkuo/signup-sheets/models"
)

// Row scanning helpers. These are the only place column order is
// assumed, keeping the entities store-agnostic everywhere else.

const sheetColumns = `id, title, event_date, description, allow_guest_additions, management_token, created_at, updated_at`

const itemColumns = `id, sheet_id, item_name, quantity_needed, require_name, require_contact, require_item_details, display_order, created_at`

const claimColumns = `id, item_id, guest_name, guest_contact, item_details, claim_token, created_at, updated_at`

func scanSheet(row *sql.Row) (models.SignupSheet, error) {
	var s models.SignupSheet
	err := row.Scan(
		&s.ID, &s.Title, &s.EventDate, &s.Description, &s.AllowGuestAdditions,
		&s.ManagementToken, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func getSheetByID(db *sql.DB, id string) (models.SignupSheet, error) {
	return scanSheet(db.QueryRow(`
		SELECT `+sheetColumns+` FROM signup_sheet WHERE id = $1
	`, id))
}

func getItemByID(db *sql.DB, id string) (models.SignupItem, error) {
	var i models.SignupItem
	err := db.QueryRow(`
		SELECT `+itemColumns+` FROM signup_item WHERE id = $1
	`, id).Scan(
		&i.ID, &i.SheetID, &i.ItemName, &i.QuantityNeeded,
		&i.RequireName, &i.RequireContact, &i.RequireItemDetails,
		&i.DisplayOrder, &i.CreatedAt,
	)
	return i, err
}

func getClaimByToken(db *sql.DB, token string) (models.Claim, error) {
	var c models.Claim
	err := db.QueryRow(`
		SELECT `+claimColumns+` FROM claim WHERE claim_token = $1
	`, token).Scan(
		&c.ID, &c.ItemID, &c.GuestName, &c.GuestContact, &c.ItemDetails,
		&c.ClaimToken, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func getClaimsByItemID(db *sql.DB, itemID string) ([]models.Claim, error) {
	rows, err := db.Query(`
		SELECT `+claimColumns+` FROM claim
		WHERE item_id = $1
		ORDER BY created_at
	`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := []models.Claim{}
	for rows.Next() {
		var c models.Claim
		if err := rows.Scan(
			&c.ID, &c.ItemID, &c.GuestName, &c.GuestContact, &c.ItemDetails,
			&c.ClaimToken, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// loadItemViews returns a sheet's items in display order, each with its
// claims and derived availability.
func loadItemViews(db *sql.DB, sheetID string) ([]models.ItemView, error) {
	rows, err := db.Query(`
		SELECT `+itemColumns+` FROM signup_item
		WHERE sheet_id = $1
		ORDER BY display_order, created_at
	`, sheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.SignupItem{}
	for rows.Next() {
		var i models.SignupItem
		if err := rows.Scan(
			&i.ID, &i.SheetID, &i.ItemName, &i.QuantityNeeded,
			&i.RequireName, &i.RequireContact, &i.RequireItemDetails,
			&i.DisplayOrder, &i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	views := []models.ItemView{}
	for _, item := range items {
		claims, err := getClaimsByItemID(db, item.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.ItemView{
			Item:      item,
			Claims:    claims,
			Available: availability.CalculateAvailableQuantity(&item, claims),
			IsFull:    availability.IsItemFull(&item, claims),
		})
	}
	return views, nil
}

// storeErrorStatus maps a failed write to an HTTP status and a generic
// retryable message. Constraint violations get a more specific status
// than plain transport failures.
func storeErrorStatus(err error) (int, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return http.StatusConflict, "Conflicting record already exists"
		case "foreign_key_violation":
			return http.StatusNotFound, "Referenced record no longer exists"
		case "check_violation":
			return http.StatusBadRequest, "Value rejected by a data constraint"
		}
	}
	return http.StatusInternalServerError, "Database error"
}
