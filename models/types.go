// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type NewItem struct {
	ItemName           string `json:"item_name"`
	QuantityNeeded     int    `json:"quantity_needed"`
	RequireName        bool   `json:"require_name"`
	RequireContact     bool   `json:"require_contact"`
	RequireItemDetails bool   `json:"require_item_details"`
}

type CreateSheetRequest struct {
	Title               string    `json:"title"`
	EventDate           string    `json:"event_date"` // YYYY-MM-DD
	Description         string    `json:"description"`
	AllowGuestAdditions bool      `json:"allow_guest_additions"`
	Items               []NewItem `json:"items"`
}

type UpdateSheetRequest struct {
	Title               *string `json:"title,omitempty"`
	EventDate           *string `json:"event_date,omitempty"`
	Description         *string `json:"description,omitempty"`
	AllowGuestAdditions *bool   `json:"allow_guest_additions,omitempty"`
}

type AddItemRequest struct {
	NewItem
	DisplayOrder *int `json:"display_order,omitempty"`
}

type UpdateItemRequest struct {
	ItemName           *string `json:"item_name,omitempty"`
	QuantityNeeded     *int    `json:"quantity_needed,omitempty"`
	RequireName        *bool   `json:"require_name,omitempty"`
	RequireContact     *bool   `json:"require_contact,omitempty"`
	RequireItemDetails *bool   `json:"require_item_details,omitempty"`
	DisplayOrder       *int    `json:"display_order,omitempty"`
}

// ClaimFormData carries the guest-supplied claim fields. Optional fields
// are pointers so that "absent" and "empty string" stay distinguishable
// all the way to the database and back.
type ClaimFormData struct {
	GuestName    string  `json:"guest_name"`
	GuestContact *string `json:"guest_contact,omitempty"`
	ItemDetails  *string `json:"item_details,omitempty"`
}

// Response types

type CreateSheetResponse struct {
	Sheet           SignupSheet  `json:"sheet"`
	Items           []SignupItem `json:"items"`
	ManagementToken string       `json:"management_token"`
	ShareURL        string       `json:"share_url"`
	ManageURL       string       `json:"manage_url"`
}

type SheetView struct {
	Sheet SignupSheet `json:"sheet"`
	Items []ItemView  `json:"items"`
}

type ItemView struct {
	Item      SignupItem `json:"item"`
	Claims    []Claim    `json:"claims"`
	Available int        `json:"available"`
	IsFull    bool       `json:"is_full"`
}

type CreateClaimResponse struct {
	Claim      Claim  `json:"claim"`
	ClaimToken string `json:"claim_token"`
	ClaimURL   string `json:"claim_url"`
}

// ClaimView backs the claim edit page: the claim plus enough context
// (item requirements, sheet title) to render the form.
type ClaimView struct {
	Claim      Claim      `json:"claim"`
	Item       SignupItem `json:"item"`
	SheetID    string     `json:"sheet_id"`
	SheetTitle string     `json:"sheet_title"`
}

// Domain types

type SignupSheet struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	EventDate           time.Time `json:"event_date"`
	Description         string    `json:"description"`
	AllowGuestAdditions bool      `json:"allow_guest_additions"`
	ManagementToken     string    `json:"-"` // Never expose in JSON
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type SignupItem struct {
	ID                 string    `json:"id"`
	SheetID            string    `json:"sheet_id"`
	ItemName           string    `json:"item_name"`
	QuantityNeeded     int       `json:"quantity_needed"`
	RequireName        bool      `json:"require_name"`
	RequireContact     bool      `json:"require_contact"`
	RequireItemDetails bool      `json:"require_item_details"`
	DisplayOrder       int       `json:"display_order"`
	CreatedAt          time.Time `json:"created_at"`
}

type Claim struct {
	ID           string    `json:"id"`
	ItemID       string    `json:"item_id"`
	GuestName    string    `json:"guest_name"`
	GuestContact *string   `json:"guest_contact,omitempty"`
	ItemDetails  *string   `json:"item_details,omitempty"`
	ClaimToken   string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
