// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/signup-sheets/auth"
	"github.com/danielhkuo/signup-sheets/cliparse"
	"github.com/danielhkuo/signup-sheets/middleware"
	"github.com/danielhkuo/signup-sheets/models"
	"github.com/danielhkuo/signup-sheets/validate"
)

type ClaimHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewClaimHandler(db *sql.DB, cfg cliparse.Config) *ClaimHandler {
	return &ClaimHandler{db: db, cfg: cfg}
}

// CreateClaim handles POST /items/{id}/claims
//
// This is the one write with a cross-record invariant: the number of
// claims on an item must never exceed quantity_needed, even under
// concurrent submissions. The count check and the insert run in a single
// transaction that locks the item row first (SELECT ... FOR UPDATE), so
// concurrent admissions on the same item serialize and at most
// quantity_needed of them commit.
func (h *ClaimHandler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item id is required")
		return
	}

	item, err := getItemByID(h.db, itemID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to query item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var form models.ClaimFormData
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fieldErrs := validate.ValidateClaimForm(form, validate.ClaimRequirements{
		RequireName:        item.RequireName,
		RequireContact:     item.RequireContact,
		RequireItemDetails: item.RequireItemDetails,
	})
	if len(fieldErrs) > 0 {
		middleware.ValidationErrorResponse(w, fieldErrs)
		return
	}

	claimToken, err := auth.GenerateToken()
	if err != nil {
		slog.Error("failed to generate claim token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create claim")
		return
	}

	claim := models.Claim{
		ID:           uuid.NewString(),
		ItemID:       item.ID,
		GuestName:    validate.SanitizeInput(form.GuestName),
		GuestContact: sanitizeOptional(form.GuestContact),
		ItemDetails:  sanitizeOptional(form.ItemDetails),
		ClaimToken:   claimToken,
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Lock the item row so concurrent admissions on this item serialize
	var quantityNeeded int
	err = tx.QueryRow(`
		SELECT quantity_needed FROM signup_item WHERE id = $1 FOR UPDATE
	`, item.ID).Scan(&quantityNeeded)

	if err == sql.ErrNoRows {
		// Item deleted since the initial read
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to lock item", "error", err, "item_id", item.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var claimCount int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM claim WHERE item_id = $1
	`, item.ID).Scan(&claimCount)

	if err != nil {
		slog.Error("failed to count claims", "error", err, "item_id", item.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if claimCount >= quantityNeeded {
		middleware.ErrorResponse(w, http.StatusConflict, "Item is full - no more claims can be added")
		return
	}

	now := time.Now()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	_, err = tx.Exec(`
		INSERT INTO claim (id, item_id, guest_name, guest_contact, item_details, claim_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, claim.ID, claim.ItemID, claim.GuestName, claim.GuestContact,
		claim.ItemDetails, claim.ClaimToken, now)

	if err != nil {
		slog.Error("failed to insert claim", "error", err, "item_id", item.ID)
		status, msg := storeErrorStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create claim")
		return
	}

	slog.Info("claim created", "claim_id", claim.ID, "item_id", item.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateClaimResponse{
		Claim:      claim,
		ClaimToken: claimToken,
		ClaimURL:   h.cfg.BaseURL + "/claim/" + claimToken,
	})
}

// GetClaim handles GET /claims/{token}
// Returns the claim with its item and sheet context so the edit form
// can render the right fields.
func (h *ClaimHandler) GetClaim(w http.ResponseWriter, r *http.Request) {
	claim, ok := h.resolveClaim(w, r)
	if !ok {
		return
	}

	item, err := getItemByID(h.db, claim.ItemID)
	if err != nil {
		slog.Error("failed to query item", "error", err, "item_id", claim.ItemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sheet, err := getSheetByID(h.db, item.SheetID)
	if err != nil {
		slog.Error("failed to query sheet", "error", err, "sheet_id", item.SheetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ClaimView{
		Claim:      claim,
		Item:       item,
		SheetID:    sheet.ID,
		SheetTitle: sheet.Title,
	})
}

// UpdateClaim handles PUT /claims/{token}
// Edits guest fields only; the claim never moves to another item, so no
// capacity check is needed. Fields are re-validated against the item's
// current requirement flags.
func (h *ClaimHandler) UpdateClaim(w http.ResponseWriter, r *http.Request) {
	claim, ok := h.resolveClaim(w, r)
	if !ok {
		return
	}

	item, err := getItemByID(h.db, claim.ItemID)
	if err != nil {
		slog.Error("failed to query item", "error", err, "item_id", claim.ItemID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var form models.ClaimFormData
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fieldErrs := validate.ValidateClaimForm(form, validate.ClaimRequirements{
		RequireName:        item.RequireName,
		RequireContact:     item.RequireContact,
		RequireItemDetails: item.RequireItemDetails,
	})
	if len(fieldErrs) > 0 {
		middleware.ValidationErrorResponse(w, fieldErrs)
		return
	}

	claim.GuestName = validate.SanitizeInput(form.GuestName)
	claim.GuestContact = sanitizeOptional(form.GuestContact)
	claim.ItemDetails = sanitizeOptional(form.ItemDetails)
	claim.UpdatedAt = time.Now()

	_, err = h.db.Exec(`
		UPDATE claim
		SET guest_name = $1, guest_contact = $2, item_details = $3, updated_at = $4
		WHERE id = $5
	`, claim.GuestName, claim.GuestContact, claim.ItemDetails, claim.UpdatedAt, claim.ID)

	if err != nil {
		slog.Error("failed to update claim", "error", err, "claim_id", claim.ID)
		status, msg := storeErrorStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	slog.Info("claim updated", "claim_id", claim.ID)

	middleware.JSONResponse(w, http.StatusOK, claim)
}

// DeleteClaim handles DELETE /claims/{token}
// Cancels the claim, which implicitly frees one slot on the item.
func (h *ClaimHandler) DeleteClaim(w http.ResponseWriter, r *http.Request) {
	claim, ok := h.resolveClaim(w, r)
	if !ok {
		return
	}

	_, err := h.db.Exec(`DELETE FROM claim WHERE id = $1`, claim.ID)
	if err != nil {
		slog.Error("failed to delete claim", "error", err, "claim_id", claim.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("claim cancelled", "claim_id", claim.ID, "item_id", claim.ItemID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Claim cancelled"})
}

// resolveClaim maps the token in the path to its claim. An unknown token
// gets a 401 with no hint of whether such a claim ever existed.
func (h *ClaimHandler) resolveClaim(w http.ResponseWriter, r *http.Request) (models.Claim, bool) {
	token := r.PathValue("token")

	claim, err := getClaimByToken(h.db, token)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Claim{}, false
	}
	if err == sql.ErrNoRows || !auth.TokensMatch(token, claim.ClaimToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid claim token")
		return models.Claim{}, false
	}

	return claim, true
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := validate.SanitizeInput(*s)
	return &clean
}
