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

type ItemHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewItemHandler(db *sql.DB, cfg cliparse.Config) *ItemHandler {
	return &ItemHandler{db: db, cfg: cfg}
}

// AddItem handles POST /sheets/{id}/items
// The management token always authorizes this; without one it is allowed
// only when the sheet has allow_guest_additions set.
func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sheetID := r.PathValue("id")
	if sheetID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sheet id is required")
		return
	}

	sheet, err := getSheetByID(h.db, sheetID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sheet not found")
		return
	}
	if err != nil {
		slog.Error("failed to query sheet", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	isManager := auth.TokensMatch(r.Header.Get("X-Management-Token"), sheet.ManagementToken)
	if !isManager && !sheet.AllowGuestAdditions {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid management token")
		return
	}

	var req models.AddItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validate.IsNonEmptyString(req.ItemName) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item_name is required")
		return
	}
	if !validate.IsPositiveInteger(req.QuantityNeeded) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "quantity_needed must be a positive integer")
		return
	}

	itemName := req.ItemName
	if !isManager {
		// Guest-supplied free text is sanitized before persisting
		itemName = validate.SanitizeInput(req.ItemName)
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		err = h.db.QueryRow(`
			SELECT COALESCE(MAX(display_order) + 1, 0) FROM signup_item WHERE sheet_id = $1
		`, sheet.ID).Scan(&displayOrder)
		if err != nil {
			slog.Error("failed to compute display order", "error", err, "sheet_id", sheet.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	item := models.SignupItem{
		ID:                 uuid.NewString(),
		SheetID:            sheet.ID,
		ItemName:           itemName,
		QuantityNeeded:     req.QuantityNeeded,
		RequireName:        req.RequireName,
		RequireContact:     req.RequireContact,
		RequireItemDetails: req.RequireItemDetails,
		DisplayOrder:       displayOrder,
		CreatedAt:          time.Now(),
	}

	_, err = h.db.Exec(`
		INSERT INTO signup_item (id, sheet_id, item_name, quantity_needed, require_name, require_contact, require_item_details, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, item.ID, item.SheetID, item.ItemName, item.QuantityNeeded,
		item.RequireName, item.RequireContact, item.RequireItemDetails,
		item.DisplayOrder, item.CreatedAt)

	if err != nil {
		slog.Error("failed to insert item", "error", err, "sheet_id", sheet.ID)
		status, msg := storeErrorStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	slog.Info("item added", "sheet_id", sheet.ID, "item_id", item.ID, "by_manager", isManager)

	middleware.JSONResponse(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /items/{id}
// Partial update of name, quantity, requirement flags, and display
// order. Lowering the quantity below the current claim count is allowed;
// availability clamps at zero and admission uses the new limit.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.authorizeItem(w, r)
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ItemName != nil {
		if !validate.IsNonEmptyString(*req.ItemName) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "item_name cannot be empty")
			return
		}
		item.ItemName = *req.ItemName
	}
	if req.QuantityNeeded != nil {
		if !validate.IsPositiveInteger(*req.QuantityNeeded) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "quantity_needed must be a positive integer")
			return
		}
		item.QuantityNeeded = *req.QuantityNeeded
	}
	if req.RequireName != nil {
		item.RequireName = *req.RequireName
	}
	if req.RequireContact != nil {
		item.RequireContact = *req.RequireContact
	}
	if req.RequireItemDetails != nil {
		item.RequireItemDetails = *req.RequireItemDetails
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	_, err := h.db.Exec(`
		UPDATE signup_item
		SET item_name = $1, quantity_needed = $2, require_name = $3, require_contact = $4, require_item_details = $5, display_order = $6
		WHERE id = $7
	`, item.ItemName, item.QuantityNeeded, item.RequireName, item.RequireContact,
		item.RequireItemDetails, item.DisplayOrder, item.ID)

	if err != nil {
		slog.Error("failed to update item", "error", err, "item_id", item.ID)
		status, msg := storeErrorStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	slog.Info("item updated", "item_id", item.ID)

	middleware.JSONResponse(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/{id}
// Cascades to the item's claims.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.authorizeItem(w, r)
	if !ok {
		return
	}

	_, err := h.db.Exec(`DELETE FROM signup_item WHERE id = $1`, item.ID)
	if err != nil {
		slog.Error("failed to delete item", "error", err, "item_id", item.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("item deleted", "item_id", item.ID, "sheet_id", item.SheetID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Item deleted"})
}

// authorizeItem resolves the item in the path and checks the owning
// sheet's management token. Missing item, missing sheet, and wrong token
// all produce the same 401.
func (h *ItemHandler) authorizeItem(w http.ResponseWriter, r *http.Request) (models.SignupItem, bool) {
	itemID := r.PathValue("id")
	token := r.Header.Get("X-Management-Token")

	item, err := getItemByID(h.db, itemID)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.SignupItem{}, false
	}
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid management token")
		return models.SignupItem{}, false
	}

	sheet, err := getSheetByID(h.db, item.SheetID)
	if err != nil {
		slog.Error("failed to query sheet", "error", err, "sheet_id", item.SheetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.SignupItem{}, false
	}
	if !auth.TokensMatch(token, sheet.ManagementToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid management token")
		return models.SignupItem{}, false
	}

	return item, true
}
