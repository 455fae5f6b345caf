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

// eventDateLayout is the wire format for event dates.
const eventDateLayout = "2006-01-02"

type SheetHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSheetHandler(db *sql.DB, cfg cliparse.Config) *SheetHandler {
	return &SheetHandler{db: db, cfg: cfg}
}

// CreateSheet handles POST /sheets
// Creates a sheet and its initial items in one transaction. The
// management token is returned here and never again.
func (h *SheetHandler) CreateSheet(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSheetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if !validate.IsNonEmptyString(req.Title) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	eventDate, err := time.Parse(eventDateLayout, req.EventDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_date must be YYYY-MM-DD")
		return
	}
	for _, item := range req.Items {
		if !validate.IsNonEmptyString(item.ItemName) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "item_name is required for every item")
			return
		}
		if !validate.IsPositiveInteger(item.QuantityNeeded) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "quantity_needed must be a positive integer")
			return
		}
	}

	managementToken, err := auth.GenerateToken()
	if err != nil {
		slog.Error("failed to generate management token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sheet")
		return
	}

	sheetID := uuid.NewString()
	now := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO signup_sheet (id, title, event_date, description, allow_guest_additions, management_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, sheetID, req.Title, eventDate, req.Description, req.AllowGuestAdditions, managementToken, now)

	if err != nil {
		slog.Error("failed to insert sheet", "error", err)
		status, msg := storeErrorStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	items := []models.SignupItem{}
	for order, newItem := range req.Items {
		item := models.SignupItem{
			ID:                 uuid.NewString(),
			SheetID:            sheetID,
			ItemName:           newItem.ItemName,
			QuantityNeeded:     newItem.QuantityNeeded,
			RequireName:        newItem.RequireName,
			RequireContact:     newItem.RequireContact,
			RequireItemDetails: newItem.RequireItemDetails,
			DisplayOrder:       order,
			CreatedAt:          now,
		}
		_, err = tx.Exec(`
			INSERT INTO signup_item (id, sheet_id, item_name, quantity_needed, require_name, require_contact, require_item_details, display_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, item.ID, item.SheetID, item.ItemName, item.QuantityNeeded,
			item.RequireName, item.RequireContact, item.RequireItemDetails,
			item.DisplayOrder, item.CreatedAt)

		if err != nil {
			slog.Error("failed to insert item", "error", err, "sheet_id", sheetID)
			status, msg := storeErrorStatus(err)
			middleware.ErrorResponse(w, status, msg)
			return
		}
		items = append(items, item)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create sheet")
		return
	}

	slog.Info("sheet created", "sheet_id", sheetID, "items", len(items))

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSheetResponse{
		Sheet: models.SignupSheet{
			ID:                  sheetID,
			Title:               req.Title,
			EventDate:           eventDate,
			Description:         req.Description,
			AllowGuestAdditions: req.AllowGuestAdditions,
			CreatedAt:           now,
			UpdatedAt:           now,
		},
		Items:           items,
		ManagementToken: managementToken,
		ShareURL:        h.cfg.BaseURL + "/sheet/" + sheetID,
		ManageURL:       h.cfg.BaseURL + "/sheet/" + sheetID + "/edit/" + managementToken,
	})
}

// GetSheet handles GET /sheets/{id}
// Public view: anyone with the share link can read the sheet, its items,
// their claims, and the derived availability. No tokens are included.
func (h *SheetHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
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

	views, err := loadItemViews(h.db, sheet.ID)
	if err != nil {
		slog.Error("failed to load items", "error", err, "sheet_id", sheet.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SheetView{
		Sheet: sheet,
		Items: views,
	})
}

// GetSheetManage handles GET /sheets/{id}/manage
// Same view as GetSheet but gated by the management token. A wrong token
// and a missing sheet are deliberately indistinguishable.
func (h *SheetHandler) GetSheetManage(w http.ResponseWriter, r *http.Request) {
	sheet, ok := h.authorizeSheet(w, r)
	if !ok {
		return
	}

	views, err := loadItemViews(h.db, sheet.ID)
	if err != nil {
		slog.Error("failed to load items", "error", err, "sheet_id", sheet.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SheetView{
		Sheet: sheet,
		Items: views,
	})
}

// UpdateSheet handles PUT /sheets/{id}
// Partial update of title, event date, description, and the guest
// additions flag. The management token itself is immutable.
func (h *SheetHandler) UpdateSheet(w http.ResponseWriter, r *http.Request) {
	sheet, ok := h.authorizeSheet(w, r)
	if !ok {
		return
	}

	var req models.UpdateSheetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title != nil {
		if !validate.IsNonEmptyString(*req.Title) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		sheet.Title = *req.Title
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(eventDateLayout, *req.EventDate)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "event_date must be YYYY-MM-DD")
			return
		}
		sheet.EventDate = eventDate
	}
	if req.Description != nil {
		sheet.Description = *req.Description
	}
	if req.AllowGuestAdditions != nil {
		sheet.AllowGuestAdditions = *req.AllowGuestAdditions
	}
	sheet.UpdatedAt = time.Now()

	_, err := h.db.Exec(`
		UPDATE signup_sheet
		SET title = $1, event_date = $2, description = $3, allow_guest_additions = $4, updated_at = $5
		WHERE id = $6
	`, sheet.Title, sheet.EventDate, sheet.Description, sheet.AllowGuestAdditions, sheet.UpdatedAt, sheet.ID)

	if err != nil {
		slog.Error("failed to update sheet", "error", err, "sheet_id", sheet.ID)
		status, msg := storeErrorStatus(err)
		middleware.ErrorResponse(w, status, msg)
		return
	}

	slog.Info("sheet updated", "sheet_id", sheet.ID)

	middleware.JSONResponse(w, http.StatusOK, sheet)
}

// authorizeSheet resolves the sheet in the path against the
// X-Management-Token header. On failure it writes a 401; a wrong token
// and a nonexistent sheet produce the same response so the management
// endpoint never acts as an existence oracle.
func (h *SheetHandler) authorizeSheet(w http.ResponseWriter, r *http.Request) (models.SignupSheet, bool) {
	sheetID := r.PathValue("id")
	token := r.Header.Get("X-Management-Token")

	sheet, err := getSheetByID(h.db, sheetID)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query sheet", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.SignupSheet{}, false
	}
	if err == sql.ErrNoRows || !auth.TokensMatch(token, sheet.ManagementToken) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid management token")
		return models.SignupSheet{}, false
	}

	return sheet, true
}
