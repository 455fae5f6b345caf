// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/signup-sheets/cliparse"
	"github.com/danielhkuo/signup-sheets/handlers"
	"github.com/danielhkuo/signup-sheets/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sheetHandler := handlers.NewSheetHandler(db, cfg)
	itemHandler := handlers.NewItemHandler(db, cfg)
	claimHandler := handlers.NewClaimHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sheets (management operations require X-Management-Token)
	mux.HandleFunc("POST /sheets", middleware.WithLogging(sheetHandler.CreateSheet))
	mux.HandleFunc("GET /sheets/{id}", middleware.WithLogging(sheetHandler.GetSheet))
	mux.HandleFunc("GET /sheets/{id}/manage", middleware.WithLogging(sheetHandler.GetSheetManage))
	mux.HandleFunc("PUT /sheets/{id}", middleware.WithLogging(sheetHandler.UpdateSheet))

	// Items
	mux.HandleFunc("POST /sheets/{id}/items", middleware.WithLogging(itemHandler.AddItem))
	mux.HandleFunc("PUT /items/{id}", middleware.WithLogging(itemHandler.UpdateItem))
	mux.HandleFunc("DELETE /items/{id}", middleware.WithLogging(itemHandler.DeleteItem))

	// Claims (the claim token in the path is the capability)
	mux.HandleFunc("POST /items/{id}/claims", middleware.WithLogging(claimHandler.CreateClaim))
	mux.HandleFunc("GET /claims/{token}", middleware.WithLogging(claimHandler.GetClaim))
	mux.HandleFunc("PUT /claims/{token}", middleware.WithLogging(claimHandler.UpdateClaim))
	mux.HandleFunc("DELETE /claims/{token}", middleware.WithLogging(claimHandler.DeleteClaim))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("signup-sheets API v1"))
	})

	return mux
}
