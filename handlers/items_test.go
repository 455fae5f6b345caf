// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/signup-sheets/models"
	"github.com/danielhkuo/signup-sheets/testutil"
)

func TestAddItem_AsManager(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, managementToken := testutil.CreateTestSheet(t, db, false)

	reqBody := models.AddItemRequest{
		NewItem: models.NewItem{
			ItemName:       "Napkins",
			QuantityNeeded: 5,
			RequireName:    true,
		},
	}

	req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", reqBody, map[string]string{
		"X-Management-Token": managementToken,
	})
	req.SetPathValue("id", sheetID)
	w := httptest.NewRecorder()

	handler.AddItem(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var item models.SignupItem
	testutil.AssertJSON(t, w, &item)

	if item.ItemName != "Napkins" {
		t.Errorf("Expected item name 'Napkins', got '%s'", item.ItemName)
	}
	if item.SheetID != sheetID {
		t.Errorf("Expected sheet ID %s, got %s", sheetID, item.SheetID)
	}
	if item.QuantityNeeded != 5 {
		t.Errorf("Expected quantity 5, got %d", item.QuantityNeeded)
	}
}

func TestAddItem_DisplayOrderAppends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, managementToken := testutil.CreateTestSheet(t, db, false)

	addItem := func(name string) models.SignupItem {
		t.Helper()
		reqBody := models.AddItemRequest{
			NewItem: models.NewItem{ItemName: name, QuantityNeeded: 1},
		}
		req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", reqBody, map[string]string{
			"X-Management-Token": managementToken,
		})
		req.SetPathValue("id", sheetID)
		w := httptest.NewRecorder()
		handler.AddItem(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var item models.SignupItem
		testutil.AssertJSON(t, w, &item)
		return item
	}

	first := addItem("First")
	second := addItem("Second")
	third := addItem("Third")

	if first.DisplayOrder != 0 {
		t.Errorf("Expected first item at order 0, got %d", first.DisplayOrder)
	}
	if second.DisplayOrder != 1 {
		t.Errorf("Expected second item at order 1, got %d", second.DisplayOrder)
	}
	if third.DisplayOrder != 2 {
		t.Errorf("Expected third item at order 2, got %d", third.DisplayOrder)
	}
}

func TestAddItem_GuestAdditions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	t.Run("guest allowed when flag is set", func(t *testing.T) {
		sheetID, _ := testutil.CreateTestSheet(t, db, true)

		reqBody := models.AddItemRequest{
			NewItem: models.NewItem{ItemName: "Extra Chairs", QuantityNeeded: 2},
		}
		req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", reqBody, nil)
		req.SetPathValue("id", sheetID)
		w := httptest.NewRecorder()

		handler.AddItem(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("guest rejected when flag is off", func(t *testing.T) {
		sheetID, _ := testutil.CreateTestSheet(t, db, false)

		reqBody := models.AddItemRequest{
			NewItem: models.NewItem{ItemName: "Extra Chairs", QuantityNeeded: 2},
		}
		req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", reqBody, nil)
		req.SetPathValue("id", sheetID)
		w := httptest.NewRecorder()

		handler.AddItem(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("manager allowed even when flag is off", func(t *testing.T) {
		sheetID, managementToken := testutil.CreateTestSheet(t, db, false)

		reqBody := models.AddItemRequest{
			NewItem: models.NewItem{ItemName: "Tablecloth", QuantityNeeded: 1},
		}
		req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", reqBody, map[string]string{
			"X-Management-Token": managementToken,
		})
		req.SetPathValue("id", sheetID)
		w := httptest.NewRecorder()

		handler.AddItem(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("guest item name is sanitized", func(t *testing.T) {
		sheetID, _ := testutil.CreateTestSheet(t, db, true)

		reqBody := models.AddItemRequest{
			NewItem: models.NewItem{ItemName: "<script>alert('x')</script>", QuantityNeeded: 1},
		}
		req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", reqBody, nil)
		req.SetPathValue("id", sheetID)
		w := httptest.NewRecorder()

		handler.AddItem(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var item models.SignupItem
		testutil.AssertJSON(t, w, &item)

		if strings.Contains(item.ItemName, "<script>") {
			t.Errorf("Expected guest item name to be escaped, got '%s'", item.ItemName)
		}
		if !strings.Contains(item.ItemName, "&lt;script&gt;") {
			t.Errorf("Expected escaped entities in item name, got '%s'", item.ItemName)
		}
	})
}

func TestAddItem_SheetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	reqBody := models.AddItemRequest{
		NewItem: models.NewItem{ItemName: "Napkins", QuantityNeeded: 1},
	}
	req := testutil.MakeRequest("POST", "/sheets/nonexistent/items", reqBody, nil)
	req.SetPathValue("id", "nonexistent")
	w := httptest.NewRecorder()

	handler.AddItem(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAddItem_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, managementToken := testutil.CreateTestSheet(t, db, false)

	testCases := []struct {
		name string
		body models.AddItemRequest
	}{
		{
			name: "missing item name",
			body: models.AddItemRequest{NewItem: models.NewItem{QuantityNeeded: 1}},
		},
		{
			name: "zero quantity",
			body: models.AddItemRequest{NewItem: models.NewItem{ItemName: "Salad", QuantityNeeded: 0}},
		},
		{
			name: "negative quantity",
			body: models.AddItemRequest{NewItem: models.NewItem{ItemName: "Salad", QuantityNeeded: -1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sheets/"+sheetID+"/items", tc.body, map[string]string{
				"X-Management-Token": managementToken,
			})
			req.SetPathValue("id", sheetID)
			w := httptest.NewRecorder()

			handler.AddItem(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, managementToken := testutil.CreateTestSheet(t, db, false)
	itemID := testutil.AddTestItem(t, db, sheetID, "Plates", 3, true, false, false)

	newName := "Paper Plates"
	newQuantity := 6
	requireContact := true
	reqBody := models.UpdateItemRequest{
		ItemName:       &newName,
		QuantityNeeded: &newQuantity,
		RequireContact: &requireContact,
	}

	req := testutil.MakeRequest("PUT", "/items/"+itemID, reqBody, map[string]string{
		"X-Management-Token": managementToken,
	})
	req.SetPathValue("id", itemID)
	w := httptest.NewRecorder()

	handler.UpdateItem(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var item models.SignupItem
	testutil.AssertJSON(t, w, &item)

	if item.ItemName != "Paper Plates" {
		t.Errorf("Expected name 'Paper Plates', got '%s'", item.ItemName)
	}
	if item.QuantityNeeded != 6 {
		t.Errorf("Expected quantity 6, got %d", item.QuantityNeeded)
	}
	if !item.RequireContact {
		t.Error("Expected require_contact to be true")
	}
	// Untouched flag stays as created
	if !item.RequireName {
		t.Error("Expected require_name to stay true")
	}
}

func TestUpdateItem_QuantityBelowClaimCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, managementToken := testutil.CreateTestSheet(t, db, false)
	itemID := testutil.AddTestItem(t, db, sheetID, "Plates", 3, true, false, false)
	testutil.AddTestClaim(t, db, itemID, "Alice")
	testutil.AddTestClaim(t, db, itemID, "Bob")

	// Lowering quantity below the existing claim count is allowed;
	// existing claims survive and availability clamps at zero.
	newQuantity := 1
	reqBody := models.UpdateItemRequest{QuantityNeeded: &newQuantity}

	req := testutil.MakeRequest("PUT", "/items/"+itemID, reqBody, map[string]string{
		"X-Management-Token": managementToken,
	})
	req.SetPathValue("id", itemID)
	w := httptest.NewRecorder()

	handler.UpdateItem(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	if got := testutil.CountClaims(t, db, itemID); got != 2 {
		t.Errorf("Expected both claims to survive, got %d", got)
	}
}

func TestUpdateItem_Unauthorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, _ := testutil.CreateTestSheet(t, db, false)
	itemID := testutil.AddTestItem(t, db, sheetID, "Plates", 3, true, false, false)

	newName := "Hijacked"
	reqBody := models.UpdateItemRequest{ItemName: &newName}

	t.Run("wrong token", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/items/"+itemID, reqBody, map[string]string{
			"X-Management-Token": "wrong-token",
		})
		req.SetPathValue("id", itemID)
		w := httptest.NewRecorder()

		handler.UpdateItem(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("nonexistent item gets same response", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/items/nonexistent", reqBody, map[string]string{
			"X-Management-Token": "wrong-token",
		})
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.UpdateItem(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestDeleteItem(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, managementToken := testutil.CreateTestSheet(t, db, false)
	itemID := testutil.AddTestItem(t, db, sheetID, "Plates", 3, true, false, false)
	testutil.AddTestClaim(t, db, itemID, "Alice")
	testutil.AddTestClaim(t, db, itemID, "Bob")

	req := testutil.MakeRequest("DELETE", "/items/"+itemID, nil, map[string]string{
		"X-Management-Token": managementToken,
	})
	req.SetPathValue("id", itemID)
	w := httptest.NewRecorder()

	handler.DeleteItem(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.MessageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Item deleted" {
		t.Errorf("Expected message 'Item deleted', got '%s'", resp.Message)
	}

	// Item gone
	var itemCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM signup_item WHERE id = $1`, itemID).Scan(&itemCount); err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if itemCount != 0 {
		t.Errorf("Expected item to be deleted, found %d", itemCount)
	}

	// Claims cascade
	if got := testutil.CountClaims(t, db, itemID); got != 0 {
		t.Errorf("Expected claims to cascade on item deletion, got %d", got)
	}
}

func TestDeleteItem_Unauthorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewItemHandler(db, cfg)

	sheetID, _ := testutil.CreateTestSheet(t, db, false)
	itemID := testutil.AddTestItem(t, db, sheetID, "Plates", 3, true, false, false)

	req := testutil.MakeRequest("DELETE", "/items/"+itemID, nil, nil)
	req.SetPathValue("id", itemID)
	w := httptest.NewRecorder()

	handler.DeleteItem(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	var itemCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM signup_item WHERE id = $1`, itemID).Scan(&itemCount); err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if itemCount != 1 {
		t.Errorf("Expected item to survive, found %d", itemCount)
	}
}
