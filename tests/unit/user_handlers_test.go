// user_handlers_test.go
//
// A role-scoped data service for garment manufacturing management
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of garmentdb.
// garmentdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// garmentdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with garmentdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/localnerve/garmentdb/internal/handlers"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/tests/helpers"
)

func TestDeleteAdminRefused(t *testing.T) {
	db := setupTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	other := helpers.CreateTestActor(t, db, "second-admin", models.RoleAdmin)

	app := newApp(admin)
	handler := &handlers.UserHandler{DB: db}
	app.Delete("/api/users/:id", handler.Delete)

	req := httptest.NewRequest("DELETE", "/api/users/"+other.ID, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 403)

	// The account is still there
	var count int64
	db.Model(&models.Actor{}).Where("id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Error("Admin account must survive the delete attempt")
	}
}

func TestUpdateMeKeepsRole(t *testing.T) {
	db := setupTestDB(t)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)

	app := newApp(client)
	handler := &handlers.UserHandler{DB: db}
	app.Put("/api/users/profile", handler.UpdateMe)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Renamed Client",
		"role": "admin",
	})
	req := httptest.NewRequest("PUT", "/api/users/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var updated models.Actor
	if err := db.First(&updated, "id = ?", client.ID).Error; err != nil {
		t.Fatalf("Failed to reload actor: %v", err)
	}
	if updated.Name != "Renamed Client" {
		t.Errorf("Expected renamed profile, got %q", updated.Name)
	}
	if updated.Role != models.RoleClient {
		t.Errorf("Profile update must not escalate role, got %q", updated.Role)
	}
}

func TestListManagersEmpty(t *testing.T) {
	db := setupTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)

	app := newApp(admin)
	handler := &handlers.UserHandler{DB: db}
	app.Get("/api/users/managers", handler.Managers)

	req := httptest.NewRequest("GET", "/api/users/managers", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

func TestCreateUserInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)

	app := newApp(admin)
	handler := &handlers.UserHandler{DB: db}
	app.Post("/api/users", handler.Create)

	body, _ := json.Marshal(map[string]interface{}{
		"name":  "Bad Role",
		"phone": "+91-bad-role",
		"role":  "superuser",
	})
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["type"] != "validation" {
		t.Errorf("Expected type validation, got %v", result["type"])
	}
}
