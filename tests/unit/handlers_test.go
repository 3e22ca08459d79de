package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/handlers"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/tests/helpers"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.Actor{},
		&models.Unit{},
		&models.InventoryItem{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCounter{},
		&models.ProductionStage{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newApp builds a fiber app whose requests run as the given actor.
func newApp(actor *models.Actor) *fiber.App {
	app := fiber.New()
	app.Use(middleware.WithActor(actor))
	return app
}

// TestLowStockBoundary tests GET /api/inventories/lowstock: the boundary
// is inclusive, quantity equal to the reorder level already counts.
func TestLowStockBoundary(t *testing.T) {
	db := setupTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)
	unit := helpers.CreateTestUnit(t, db, "unit", client)

	helpers.CreateTestInventoryItem(t, db, unit, "at-level", 10, 10)
	helpers.CreateTestInventoryItem(t, db, unit, "below", 3, 10)
	helpers.CreateTestInventoryItem(t, db, unit, "above", 11, 10)

	app := newApp(admin)
	handler := &handlers.InventoryHandler{DB: db}
	app.Get("/api/inventories/lowstock", handler.LowStock)

	req := httptest.NewRequest("GET", "/api/inventories/lowstock", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var items []models.InventoryItem
	helpers.ParseJSON(t, resp, &items)

	if len(items) != 2 {
		t.Fatalf("Expected 2 low stock items, got %d", len(items))
	}
	for _, item := range items {
		if item.ItemName == "above" {
			t.Error("Item above its reorder level must not appear as low stock")
		}
	}
}

// TestOrderListPagination tests the GET /api/orders envelope geometry.
func TestOrderListPagination(t *testing.T) {
	db := setupTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)
	product := helpers.CreateTestProduct(t, db, "shirt", "SKU-PG-1")

	helpers.CreateTestOrder(t, db, "ORD-PG-001", client, product, 5)
	helpers.CreateTestOrder(t, db, "ORD-PG-002", client, product, 5)
	helpers.CreateTestOrder(t, db, "ORD-PG-003", client, product, 5)

	app := newApp(admin)
	handler := &handlers.OrderHandler{DB: db}
	app.Get("/api/orders", handler.List)

	req := httptest.NewRequest("GET", "/api/orders?page=1&limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result struct {
		TotalOrders int64          `json:"totalOrders"`
		Page        int            `json:"page"`
		Limit       int            `json:"limit"`
		TotalPages  int            `json:"totalPages"`
		Orders      []models.Order `json:"orders"`
	}
	helpers.ParseJSON(t, resp, &result)

	if result.TotalOrders != 3 {
		t.Errorf("Expected totalOrders 3, got %d", result.TotalOrders)
	}
	if result.TotalPages != 2 {
		t.Errorf("Expected totalPages 2, got %d", result.TotalPages)
	}
	if len(result.Orders) != 2 {
		t.Errorf("Expected 2 orders on page 1, got %d", len(result.Orders))
	}
}

// TestCreateOrderValidation tests POST /api/orders rejections.
func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)

	app := newApp(client)
	handler := &handlers.OrderHandler{DB: db}
	app.Post("/api/orders", handler.Create)

	// No items
	body, _ := json.Marshal(map[string]interface{}{
		"client": client.ID,
		"items":  []interface{}{},
	})
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	// Unknown client
	body, _ = json.Marshal(map[string]interface{}{
		"client": "00000000-0000-0000-0000-000000000000",
		"items": []map[string]interface{}{
			{"product": "00000000-0000-0000-0000-000000000001", "quantity": 1},
		},
	})
	req = httptest.NewRequest("POST", "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}

// TestMarkAllNotificationsRead tests idempotence and actor isolation of
// PUT /api/notifications/mark-all-read.
func TestMarkAllNotificationsRead(t *testing.T) {
	db := setupTestDB(t)
	reader := helpers.CreateTestActor(t, db, "reader", models.RoleClient)
	bystander := helpers.CreateTestActor(t, db, "bystander", models.RoleClient)

	for i := 0; i < 3; i++ {
		_, err := services.CreateNotification(db, &services.NotificationInput{
			UserID:  reader.ID,
			Title:   "order update",
			Message: "your order moved",
		})
		if err != nil {
			t.Fatalf("Failed to create notification: %v", err)
		}
	}
	_, err := services.CreateNotification(db, &services.NotificationInput{
		UserID:  bystander.ID,
		Title:   "unrelated",
		Message: "still unread",
	})
	if err != nil {
		t.Fatalf("Failed to create notification: %v", err)
	}

	app := newApp(reader)
	handler := &handlers.NotificationHandler{DB: db}
	app.Put("/api/notifications/mark-all-read", handler.MarkAllRead)

	req := httptest.NewRequest("PUT", "/api/notifications/mark-all-read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", reader.ID, false).
		Count(&unread)
	if unread != 0 {
		t.Errorf("Expected 0 unread for reader, got %d", unread)
	}

	// Repeating the call changes nothing and still succeeds
	req = httptest.NewRequest("PUT", "/api/notifications/mark-all-read", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	// The other actor's notification stays unread
	var otherUnread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", bystander.ID, false).
		Count(&otherUnread)
	if otherUnread != 1 {
		t.Errorf("Expected bystander's notification untouched, got %d unread", otherUnread)
	}
}

// TestNotFound tests the typed 404 envelope for a missing unit.
func TestNotFound(t *testing.T) {
	db := setupTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)

	app := newApp(admin)
	handler := &handlers.UnitHandler{DB: db}
	app.Get("/api/units/:id", handler.Get)

	req := httptest.NewRequest("GET", "/api/units/00000000-0000-0000-0000-000000000000", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["ok"] != false {
		t.Error("Expected ok=false in the error envelope")
	}
	if result["type"] != "notfound" {
		t.Errorf("Expected type notfound, got %v", result["type"])
	}
}
