package integration_test

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/config"
	"github.com/localnerve/garmentdb/internal/database"
	"github.com/localnerve/garmentdb/internal/handlers"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/tests/helpers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the service with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("RoleScopedVisibility", func(t *testing.T) {
		testRoleScopedVisibility(t, db)
	})

	t.Run("OrderNumberSequence", func(t *testing.T) {
		testOrderNumberSequence(t, db)
	})

	t.Run("StageCompletionStamp", func(t *testing.T) {
		testStageCompletionStamp(t, db)
	})

	t.Run("HandlerRoleGate", func(t *testing.T) {
		testHandlerRoleGate(t, db)
	})
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("POSTGRES_IMAGE"),
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	// Get container host and port
	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(2 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("RoleScopedVisibility", func(t *testing.T) {
		testRoleScopedVisibility(t, db)
	})

	t.Run("OrderNumberSequence", func(t *testing.T) {
		testOrderNumberSequence(t, db)
	})

	t.Run("StageCompletionStamp", func(t *testing.T) {
		testStageCompletionStamp(t, db)
	})
}

// testRoleScopedVisibility verifies who sees which units and inventory:
// admin everything, a client its owned units, a manager its managed units.
func testRoleScopedVisibility(t *testing.T, db *gorm.DB) {
	admin := helpers.CreateTestActor(t, db, "vis-admin", models.RoleAdmin)
	client1 := helpers.CreateTestActor(t, db, "vis-client1", models.RoleClient)
	client2 := helpers.CreateTestActor(t, db, "vis-client2", models.RoleClient)
	manager := helpers.CreateTestActor(t, db, "vis-manager", models.RoleUnitManager)

	unit1 := helpers.CreateTestUnit(t, db, "vis-unit1", client1, manager)
	unit2 := helpers.CreateTestUnit(t, db, "vis-unit2", client2)

	helpers.CreateTestInventoryItem(t, db, unit1, "vis-denim", 100, 10)
	helpers.CreateTestInventoryItem(t, db, unit2, "vis-lining", 50, 10)

	adminUnits, err := services.ListUnits(db, admin)
	if err != nil {
		t.Fatalf("Failed to list units as admin: %v", err)
	}
	if len(adminUnits) < 2 {
		t.Errorf("Expected admin to see at least 2 units, got %d", len(adminUnits))
	}

	clientUnits, err := services.ListUnits(db, client1)
	if err != nil {
		t.Fatalf("Failed to list units as client: %v", err)
	}
	if len(clientUnits) != 1 || clientUnits[0].ID != unit1.ID {
		t.Errorf("Expected client1 to see exactly unit1, got %d units", len(clientUnits))
	}

	managerItems, err := services.ListInventory(db, manager)
	if err != nil {
		t.Fatalf("Failed to list inventory as manager: %v", err)
	}
	for _, item := range managerItems {
		if item.UnitID != unit1.ID {
			t.Errorf("Manager saw item of unmanaged unit %s", item.UnitID)
		}
	}

	// The manager reaches unit1 but not unit2
	if err := services.AuthorizeUnit(db, manager, unit1); err != nil {
		t.Errorf("Expected manager to be authorized on unit1: %v", err)
	}
	if err := services.AuthorizeUnit(db, manager, unit2); err == nil {
		t.Error("Expected manager to be denied on unit2")
	}
}

// testOrderNumberSequence verifies that generated order numbers are unique
// and sequential within a day.
func testOrderNumberSequence(t *testing.T, db *gorm.DB) {
	client := helpers.CreateTestActor(t, db, "seq-client", models.RoleClient)
	product := helpers.CreateTestProduct(t, db, "seq-shirt", "SEQ-001")

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		order, err := services.CreateOrder(db, &services.OrderInput{
			ClientID: client.ID,
			Items: []services.OrderItemInput{
				{ProductID: product.ID, Quantity: 5},
			},
		})
		if err != nil {
			t.Fatalf("Failed to create order: %v", err)
		}
		if seen[order.OrderNumber] {
			t.Errorf("Duplicate order number %s", order.OrderNumber)
		}
		seen[order.OrderNumber] = true
		if order.TotalQuantity != 5 {
			t.Errorf("Expected totalQuantity 5, got %d", order.TotalQuantity)
		}
	}

	// Empty orders are rejected before a number is allocated
	_, err := services.CreateOrder(db, &services.OrderInput{
		ClientID: client.ID,
	})
	if err == nil {
		t.Error("Expected validation error for an order with no items")
	}
}

// testStageCompletionStamp verifies the completedAt auto-stamp at 100%.
func testStageCompletionStamp(t *testing.T, db *gorm.DB) {
	client := helpers.CreateTestActor(t, db, "stage-client", models.RoleClient)
	product := helpers.CreateTestProduct(t, db, "stage-shirt", "STG-001")
	unit := helpers.CreateTestUnit(t, db, "stage-unit", client)
	order := helpers.CreateTestOrder(t, db, "ORD-STAGE-001", client, product, 10, unit)

	cutting := models.StageCutting
	stage, err := services.CreateStage(db, &services.StageInput{
		OrderID:  order.ID,
		UnitID:   unit.ID,
		Stage:    &cutting,
		Progress: flexInt(99),
	})
	if err != nil {
		t.Fatalf("Failed to create stage: %v", err)
	}
	if stage.CompletedAt != nil {
		t.Error("Expected no completion stamp below 100%")
	}

	updated, err := services.UpdateStage(db, stage.ID, &services.StageInput{
		Progress: flexInt(100),
	})
	if err != nil {
		t.Fatalf("Failed to update stage: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Error("Expected completion stamp at 100%")
	}
}

// testHandlerRoleGate drives the inventory listing over HTTP and checks
// the pre-query scoping end to end.
func testHandlerRoleGate(t *testing.T, db *gorm.DB) {
	client := helpers.CreateTestActor(t, db, "gate-client", models.RoleClient)
	other := helpers.CreateTestActor(t, db, "gate-other", models.RoleClient)
	unit := helpers.CreateTestUnit(t, db, "gate-unit", client)
	helpers.CreateTestInventoryItem(t, db, unit, "gate-cotton", 10, 5)

	handler := &handlers.InventoryHandler{DB: db}

	app := fiber.New()
	app.Use(middleware.WithActor(client))
	app.Get("/api/inventories", handler.List)

	req := httptest.NewRequest("GET", "/api/inventories", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var items []models.InventoryItem
	helpers.ParseJSON(t, resp, &items)
	for _, item := range items {
		if item.UnitID != unit.ID {
			t.Errorf("Client saw item of foreign unit %s", item.UnitID)
		}
	}

	// The other client reaches no units, so the listing is empty
	otherApp := fiber.New()
	otherApp.Use(middleware.WithActor(other))
	otherApp.Get("/api/inventories", handler.List)

	req = httptest.NewRequest("GET", "/api/inventories", nil)
	resp, err = otherApp.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var otherItems []models.InventoryItem
	helpers.ParseJSON(t, resp, &otherItems)
	if len(otherItems) != 0 {
		t.Errorf("Expected empty listing for a unit-less client, got %d items", len(otherItems))
	}
}

func flexInt(v int) *types.FlexInt {
	f := types.FlexInt(v)
	return &f
}

// TestHealthCheck tests the health check functionality
func TestHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:     "mysql",
		DBHost:     host,
		DBPort:     port.Port(),
		DBDatabase: "testdb",
		DBUser:     "testuser",
		DBPassword: "testpass",
		AuthzURL:   "http://localhost:9999", // Non-existent service
	}

	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run health check
	result := services.HealthCheck(cfg, db)

	// Database should be healthy
	if result.Database != "ok" {
		t.Errorf("Expected database to be ok, got: %s", result.Database)
	}

	// Authorizer should be unreachable
	if result.Authorizer != "unreachable" {
		t.Errorf("Expected authorizer to be unreachable, got: %s", result.Authorizer)
	}

	// Overall status should be unhealthy
	if result.Status != "unhealthy" {
		t.Errorf("Expected status to be unhealthy, got: %s", result.Status)
	}
}
