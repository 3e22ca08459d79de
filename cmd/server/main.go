package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/garmentdb/internal/config"
	"github.com/localnerve/garmentdb/internal/database"
	"github.com/localnerve/garmentdb/internal/handlers"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/internal/utils"

	_ "github.com/localnerve/garmentdb/docs/api" // Swagger docs
)

// @title GarmentDB API
// @version 1.0.0
// @description Role-scoped data service for garment manufacturing management
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/garmentdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("garmentdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Health is the only unauthenticated API route
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Everything below resolves the session cookie to an actor row
	api.Use(middleware.Protect(cfg, db))

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrClient := middleware.RequireRoles(models.RoleAdmin, models.RoleClient)
	adminOrManager := middleware.RequireRoles(models.RoleAdmin, models.RoleUnitManager)

	// Create handlers
	userHandler := &handlers.UserHandler{DB: db}
	unitHandler := &handlers.UnitHandler{DB: db}
	inventoryHandler := &handlers.InventoryHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}
	stageHandler := &handlers.StageHandler{DB: db}
	notificationHandler := &handlers.NotificationHandler{DB: db}

	// User account routes
	users := api.Group("/users")
	users.Get("/profile", userHandler.Me)
	users.Put("/profile", userHandler.UpdateMe)
	users.Get("/managers", adminOrClient, userHandler.Managers)
	users.Get("/clients", adminOnly, userHandler.Clients)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", adminOnly, userHandler.Get)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Unit routes; listing is role-scoped inside the service
	units := api.Group("/units")
	units.Get("/", unitHandler.List)
	units.Get("/active", unitHandler.Active)
	units.Get("/owner/:ownerId", adminOrManager, unitHandler.ByOwner)
	units.Post("/", adminOrClient, unitHandler.Create)
	units.Get("/:id", unitHandler.Get)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", adminOnly, unitHandler.Delete)

	// Inventory routes; unit authorization happens in the service
	inventories := api.Group("/inventories")
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/lowstock", inventoryHandler.LowStock)
	inventories.Get("/categories", inventoryHandler.Categories)
	inventories.Get("/category/:category", inventoryHandler.ByCategory)
	inventories.Get("/unit/:unitId", inventoryHandler.ByUnit)
	inventories.Post("/", inventoryHandler.Create)
	inventories.Get("/:id", inventoryHandler.Get)
	inventories.Put("/:id", inventoryHandler.Update)
	inventories.Delete("/:id", inventoryHandler.Delete)

	// Product catalog routes (reads open, writes admin)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/category/:category", productHandler.ByCategory)
	products.Get("/sku/:sku", productHandler.BySKU)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Order routes
	orders := api.Group("/orders")
	orders.Get("/", adminOnly, orderHandler.List)
	orders.Get("/client", orderHandler.Mine)
	orders.Get("/unit/:unitId", orderHandler.ByUnit)
	orders.Get("/status/:status", adminOnly, orderHandler.ByStatus)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)

	// Production stage routes; the filtered list and delete are admin-only
	stages := api.Group("/production-stages")
	stages.Get("/", adminOnly, stageHandler.List)
	stages.Get("/order/:orderId", stageHandler.ByOrder)
	stages.Get("/unit/:unitId", stageHandler.ByUnit)
	stages.Get("/type/:stage", stageHandler.ByType)
	stages.Post("/", stageHandler.Create)
	stages.Get("/:id", stageHandler.Get)
	stages.Put("/:id", stageHandler.Update)
	stages.Delete("/:id", adminOnly, stageHandler.Delete)

	// Notification routes
	notifications := api.Group("/notifications")
	notifications.Get("/", adminOnly, notificationHandler.List)
	notifications.Get("/my", notificationHandler.Mine)
	notifications.Put("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.Post("/", adminOnly, notificationHandler.Create)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Authorizer is initialized lazily on the first authenticated request
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if custom, ok := types.AsCustom(err); ok {
		return utils.ErrorResponse(c, custom.Message, custom.Code, custom.Type)
	}

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
