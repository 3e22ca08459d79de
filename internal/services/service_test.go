package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/garmentdb/internal/models"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway in-memory database with the same GORM
// configuration production runs with.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

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
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}
