// data.go
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

package helpers

import (
	"fmt"
	"testing"

	"github.com/localnerve/garmentdb/internal/models"
	"gorm.io/gorm"
)

// CreateTestActor creates an actor with the given role. The phone number
// is derived from the name to satisfy the unique index.
func CreateTestActor(t *testing.T, db *gorm.DB, name string, role models.Role) *models.Actor {
	t.Helper()
	actor := models.Actor{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Phone:    fmt.Sprintf("+91-%s", name),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&actor).Error; err != nil {
		t.Fatalf("Failed to create actor %s: %v", name, err)
	}
	return &actor
}

// CreateTestUnit creates a unit owned by owner and managed by managers.
func CreateTestUnit(t *testing.T, db *gorm.DB, name string, owner *models.Actor, managers ...*models.Actor) *models.Unit {
	t.Helper()
	unit := models.Unit{
		Name:     name,
		OwnerID:  owner.ID,
		Capacity: 100,
		IsActive: true,
	}
	for _, m := range managers {
		unit.Managers = append(unit.Managers, *m)
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("Failed to create unit %s: %v", name, err)
	}
	return &unit
}

// CreateTestInventoryItem creates an item in the given unit.
func CreateTestInventoryItem(t *testing.T, db *gorm.DB, unit *models.Unit, name string, quantity, reorderLevel int) *models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{
		UnitID:        unit.ID,
		ItemName:      name,
		Category:      models.CategoryFabric,
		Quantity:      quantity,
		UnitOfMeasure: "meters",
		ReorderLevel:  reorderLevel,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create inventory item %s: %v", name, err)
	}
	return &item
}

// CreateTestProduct creates a catalog product with a unique SKU.
func CreateTestProduct(t *testing.T, db *gorm.DB, name, sku string) *models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		SKU:      sku,
		Category: "shirts",
		UnitCost: 10,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product %s: %v", name, err)
	}
	return &product
}

// CreateTestOrder creates an order for client with one item of the given
// product, assigned to the given units.
func CreateTestOrder(t *testing.T, db *gorm.DB, number string, client *models.Actor, product *models.Product, quantity int, units ...*models.Unit) *models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: number,
		ClientID:    client.ID,
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: quantity, Size: "M", Color: "indigo"},
		},
		TotalQuantity: quantity,
		Status:        models.OrderStatusCreated,
	}
	for _, u := range units {
		order.AssignedUnits = append(order.AssignedUnits, *u)
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to create order %s: %v", number, err)
	}
	return &order
}
