// seed.go
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

package database

import (
	"fmt"
	"log"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// Seed loads a development fixture set through the service layer so the
// data passes the same validation, scoping and order numbering as API
// traffic. Seeding is skipped when actor rows already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Actor{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already has data, skipping seed")
		return nil
	}

	actors, err := seedActors(db)
	if err != nil {
		return fmt.Errorf("failed to seed actors: %w", err)
	}

	units, err := seedUnits(db, actors)
	if err != nil {
		return fmt.Errorf("failed to seed units: %w", err)
	}

	products, err := seedProducts(db)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := seedInventory(db, actors["admin"], units); err != nil {
		return fmt.Errorf("failed to seed inventory: %w", err)
	}

	orders, err := seedOrders(db, actors, units, products)
	if err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	if err := seedStages(db, orders, units); err != nil {
		return fmt.Errorf("failed to seed production stages: %w", err)
	}

	if err := seedNotifications(db, actors, orders); err != nil {
		return fmt.Errorf("failed to seed notifications: %w", err)
	}

	log.Println("Seed complete")
	return nil
}

// Reset empties every seeded table in reverse dependency order. Used by
// the seed command's -force flag before re-seeding.
func Reset(db *gorm.DB) error {
	tables := []string{
		"production_stages",
		"order_items",
		"order_units",
		"orders",
		"order_counters",
		"notifications",
		"inventory_items",
		"unit_managers",
		"units",
		"products",
		"actors",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func seedActors(db *gorm.DB) (map[string]*models.Actor, error) {
	inputs := map[string]*services.ActorInput{
		"admin": {
			Name:  "Asha Admin",
			Email: "admin@garmentdb.test",
			Phone: "9876500001",
			Role:  "admin",
			Address: &models.Address{
				Line: "1 Head Office Road", City: "Chennai",
				Pincode: "600001", PhoneNumber: "9876500001",
			},
		},
		"alpha": {
			Name:  "Arun Alpha",
			Email: "alpha@garmentdb.test",
			Phone: "9876500002",
			Role:  "client",
			Address: &models.Address{
				Line: "12/3 Industrial Layout", City: "Tiruppur",
				Pincode: "641601", PhoneNumber: "9876500002",
			},
		},
		"beta": {
			Name:  "Bhavna Beta",
			Email: "beta@garmentdb.test",
			Phone: "9876500003",
			Role:  "client",
			Address: &models.Address{
				Line: "5/90 Mill Road", City: "Erode",
				Pincode: "638001", PhoneNumber: "9876500003",
			},
		},
		"manager1": {
			Name:  "Mani Manager",
			Email: "manager1@garmentdb.test",
			Phone: "9876500004",
			Role:  "unit-manager",
		},
		"manager2": {
			Name:  "Meera Manager",
			Email: "manager2@garmentdb.test",
			Phone: "9876500005",
			Role:  "unit-manager",
		},
		"manager3": {
			Name:  "Mohan Manager",
			Email: "manager3@garmentdb.test",
			Phone: "9876500006",
			Role:  "unit-manager",
		},
	}

	actors := make(map[string]*models.Actor, len(inputs))
	for key, input := range inputs {
		actor, err := services.CreateActor(db, input)
		if err != nil {
			return nil, err
		}
		actors[key] = actor
	}
	return actors, nil
}

func seedUnits(db *gorm.DB, actors map[string]*models.Actor) (map[string]*models.Unit, error) {
	inputs := map[string]*services.UnitInput{
		"alpha1": {
			Name:       "Alpha Garments Unit 1",
			OwnerID:    actors["alpha"].ID,
			ManagerIDs: types.FlexList[string]{actors["manager1"].ID},
			Address: &models.Address{
				Line: "12/3 Industrial Layout", City: "Tiruppur",
				Pincode: "641601", PhoneNumber: "9876543210",
			},
			Capacity: flex(1500),
		},
		"alpha2": {
			Name:       "Alpha Garments Unit 2",
			OwnerID:    actors["alpha"].ID,
			ManagerIDs: types.FlexList[string]{actors["manager1"].ID, actors["manager2"].ID},
			Address: &models.Address{
				Line: "22/7 Textile Park Road", City: "Coimbatore",
				Pincode: "641002", PhoneNumber: "9876501234",
			},
			Capacity: flex(2200),
		},
		"beta1": {
			Name:       "Beta Textiles Unit 1",
			OwnerID:    actors["beta"].ID,
			ManagerIDs: types.FlexList[string]{actors["manager3"].ID},
			Address: &models.Address{
				Line: "5/90 Mill Road", City: "Erode",
				Pincode: "638001", PhoneNumber: "9000012345",
			},
			Capacity: flex(1800),
		},
	}

	units := make(map[string]*models.Unit, len(inputs))
	for key, input := range inputs {
		unit, err := services.CreateUnit(db, input)
		if err != nil {
			return nil, err
		}
		units[key] = unit
	}
	return units, nil
}

func seedProducts(db *gorm.DB) (map[string]*models.Product, error) {
	inputs := map[string]*services.ProductInput{
		"tee": {
			Name:         "Crew Neck T-Shirt 180 GSM",
			SKU:          "TS-CREW-180",
			Category:     "T-Shirts",
			Description:  "Combed cotton crew neck tee",
			SizeRange:    types.FlexList[string]{"S", "M", "L", "XL"},
			ColorOptions: types.FlexList[string]{"White", "Black", "Navy"},
			UnitCost:     cost(4.50),
		},
		"polo": {
			Name:         "Pique Polo Shirt",
			SKU:          "PL-PIQUE-220",
			Category:     "Polos",
			Description:  "220 GSM pique knit polo with rib collar",
			SizeRange:    types.FlexList[string]{"M", "L", "XL"},
			ColorOptions: types.FlexList[string]{"Grey", "Maroon"},
			UnitCost:     cost(7.25),
		},
		"jeans": {
			Name:         "Denim Jeans 12oz",
			SKU:          "JN-DENIM-12",
			Category:     "Denim",
			Description:  "Five pocket straight fit jeans",
			SizeRange:    types.FlexList[string]{"30", "32", "34", "36"},
			ColorOptions: types.FlexList[string]{"Indigo"},
			UnitCost:     cost(12.80),
		},
	}

	products := make(map[string]*models.Product, len(inputs))
	for key, input := range inputs {
		product, err := services.CreateProduct(db, input)
		if err != nil {
			return nil, err
		}
		products[key] = product
	}
	return products, nil
}

func seedInventory(db *gorm.DB, admin *models.Actor, units map[string]*models.Unit) error {
	inputs := []*services.InventoryInput{
		{
			UnitID: units["alpha1"].ID, ItemName: "Cotton Fabric 180 GSM White",
			Category: category(models.CategoryFabric), Quantity: flex(1200),
			UnitOfMeasure: "meters", ReorderLevel: flex(200), SupplierName: "ABC Textiles",
		},
		{
			UnitID: units["alpha1"].ID, ItemName: "Polyester Thread 40/2 White",
			Category: category(models.CategoryTrim), Quantity: flex(2500),
			UnitOfMeasure: "pieces", ReorderLevel: flex(300), SupplierName: "ThreadWorks",
		},
		{
			UnitID: units["alpha2"].ID, ItemName: "Rib Knit Collar Black",
			Category: category(models.CategoryTrim), Quantity: flex(350),
			UnitOfMeasure: "meters", ReorderLevel: flex(80), SupplierName: "KnitPro",
		},
		{
			UnitID: units["alpha2"].ID, ItemName: "Woven Label Brand Logo",
			Category: category(models.CategoryAccessory), Quantity: flex(1500),
			UnitOfMeasure: "pieces", ReorderLevel: flex(300), SupplierName: "LabelWorks",
		},
		{
			UnitID: units["beta1"].ID, ItemName: "Denim Fabric 12oz Blue",
			Category: category(models.CategoryFabric), Quantity: flex(600),
			UnitOfMeasure: "meters", ReorderLevel: flex(100), SupplierName: "Denim House",
		},
		// Below reorder level so the low stock report has a hit out of the box.
		{
			UnitID: units["beta1"].ID, ItemName: "Metal Zipper YKK #3 Silver",
			Category: category(models.CategoryTrim), Quantity: flex(150),
			UnitOfMeasure: "pieces", ReorderLevel: flex(200), SupplierName: "YKK",
		},
	}

	for _, input := range inputs {
		if _, err := services.CreateInventoryItem(db, admin, input); err != nil {
			return err
		}
	}
	return nil
}

func seedOrders(db *gorm.DB, actors map[string]*models.Actor, units map[string]*models.Unit, products map[string]*models.Product) ([]*models.Order, error) {
	inProduction := models.OrderStatusInProduction
	inputs := []*services.OrderInput{
		{
			ClientID: actors["alpha"].ID,
			UnitIDs:  types.FlexList[string]{units["alpha1"].ID, units["alpha2"].ID},
			Items: []services.OrderItemInput{
				{ProductID: products["tee"].ID, Quantity: 500, Size: "M", Color: "White"},
				{ProductID: products["tee"].ID, Quantity: 300, Size: "L", Color: "Black"},
			},
			Status: &inProduction,
		},
		{
			ClientID: actors["alpha"].ID,
			UnitIDs:  types.FlexList[string]{units["alpha2"].ID},
			Items: []services.OrderItemInput{
				{ProductID: products["polo"].ID, Quantity: 250, Size: "L", Color: "Maroon"},
			},
		},
		{
			ClientID: actors["beta"].ID,
			UnitIDs:  types.FlexList[string]{units["beta1"].ID},
			Items: []services.OrderItemInput{
				{ProductID: products["jeans"].ID, Quantity: 400, Size: "32", Color: "Indigo"},
			},
		},
	}

	orders := make([]*models.Order, 0, len(inputs))
	for _, input := range inputs {
		order, err := services.CreateOrder(db, input)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func seedStages(db *gorm.DB, orders []*models.Order, units map[string]*models.Unit) error {
	inputs := []*services.StageInput{
		{
			OrderID: orders[0].ID, UnitID: units["alpha1"].ID,
			Stage: stage(models.StageCutting), Progress: flex(100),
		},
		{
			OrderID: orders[0].ID, UnitID: units["alpha1"].ID,
			Stage: stage(models.StageStitching), Progress: flex(60),
		},
		{
			OrderID: orders[1].ID, UnitID: units["alpha2"].ID,
			Stage: stage(models.StageCutting), Progress: flex(25),
		},
		{
			OrderID: orders[2].ID, UnitID: units["beta1"].ID,
			Stage: stage(models.StageCutting), Progress: flex(0),
		},
	}

	for _, input := range inputs {
		if _, err := services.CreateStage(db, input); err != nil {
			return err
		}
	}
	return nil
}

func seedNotifications(db *gorm.DB, actors map[string]*models.Actor, orders []*models.Order) error {
	orderType := models.NotificationOrder
	systemType := models.NotificationSystem
	inputs := []*services.NotificationInput{
		{
			UserID: actors["alpha"].ID,
			Title:  "Order in production",
			Message: fmt.Sprintf("Order %s has entered production at Alpha Garments Unit 1",
				orders[0].OrderNumber),
			Type: &orderType,
		},
		{
			UserID: actors["manager1"].ID,
			Title:  "New order assigned",
			Message: fmt.Sprintf("Order %s was assigned to your unit",
				orders[0].OrderNumber),
			Type: &orderType,
		},
		{
			UserID:  actors["beta"].ID,
			Title:   "Welcome to GarmentDB",
			Message: "Your client account is active",
			Type:    &systemType,
		},
	}

	for _, input := range inputs {
		if _, err := services.CreateNotification(db, input); err != nil {
			return err
		}
	}
	return nil
}

func flex(n int) *types.FlexInt {
	f := types.FlexInt(n)
	return &f
}

func cost(v float64) *float64 {
	return &v
}

func category(c models.Category) *models.Category {
	return &c
}

func stage(s models.StageName) *models.StageName {
	return &s
}
