package services

import (
	"testing"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/tests/helpers"
)

func TestListInventoryScoping(t *testing.T) {
	db := newTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	client1 := helpers.CreateTestActor(t, db, "client1", models.RoleClient)
	client2 := helpers.CreateTestActor(t, db, "client2", models.RoleClient)
	manager := helpers.CreateTestActor(t, db, "manager", models.RoleUnitManager)

	unit1 := helpers.CreateTestUnit(t, db, "unit1", client1, manager)
	unit2 := helpers.CreateTestUnit(t, db, "unit2", client2)

	helpers.CreateTestInventoryItem(t, db, unit1, "cotton", 100, 20)
	helpers.CreateTestInventoryItem(t, db, unit1, "thread", 50, 10)
	helpers.CreateTestInventoryItem(t, db, unit2, "buttons", 500, 100)

	cases := []struct {
		name  string
		actor *models.Actor
		want  int
	}{
		{"admin sees all", admin, 3},
		{"owner sees own unit", client1, 2},
		{"manager sees managed unit", manager, 2},
		{"other client sees own unit", client2, 1},
	}
	for _, tc := range cases {
		items, err := ListInventory(db, tc.actor)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(items) != tc.want {
			t.Errorf("%s: got %d items, want %d", tc.name, len(items), tc.want)
		}
	}
}

func TestLowStockInclusiveBoundary(t *testing.T) {
	db := newTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)
	unit := helpers.CreateTestUnit(t, db, "unit", client)

	helpers.CreateTestInventoryItem(t, db, unit, "at-level", 20, 20)
	helpers.CreateTestInventoryItem(t, db, unit, "above", 21, 20)

	items, err := LowStockItems(db, admin)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(items) != 1 || items[0].ItemName != "at-level" {
		t.Errorf("quantity equal to reorder level must count as low, got %v", items)
	}

	// Low stock in another actor's unit is invisible
	other := helpers.CreateTestActor(t, db, "other", models.RoleClient)
	_, err = LowStockItems(db, other)
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "notfound" {
		t.Errorf("unit-less actor must see no low stock, got %v", err)
	}
}

func TestInventoryItemOfDeletedUnit(t *testing.T) {
	db := newTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)
	unit := helpers.CreateTestUnit(t, db, "unit", client)
	item := helpers.CreateTestInventoryItem(t, db, unit, "cotton", 10, 5)

	if err := DeleteUnit(db, unit.ID); err != nil {
		t.Fatalf("delete unit: %v", err)
	}

	// The item dangles; only admin can still write to it
	name := "cotton-renamed"
	_, err := UpdateInventoryItem(db, client, item.ID, &InventoryInput{ItemName: name})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "notfound" {
		t.Errorf("non-admin write against a dangling item must fail, got %v", err)
	}

	updated, err := UpdateInventoryItem(db, admin, item.ID, &InventoryInput{ItemName: name})
	if err != nil {
		t.Fatalf("admin update of dangling item: %v", err)
	}
	if updated.ItemName != name {
		t.Errorf("rename not applied, got %s", updated.ItemName)
	}
}

func TestCreateInventoryValidation(t *testing.T) {
	db := newTestDB(t)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)
	unit := helpers.CreateTestUnit(t, db, "unit", client)

	negative := types.FlexInt(-1)
	_, err := CreateInventoryItem(db, client, &InventoryInput{
		UnitID:   unit.ID,
		ItemName: "cotton",
		Quantity: &negative,
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("negative quantity must fail validation, got %v", err)
	}

	_, err = CreateInventoryItem(db, client, &InventoryInput{
		UnitID:   "00000000-0000-0000-0000-000000000000",
		ItemName: "cotton",
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "notfound" {
		t.Errorf("missing unit must be not found, got %v", err)
	}
}
