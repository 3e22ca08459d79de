package services

import (
	"testing"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/tests/helpers"
)

func TestCreateUnitDropsUnknownManagers(t *testing.T) {
	db := newTestDB(t)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)
	manager := helpers.CreateTestActor(t, db, "manager", models.RoleUnitManager)

	unit, err := CreateUnit(db, &UnitInput{
		Name:       "stitching north",
		OwnerID:    owner.ID,
		ManagerIDs: []string{manager.ID, "00000000-0000-0000-0000-000000000000"},
	})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	if len(unit.Managers) != 1 || unit.Managers[0].ID != manager.ID {
		t.Errorf("unknown manager ids must be dropped, got %v", unit.Managers)
	}
	if !unit.IsActive {
		t.Error("new unit must start active")
	}
}

func TestCreateUnitRequiresOwner(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateUnit(db, &UnitInput{
		Name:    "orphan unit",
		OwnerID: "00000000-0000-0000-0000-000000000000",
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("missing owner must fail validation, got %v", err)
	}
}

func TestUpdateUnitOwnershipTransfer(t *testing.T) {
	db := newTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)
	next := helpers.CreateTestActor(t, db, "next", models.RoleClient)
	unit := helpers.CreateTestUnit(t, db, "unit", owner)

	// The owning client may rename but not transfer ownership
	_, err := UpdateUnit(db, owner, unit.ID, &UnitInput{OwnerID: next.ID})
	if custom, ok := types.AsCustom(err); !ok || custom.Code != 403 {
		t.Errorf("owner transfer by client must get 403, got %v", err)
	}

	renamed, err := UpdateUnit(db, owner, unit.ID, &UnitInput{Name: "unit renamed"})
	if err != nil {
		t.Fatalf("rename by owner: %v", err)
	}
	if renamed.Name != "unit renamed" {
		t.Errorf("rename not applied, got %s", renamed.Name)
	}

	// Admin transfers ownership
	moved, err := UpdateUnit(db, admin, unit.ID, &UnitInput{OwnerID: next.ID})
	if err != nil {
		t.Fatalf("transfer by admin: %v", err)
	}
	if moved.OwnerID != next.ID {
		t.Errorf("ownership not transferred, got %s", moved.OwnerID)
	}

	// The previous owner has lost the unit entirely
	_, err = UpdateUnit(db, owner, unit.ID, &UnitInput{Name: "too late"})
	if custom, ok := types.AsCustom(err); !ok || custom.Code != 403 {
		t.Errorf("previous owner must get 403, got %v", err)
	}
}

func TestUpdateUnitReplacesManagers(t *testing.T) {
	db := newTestDB(t)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)
	m1 := helpers.CreateTestActor(t, db, "m1", models.RoleUnitManager)
	m2 := helpers.CreateTestActor(t, db, "m2", models.RoleUnitManager)
	unit := helpers.CreateTestUnit(t, db, "unit", owner, m1)

	updated, err := UpdateUnit(db, owner, unit.ID, &UnitInput{ManagerIDs: []string{m2.ID}})
	if err != nil {
		t.Fatalf("replace managers: %v", err)
	}
	if len(updated.Managers) != 1 || updated.Managers[0].ID != m2.ID {
		t.Errorf("manager list not replaced, got %v", updated.Managers)
	}
}

func TestUnitsByOwner(t *testing.T) {
	db := newTestDB(t)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)
	idle := helpers.CreateTestActor(t, db, "idle", models.RoleClient)
	helpers.CreateTestUnit(t, db, "unit1", owner)
	helpers.CreateTestUnit(t, db, "unit2", owner)

	units, err := UnitsByOwner(db, owner.ID)
	if err != nil {
		t.Fatalf("units by owner: %v", err)
	}
	if len(units) != 2 {
		t.Errorf("expected 2 units, got %d", len(units))
	}

	_, err = UnitsByOwner(db, idle.ID)
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "notfound" {
		t.Errorf("ownerless listing must be not found, got %v", err)
	}
}
