package services

import (
	"testing"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/tests/helpers"
)

func TestCreateActor(t *testing.T) {
	db := newTestDB(t)

	actor, err := CreateActor(db, &ActorInput{
		Name:  "Priya Sharma",
		Phone: "+91-9876543210",
		Role:  "unit-manager",
	})
	if err != nil {
		t.Fatalf("create actor: %v", err)
	}
	if actor.Role != models.RoleUnitManager {
		t.Errorf("role = %s, want %s", actor.Role, models.RoleUnitManager)
	}
	if !actor.IsActive {
		t.Error("new actor must start active")
	}

	// A second account on the same phone collides
	_, err = CreateActor(db, &ActorInput{
		Name:  "Someone Else",
		Phone: "+91-9876543210",
		Role:  "client",
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("duplicate phone must fail validation, got %v", err)
	}

	// Unknown roles are rejected, not defaulted
	_, err = CreateActor(db, &ActorInput{
		Name:  "Bad Role",
		Phone: "+91-0000000001",
		Role:  "superuser",
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("unknown role must fail validation, got %v", err)
	}
}

func TestDeleteActorProtectsAdmins(t *testing.T) {
	db := newTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)

	err := DeleteActor(db, admin.ID)
	if custom, ok := types.AsCustom(err); !ok || custom.Code != 403 {
		t.Errorf("admin delete must get 403, got %v", err)
	}

	if err := DeleteActor(db, client.ID); err != nil {
		t.Errorf("client delete: %v", err)
	}
}

func TestUpdateProfileCannotEscalate(t *testing.T) {
	db := newTestDB(t)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)

	updated, err := UpdateProfile(db, client, &ActorInput{
		Name: "Renamed",
		Role: "admin",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %s, want Renamed", updated.Name)
	}
	if updated.Role != models.RoleClient {
		t.Errorf("profile update must keep role, got %s", updated.Role)
	}
}

func TestListManagersAndClients(t *testing.T) {
	db := newTestDB(t)
	helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	helpers.CreateTestActor(t, db, "manager", models.RoleUnitManager)
	active := helpers.CreateTestActor(t, db, "client", models.RoleClient)

	inactive := helpers.CreateTestActor(t, db, "retired", models.RoleClient)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate actor: %v", err)
	}

	managers, err := ListManagers(db)
	if err != nil {
		t.Fatalf("list managers: %v", err)
	}
	if len(managers) != 1 {
		t.Errorf("expected 1 manager, got %d", len(managers))
	}

	clients, err := ListClients(db)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 1 || clients[0].ID != active.ID {
		t.Errorf("inactive clients must be excluded, got %v", clients)
	}
}
