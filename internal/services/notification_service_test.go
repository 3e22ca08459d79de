package services

import (
	"testing"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/tests/helpers"
)

func TestMarkNotificationReadOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)
	other := helpers.CreateTestActor(t, db, "other", models.RoleClient)

	note, err := CreateNotification(db, &NotificationInput{
		UserID:  owner.ID,
		Title:   "order shipped",
		Message: "ORD-20260830-001 left the unit",
	})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}
	if note.Type != models.NotificationSystem {
		t.Errorf("default type = %s, want %s", note.Type, models.NotificationSystem)
	}

	// A foreign actor cannot mark it read
	_, err = MarkNotificationRead(db, other, note.ID)
	if custom, ok := types.AsCustom(err); !ok || custom.Code != 403 {
		t.Errorf("foreign mark-read must get 403, got %v", err)
	}

	read, err := MarkNotificationRead(db, owner, note.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !read.IsRead {
		t.Error("notification must be read after marking")
	}

	// Marking again is a no-op, not an error
	again, err := MarkNotificationRead(db, owner, note.ID)
	if err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	if !again.IsRead {
		t.Error("notification must stay read")
	}
}

func TestCreateNotificationValidation(t *testing.T) {
	db := newTestDB(t)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)

	_, err := CreateNotification(db, &NotificationInput{UserID: owner.ID, Title: "no message"})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("missing message must fail validation, got %v", err)
	}

	_, err = CreateNotification(db, &NotificationInput{
		UserID:  "00000000-0000-0000-0000-000000000000",
		Title:   "ghost",
		Message: "no such user",
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("unknown user must fail validation, got %v", err)
	}
}

func TestDeleteNotificationAdminOverride(t *testing.T) {
	db := newTestDB(t)
	admin := helpers.CreateTestActor(t, db, "admin", models.RoleAdmin)
	owner := helpers.CreateTestActor(t, db, "owner", models.RoleClient)
	other := helpers.CreateTestActor(t, db, "other", models.RoleClient)

	note, err := CreateNotification(db, &NotificationInput{
		UserID:  owner.ID,
		Title:   "cleanup",
		Message: "stale notice",
	})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	if err := DeleteNotification(db, other, note.ID); err == nil {
		t.Error("foreign actor must not delete another actor's notification")
	}
	if err := DeleteNotification(db, admin, note.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}
