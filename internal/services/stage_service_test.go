package services

import (
	"testing"
	"time"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"github.com/localnerve/garmentdb/tests/helpers"
	"gorm.io/gorm"
)

func stageFixture(t *testing.T) (db *gorm.DB, order *models.Order, unit *models.Unit) {
	t.Helper()
	db = newTestDB(t)
	client := helpers.CreateTestActor(t, db, "client", models.RoleClient)
	product := helpers.CreateTestProduct(t, db, "shirt", "SKU-ST-1")
	unit = helpers.CreateTestUnit(t, db, "unit", client)
	order = helpers.CreateTestOrder(t, db, "ORD-ST-001", client, product, 3, unit)
	return db, order, unit
}

func progress(v int) *types.FlexInt {
	f := types.FlexInt(v)
	return &f
}

func stageName(n models.StageName) *models.StageName {
	return &n
}

func TestCreateStageCompletionStamp(t *testing.T) {
	db, order, unit := stageFixture(t)

	// Below 100, no stamp
	partial, err := CreateStage(db, &StageInput{
		OrderID:  order.ID,
		UnitID:   unit.ID,
		Stage:    stageName(models.StageCutting),
		Progress: progress(99),
	})
	if err != nil {
		t.Fatalf("create stage: %v", err)
	}
	if partial.CompletedAt != nil {
		t.Error("stage below 100%% must not be stamped completed")
	}

	// Raising to 100 stamps now
	done, err := UpdateStage(db, partial.ID, &StageInput{Progress: progress(100)})
	if err != nil {
		t.Fatalf("update stage: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("stage at 100%% must carry a completion time")
	}
	if time.Since(*done.CompletedAt) > time.Minute {
		t.Errorf("completion stamp not current: %v", done.CompletedAt)
	}

	// An explicit completedAt wins over the stamp
	explicit := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	created, err := CreateStage(db, &StageInput{
		OrderID:     order.ID,
		UnitID:      unit.ID,
		Stage:       stageName(models.StageStitching),
		Progress:    progress(100),
		CompletedAt: &explicit,
	})
	if err != nil {
		t.Fatalf("create stage: %v", err)
	}
	if created.CompletedAt == nil || !created.CompletedAt.Equal(explicit) {
		t.Errorf("explicit completedAt overridden, got %v", created.CompletedAt)
	}
}

func TestCreateStageRejections(t *testing.T) {
	db, order, unit := stageFixture(t)

	// Unknown stage name
	bad := models.StageName("Ironing")
	_, err := CreateStage(db, &StageInput{
		OrderID: order.ID,
		UnitID:  unit.ID,
		Stage:   &bad,
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("unknown stage name must fail validation, got %v", err)
	}

	// Missing order
	_, err = CreateStage(db, &StageInput{
		OrderID: "00000000-0000-0000-0000-000000000000",
		UnitID:  unit.ID,
		Stage:   stageName(models.StageCutting),
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "notfound" {
		t.Errorf("missing order must be not found, got %v", err)
	}

	// Progress out of range
	_, err = CreateStage(db, &StageInput{
		OrderID:  order.ID,
		UnitID:   unit.ID,
		Stage:    stageName(models.StageCutting),
		Progress: progress(101),
	})
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "validation" {
		t.Errorf("progress above 100 must fail validation, got %v", err)
	}
}

func TestListStagesFilters(t *testing.T) {
	db, order, unit := stageFixture(t)

	for _, p := range []int{10, 60, 100} {
		_, err := CreateStage(db, &StageInput{
			OrderID:  order.ID,
			UnitID:   unit.ID,
			Stage:    stageName(models.StageCutting),
			Progress: progress(p),
		})
		if err != nil {
			t.Fatalf("create stage: %v", err)
		}
	}

	min, max := 50, 99
	_, total, err := ListStages(db, &StageFilters{ProgressMin: &min, ProgressMax: &max}, 1, 10)
	if err != nil {
		t.Fatalf("list stages: %v", err)
	}
	if total != 1 {
		t.Errorf("progress window must match 1 stage, got %d", total)
	}

	// Malformed unit id widens instead of matching nothing
	_, total, err = ListStages(db, &StageFilters{UnitID: "not-a-uuid"}, 1, 10)
	if err != nil {
		t.Fatalf("list stages with malformed filter: %v", err)
	}
	if total != 3 {
		t.Errorf("malformed unit id must be dropped, got total=%d", total)
	}

	_, total, err = ListStages(db, &StageFilters{Stage: string(models.StageCutting)}, 1, 10)
	if err != nil {
		t.Fatalf("list stages by name: %v", err)
	}
	if total != 3 {
		t.Errorf("stage name filter must match all 3, got %d", total)
	}
}

func TestStagesByOrderRequiresRecords(t *testing.T) {
	db, order, unit := stageFixture(t)

	_, err := StagesByOrder(db, order.ID)
	if custom, ok := types.AsCustom(err); !ok || custom.Type != "notfound" {
		t.Errorf("order without stages must be not found, got %v", err)
	}

	_, err = CreateStage(db, &StageInput{
		OrderID:  order.ID,
		UnitID:   unit.ID,
		Stage:    stageName(models.StagePackaging),
		Progress: progress(5),
	})
	if err != nil {
		t.Fatalf("create stage: %v", err)
	}

	stages, err := StagesByOrder(db, order.ID)
	if err != nil {
		t.Fatalf("stages by order: %v", err)
	}
	if len(stages) != 1 {
		t.Errorf("expected 1 stage, got %d", len(stages))
	}
}
