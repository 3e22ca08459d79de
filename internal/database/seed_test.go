// seed_test.go
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
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/garmentdb/internal/models"
	"gorm.io/gorm"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func TestSeedPopulatesFixtures(t *testing.T) {
	db := newSeedTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	counts := []struct {
		model any
		want  int64
	}{
		{&models.Actor{}, 6},
		{&models.Unit{}, 3},
		{&models.Product{}, 3},
		{&models.InventoryItem{}, 6},
		{&models.Order{}, 3},
		{&models.ProductionStage{}, 4},
		{&models.Notification{}, 3},
	}
	for _, c := range counts {
		if got := countRows(t, db, c.model); got != c.want {
			t.Errorf("%T rows = %d, want %d", c.model, got, c.want)
		}
	}
}

func TestSeedGoesThroughServices(t *testing.T) {
	db := newSeedTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	// Orders picked up generated numbers from the daily counter.
	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		t.Fatalf("load orders: %v", err)
	}
	seen := map[string]bool{}
	for _, o := range orders {
		if !strings.HasPrefix(o.OrderNumber, "ORD-") {
			t.Errorf("order number %q lacks generated prefix", o.OrderNumber)
		}
		if seen[o.OrderNumber] {
			t.Errorf("duplicate order number %q", o.OrderNumber)
		}
		seen[o.OrderNumber] = true
	}

	// The fully progressed stage got its completion timestamp stamped.
	var done models.ProductionStage
	err := db.Where("progress = ?", 100).First(&done).Error
	if err != nil {
		t.Fatalf("load completed stage: %v", err)
	}
	if done.CompletedAt == nil {
		t.Error("stage at 100 progress has no completedAt")
	}
	var pending int64
	err = db.Model(&models.ProductionStage{}).
		Where("progress < ? AND completed_at IS NOT NULL", 100).
		Count(&pending).Error
	if err != nil {
		t.Fatalf("count pending stages: %v", err)
	}
	if pending != 0 {
		t.Errorf("%d unfinished stages carry a completedAt", pending)
	}

	// Unit manager assignments survived the join table round trip.
	var links int64
	if err := db.Table("unit_managers").Count(&links).Error; err != nil {
		t.Fatalf("count unit_managers: %v", err)
	}
	if links != 4 {
		t.Errorf("unit_managers rows = %d, want 4", links)
	}

	// One item sits below its reorder level for the low stock report.
	var low int64
	err = db.Model(&models.InventoryItem{}).
		Where("quantity <= reorder_level").
		Count(&low).Error
	if err != nil {
		t.Fatalf("count low stock: %v", err)
	}
	if low != 1 {
		t.Errorf("low stock rows = %d, want 1", low)
	}
}

func TestSeedSkipsNonEmptyDatabase(t *testing.T) {
	db := newSeedTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("first Seed returned error: %v", err)
	}
	before := countRows(t, db, &models.Order{})

	if err := Seed(db); err != nil {
		t.Fatalf("second Seed returned error: %v", err)
	}
	if after := countRows(t, db, &models.Order{}); after != before {
		t.Errorf("second Seed changed order count from %d to %d", before, after)
	}
}

func TestResetClearsAndAllowsReseed(t *testing.T) {
	db := newSeedTestDB(t)

	if err := Seed(db); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if err := Reset(db); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if got := countRows(t, db, &models.Actor{}); got != 0 {
		t.Fatalf("actor rows after Reset = %d, want 0", got)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("re-Seed returned error: %v", err)
	}
	if got := countRows(t, db, &models.Order{}); got != 3 {
		t.Errorf("order rows after re-seed = %d, want 3", got)
	}
}
