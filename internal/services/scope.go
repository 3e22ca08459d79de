// scope.go
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

package services

import (
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// ReachableUnitIDs resolves the set of unit ids visible to an actor:
// admin sees everything (all=true, ids=nil), a client sees units it owns,
// a unit manager sees units it manages, anything else sees nothing.
// Every entity scoped through unit ownership/management builds its
// pre-query predicate from this one function.
func ReachableUnitIDs(db *gorm.DB, actor *models.Actor) (ids []string, all bool, err error) {
	switch actor.Role {
	case models.RoleAdmin:
		return nil, true, nil

	case models.RoleClient:
		err = db.Model(&models.Unit{}).
			Where("owner_id = ?", actor.ID).
			Pluck("id", &ids).Error
		return ids, false, err

	case models.RoleUnitManager:
		err = db.Table("unit_managers").
			Where("actor_id = ?", actor.ID).
			Pluck("unit_id", &ids).Error
		return ids, false, err
	}

	return []string{}, false, nil
}

// ScopeToUnits narrows query by the actor's reachable units on the given
// column. Admin passes through unmodified.
func ScopeToUnits(db *gorm.DB, query *gorm.DB, actor *models.Actor, column string) (*gorm.DB, error) {
	ids, all, err := ReachableUnitIDs(db, actor)
	if err != nil {
		return nil, err
	}
	if all {
		return query, nil
	}
	return query.Where(column+" IN ?", ids), nil
}

// AuthorizeUnit decides whether the actor may create, update or delete
// records belonging to the unit: admin always, the owning client, or a
// manager of the unit. The management relation is re-checked against the
// database on every call, never cached.
func AuthorizeUnit(db *gorm.DB, actor *models.Actor, unit *models.Unit) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil

	case models.RoleClient:
		if unit.OwnerID == actor.ID {
			return nil
		}
		return types.Forbidden("Access denied: you don't own this unit")

	case models.RoleUnitManager:
		var count int64
		if err := db.Table("unit_managers").
			Where("unit_id = ? AND actor_id = ?", unit.ID, actor.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return types.Forbidden("Access denied: you're not a manager of this unit")
	}

	return types.Forbidden("Access denied: unauthorized role")
}
