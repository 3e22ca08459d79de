package services

import (
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// UnitInput carries the mutable fields of a unit.
type UnitInput struct {
	Name       string                 `json:"name"`
	OwnerID    string                 `json:"owner"`
	ManagerIDs types.FlexList[string] `json:"managers"`
	Address    *models.Address        `json:"address"`
	Capacity   *types.FlexInt         `json:"capacity"`
	IsActive   *bool                  `json:"isActive"`
}

// CreateUnit validates the owner and creates the unit. Managers resolve
// against existing actor rows; unknown ids are dropped.
func CreateUnit(db *gorm.DB, input *UnitInput) (*models.Unit, error) {
	if input.Name == "" {
		return nil, types.Validation("Unit name is required")
	}

	var owner models.Actor
	if err := db.First(&owner, "id = ?", input.OwnerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Validation("Owner not found")
		}
		return nil, err
	}

	managers, err := findManagers(db, input.ManagerIDs.Slice())
	if err != nil {
		return nil, err
	}

	unit := models.Unit{
		Name:     input.Name,
		OwnerID:  owner.ID,
		Managers: managers,
		IsActive: true,
	}
	if input.Address != nil {
		unit.Address = *input.Address
	}
	if input.Capacity != nil {
		unit.Capacity = input.Capacity.Int()
	}

	if err := db.Create(&unit).Error; err != nil {
		return nil, err
	}

	return GetUnit(db, unit.ID)
}

// ListUnits returns the units reachable by the actor: admin all, client
// owned, unit manager managed, anything else none. The predicate is
// applied at query time so counts stay correct under the restricted view.
func ListUnits(db *gorm.DB, actor *models.Actor) ([]models.Unit, error) {
	ids, all, err := ReachableUnitIDs(db, actor)
	if err != nil {
		return nil, err
	}

	units := []models.Unit{}
	query := db.Preload("Owner").Preload("Managers")
	if !all {
		query = query.Where("id IN ?", ids)
	}
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}

	return units, nil
}

// GetUnit returns a unit with owner and managers populated.
func GetUnit(db *gorm.DB, id string) (*models.Unit, error) {
	var unit models.Unit
	err := db.Preload("Owner").Preload("Managers").First(&unit, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Unit not found")
		}
		return nil, err
	}
	return &unit, nil
}

// UpdateUnit applies partial updates. Admin may change anything including
// the owner; the owning client may change the non-owner fields. Ownership
// transfer stays admin-only.
func UpdateUnit(db *gorm.DB, actor *models.Actor, id string, input *UnitInput) (*models.Unit, error) {
	unit, err := GetUnit(db, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleAdmin && unit.OwnerID != actor.ID {
		return nil, types.Forbidden("Access denied: you don't own this unit")
	}
	if input.OwnerID != "" && input.OwnerID != unit.OwnerID {
		if actor.Role != models.RoleAdmin {
			return nil, types.Forbidden("Only an admin can transfer unit ownership")
		}
		var owner models.Actor
		if err := db.First(&owner, "id = ?", input.OwnerID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, types.Validation("Owner not found")
			}
			return nil, err
		}
		unit.OwnerID = owner.ID
	}

	if input.Name != "" {
		unit.Name = input.Name
	}
	if input.Address != nil {
		unit.Address = *input.Address
	}
	if input.Capacity != nil {
		unit.Capacity = input.Capacity.Int()
	}
	if input.IsActive != nil {
		unit.IsActive = *input.IsActive
	}

	if input.ManagerIDs != nil {
		managers, err := findManagers(db, input.ManagerIDs.Slice())
		if err != nil {
			return nil, err
		}
		if err := db.Model(unit).Association("Managers").Replace(managers); err != nil {
			return nil, err
		}
	}

	if err := db.Omit("Managers", "Owner").Save(unit).Error; err != nil {
		return nil, err
	}

	return GetUnit(db, unit.ID)
}

// DeleteUnit hard-deletes a unit. Inventory, orders and stages referencing
// it are left in place and dangle on later reads.
func DeleteUnit(db *gorm.DB, id string) error {
	unit, err := GetUnit(db, id)
	if err != nil {
		return err
	}

	if err := db.Model(unit).Association("Managers").Clear(); err != nil {
		return err
	}
	return db.Delete(&models.Unit{}, "id = ?", id).Error
}

// ActiveUnits returns all units flagged active, regardless of role.
func ActiveUnits(db *gorm.DB) ([]models.Unit, error) {
	units := []models.Unit{}
	err := db.Preload("Owner").Preload("Managers").
		Where("is_active = ?", true).
		Find(&units).Error
	return units, err
}

// UnitsByOwner returns the units owned by the given actor id.
func UnitsByOwner(db *gorm.DB, ownerID string) ([]models.Unit, error) {
	units := []models.Unit{}
	err := db.Preload("Owner").Preload("Managers").
		Where("owner_id = ?", ownerID).
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, types.NotFound("No units found for this owner")
	}
	return units, nil
}

// findManagers resolves manager actor rows by id, dropping unknown ids.
func findManagers(db *gorm.DB, ids []string) ([]models.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var managers []models.Actor
	if err := db.Where("id IN ?", ids).Find(&managers).Error; err != nil {
		return nil, err
	}
	return managers, nil
}
