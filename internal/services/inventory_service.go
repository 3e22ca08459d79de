package services

import (
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// InventoryInput carries the mutable fields of an inventory item.
type InventoryInput struct {
	UnitID        string           `json:"unit"`
	ItemName      string           `json:"itemName"`
	Category      *models.Category `json:"category"`
	Quantity      *types.FlexInt   `json:"quantity"`
	UnitOfMeasure string           `json:"unitOfMeasure"`
	ReorderLevel  *types.FlexInt   `json:"reorderLevel"`
	SupplierName  string           `json:"supplierName"`
}

// CreateInventoryItem creates an item after verifying the actor is
// authorized for the target unit.
func CreateInventoryItem(db *gorm.DB, actor *models.Actor, input *InventoryInput) (*models.InventoryItem, error) {
	if input.ItemName == "" {
		return nil, types.Validation("Item name is required")
	}

	unit, err := loadUnit(db, input.UnitID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeUnit(db, actor, unit); err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		UnitID:        unit.ID,
		ItemName:      input.ItemName,
		UnitOfMeasure: input.UnitOfMeasure,
		SupplierName:  input.SupplierName,
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, types.Validation("Invalid inventory category")
		}
		item.Category = *input.Category
	}
	if input.Quantity != nil {
		if input.Quantity.Int() < 0 {
			return nil, types.Validation("Quantity cannot be negative")
		}
		item.Quantity = input.Quantity.Int()
	}
	if input.ReorderLevel != nil {
		if input.ReorderLevel.Int() < 0 {
			return nil, types.Validation("Reorder level cannot be negative")
		}
		item.ReorderLevel = input.ReorderLevel.Int()
	}

	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}

	return GetInventoryItem(db, item.ID)
}

// ListInventory returns the items of every unit the actor can reach.
// The unit predicate is applied before the rows leave the database, so a
// restricted actor never sees an item of a foreign unit.
func ListInventory(db *gorm.DB, actor *models.Actor) ([]models.InventoryItem, error) {
	query, err := ScopeToUnits(db, db.Preload("Unit.Owner").Preload("Unit.Managers"), actor, "unit_id")
	if err != nil {
		return nil, err
	}

	items := []models.InventoryItem{}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// InventoryByUnit lists one unit's items for an actor authorized on it.
func InventoryByUnit(db *gorm.DB, actor *models.Actor, unitID string) ([]models.InventoryItem, error) {
	unit, err := loadUnit(db, unitID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeUnit(db, actor, unit); err != nil {
		return nil, err
	}

	items := []models.InventoryItem{}
	err = db.Preload("Unit").Where("unit_id = ?", unit.ID).Find(&items).Error
	return items, err
}

// GetInventoryItem returns one item with its unit populated.
func GetInventoryItem(db *gorm.DB, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := db.Preload("Unit").First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Inventory item not found")
		}
		return nil, err
	}
	return &item, nil
}

// UpdateInventoryItem applies partial updates after authorizing the actor
// against the item's unit. The item cannot be moved between units.
func UpdateInventoryItem(db *gorm.DB, actor *models.Actor, id string, input *InventoryInput) (*models.InventoryItem, error) {
	item, err := GetInventoryItem(db, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeItemUnit(db, actor, item); err != nil {
		return nil, err
	}

	if input.ItemName != "" {
		item.ItemName = input.ItemName
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, types.Validation("Invalid inventory category")
		}
		item.Category = *input.Category
	}
	if input.Quantity != nil {
		if input.Quantity.Int() < 0 {
			return nil, types.Validation("Quantity cannot be negative")
		}
		item.Quantity = input.Quantity.Int()
	}
	if input.ReorderLevel != nil {
		if input.ReorderLevel.Int() < 0 {
			return nil, types.Validation("Reorder level cannot be negative")
		}
		item.ReorderLevel = input.ReorderLevel.Int()
	}
	if input.UnitOfMeasure != "" {
		item.UnitOfMeasure = input.UnitOfMeasure
	}
	if input.SupplierName != "" {
		item.SupplierName = input.SupplierName
	}

	if err := db.Omit("Unit").Save(item).Error; err != nil {
		return nil, err
	}
	return GetInventoryItem(db, item.ID)
}

// DeleteInventoryItem hard-deletes an item after authorizing the actor.
func DeleteInventoryItem(db *gorm.DB, actor *models.Actor, id string) error {
	item, err := GetInventoryItem(db, id)
	if err != nil {
		return err
	}
	if err := authorizeItemUnit(db, actor, item); err != nil {
		return err
	}
	return db.Delete(&models.InventoryItem{}, "id = ?", id).Error
}

// InventoryCategories returns the distinct categories currently in use.
func InventoryCategories(db *gorm.DB) ([]string, error) {
	categories := []string{}
	err := db.Model(&models.InventoryItem{}).Distinct("category").Pluck("category", &categories).Error
	return categories, err
}

// InventoryByCategory lists all items of one category across units.
func InventoryByCategory(db *gorm.DB, category string) ([]models.InventoryItem, error) {
	if !models.Category(category).Valid() {
		return nil, types.Validation("Invalid inventory category")
	}

	items := []models.InventoryItem{}
	if err := db.Preload("Unit").Where("category = ?", category).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, types.NotFound("No inventory items found in this category")
	}
	return items, nil
}

// LowStockItems lists the reachable items whose quantity has fallen to or
// below their reorder level. The boundary is inclusive: quantity equal to
// the reorder level already counts as low stock.
func LowStockItems(db *gorm.DB, actor *models.Actor) ([]models.InventoryItem, error) {
	query, err := ScopeToUnits(db, db.Preload("Unit"), actor, "unit_id")
	if err != nil {
		return nil, err
	}

	items := []models.InventoryItem{}
	err = query.Where("quantity <= reorder_level").Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, types.NotFound("No low stock items found")
	}
	return items, nil
}

// loadUnit fetches a unit row for an authorization check.
func loadUnit(db *gorm.DB, id string) (*models.Unit, error) {
	var unit models.Unit
	if err := db.Preload("Managers").First(&unit, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Unit not found")
		}
		return nil, err
	}
	return &unit, nil
}

// authorizeItemUnit authorizes the actor against the unit an item belongs
// to. An item whose unit was deleted is only reachable by an admin.
func authorizeItemUnit(db *gorm.DB, actor *models.Actor, item *models.InventoryItem) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	unit, err := loadUnit(db, item.UnitID)
	if err != nil {
		return err
	}
	return AuthorizeUnit(db, actor, unit)
}
