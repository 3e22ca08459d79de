package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category classifies inventory items.
type Category string

const (
	CategoryFabric    Category = "fabric"
	CategoryTrim      Category = "trim"
	CategoryAccessory Category = "accessory"
	CategoryOther     Category = "other"
)

// Valid reports whether the category is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFabric, CategoryTrim, CategoryAccessory, CategoryOther:
		return true
	}
	return false
}

// InventoryItem is a stocked material belonging to a unit. An item is
// "low stock" when quantity <= reorder level; that is derived at query
// time and never stored.
type InventoryItem struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	UnitID        string    `gorm:"type:char(36);not null;index" json:"unitId"`
	Unit          *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	ItemName      string    `gorm:"size:255;not null" json:"itemName"`
	Category      Category  `gorm:"size:32;not null;default:fabric" json:"category"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitOfMeasure string    `gorm:"size:32;not null;default:meters" json:"unitOfMeasure"`
	ReorderLevel  int       `gorm:"not null;default:10" json:"reorderLevel"`
	SupplierName  string    `gorm:"size:255" json:"supplierName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName overrides the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
