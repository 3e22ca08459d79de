package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog entry orders reference by id.
type Product struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	SKU          string    `gorm:"size:64;uniqueIndex" json:"sku"`
	Category     string    `gorm:"size:64;not null" json:"category"`
	Description  string    `gorm:"size:1024" json:"description,omitempty"`
	SizeRange    JSON      `gorm:"type:json" json:"sizeRange"`
	ColorOptions JSON      `gorm:"type:json" json:"colorOptions"`
	ImageURL     string    `gorm:"size:512" json:"imageUrl,omitempty"`
	UnitCost     float64   `gorm:"not null;default:0" json:"unitCost"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
