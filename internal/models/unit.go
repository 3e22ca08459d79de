package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit is a production facility. Exactly one client actor owns it; zero or
// more unit-manager actors manage it. Owner and managers are independent:
// the owner need not appear in the managers set.
type Unit struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   string    `gorm:"type:char(36);not null;index" json:"ownerId"`
	Owner     *Actor    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Managers  []Actor   `gorm:"many2many:unit_managers;" json:"managers,omitempty"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Capacity  int       `gorm:"not null;default:0" json:"capacity"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Unit
func (Unit) TableName() string {
	return "units"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
