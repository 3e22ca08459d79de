package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of actor roles. Authorization decisions switch on
// this type rather than comparing free-text role strings.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleClient      Role = "client"
	RoleUnitManager Role = "unit-manager"
)

// ParseRole normalizes a role string to one of the known roles.
// Legacy spellings ("Unit Manager", "CLIENT ") map onto the closed set.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "client":
		return RoleClient, true
	case "unit-manager", "unit manager", "unit_manager", "unitmanager":
		return RoleUnitManager, true
	}
	return "", false
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient || r == RoleUnitManager
}

// Address is the postal address embedded in actors and units.
type Address struct {
	Line        string `gorm:"size:255;column:line" json:"address"`
	City        string `gorm:"size:128" json:"city"`
	Pincode     string `gorm:"size:16" json:"pincode"`
	PhoneNumber string `gorm:"size:32" json:"phoneNumber"`
}

// Actor is an authenticated user of the system. Credentials live in the
// Authorizer service; this row carries the profile and the role, keyed by
// the Authorizer user id.
type Actor struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	Role      Role      `gorm:"size:32;not null;default:client" json:"role"`
	Address   Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Actor
func (Actor) TableName() string {
	return "actors"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (a *Actor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
