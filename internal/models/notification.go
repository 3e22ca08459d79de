package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType categorizes a notification for the client UI.
type NotificationType string

const (
	NotificationOrder     NotificationType = "order"
	NotificationInventory NotificationType = "inventory"
	NotificationSystem    NotificationType = "system"
)

// Valid reports whether the type is one of the known types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationOrder, NotificationInventory, NotificationSystem:
		return true
	}
	return false
}

// Notification is a single-recipient inbox entry.
type Notification struct {
	ID        string           `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string           `gorm:"type:char(36);not null;index" json:"userId"`
	User      *Actor           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title     string           `gorm:"size:255" json:"title"`
	Message   string           `gorm:"size:1024" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"isRead"`
	Type      NotificationType `gorm:"size:32;not null;default:system" json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// TableName overrides the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
