package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle status. Values are conceptually
// ordered but transitions are intentionally unconstrained: any status may
// follow any other.
type OrderStatus string

const (
	OrderStatusCreated      OrderStatus = "Created"
	OrderStatusInProduction OrderStatus = "In Production"
	OrderStatusQualityCheck OrderStatus = "Quality Check"
	OrderStatusShipped      OrderStatus = "Shipped"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

// Valid reports whether the status is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusInProduction, OrderStatusQualityCheck,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line item embedded in an order. It carries no API
// identity of its own.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string   `gorm:"type:char(36);not null;index" json:"-"`
	ProductID string   `gorm:"type:char(36);not null" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Size      string   `gorm:"size:16" json:"size,omitempty"`
	Color     string   `gorm:"size:32" json:"color,omitempty"`
}

// TableName overrides the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is a client's production order, optionally assigned to units.
// TotalQuantity is computed once at creation and not kept in sync with
// later item edits.
type Order struct {
	ID            string      `gorm:"type:char(36);primaryKey" json:"id"`
	OrderNumber   string      `gorm:"size:32;uniqueIndex;not null" json:"orderNumber"`
	ClientID      string      `gorm:"type:char(36);not null;index" json:"clientId"`
	Client        *Actor      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AssignedUnits []Unit      `gorm:"many2many:order_units;" json:"assignedUnits"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalQuantity int         `gorm:"not null" json:"totalQuantity"`
	Status        OrderStatus `gorm:"size:32;not null;default:Created" json:"status"`
	DueDate       *time.Time  `json:"dueDate,omitempty"`
	Notes         string      `gorm:"size:1024" json:"notes,omitempty"`
	CreatedAt     time.Time   `gorm:"index:idx_orders_created_at" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key when none was supplied.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderCounter is the per-day sequence behind generated order numbers.
// The row is locked and incremented inside the order-creation transaction,
// so two concurrent creations cannot observe the same sequence value.
type OrderCounter struct {
	Day string `gorm:"size:8;primaryKey"`
	Seq int    `gorm:"not null;default:0"`
}

// TableName overrides the table name for OrderCounter
func (OrderCounter) TableName() string {
	return "order_counters"
}
