// order_service.go
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
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// OrderItemInput is one line of an order payload.
type OrderItemInput struct {
	ProductID string        `json:"product"`
	Quantity  types.FlexInt `json:"quantity"`
	Size      string        `json:"size"`
	Color     string        `json:"color"`
}

// OrderInput carries the mutable fields of an order.
type OrderInput struct {
	OrderNumber string                 `json:"orderNumber"`
	ClientID    string                 `json:"client"`
	UnitIDs     types.FlexList[string] `json:"assignedUnits"`
	Items       []OrderItemInput       `json:"items"`
	Status      *models.OrderStatus    `json:"status"`
	DueDate     *time.Time             `json:"dueDate"`
	Notes       *string                `json:"notes"`
}

// OrderFilters narrows an order listing. Zero values mean "no filter".
type OrderFilters struct {
	ClientID  string
	UnitID    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// nextOrderNumber allocates the next ORD-YYYYMMDD-NNN number for today.
// The per-day counter row is upserted then read back under a row lock, so
// two transactions can never observe the same sequence value.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	day := now.Format("20060102")

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"seq": gorm.Expr("seq + 1")}),
	}).Create(&models.OrderCounter{Day: day, Seq: 1}).Error
	if err != nil {
		return "", err
	}

	var counter models.OrderCounter
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "day = ?", day).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("ORD-%s-%03d", day, counter.Seq), nil
}

// CreateOrder creates an order with its items and unit assignments in one
// transaction. The order number, when not supplied, is allocated from the
// per-day counter inside the same transaction, so a failed creation never
// burns a visible number out of sequence with a committed one.
func CreateOrder(db *gorm.DB, input *OrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, types.Validation("Order must contain at least one item")
	}

	var client models.Actor
	if err := db.First(&client, "id = ?", input.ClientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Validation("Invalid client ID")
		}
		return nil, err
	}

	total := 0
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity.Int() <= 0 {
			return nil, types.Validation("Item quantity must be positive")
		}
		total += in.Quantity.Int()
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity.Int(),
			Size:      in.Size,
			Color:     in.Color,
		})
	}

	order := models.Order{
		ClientID:      client.ID,
		Items:         items,
		TotalQuantity: total,
		DueDate:       input.DueDate,
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, types.Validation("Invalid order status")
		}
		order.Status = *input.Status
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	for _, id := range input.UnitIDs.Slice() {
		order.AssignedUnits = append(order.AssignedUnits, models.Unit{ID: id})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if input.OrderNumber != "" {
			order.OrderNumber = input.OrderNumber
		} else {
			number, err := nextOrderNumber(tx, time.Now())
			if err != nil {
				return err
			}
			order.OrderNumber = number
		}

		// Only the join rows are written for assigned units; the unit rows
		// themselves are never touched, and ids of deleted units dangle.
		return tx.Omit("AssignedUnits.*").Create(&order).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Validation("Order number already exists")
		}
		return nil, err
	}

	return GetOrder(db, order.ID)
}

// ListOrders returns a page of orders, newest first, narrowed by the
// given filters. Invalid uuid-shaped id filters are dropped rather than
// rejected, matching the permissive read surface of the other listings.
func ListOrders(db *gorm.DB, filters *OrderFilters, page, limit int) ([]models.Order, int64, error) {
	query := db.Model(&models.Order{})
	query = applyOrderFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := applyOrderFilters(orderPreloads(db), filters)
	if db.Dialector.Name() == "mysql" {
		listQuery = listQuery.Clauses(hints.UseIndex("idx_orders_created_at"))
	}

	orders := []models.Order{}
	err := listQuery.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// GetOrder returns one order with client, units, items and products.
func GetOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := orderPreloads(db).First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Order not found")
		}
		return nil, err
	}
	return &order, nil
}

// UpdateOrder applies partial updates to status, due date, notes and unit
// assignments. The client and the items of an order are immutable.
func UpdateOrder(db *gorm.DB, id string, input *OrderInput) (*models.Order, error) {
	order, err := GetOrder(db, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, types.Validation("Invalid order status")
		}
		order.Status = *input.Status
	}
	if input.DueDate != nil {
		order.DueDate = input.DueDate
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if input.UnitIDs != nil {
			units := make([]models.Unit, 0, len(input.UnitIDs))
			for _, unitID := range input.UnitIDs.Slice() {
				units = append(units, models.Unit{ID: unitID})
			}
			if err := tx.Exec("DELETE FROM order_units WHERE order_id = ?", order.ID).Error; err != nil {
				return err
			}
			for _, unit := range units {
				err := tx.Exec(
					"INSERT INTO order_units (order_id, unit_id) VALUES (?, ?)",
					order.ID, unit.ID,
				).Error
				if err != nil {
					return err
				}
			}
		}
		return tx.Omit("AssignedUnits", "Items", "Client").Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrder(db, order.ID)
}

// DeleteOrder hard-deletes an order with its items and unit assignments.
// Production stages referencing the order are left in place.
func DeleteOrder(db *gorm.DB, id string) error {
	order, err := GetOrder(db, id)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM order_units WHERE order_id = ?", order.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", order.ID).Error
	})
}

// OrdersByClient returns a page of one client's orders, newest first.
func OrdersByClient(db *gorm.DB, clientID string, page, limit int) ([]models.Order, int64, error) {
	return ListOrders(db, &OrderFilters{ClientID: clientID}, page, limit)
}

// OrdersByUnit returns a page of the orders assigned to one unit for an
// actor authorized on that unit.
func OrdersByUnit(db *gorm.DB, actor *models.Actor, unitID string, page, limit int) ([]models.Order, int64, error) {
	unit, err := loadUnit(db, unitID)
	if err != nil {
		return nil, 0, err
	}
	if err := AuthorizeUnit(db, actor, unit); err != nil {
		return nil, 0, err
	}
	return ListOrders(db, &OrderFilters{UnitID: unit.ID}, page, limit)
}

// OrdersByStatus lists every order in one status, optionally narrowed to
// a unit. The listing is unpaginated.
func OrdersByStatus(db *gorm.DB, status, unitID string) ([]models.Order, error) {
	if !models.OrderStatus(status).Valid() {
		return nil, types.Validation("Invalid order status")
	}

	query := orderPreloads(db).Where("status = ?", status)
	if unitID != "" {
		query = query.Where(
			"id IN (SELECT order_id FROM order_units WHERE unit_id = ?)", unitID,
		)
	}

	orders := []models.Order{}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func orderPreloads(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Order{}).
		Preload("Client").
		Preload("AssignedUnits").
		Preload("Items").
		Preload("Items.Product")
}

func applyOrderFilters(query *gorm.DB, filters *OrderFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.ClientID != "" && uuid.Validate(filters.ClientID) == nil {
		query = query.Where("client_id = ?", filters.ClientID)
	}
	if filters.UnitID != "" {
		query = query.Where(
			"id IN (SELECT order_id FROM order_units WHERE unit_id = ?)", filters.UnitID,
		)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("due_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("due_date <= ?", *filters.EndDate)
	}
	return query
}
