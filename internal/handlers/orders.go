// orders.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// OrderHandler handles order routes
type OrderHandler struct {
	DB *gorm.DB
}

// List handles GET /api/orders
// @Summary List all orders
// @Description Paginated listing with optional client, status and due date range filters, admin only
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param client query string false "Client ID filter"
// @Param status query string false "Status filter"
// @Param startDate query string false "Due date range start (YYYY-MM-DD)"
// @Param endDate query string false "Due date range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	filters := services.OrderFilters{
		ClientID:  c.Query("client"),
		Status:    c.Query("status"),
		StartDate: parseDate(c, "startDate"),
		EndDate:   parseDate(c, "endDate"),
	}

	orders, total, err := services.ListOrders(h.DB, &filters, page, limit)
	if err != nil {
		return fail(c, err, "listOrders")
	}
	return pagedResponse(c, "totalOrders", "orders", orders, total, page, limit)
}

// Mine handles GET /api/orders/client
// @Summary List the authenticated client's own orders
// @Tags Orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /orders/client [get]
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	page, limit := parsePagination(c)

	orders, total, err := services.OrdersByClient(h.DB, actor.ID, page, limit)
	if err != nil {
		return fail(c, err, "ordersByClient")
	}
	return pagedResponse(c, "totalOrders", "orders", orders, total, page, limit)
}

// ByUnit handles GET /api/orders/unit/:unitId
// @Summary List the orders assigned to one unit
// @Description The actor must be able to reach the unit
// @Tags Orders
// @Produce json
// @Param unitId path string true "Unit ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/unit/{unitId} [get]
func (h *OrderHandler) ByUnit(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	page, limit := parsePagination(c)

	orders, total, err := services.OrdersByUnit(h.DB, actor, c.Params("unitId"), page, limit)
	if err != nil {
		return fail(c, err, "ordersByUnit")
	}
	return pagedResponse(c, "totalOrders", "orders", orders, total, page, limit)
}

// ByStatus handles GET /api/orders/status/:status
// @Summary List the orders in one status
// @Tags Orders
// @Produce json
// @Param status path string true "Order status"
// @Param unit query string false "Narrow to one unit"
// @Success 200 {array} models.Order
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /orders/status/{status} [get]
func (h *OrderHandler) ByStatus(c *fiber.Ctx) error {
	orders, err := services.OrdersByStatus(h.DB, c.Params("status"), c.Query("unit"))
	if err != nil {
		return fail(c, err, "ordersByStatus")
	}
	return utils.SuccessResponse(c, orders, fiber.StatusOK)
}

// Create handles POST /api/orders
// @Summary Create an order
// @Description Items, totals, the order number and unit assignments are committed in one transaction
// @Tags Orders
// @Accept json
// @Produce json
// @Param input body services.OrderInput true "Order fields"
// @Success 201 {object} models.Order
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input services.OrderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	order, err := services.CreateOrder(h.DB, &input)
	if err != nil {
		return fail(c, err, "createOrder")
	}
	return utils.SuccessResponse(c, order, fiber.StatusCreated)
}

// Get handles GET /api/orders/:id
// @Summary Get one order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := services.GetOrder(h.DB, c.Params("id"))
	if err != nil {
		return fail(c, err, "getOrder")
	}
	return utils.SuccessResponse(c, order, fiber.StatusOK)
}

// Update handles PUT /api/orders/:id
// @Summary Update an order
// @Description Status, due date, notes and unit assignments are mutable
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body services.OrderInput true "Order fields"
// @Success 200 {object} models.Order
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var input services.OrderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	order, err := services.UpdateOrder(h.DB, c.Params("id"), &input)
	if err != nil {
		return fail(c, err, "updateOrder")
	}
	return utils.SuccessResponse(c, order, fiber.StatusOK)
}

// Delete handles DELETE /api/orders/:id
// @Summary Delete an order
// @Description Hard delete of the order, its items and unit assignments; stages are left in place
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteOrder(h.DB, c.Params("id")); err != nil {
		return fail(c, err, "deleteOrder")
	}
	return utils.MessageResponse(c, "Order deleted successfully")
}
