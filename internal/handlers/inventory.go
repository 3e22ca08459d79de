package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// InventoryHandler handles inventory item routes
type InventoryHandler struct {
	DB *gorm.DB
}

// List handles GET /api/inventories
// @Summary List reachable inventory items
// @Description Items of units the actor can reach; the unit filter runs inside the query
// @Tags Inventory
// @Produce json
// @Success 200 {array} models.InventoryItem
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	items, err := services.ListInventory(h.DB, actor)
	if err != nil {
		return fail(c, err, "listInventory")
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// LowStock handles GET /api/inventories/lowstock
// @Summary List reachable low stock items
// @Description Items with quantity at or below their reorder level
// @Tags Inventory
// @Produce json
// @Success 200 {array} models.InventoryItem
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /inventories/lowstock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	items, err := services.LowStockItems(h.DB, actor)
	if err != nil {
		return fail(c, err, "lowStockItems")
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// Categories handles GET /api/inventories/categories
// @Summary List inventory categories in use
// @Tags Inventory
// @Produce json
// @Success 200 {array} string
// @Router /inventories/categories [get]
func (h *InventoryHandler) Categories(c *fiber.Ctx) error {
	categories, err := services.InventoryCategories(h.DB)
	if err != nil {
		return fail(c, err, "inventoryCategories")
	}
	return utils.SuccessResponse(c, categories, fiber.StatusOK)
}

// ByCategory handles GET /api/inventories/category/:category
// @Summary List inventory items of one category
// @Tags Inventory
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} models.InventoryItem
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /inventories/category/{category} [get]
func (h *InventoryHandler) ByCategory(c *fiber.Ctx) error {
	items, err := services.InventoryByCategory(h.DB, c.Params("category"))
	if err != nil {
		return fail(c, err, "inventoryByCategory")
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// ByUnit handles GET /api/inventories/unit/:unitId
// @Summary List one unit's inventory
// @Tags Inventory
// @Produce json
// @Param unitId path string true "Unit ID"
// @Success 200 {array} models.InventoryItem
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /inventories/unit/{unitId} [get]
func (h *InventoryHandler) ByUnit(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	items, err := services.InventoryByUnit(h.DB, actor, c.Params("unitId"))
	if err != nil {
		return fail(c, err, "inventoryByUnit")
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// Create handles POST /api/inventories
// @Summary Create an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param input body services.InventoryInput true "Item fields"
// @Success 201 {object} models.InventoryItem
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /inventories [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)

	var input services.InventoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	item, err := services.CreateInventoryItem(h.DB, actor, &input)
	if err != nil {
		return fail(c, err, "createInventoryItem")
	}
	return utils.SuccessResponse(c, item, fiber.StatusCreated)
}

// Get handles GET /api/inventories/:id
// @Summary Get one inventory item
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /inventories/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := services.GetInventoryItem(h.DB, c.Params("id"))
	if err != nil {
		return fail(c, err, "getInventoryItem")
	}
	return utils.SuccessResponse(c, item, fiber.StatusOK)
}

// Update handles PUT /api/inventories/:id
// @Summary Update an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param input body services.InventoryInput true "Item fields"
// @Success 200 {object} models.InventoryItem
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /inventories/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)

	var input services.InventoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	item, err := services.UpdateInventoryItem(h.DB, actor, c.Params("id"), &input)
	if err != nil {
		return fail(c, err, "updateInventoryItem")
	}
	return utils.SuccessResponse(c, item, fiber.StatusOK)
}

// Delete handles DELETE /api/inventories/:id
// @Summary Delete an inventory item
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /inventories/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	if err := services.DeleteInventoryItem(h.DB, actor, c.Params("id")); err != nil {
		return fail(c, err, "deleteInventoryItem")
	}
	return utils.MessageResponse(c, "Inventory item deleted successfully")
}
