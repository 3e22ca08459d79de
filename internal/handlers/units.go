package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// UnitHandler handles manufacturing unit routes
type UnitHandler struct {
	DB *gorm.DB
}

// List handles GET /api/units
// @Summary List reachable units
// @Description Admin sees all units, a client its owned units, a unit manager its managed units
// @Tags Units
// @Produce json
// @Success 200 {array} models.Unit
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	units, err := services.ListUnits(h.DB, actor)
	if err != nil {
		return fail(c, err, "listUnits")
	}
	return utils.SuccessResponse(c, units, fiber.StatusOK)
}

// Active handles GET /api/units/active
// @Summary List active units
// @Tags Units
// @Produce json
// @Success 200 {array} models.Unit
// @Router /units/active [get]
func (h *UnitHandler) Active(c *fiber.Ctx) error {
	units, err := services.ActiveUnits(h.DB)
	if err != nil {
		return fail(c, err, "activeUnits")
	}
	return utils.SuccessResponse(c, units, fiber.StatusOK)
}

// ByOwner handles GET /api/units/owner/:ownerId
// @Summary List the units owned by an actor
// @Tags Units
// @Produce json
// @Param ownerId path string true "Owner ID"
// @Success 200 {array} models.Unit
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /units/owner/{ownerId} [get]
func (h *UnitHandler) ByOwner(c *fiber.Ctx) error {
	units, err := services.UnitsByOwner(h.DB, c.Params("ownerId"))
	if err != nil {
		return fail(c, err, "unitsByOwner")
	}
	return utils.SuccessResponse(c, units, fiber.StatusOK)
}

// Create handles POST /api/units
// @Summary Create a unit
// @Description A client always becomes the owner of the unit it creates; admin may set any owner
// @Tags Units
// @Accept json
// @Produce json
// @Param input body services.UnitInput true "Unit fields"
// @Success 201 {object} models.Unit
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /units [post]
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)

	var input services.UnitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}
	if actor.Role == models.RoleClient {
		input.OwnerID = actor.ID
	}

	unit, err := services.CreateUnit(h.DB, &input)
	if err != nil {
		return fail(c, err, "createUnit")
	}
	return utils.SuccessResponse(c, unit, fiber.StatusCreated)
}

// Get handles GET /api/units/:id
// @Summary Get one unit
// @Tags Units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} models.Unit
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /units/{id} [get]
func (h *UnitHandler) Get(c *fiber.Ctx) error {
	unit, err := services.GetUnit(h.DB, c.Params("id"))
	if err != nil {
		return fail(c, err, "getUnit")
	}
	return utils.SuccessResponse(c, unit, fiber.StatusOK)
}

// Update handles PUT /api/units/:id
// @Summary Update a unit
// @Description Admin may change anything; the owning client everything except ownership
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param input body services.UnitInput true "Unit fields"
// @Success 200 {object} models.Unit
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /units/{id} [put]
func (h *UnitHandler) Update(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)

	var input services.UnitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	unit, err := services.UpdateUnit(h.DB, actor, c.Params("id"), &input)
	if err != nil {
		return fail(c, err, "updateUnit")
	}
	return utils.SuccessResponse(c, unit, fiber.StatusOK)
}

// Delete handles DELETE /api/units/:id
// @Summary Delete a unit
// @Description Hard delete; inventory, orders and stages of the unit are left dangling
// @Tags Units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /units/{id} [delete]
func (h *UnitHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteUnit(h.DB, c.Params("id")); err != nil {
		return fail(c, err, "deleteUnit")
	}
	return utils.MessageResponse(c, "Unit deleted successfully")
}
