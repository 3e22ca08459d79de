package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// StageHandler handles production stage routes
type StageHandler struct {
	DB *gorm.DB
}

// List handles GET /api/production-stages
// @Summary List production stages
// @Description Paginated listing with optional unit, order, stage and progress range filters
// @Tags ProductionStages
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param unit query string false "Unit ID filter"
// @Param order query string false "Order ID filter"
// @Param stage query string false "Stage name filter"
// @Param progressMin query int false "Minimum progress"
// @Param progressMax query int false "Maximum progress"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /production-stages [get]
func (h *StageHandler) List(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	filters := services.StageFilters{
		UnitID:  c.Query("unit"),
		OrderID: c.Query("order"),
		Stage:   c.Query("stage"),
	}
	if min := c.QueryInt("progressMin", -1); min >= 0 {
		filters.ProgressMin = &min
	}
	if max := c.QueryInt("progressMax", -1); max >= 0 {
		filters.ProgressMax = &max
	}

	stages, total, err := services.ListStages(h.DB, &filters, page, limit)
	if err != nil {
		return fail(c, err, "listStages")
	}
	return pagedResponse(c, "totalStages", "stages", stages, total, page, limit)
}

// ByOrder handles GET /api/production-stages/order/:orderId
// @Summary List one order's stages in start order
// @Tags ProductionStages
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {array} models.ProductionStage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages/order/{orderId} [get]
func (h *StageHandler) ByOrder(c *fiber.Ctx) error {
	stages, err := services.StagesByOrder(h.DB, c.Params("orderId"))
	if err != nil {
		return fail(c, err, "stagesByOrder")
	}
	return utils.SuccessResponse(c, stages, fiber.StatusOK)
}

// ByUnit handles GET /api/production-stages/unit/:unitId
// @Summary List one unit's stages in start order
// @Tags ProductionStages
// @Produce json
// @Param unitId path string true "Unit ID"
// @Success 200 {array} models.ProductionStage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages/unit/{unitId} [get]
func (h *StageHandler) ByUnit(c *fiber.Ctx) error {
	stages, err := services.StagesByUnit(h.DB, c.Params("unitId"))
	if err != nil {
		return fail(c, err, "stagesByUnit")
	}
	return utils.SuccessResponse(c, stages, fiber.StatusOK)
}

// ByType handles GET /api/production-stages/type/:stage
// @Summary List every stage record of one stage name
// @Tags ProductionStages
// @Produce json
// @Param stage path string true "Stage name"
// @Success 200 {array} models.ProductionStage
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages/type/{stage} [get]
func (h *StageHandler) ByType(c *fiber.Ctx) error {
	stages, err := services.StagesByType(h.DB, c.Params("stage"))
	if err != nil {
		return fail(c, err, "stagesByType")
	}
	return utils.SuccessResponse(c, stages, fiber.StatusOK)
}

// Create handles POST /api/production-stages
// @Summary Record a production stage
// @Description A stage created at 100% progress is stamped completed
// @Tags ProductionStages
// @Accept json
// @Produce json
// @Param input body services.StageInput true "Stage fields"
// @Success 201 {object} models.ProductionStage
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages [post]
func (h *StageHandler) Create(c *fiber.Ctx) error {
	var input services.StageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	stage, err := services.CreateStage(h.DB, &input)
	if err != nil {
		return fail(c, err, "createStage")
	}
	return utils.SuccessResponse(c, stage, fiber.StatusCreated)
}

// Get handles GET /api/production-stages/:id
// @Summary Get one stage record
// @Tags ProductionStages
// @Produce json
// @Param id path string true "Stage ID"
// @Success 200 {object} models.ProductionStage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages/{id} [get]
func (h *StageHandler) Get(c *fiber.Ctx) error {
	stage, err := services.GetStage(h.DB, c.Params("id"))
	if err != nil {
		return fail(c, err, "getStage")
	}
	return utils.SuccessResponse(c, stage, fiber.StatusOK)
}

// Update handles PUT /api/production-stages/:id
// @Summary Update a stage record
// @Description Raising progress to 100 stamps the completion time
// @Tags ProductionStages
// @Accept json
// @Produce json
// @Param id path string true "Stage ID"
// @Param input body services.StageInput true "Stage fields"
// @Success 200 {object} models.ProductionStage
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages/{id} [put]
func (h *StageHandler) Update(c *fiber.Ctx) error {
	var input services.StageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	stage, err := services.UpdateStage(h.DB, c.Params("id"), &input)
	if err != nil {
		return fail(c, err, "updateStage")
	}
	return utils.SuccessResponse(c, stage, fiber.StatusOK)
}

// Delete handles DELETE /api/production-stages/:id
// @Summary Delete a stage record
// @Tags ProductionStages
// @Produce json
// @Param id path string true "Stage ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /production-stages/{id} [delete]
func (h *StageHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteStage(h.DB, c.Params("id")); err != nil {
		return fail(c, err, "deleteStage")
	}
	return utils.MessageResponse(c, "Production stage deleted successfully")
}
