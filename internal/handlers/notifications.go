package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/garmentdb/internal/middleware"
	"github.com/localnerve/garmentdb/internal/services"
	"github.com/localnerve/garmentdb/internal/utils"
	"gorm.io/gorm"
)

// NotificationHandler handles notification routes
type NotificationHandler struct {
	DB *gorm.DB
}

// List handles GET /api/notifications
// @Summary List all notifications, admin only
// @Tags Notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := services.ListNotifications(h.DB)
	if err != nil {
		return fail(c, err, "listNotifications")
	}
	return utils.SuccessResponse(c, notifications, fiber.StatusOK)
}

// Mine handles GET /api/notifications/my
// @Summary List the authenticated actor's notifications
// @Tags Notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications/my [get]
func (h *NotificationHandler) Mine(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	notifications, err := services.MyNotifications(h.DB, actor)
	if err != nil {
		return fail(c, err, "myNotifications")
	}
	return utils.SuccessResponse(c, notifications, fiber.StatusOK)
}

// Create handles POST /api/notifications
// @Summary Create a notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param input body services.NotificationInput true "Notification fields"
// @Success 201 {object} models.Notification
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input services.NotificationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "validation")
	}

	notification, err := services.CreateNotification(h.DB, &input)
	if err != nil {
		return fail(c, err, "createNotification")
	}
	return utils.SuccessResponse(c, notification, fiber.StatusCreated)
}

// MarkRead handles PUT /api/notifications/:id/read
// @Summary Mark one of the actor's notifications read
// @Description Idempotent; marking an already-read notification changes nothing
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} models.Notification
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	notification, err := services.MarkNotificationRead(h.DB, actor, c.Params("id"))
	if err != nil {
		return fail(c, err, "markNotificationRead")
	}
	return utils.SuccessResponse(c, notification, fiber.StatusOK)
}

// MarkAllRead handles PUT /api/notifications/mark-all-read
// @Summary Mark all of the actor's notifications read
// @Description Idempotent bulk update scoped to the authenticated actor
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.MessageResponseStruct
// @Router /notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	if _, err := services.MarkAllNotificationsRead(h.DB, actor); err != nil {
		return fail(c, err, "markAllNotificationsRead")
	}
	return utils.MessageResponse(c, "All notifications marked as read")
}

// Delete handles DELETE /api/notifications/:id
// @Summary Delete a notification
// @Description The addressed actor may delete their own; an admin may delete anyone's
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	actor, _ := middleware.ActorFromCtx(c)
	if err := services.DeleteNotification(h.DB, actor, c.Params("id")); err != nil {
		return fail(c, err, "deleteNotification")
	}
	return utils.MessageResponse(c, "Notification deleted successfully")
}
