package services

import (
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// NotificationInput carries the fields of a new notification.
type NotificationInput struct {
	UserID  string                   `json:"user"`
	Title   string                   `json:"title"`
	Message string                   `json:"message"`
	Type    *models.NotificationType `json:"type"`
}

// CreateNotification creates a notification addressed to one actor.
func CreateNotification(db *gorm.DB, input *NotificationInput) (*models.Notification, error) {
	if input.Title == "" || input.Message == "" {
		return nil, types.Validation("Title and message are required")
	}

	var user models.Actor
	if err := db.First(&user, "id = ?", input.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.Validation("Invalid user ID")
		}
		return nil, err
	}

	notification := models.Notification{
		UserID:  user.ID,
		Title:   input.Title,
		Message: input.Message,
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, types.Validation("Invalid notification type")
		}
		notification.Type = *input.Type
	}

	if err := db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListNotifications returns every notification, newest first.
func ListNotifications(db *gorm.DB) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := db.Preload("User").Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MyNotifications returns the actor's own notifications, newest first.
func MyNotifications(db *gorm.DB, actor *models.Actor) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := db.Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead marks one of the actor's own notifications read.
// Marking an already-read notification is a no-op, not an error.
func MarkNotificationRead(db *gorm.DB, actor *models.Actor, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Notification not found")
		}
		return nil, err
	}
	if notification.UserID != actor.ID {
		return nil, types.Forbidden("Not authorized to update this notification")
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := db.Save(&notification).Error; err != nil {
			return nil, err
		}
	}
	return &notification, nil
}

// MarkAllNotificationsRead marks every unread notification of the actor
// read in one statement and reports how many rows changed. Repeat calls
// are idempotent; other actors' rows are never touched.
func MarkAllNotificationsRead(db *gorm.DB, actor *models.Actor) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// DeleteNotification hard-deletes a notification. The addressed actor
// may delete their own; an admin may delete anyone's.
func DeleteNotification(db *gorm.DB, actor *models.Actor, id string) error {
	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return types.NotFound("Notification not found")
		}
		return err
	}
	if notification.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return types.Forbidden("Not authorized to delete this notification")
	}
	return db.Delete(&models.Notification{}, "id = ?", id).Error
}
