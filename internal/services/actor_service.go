package services

import (
	"errors"

	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// ActorInput carries the mutable fields of an actor account.
type ActorInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Role     string          `json:"role"`
	Address  *models.Address `json:"address"`
	IsActive *bool           `json:"isActive"`
}

// ListActors returns every actor account.
func ListActors(db *gorm.DB) ([]models.Actor, error) {
	actors := []models.Actor{}
	err := db.Order("created_at DESC").Find(&actors).Error
	return actors, err
}

// ListManagers returns the active unit managers, sorted by name.
func ListManagers(db *gorm.DB) ([]models.Actor, error) {
	actors := []models.Actor{}
	err := db.Where("role = ? AND is_active = ?", models.RoleUnitManager, true).
		Order("name ASC").
		Find(&actors).Error
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, types.NotFound("No unit managers found")
	}
	return actors, nil
}

// ListClients returns the active clients, sorted by name.
func ListClients(db *gorm.DB) ([]models.Actor, error) {
	actors := []models.Actor{}
	err := db.Where("role = ? AND is_active = ?", models.RoleClient, true).
		Order("name ASC").
		Find(&actors).Error
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, types.NotFound("No clients found")
	}
	return actors, nil
}

// CreateActor creates an account. The role is normalized through
// ParseRole; anything outside the closed set is rejected.
func CreateActor(db *gorm.DB, input *ActorInput) (*models.Actor, error) {
	if input.Name == "" || input.Phone == "" {
		return nil, types.Validation("Name and phone are required")
	}

	actor := models.Actor{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		IsActive: true,
	}
	if input.Role != "" {
		role, ok := models.ParseRole(input.Role)
		if !ok {
			return nil, types.Validation("Invalid role")
		}
		actor.Role = role
	}
	if input.Address != nil {
		actor.Address = *input.Address
	}

	if err := db.Create(&actor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Validation("Phone number already registered")
		}
		return nil, err
	}
	return &actor, nil
}

// GetActorByID returns one actor account.
func GetActorByID(db *gorm.DB, id string) (*models.Actor, error) {
	var actor models.Actor
	if err := db.First(&actor, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("User not found")
		}
		return nil, err
	}
	return &actor, nil
}

// UpdateActor applies partial admin-side updates, including role changes.
func UpdateActor(db *gorm.DB, id string, input *ActorInput) (*models.Actor, error) {
	actor, err := GetActorByID(db, id)
	if err != nil {
		return nil, err
	}

	if input.Role != "" {
		role, ok := models.ParseRole(input.Role)
		if !ok {
			return nil, types.Validation("Invalid role")
		}
		actor.Role = role
	}
	applyProfile(actor, input)
	if input.IsActive != nil {
		actor.IsActive = *input.IsActive
	}

	if err := db.Save(actor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Validation("Phone number already registered")
		}
		return nil, err
	}
	return actor, nil
}

// UpdateProfile applies the self-service subset of account updates.
// Role and active state are out of reach here.
func UpdateProfile(db *gorm.DB, actor *models.Actor, input *ActorInput) (*models.Actor, error) {
	current, err := GetActorByID(db, actor.ID)
	if err != nil {
		return nil, err
	}

	applyProfile(current, input)

	if err := db.Save(current).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Validation("Phone number already registered")
		}
		return nil, err
	}
	return current, nil
}

// DeleteActor hard-deletes an account. Admin accounts are never deleted.
func DeleteActor(db *gorm.DB, id string) error {
	actor, err := GetActorByID(db, id)
	if err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin {
		return types.Forbidden("Admin accounts cannot be deleted")
	}
	return db.Delete(&models.Actor{}, "id = ?", id).Error
}

func applyProfile(actor *models.Actor, input *ActorInput) {
	if input.Name != "" {
		actor.Name = input.Name
	}
	if input.Email != "" {
		actor.Email = input.Email
	}
	if input.Phone != "" {
		actor.Phone = input.Phone
	}
	if input.Address != nil {
		actor.Address = *input.Address
	}
}
