package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/garmentdb/internal/models"
	"github.com/localnerve/garmentdb/internal/types"
	"gorm.io/gorm"
)

// StageInput carries the mutable fields of a production stage.
type StageInput struct {
	OrderID     string            `json:"order"`
	UnitID      string            `json:"unit"`
	Stage       *models.StageName `json:"stage"`
	Progress    *types.FlexInt    `json:"progress"`
	CompletedAt *time.Time        `json:"completedAt"`
	Remarks     *string           `json:"remarks"`
}

// StageFilters narrows a stage listing. Nil pointers mean "no filter".
type StageFilters struct {
	UnitID      string
	OrderID     string
	Stage       string
	ProgressMin *int
	ProgressMax *int
}

// CreateStage records a production stage against an order and unit.
// A stage created at 100% progress is stamped completed immediately.
func CreateStage(db *gorm.DB, input *StageInput) (*models.ProductionStage, error) {
	if input.Stage == nil || !input.Stage.Valid() {
		return nil, types.Validation("Invalid production stage name")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", input.OrderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Order not found")
		}
		return nil, err
	}
	unit, err := loadUnit(db, input.UnitID)
	if err != nil {
		return nil, err
	}

	stage := models.ProductionStage{
		OrderID:     order.ID,
		UnitID:      unit.ID,
		Stage:       *input.Stage,
		CompletedAt: input.CompletedAt,
	}
	if input.Progress != nil {
		if input.Progress.Int() < 0 || input.Progress.Int() > 100 {
			return nil, types.Validation("Progress must be between 0 and 100")
		}
		stage.Progress = input.Progress.Int()
	}
	if input.Remarks != nil {
		stage.Remarks = *input.Remarks
	}
	if stage.Progress == 100 && stage.CompletedAt == nil {
		now := time.Now()
		stage.CompletedAt = &now
	}

	if err := db.Create(&stage).Error; err != nil {
		return nil, err
	}

	return GetStage(db, stage.ID)
}

// ListStages returns a page of stages, newest first, narrowed by the
// given filters. Malformed uuid filters are dropped, not rejected.
func ListStages(db *gorm.DB, filters *StageFilters, page, limit int) ([]models.ProductionStage, int64, error) {
	query := applyStageFilters(db.Model(&models.ProductionStage{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	stages := []models.ProductionStage{}
	err := applyStageFilters(stagePreloads(db), filters).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&stages).Error
	if err != nil {
		return nil, 0, err
	}

	return stages, total, nil
}

// GetStage returns one stage with its order and unit populated.
func GetStage(db *gorm.DB, id string) (*models.ProductionStage, error) {
	var stage models.ProductionStage
	err := stagePreloads(db).First(&stage, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NotFound("Production stage not found")
		}
		return nil, err
	}
	return &stage, nil
}

// UpdateStage applies partial updates. Raising progress to 100 stamps the
// completion time if none was set; an explicit completedAt always wins.
func UpdateStage(db *gorm.DB, id string, input *StageInput) (*models.ProductionStage, error) {
	stage, err := GetStage(db, id)
	if err != nil {
		return nil, err
	}

	if input.Stage != nil {
		if !input.Stage.Valid() {
			return nil, types.Validation("Invalid production stage name")
		}
		stage.Stage = *input.Stage
	}
	if input.Progress != nil {
		if input.Progress.Int() < 0 || input.Progress.Int() > 100 {
			return nil, types.Validation("Progress must be between 0 and 100")
		}
		stage.Progress = input.Progress.Int()
	}
	if input.CompletedAt != nil {
		stage.CompletedAt = input.CompletedAt
	}
	if input.Remarks != nil {
		stage.Remarks = *input.Remarks
	}
	if stage.Progress == 100 && stage.CompletedAt == nil {
		now := time.Now()
		stage.CompletedAt = &now
	}

	if err := db.Omit("Order", "Unit").Save(stage).Error; err != nil {
		return nil, err
	}

	return GetStage(db, stage.ID)
}

// DeleteStage hard-deletes one stage record.
func DeleteStage(db *gorm.DB, id string) error {
	if _, err := GetStage(db, id); err != nil {
		return err
	}
	return db.Delete(&models.ProductionStage{}, "id = ?", id).Error
}

// StagesByOrder returns an order's stages in the order they started.
func StagesByOrder(db *gorm.DB, orderID string) ([]models.ProductionStage, error) {
	stages := []models.ProductionStage{}
	err := stagePreloads(db).
		Where("order_id = ?", orderID).
		Order("started_at ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, types.NotFound("No production stages found for this order")
	}
	return stages, nil
}

// StagesByUnit returns a unit's stages in the order they started.
func StagesByUnit(db *gorm.DB, unitID string) ([]models.ProductionStage, error) {
	stages := []models.ProductionStage{}
	err := stagePreloads(db).
		Where("unit_id = ?", unitID).
		Order("started_at ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, types.NotFound("No production stages found for this unit")
	}
	return stages, nil
}

// StagesByType returns every stage record of one stage name.
func StagesByType(db *gorm.DB, name string) ([]models.ProductionStage, error) {
	if !models.StageName(name).Valid() {
		return nil, types.Validation("Invalid production stage name")
	}

	stages := []models.ProductionStage{}
	err := stagePreloads(db).
		Where("stage = ?", name).
		Order("started_at ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, types.NotFound("No production stages found for this type")
	}
	return stages, nil
}

func stagePreloads(db *gorm.DB) *gorm.DB {
	return db.Model(&models.ProductionStage{}).
		Preload("Order").
		Preload("Order.Client").
		Preload("Unit")
}

func applyStageFilters(query *gorm.DB, filters *StageFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.UnitID != "" && uuid.Validate(filters.UnitID) == nil {
		query = query.Where("unit_id = ?", filters.UnitID)
	}
	if filters.OrderID != "" && uuid.Validate(filters.OrderID) == nil {
		query = query.Where("order_id = ?", filters.OrderID)
	}
	if filters.Stage != "" {
		query = query.Where("stage = ?", filters.Stage)
	}
	if filters.ProgressMin != nil {
		query = query.Where("progress >= ?", *filters.ProgressMin)
	}
	if filters.ProgressMax != nil {
		query = query.Where("progress <= ?", *filters.ProgressMax)
	}
	return query
}
