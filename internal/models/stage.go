package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StageName is one step of the production pipeline. The sequence
// Cutting -> Stitching -> Finishing -> Packaging -> Completed is
// conceptual only; any value may be written from any other.
type StageName string

const (
	StageCutting   StageName = "Cutting"
	StageStitching StageName = "Stitching"
	StageFinishing StageName = "Finishing"
	StagePackaging StageName = "Packaging"
	StageCompleted StageName = "Completed"
)

// Valid reports whether the stage name is one of the known stages.
func (s StageName) Valid() bool {
	switch s {
	case StageCutting, StageStitching, StageFinishing, StagePackaging, StageCompleted:
		return true
	}
	return false
}

// ProductionStage tracks one pipeline step of an order at a unit, with a
// completion percentage. CompletedAt is stamped automatically the first
// time progress reaches 100.
type ProductionStage struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID     string     `gorm:"type:char(36);not null;index" json:"orderId"`
	Order       *Order     `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	UnitID      string     `gorm:"type:char(36);not null;index" json:"unitId"`
	Unit        *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Stage       StageName  `gorm:"size:32;not null" json:"stage"`
	StartedAt   time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	Remarks     string     `gorm:"size:1024" json:"remarks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for ProductionStage
func (ProductionStage) TableName() string {
	return "production_stages"
}

// BeforeCreate assigns a UUID primary key and defaults StartedAt to now.
func (p *ProductionStage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.StartedAt.IsZero() {
		p.StartedAt = time.Now()
	}
	return nil
}
