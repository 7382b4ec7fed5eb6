package position

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position level 1 is the most senior.
type Position struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name         string              `gorm:"size:255;not null;uniqueIndex:uq_positions_name"`
	Level        int                 `gorm:"not null;default:1"`
	Description  string              `gorm:"type:text"`
	DepartmentID *uuid.UUID          `gorm:"type:uuid"`
	Department   *PositionDepartment `gorm:"foreignKey:DepartmentID;references:ID"`
	CreatedAt    time.Time           `gorm:"autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt      `gorm:"index"`
}

type PositionDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (PositionDepartment) TableName() string {
	return "departments"
}
