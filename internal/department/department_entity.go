package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name      string            `gorm:"size:255;not null;uniqueIndex:uq_departments_branch_name,priority:2"`
	BranchID  *uuid.UUID        `gorm:"type:uuid;uniqueIndex:uq_departments_branch_name,priority:1"`
	Branch    *DepartmentBranch `gorm:"foreignKey:BranchID"`
	IsActive  bool              `gorm:"not null;default:true"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt    `gorm:"index"`
}

// DepartmentBranch is the read-only slice of a branch preloaded for display.
type DepartmentBranch struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (DepartmentBranch) TableName() string {
	return "branches"
}
