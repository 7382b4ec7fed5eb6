package fives

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inspection is one 5S score sheet. TotalScore always equals the sum of the
// three sub-scores; the check constraints hold that at the storage layer too.
type Inspection struct {
	ID                    uuid.UUID             `gorm:"type:uuid;primaryKey"`
	DepartmentID          uuid.UUID             `gorm:"type:uuid;not null;index:idx_inspections_department_date,priority:1"`
	Department            *InspectionDepartment `gorm:"foreignKey:DepartmentID"`
	InspectorName         string                `gorm:"size:255;not null"`
	InspectorDepartmentID *uuid.UUID            `gorm:"type:uuid"`
	InspectionDate        time.Time             `gorm:"type:date;not null;index:idx_inspections_department_date,priority:2"`
	ScoreImprovement      int                   `gorm:"not null;check:chk_inspections_improvement,score_improvement BETWEEN 0 AND 10"`
	ScoreCleanliness      int                   `gorm:"not null;check:chk_inspections_cleanliness,score_cleanliness BETWEEN 0 AND 10"`
	ScoreInnovation       int                   `gorm:"not null;check:chk_inspections_innovation,score_innovation BETWEEN 0 AND 10"`
	TotalScore            int                   `gorm:"not null;check:chk_inspections_total,total_score = score_improvement + score_cleanliness + score_innovation"`
	Notes                 string                `gorm:"type:text"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

type InspectionDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (InspectionDepartment) TableName() string { return "departments" }

// DepartmentName falls back to a placeholder when the department was not preloaded.
func (i Inspection) DepartmentName() string {
	if i.Department != nil && i.Department.Name != "" {
		return i.Department.Name
	}
	return UnknownDepartment
}
