package health

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthRecord is one vitals check of an employee.
type HealthRecord struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Employee               *HealthEmployee `gorm:"foreignKey:EmployeeID"`
	BloodPressureSystolic  int             `gorm:"not null"`
	BloodPressureDiastolic int             `gorm:"not null"`
	HeartRate              int             `gorm:"not null"`
	BloodSugar             *int            `gorm:"default:null"`
	Weight                 float64         `gorm:"type:numeric(5,1)"`
	Height                 float64         `gorm:"type:numeric(5,1)"`
	Notes                  string          `gorm:"type:text"`
	RecordedAt             time.Time       `gorm:"not null;index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

type HealthEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string
	LastName     string
	DepartmentID *uuid.UUID
	Department   *HealthDepartment `gorm:"foreignKey:DepartmentID"`
}

func (HealthEmployee) TableName() string { return "employees" }

func (e HealthEmployee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type HealthDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (HealthDepartment) TableName() string { return "departments" }
