package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EmployeeCode string              `gorm:"size:32;not null;uniqueIndex:uq_employees_code"`
	FirstName    string              `gorm:"size:100;not null"`
	LastName     string              `gorm:"size:100"`
	Email        string              `gorm:"size:255;not null;uniqueIndex:uq_employees_email"`
	Phone        string              `gorm:"size:50"`
	PhotoURL     string              `gorm:"type:text"`
	BranchID     *uuid.UUID          `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID          `gorm:"type:uuid;index"`
	PositionID   *uuid.UUID          `gorm:"type:uuid"`
	Branch       *EmployeeBranch     `gorm:"foreignKey:BranchID"`
	Department   *EmployeeDepartment `gorm:"foreignKey:DepartmentID"`
	Position     *EmployeePosition   `gorm:"foreignKey:PositionID"`
	IsActive     bool                `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type EmployeeBranch struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (EmployeeBranch) TableName() string { return "branches" }

type EmployeeDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (EmployeeDepartment) TableName() string { return "departments" }

type EmployeePosition struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Level int
}

func (EmployeePosition) TableName() string { return "positions" }
