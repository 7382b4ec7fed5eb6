package attendance

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MethodQR     = "QR"
	MethodManual = "Manual"
)

// AttendanceRecord marks one employee as present at one activity.
type AttendanceRecord struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ActivityID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_activity_attendance,priority:1"`
	EmployeeID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:uq_activity_attendance,priority:2;index"`
	Employee      *AttendanceEmployee `gorm:"foreignKey:EmployeeID"`
	CheckInMethod string              `gorm:"size:10;not null;default:Manual"`
	CheckInTime   time.Time           `gorm:"not null;index"`
	CreatedAt     time.Time
}

func (AttendanceRecord) TableName() string { return "activity_attendance" }

type AttendanceEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string
	LastName     string
	DepartmentID *uuid.UUID
	Department   *AttendanceDepartment `gorm:"foreignKey:DepartmentID"`
}

func (AttendanceEmployee) TableName() string { return "employees" }

func (e AttendanceEmployee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type AttendanceDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (AttendanceDepartment) TableName() string { return "departments" }
