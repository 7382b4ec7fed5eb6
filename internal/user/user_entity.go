package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Username     string        `gorm:"size:50;not null;uniqueIndex:uq_users_username"`
	FullName     string        `gorm:"size:255;not null"`
	Email        *string       `gorm:"size:255;uniqueIndex:uq_users_email"`
	PasswordHash string        `gorm:"size:255;not null"`
	Role         string        `gorm:"size:20;not null;default:User"`
	EmployeeID   *uuid.UUID    `gorm:"type:uuid;index"`
	Employee     *UserEmployee `gorm:"foreignKey:EmployeeID"`
	IsActive     bool          `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// UserEmployee is the slice of the employee row shown next to an account.
type UserEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string
	FirstName    string
	LastName     string
}

func (UserEmployee) TableName() string { return "employees" }

func (e UserEmployee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// NormalizeRole maps any casing of a known role to its canonical form.
func NormalizeRole(role string) (string, bool) {
	switch {
	case strings.EqualFold(strings.TrimSpace(role), RoleAdmin):
		return RoleAdmin, true
	case strings.EqualFold(strings.TrimSpace(role), RoleUser):
		return RoleUser, true
	default:
		return "", false
	}
}
