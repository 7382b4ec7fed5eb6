package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Activity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Description  string    `gorm:"type:text"`
	ActivityDate time.Time `gorm:"type:date;not null;index"`
	StartTime    string    `gorm:"size:5"`
	EndTime      string    `gorm:"size:5"`
	Location     string    `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// ActivityWithCount is an activity row joined with its attendance count.
type ActivityWithCount struct {
	Activity      `gorm:"embedded"`
	AttendeeCount int
}
