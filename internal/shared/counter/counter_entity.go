package counter

import "time"

type Counter struct {
	CounterType string `gorm:"primaryKey;size:50"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "counters"
}
