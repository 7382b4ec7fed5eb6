package kafka

import "time"

// OutboxRecord is the gorm schema of outbox_events; the repository itself
// talks raw SQL so it can join the caller's *sql.Tx.
type OutboxRecord struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	RequestID     *string
	AggregateType string `gorm:"size:50;not null"`
	AggregateID   string `gorm:"size:64;not null"`
	EventType     string `gorm:"size:100;not null"`
	Topic         string `gorm:"size:100;not null"`
	Payload       []byte `gorm:"type:jsonb;not null"`
	Status        string `gorm:"size:20;not null;index:idx_outbox_status_created,priority:1"`
	RetryCount    int    `gorm:"not null;default:0"`
	ErrorMessage  *string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"index:idx_outbox_status_created,priority:2"`
	UpdatedAt     time.Time
}

func (OutboxRecord) TableName() string {
	return "outbox_events"
}
