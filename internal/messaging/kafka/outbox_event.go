package kafka

import (
	"encoding/json"
	"time"

	"go-hrm/internal/events"

	"github.com/google/uuid"
)

// NewChangeOutboxEvent wraps a change event as a pending outbox row.
func NewChangeOutboxEvent(event events.ChangeEvent) (OutboxEvent, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return OutboxEvent{}, err
	}

	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: event.Collection,
		AggregateID:   event.EntityID,
		EventType:     event.EventType,
		Topic:         events.ChangeFeedTopic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	}, nil
}
