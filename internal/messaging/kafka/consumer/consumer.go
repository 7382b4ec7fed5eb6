package consumer

import (
	"context"
	"encoding/json"

	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// CacheInvalidator drops cached derived views that depend on a collection.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, event events.ChangeEvent) error
}

// ConsumeChangeFeed applies every change event to the invalidator and commits
// the offset once the invalidation succeeded. Undecodable messages are
// committed and skipped.
func ConsumeChangeFeed(
	ctx context.Context,
	reader MessageReader,
	invalidator CacheInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.change_feed")
	log.Info("change feed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("change feed consumer stopped")
				return
			}
			log.Error("fetch change feed message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, invalidator, msg, log)
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	invalidator CacheInvalidator,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.ChangeEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode change event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if err := invalidator.Invalidate(ctx, event); err != nil {
		log.Error("invalidate cache failed",
			zap.String("collection", event.Collection),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit change feed message failed", zap.Error(err))
		return
	}

	log.Debug("change event applied",
		zap.String("request_id", event.RequestID),
		zap.String("event_type", event.EventType),
		zap.String("collection", event.Collection),
		zap.String("entity_id", event.EntityID),
	)
}
