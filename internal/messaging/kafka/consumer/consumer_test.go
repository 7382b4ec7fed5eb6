package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.messages) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

type fakeInvalidator struct {
	InvalidateFn func(ctx context.Context, event events.ChangeEvent) error
	seen         []events.ChangeEvent
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, event events.ChangeEvent) error {
	f.seen = append(f.seen, event)
	if f.InvalidateFn != nil {
		return f.InvalidateFn(ctx, event)
	}
	return nil
}

func encode(t *testing.T, ev events.ChangeEvent) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestConsumeChangeFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good := kafkago.Message{Offset: 1, Value: encode(t, events.ChangeEvent{
		EventType:  events.InspectionChanged,
		Collection: events.CollectionInspections,
		EntityID:   "i-1",
		Month:      "2024-06",
	})}
	garbage := kafkago.Message{Offset: 2, Value: []byte("not-json")}
	failing := kafkago.Message{Offset: 3, Value: encode(t, events.ChangeEvent{
		Collection: events.CollectionEmployees,
		EntityID:   "e-1",
	})}

	reader := &fakeReader{messages: []kafkago.Message{good, garbage, failing}, cancel: cancel}
	inv := &fakeInvalidator{InvalidateFn: func(_ context.Context, ev events.ChangeEvent) error {
		if ev.Collection == events.CollectionEmployees {
			return errors.New("redis down")
		}
		return nil
	}}

	ConsumeChangeFeed(ctx, reader, inv, zap.NewNop())

	require.Len(t, inv.seen, 2)
	assert.Equal(t, "2024-06", inv.seen[0].Month)

	// the failed invalidation stays uncommitted for redelivery
	require.Len(t, reader.committed, 2)
	assert.Equal(t, int64(1), reader.committed[0].Offset)
	assert.Equal(t, int64(2), reader.committed[1].Offset)
}
