package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pizza-orders-be/internal/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
	deadline time.Time
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.deadline, _ = ctx.Deadline()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishStatusChange(t *testing.T) {
	change := order.StatusChange{
		OrderID:   "PZA004",
		From:      order.StatusPending,
		To:        order.StatusDelivered,
		ChangedAt: time.Date(2024, 12, 1, 18, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w}

		require.NoError(t, p.PublishStatusChange(context.Background(), change))

		require.Len(t, w.messages, 1)
		msg := w.messages[0]
		assert.Equal(t, "PZA004", string(msg.Key))

		var evt Event
		require.NoError(t, json.Unmarshal(msg.Value, &evt))
		assert.Equal(t, TypeStatusChanged, evt.Type)
		assert.NotEmpty(t, evt.ID)
		assert.Equal(t, change.OrderID, evt.Payload.OrderID)
		assert.Equal(t, order.StatusDelivered, evt.Payload.To)
		assert.True(t, change.ChangedAt.Equal(evt.OccurredAt))
	})

	t.Run("Write is bounded", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w}

		require.NoError(t, p.PublishStatusChange(context.Background(), change))

		require.False(t, w.deadline.IsZero())
		assert.WithinDuration(t, time.Now().Add(publishTimeout), w.deadline, time.Second)
	})

	t.Run("WriterError", func(t *testing.T) {
		p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

		assert.Error(t, p.PublishStatusChange(context.Background(), change))
	})

	t.Run("Close", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w}

		assert.NoError(t, p.Close())
		assert.True(t, w.closed)
	})
}

func TestNew(t *testing.T) {
	assert.IsType(t, NoopPublisher{}, New(nil, "orders"))
	assert.IsType(t, &KafkaPublisher{}, New([]string{"localhost:9092"}, "orders"))
	assert.NoError(t, NoopPublisher{}.PublishStatusChange(context.Background(), order.StatusChange{}))
}

func TestNewKafkaPublisher_WriterSettings(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "orders")
	defer p.Close()

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, batchTimeout, w.BatchTimeout)
	assert.Equal(t, maxAttempts, w.MaxAttempts)
	assert.Equal(t, "orders", w.Topic)
}
