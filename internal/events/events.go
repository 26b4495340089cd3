package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pizza-orders-be/internal/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const TypeStatusChanged = "order.status_changed"

const (
	batchTimeout   = 10 * time.Millisecond
	maxAttempts    = 3
	publishTimeout = 2 * time.Second
)

var ErrDisabled = errors.New("event publishing disabled")

// Event is the envelope written to the order topic.
type Event struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	OccurredAt time.Time          `json:"occurredAt"`
	Payload    order.StatusChange `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes status changes keyed by order id, so every change
// to one order lands on the same partition.
type KafkaPublisher struct {
	writer messageWriter
}

var _ order.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           batchTimeout,
			MaxAttempts:            maxAttempts,
			WriteTimeout:           publishTimeout,
		},
	}
}

// PublishStatusChange writes one event, giving up after publishTimeout even
// if the caller's context lives longer.
func (p *KafkaPublisher) PublishStatusChange(ctx context.Context, change order.StatusChange) error {
	evt := Event{
		ID:         uuid.NewString(),
		Type:       TypeStatusChanged,
		OccurredAt: change.ChangedAt.UTC(),
		Payload:    change,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.OrderID),
		Value: data,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(TypeStatusChanged)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChange(context.Context, order.StatusChange) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

// Publisher is an order.EventPublisher that can be shut down.
type Publisher interface {
	order.EventPublisher
	Close() error
}

// New returns a kafka publisher, or a no-op one when no brokers are set.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
