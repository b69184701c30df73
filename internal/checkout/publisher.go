package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// OrderPlacedEvent is published after the order email went out.
type OrderPlacedEvent struct {
	EventID  string           `json:"event_id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Address  string           `json:"address"`
	Items    []domain.Product `json:"items"`
	Total    string           `json:"total"`
	PlacedAt time.Time        `json:"placed_at"`
}

// Publisher announces placed orders to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events to a Kafka topic keyed by event id.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func newOrderPlacedEvent(s domain.OrderSummary, now time.Time) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventID:  uuid.NewString(),
		Name:     s.Name,
		Email:    s.Email,
		Address:  s.Address,
		Items:    s.Items,
		Total:    s.Total.String(),
		PlacedAt: now,
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "failed to marshal order event")
	}

	msg := kafka.Message{
		Key:   []byte(e.EventID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to publish order event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
