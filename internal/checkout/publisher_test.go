package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishOrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	items := []domain.Product{{ID: 2, Name: "Curl Enhancer", Category: "Curly Hair", Price: 15}}
	e := newOrderPlacedEvent(domain.OrderSummary{
		Name: "A", Email: "a@b.com", Address: "X", Items: items, Total: domain.Total(items),
	}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	require.NoError(t, p.PublishOrderPlaced(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, e.EventID, string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "order.placed", string(msg.Headers[0].Value))

	var decoded OrderPlacedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "15", decoded.Total)
	assert.Equal(t, items, decoded.Items)
	assert.NotEmpty(t, decoded.EventID)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("no brokers")}}

	err := p.PublishOrderPlaced(context.Background(), OrderPlacedEvent{EventID: "e"})
	assert.ErrorContains(t, err, "failed to publish order event")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, (&KafkaPublisher{writer: w}).Close())
	assert.True(t, w.closed)
}
