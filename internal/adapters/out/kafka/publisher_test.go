package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMessage(kind journal.Kind) journal.Message {
	return journal.Message{
		ID:        kernel.NewUUID(),
		EventID:   kernel.NewUUID(),
		Kind:      kind,
		Key:       "42",
		Payload:   []byte(`{"type":"` + kind.String() + `"}`),
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher(" broker-1:9092, ,broker-2:9092 ", Topics{"order": "orders.events"}, testLogger())
	assert.True(t, p.Enabled())
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, p.brokers)
	require.Contains(t, p.writers, "order")
	assert.Equal(t, "orders.events", p.writers["order"].(*kafka.Writer).Topic)
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("should route by entity and key by entity id", func(t *testing.T) {
		orders, products := &fakeWriter{}, &fakeWriter{}
		p := &Publisher{
			brokers: []string{"localhost:9092"},
			writers: map[string]messageWriter{"order": orders, "product": products},
			logger:  testLogger(),
		}
		message := testMessage(journal.ProductDeclined)

		require.NoError(t, p.Publish(t.Context(), message))

		assert.Empty(t, orders.written)
		require.Len(t, products.written, 1)
		written := products.written[0]
		assert.Equal(t, []byte("42"), written.Key)
		assert.JSONEq(t, string(message.Payload), string(written.Value))
		assert.Contains(t, written.Headers, kafka.Header{Key: "event_type", Value: []byte("product.declined")})
	})

	t.Run("should wrap writer errors", func(t *testing.T) {
		p := &Publisher{
			brokers: []string{"localhost:9092"},
			writers: map[string]messageWriter{"order": &fakeWriter{err: errors.New("leader not available")}},
			logger:  testLogger(),
		}

		err := p.Publish(t.Context(), testMessage(journal.OrderStatusChanged))
		require.ErrorContains(t, err, "leader not available")
	})

	t.Run("should fail for an entity without topic", func(t *testing.T) {
		p := &Publisher{brokers: []string{"localhost:9092"}, writers: map[string]messageWriter{}, logger: testLogger()}

		err := p.Publish(t.Context(), testMessage(journal.OrderStatusChanged))
		require.ErrorIs(t, err, ErrUnknownTopic)
	})

	t.Run("should only log when disabled", func(t *testing.T) {
		p := NewPublisher("", Topics{"order": "orders.events"}, testLogger())
		assert.False(t, p.Enabled())

		require.NoError(t, p.Publish(t.Context(), testMessage(journal.OrderStatusChanged)))
		require.NoError(t, p.Close())
	})
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writers: map[string]messageWriter{"order": w}, logger: testLogger()}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
