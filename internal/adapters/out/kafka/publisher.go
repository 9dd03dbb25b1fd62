// Package kafka publishes journal events to Kafka topics.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var ErrUnknownTopic = errors.New("no topic configured for event")

var _ ports.EventPublisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Topics maps an entity ("order", "product") to its topic.
type Topics map[string]string

// Publisher writes each message to the topic of its entity, keyed by entity id
// so that the events of one entity stay ordered on one partition.
//
// Without brokers the publisher only logs the events it receives.
type Publisher struct {
	brokers []string
	writers map[string]messageWriter
	logger  *slog.Logger
}

// NewPublisher parses a comma separated broker list. An empty list disables publishing.
func NewPublisher(brokersCSV string, topics Topics, logger *slog.Logger) *Publisher {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	p := &Publisher{
		brokers: brokers,
		writers: make(map[string]messageWriter, len(topics)),
		logger:  logger.With("component", "kafka_publisher"),
	}
	if p.Enabled() {
		for entity, topic := range topics {
			p.writers[entity] = newWriter(brokers, topic)
		}
	}
	return p
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// Enabled reports whether brokers were configured.
func (p *Publisher) Enabled() bool {
	return len(p.brokers) > 0
}

// Publish writes one message and waits for the broker acknowledgement.
func (p *Publisher) Publish(ctx context.Context, message journal.Message) error {
	entity := message.Kind.Entity()

	if !p.Enabled() {
		p.logger.InfoContext(ctx, "Event not published, kafka disabled",
			"kind", message.Kind.String(),
			"key", message.Key,
			"payload", string(message.Payload),
		)
		return nil
	}

	writer, ok := p.writers[entity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, message.Kind)
	}

	err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.Key),
		Value: message.Payload,
		Time:  message.CreatedAt.UTC(),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(message.EventID.String())},
			{Key: "event_type", Value: []byte(message.Kind.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", message.Kind, err)
	}

	p.logger.DebugContext(ctx, "Event published", "kind", message.Kind.String(), "key", message.Key)
	return nil
}

// Close flushes and closes every writer.
func (p *Publisher) Close() error {
	var errList []error
	for _, w := range p.writers {
		errList = append(errList, w.Close())
	}
	return errors.Join(errList...)
}
