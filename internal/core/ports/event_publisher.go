package ports

import (
	"context"

	"marketplace/internal/core/domain/model/journal"
)

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message journal.Message) error
	Close() error
}
