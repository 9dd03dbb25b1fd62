package ports

import (
	"context"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"
)

// JournalRepository stores decision journal entries.
type JournalRepository interface {
	// Add persists a new entry.
	Add(ctx context.Context, entry journal.Entry) error

	// List returns the most recent entries first, at most limit of them.
	// An empty kind lists every kind.
	List(ctx context.Context, kind journal.Kind, limit int) ([]journal.Entry, error)
}

// OutboxRepository stores messages waiting to be published.
type OutboxRepository interface {
	// Add persists a new unsent message.
	Add(ctx context.Context, message journal.Message) error

	// FetchPending returns unsent messages, oldest first, at most limit of them.
	FetchPending(ctx context.Context, limit int) ([]journal.Message, error)

	// MarkSent flags a message as published.
	MarkSent(ctx context.Context, id kernel.UUID) error
}
