// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is validated on construction, guarded locally before any
// network call, and recorded in the decision journal once the marketplace
// has accepted it.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JournalRepoFactory provides access to the journal repository within a transaction.
	JournalRepoFactory interface {
		JournalRepository() ports.JournalRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// JournalUoW writes a journal entry and its outbox message atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.JournalRepository().Add(ctx, entry)
	//   err = uow.OutboxRepository().Add(ctx, message)
	//
	//   err = uow.Commit(ctx)
	JournalUoW interface {
		TxManager
		JournalRepoFactory
		OutboxRepoFactory
	}

	// JournalUoWFactory creates new journal unit of work instances.
	JournalUoWFactory interface {
		Create() JournalUoW
	}

	// OutboxUoW manages transactions for outbox-only operations.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
