package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/journal"
)

// decisionRecorder writes a journal entry and its outbox message in one transaction.
// A failure is logged and swallowed: the marketplace already committed the change,
// and the caller must still see it as a success.
type decisionRecorder struct {
	uowFactory JournalUoWFactory
	logger     *slog.Logger
}

func (r decisionRecorder) record(ctx context.Context, entry journal.Entry) {
	if r.uowFactory == nil {
		return
	}
	if err := r.write(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "Failed to record decision",
			"kind", entry.Kind().String(),
			"entity_id", entry.EntityID().Int64(),
			"error", err,
		)
	}
}

func (r decisionRecorder) write(ctx context.Context, entry journal.Entry) error {
	message, err := journal.NewMessage(entry)
	if err != nil {
		return err
	}

	uow := r.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JournalRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
