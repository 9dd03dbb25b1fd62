package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// RelayOutboxCommandHandler publishes pending outbox messages in creation order.
// Publishing stops at the first failure so that later messages of the same
// entity never overtake an earlier one; the rest is retried on the next run.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "outbox_relay_handler"),
	}
}

// Handle returns the number of messages published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, message := range messages {
		if err = h.publisher.Publish(ctx, message); err != nil {
			h.logger.WarnContext(ctx, "Failed to publish outbox message",
				"message_id", message.ID.String(),
				"kind", message.Kind.String(),
				"error", err,
			)
			break
		}
		if err = outbox.MarkSent(ctx, message.ID); err != nil {
			return sent, err
		}
		sent++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return sent, nil
}
