package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/application/store"
	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ApplyOrderTransitionCommandHandler applies one guarded status transition to one order.
//
// The handler:
//   - rejects transitions outside the table without calling the marketplace, checking
//     both the caller's current status and the collection's record
//   - rejects a second request for an order that already has one in flight
//   - issues exactly one UpdateOrderStatus call
//   - on success, replaces the order in the collection with the server's record
//   - on failure, leaves the collection untouched
type ApplyOrderTransitionCommandHandler struct {
	gateway  ports.OrderGateway
	orders   *store.Store[*order.Order]
	inFlight *InFlightRegistry
	recorder decisionRecorder
	now      func() time.Time
	logger   *slog.Logger
}

// NewApplyOrderTransitionCommandHandler creates the handler. uowFactory may be nil,
// in which case no journal entry is written.
func NewApplyOrderTransitionCommandHandler(
	gateway ports.OrderGateway,
	orders *store.Store[*order.Order],
	uowFactory JournalUoWFactory,
	logger *slog.Logger,
) ApplyOrderTransitionCommandHandler {
	logger = logger.With("component", "order_transition_handler")
	return ApplyOrderTransitionCommandHandler{
		gateway:  gateway,
		orders:   orders,
		inFlight: NewInFlightRegistry("order"),
		recorder: decisionRecorder{uowFactory: uowFactory, logger: logger},
		now:      time.Now,
		logger:   logger,
	}
}

// Handle applies the transition and returns the server's record of the order.
func (h *ApplyOrderTransitionCommandHandler) Handle(ctx context.Context, cmd ApplyOrderTransitionCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.CurrentStatus() != order.Unknown {
		if _, err := cmd.CurrentStatus().TransitionTo(cmd.NewStatus()); err != nil {
			return nil, err
		}
	}

	current, err := h.currentStatus(cmd)
	if err != nil {
		return nil, err
	}

	if _, err = current.TransitionTo(cmd.NewStatus()); err != nil {
		return nil, err
	}

	release, err := h.inFlight.Acquire(cmd.OrderID())
	if err != nil {
		return nil, err
	}
	defer release()

	updated, err := h.gateway.UpdateOrderStatus(ctx, cmd.OrderID(), cmd.NewStatus())
	if err != nil {
		h.logger.WarnContext(ctx, "Order transition rejected",
			"order_id", cmd.OrderID().Int64(),
			"from", current.String(),
			"to", cmd.NewStatus().String(),
			"error", err,
		)
		if errors.Is(err, errs.ErrTransitionFailed) {
			return nil, err
		}
		return nil, errs.NewTransitionFailedError("update order status", err)
	}

	h.orders.Replace(func(o *order.Order) bool { return o.ID() == updated.ID() }, updated)

	entry, err := journal.NewOrderStatusChanged(updated, current, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build journal entry", "order_id", updated.ID().Int64(), "error", err)
	} else {
		h.recorder.record(ctx, entry)
	}

	h.logger.InfoContext(ctx, "Order transitioned",
		"order_id", updated.ID().Int64(),
		"from", current.String(),
		"to", updated.Status().String(),
	)
	return updated, nil
}

// currentStatus returns the collection's status for the order, falling back to the
// status supplied by the caller when the order is not loaded.
func (h *ApplyOrderTransitionCommandHandler) currentStatus(cmd ApplyOrderTransitionCommand) (order.Status, error) {
	if stored, ok := h.orders.Find(func(o *order.Order) bool { return o.ID() == cmd.OrderID() }); ok {
		return stored.Status(), nil
	}
	if cmd.CurrentStatus() != order.Unknown {
		return cmd.CurrentStatus(), nil
	}
	return order.Unknown, errs.NewObjectNotFoundError("order", cmd.OrderID())
}
