package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"marketplace/internal/core/application/store"
	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ModerateProductCommandHandler approves and declines pending products.
//
// After a successful call the product is dropped from the pending groups and
// the groups are recomputed, so a producer left without pending products
// disappears from the moderation queue. The server's record also replaces the
// product in the producer catalog when it is loaded there.
type ModerateProductCommandHandler struct {
	gateway  ports.ProductGateway
	pending  *store.Store[product.PendingGroup]
	catalog  *store.Store[*product.Product]
	inFlight *InFlightRegistry
	recorder decisionRecorder
	now      func() time.Time
	logger   *slog.Logger
}

// NewModerateProductCommandHandler creates the handler. catalog and uowFactory may be nil.
func NewModerateProductCommandHandler(
	gateway ports.ProductGateway,
	pending *store.Store[product.PendingGroup],
	catalog *store.Store[*product.Product],
	uowFactory JournalUoWFactory,
	logger *slog.Logger,
) ModerateProductCommandHandler {
	logger = logger.With("component", "product_moderation_handler")
	return ModerateProductCommandHandler{
		gateway:  gateway,
		pending:  pending,
		catalog:  catalog,
		inFlight: NewInFlightRegistry("product"),
		recorder: decisionRecorder{uowFactory: uowFactory, logger: logger},
		now:      time.Now,
		logger:   logger,
	}
}

// HandleApprove approves a product and returns the server's record.
func (h *ModerateProductCommandHandler) HandleApprove(ctx context.Context, cmd ApproveProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.moderate(ctx, cmd.ProductID(), product.Approved, "approve product",
		func(ctx context.Context) (*product.Product, error) {
			return h.gateway.ApproveProduct(ctx, cmd.ProductID())
		})
}

// HandleDecline declines a product and returns the server's record.
func (h *ModerateProductCommandHandler) HandleDecline(ctx context.Context, cmd DeclineProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.moderate(ctx, cmd.ProductID(), product.Declined, "decline product",
		func(ctx context.Context) (*product.Product, error) {
			return h.gateway.DeclineProduct(ctx, cmd.ProductID(), cmd.Reason())
		})
}

func (h *ModerateProductCommandHandler) moderate(
	ctx context.Context,
	id kernel.ID,
	next product.ModerationStatus,
	operation string,
	call func(ctx context.Context) (*product.Product, error),
) (*product.Product, error) {
	if known, ok := h.lookup(id); ok {
		if err := known.CanModerateTo(next); err != nil {
			return nil, err
		}
	}

	release, err := h.inFlight.Acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	updated, err := call(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "Moderation rejected",
			"product_id", id.Int64(),
			"to", next.String(),
			"error", err,
		)
		if errors.Is(err, errs.ErrTransitionFailed) {
			return nil, err
		}
		return nil, errs.NewTransitionFailedError(operation, err)
	}

	h.pending.Update(func(groups []product.PendingGroup) []product.PendingGroup {
		return product.Without(groups, id)
	})
	if h.catalog != nil {
		h.catalog.Replace(func(p *product.Product) bool { return p.ID() == id }, updated)
	}

	entry, err := journal.NewProductModerated(updated, h.now())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build journal entry", "product_id", id.Int64(), "error", err)
	} else {
		h.recorder.record(ctx, entry)
	}

	h.logger.InfoContext(ctx, "Product moderated",
		"product_id", id.Int64(),
		"producer_id", updated.Producer().ID.Int64(),
		"status", updated.Status().String(),
	)
	return updated, nil
}

// lookup finds the product in the pending groups, then in the catalog.
func (h *ModerateProductCommandHandler) lookup(id kernel.ID) (*product.Product, bool) {
	match := func(p *product.Product) bool { return p.ID() == id }

	if group, ok := h.pending.Find(func(g product.PendingGroup) bool {
		return slices.ContainsFunc(g.Products, match)
	}); ok {
		return group.Products[slices.IndexFunc(group.Products, match)], true
	}
	if h.catalog != nil {
		return h.catalog.Find(match)
	}
	return nil, false
}
