package queries

import (
	"context"

	"marketplace/internal/core/application/store"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// GetAllowedTransitionsQueryHandler reads the order from the order collection
// and returns its row of the transition table.
type GetAllowedTransitionsQueryHandler struct {
	orders *store.Store[*order.Order]
}

func NewGetAllowedTransitionsQueryHandler(orders *store.Store[*order.Order]) GetAllowedTransitionsQueryHandler {
	return GetAllowedTransitionsQueryHandler{orders: orders}
}

// Handle loads the collection first if it was never loaded.
func (h GetAllowedTransitionsQueryHandler) Handle(
	ctx context.Context,
	q GetAllowedTransitionsQuery,
) (GetAllowedTransitionsQueryResponse, error) {
	if err := q.Validate(); err != nil {
		return GetAllowedTransitionsQueryResponse{}, err
	}

	if !h.orders.Loaded() {
		if err := h.orders.Load(ctx); err != nil {
			return GetAllowedTransitionsQueryResponse{}, err
		}
	}

	o, ok := h.orders.Find(func(o *order.Order) bool { return o.ID() == q.OrderID() })
	if !ok {
		return GetAllowedTransitionsQueryResponse{}, errs.NewObjectNotFoundError("order", q.OrderID())
	}

	allowed := append([]order.Status{}, order.AllowedTransitions(o.Status())...)
	return GetAllowedTransitionsQueryResponse{
		OrderID: o.ID(),
		Current: o.Status(),
		Allowed: allowed,
	}, nil
}
