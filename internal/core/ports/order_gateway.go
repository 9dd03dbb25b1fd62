package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderGateway is the marketplace API surface for the producer's orders.
type OrderGateway interface {
	// ListProducerOrders returns every order of the acting producer.
	ListProducerOrders(ctx context.Context) ([]*order.Order, error)

	// UpdateOrderStatus asks the marketplace to move an order to status and returns
	// the server's record of the order after the change. The marketplace re-validates
	// the transition on its side.
	UpdateOrderStatus(ctx context.Context, id kernel.ID, status order.Status) (*order.Order, error)
}
