package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetAllowedTransitionsQueryIsNotConstructed = errors.New(
		"GetAllowedTransitionsQuery must be created via NewGetAllowedTransitionsQuery constructor",
	)
)

// GetAllowedTransitionsQuery asks which statuses an order may be moved to.
type GetAllowedTransitionsQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetAllowedTransitionsQuery(orderID kernel.ID) (GetAllowedTransitionsQuery, error) {
	if err := orderID.Validate("order id"); err != nil {
		return GetAllowedTransitionsQuery{}, err
	}
	return GetAllowedTransitionsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through NewGetAllowedTransitionsQuery.
func (q GetAllowedTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedTransitionsQueryIsNotConstructed)
}

// OrderID returns the order whose next statuses are requested.
func (q GetAllowedTransitionsQuery) OrderID() kernel.ID {
	return q.orderID
}

// GetAllowedTransitionsQueryResponse lists the legal next statuses of an order.
// Allowed is empty, never nil, for an order in a final status.
type GetAllowedTransitionsQueryResponse struct {
	OrderID kernel.ID
	Current order.Status
	Allowed []order.Status
}
