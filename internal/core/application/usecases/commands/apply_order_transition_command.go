package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrApplyOrderTransitionCommandIsNotConstructed = errors.New(
		"ApplyOrderTransitionCommand must be created via NewApplyOrderTransitionCommand constructor",
	)
)

// ApplyOrderTransitionCommand asks to move one order to a new status.
//
// The current status is optional. When it is order.Unknown the handler takes the
// status of the order as held in the order collection.
//
// Example:
//
//	cmd, err := NewApplyOrderTransitionCommand(42, order.Processing, order.Shipped)
//	if err != nil {
//	    return err // ValidationError
//	}
//	updated, err := handler.Handle(ctx, cmd)
type ApplyOrderTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	current order.Status
	next    order.Status

	guard guard.ConstructorGuard
}

// NewApplyOrderTransitionCommand validates the order id and the target status.
// current must be order.Unknown or a valid status.
func NewApplyOrderTransitionCommand(orderID kernel.ID, current, next order.Status) (ApplyOrderTransitionCommand, error) {
	cmd := ApplyOrderTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCurrent(current),
		cmd.setNext(next),
	); err != nil {
		return ApplyOrderTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyOrderTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderTransitionCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ApplyOrderTransitionCommand) OrderID() kernel.ID {
	return c.orderID
}

// CurrentStatus returns the status the caller believes the order is in, or order.Unknown.
func (c ApplyOrderTransitionCommand) CurrentStatus() order.Status {
	return c.current
}

// NewStatus returns the requested target status. It is never order.Unknown.
func (c ApplyOrderTransitionCommand) NewStatus() order.Status {
	return c.next
}

func (c *ApplyOrderTransitionCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate("order id"); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyOrderTransitionCommand) setCurrent(current order.Status) error {
	if current != order.Unknown {
		if err := current.Validate(); err != nil {
			return err
		}
	}

	c.current = current
	return nil
}

func (c *ApplyOrderTransitionCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
