package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/guard"
)

var (
	ErrDeclineProductCommandIsNotConstructed = errors.New(
		"DeclineProductCommand must be created via NewDeclineProductCommand constructor",
	)
)

// DeclineProductCommand asks to decline a pending product with a reason.
//
// Example:
//
//	cmd, err := NewDeclineProductCommand(7, "   ")
//	// err is a ValueIsRequiredError: the reason is checked before anything is sent
type DeclineProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.ID
	reason    product.DeclineReason

	guard guard.ConstructorGuard
}

// NewDeclineProductCommand rejects an invalid id and an empty or whitespace-only reason.
func NewDeclineProductCommand(productID kernel.ID, reason string) (DeclineProductCommand, error) {
	cmd := DeclineProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setReason(reason),
	); err != nil {
		return DeclineProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through NewDeclineProductCommand.
func (c DeclineProductCommand) Validate() error {
	return c.guard.Validate(ErrDeclineProductCommandIsNotConstructed)
}

// ProductID returns the pending product to decline.
func (c DeclineProductCommand) ProductID() kernel.ID {
	return c.productID
}

// Reason returns the trimmed, non-empty reason sent to the marketplace.
func (c DeclineProductCommand) Reason() product.DeclineReason {
	return c.reason
}

func (c *DeclineProductCommand) setProductID(productID kernel.ID) error {
	if err := productID.Validate("product id"); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *DeclineProductCommand) setReason(raw string) error {
	reason, err := product.NewDeclineReason(raw)
	if err != nil {
		return err
	}

	c.reason = reason
	return nil
}
