package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrApproveProductCommandIsNotConstructed = errors.New(
		"ApproveProductCommand must be created via NewApproveProductCommand constructor",
	)
)

// ApproveProductCommand asks to approve a pending product.
type ApproveProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.ID

	guard guard.ConstructorGuard
}

func NewApproveProductCommand(productID kernel.ID) (ApproveProductCommand, error) {
	if err := productID.Validate("product id"); err != nil {
		return ApproveProductCommand{}, err
	}
	return ApproveProductCommand{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through NewApproveProductCommand.
func (c ApproveProductCommand) Validate() error {
	return c.guard.Validate(ErrApproveProductCommandIsNotConstructed)
}

// ProductID returns the pending product to approve.
func (c ApproveProductCommand) ProductID() kernel.ID {
	return c.productID
}
