package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the RestoreOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
)

// Customer references the customer who placed an order.
type Customer struct {
	ID   kernel.ID
	Name string
}

// Item is an order line. Its price is a snapshot taken when the order was placed.
type Item struct {
	productID   kernel.ID
	productName string
	quantity    int
	price       kernel.Money
}

// NewItem validates and builds an order line.
func NewItem(productID kernel.ID, productName string, quantity int, price kernel.Money) (Item, error) {
	if err := errors.Join(
		productID.Validate("product id"),
		price.Validate(),
	); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{
		productID:   productID,
		productName: strings.TrimSpace(productName),
		quantity:    quantity,
		price:       price,
	}, nil
}

// ProductID returns the identifier of the ordered product.
func (i Item) ProductID() kernel.ID {
	return i.productID
}

// ProductName returns the product name as it was when the order was placed.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the number of ordered units. It is always positive.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price snapshot.
func (i Item) Price() kernel.Money {
	return i.price
}

// Subtotal returns the unit price multiplied by the quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Mul(i.quantity)
}

// Order is an immutable snapshot of a customer order. The marketplace API owns
// the record; a status change produces a new Order built from the server response.
//
// Order follows these invariants:
//   - Must have a valid identifier and customer reference
//   - Must contain at least one item
//   - Status must be one of the declared lifecycle states
//   - Can only be created through RestoreOrder
type Order struct {
	id         kernel.ID
	customer   Customer
	items      []Item
	totalPrice kernel.Money
	status     Status
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// RestoreOrder rebuilds an Order from its upstream representation.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("9.99")
//	item, _ := order.NewItem(10, "Honey", 2, price)
//	o, err := order.RestoreOrder(1, order.Customer{ID: 5, Name: "Ann"},
//	    []order.Item{item}, item.Subtotal(), order.Processing, createdAt, createdAt)
func RestoreOrder(
	id kernel.ID,
	customer Customer,
	items []Item,
	totalPrice kernel.Money,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		id:            id,
		customer:      customer,
		items:         append([]Item(nil), items...),
		totalPrice:    totalPrice,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate("order id"),
		customer.ID.Validate("customer id"),
		totalPrice.Validate(),
		status.Validate(),
		o.validateItems(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through RestoreOrder.
//
// Returns:
//   - nil if the order is valid and properly constructed
//   - ErrOrderIsNotConstructed for a nil or zero-value order
//
// Adapters call it on orders mapped from upstream responses before handing
// them to the collection.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's identifier as issued by the marketplace.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Customer returns the customer who placed the order.
func (o *Order) Customer() Customer {
	return o.customer
}

// TotalPrice returns the order total as reported by the marketplace.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// Status returns the current status of the order.
// A transition never changes it in place; the server's record replaces the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the marketplace last changed the order.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Quantity returns the number of units across all lines.
func (o *Order) Quantity() int {
	total := 0
	for _, item := range o.items {
		total += item.quantity
	}
	return total
}

// ProductNames returns the product names of all lines, in line order.
func (o *Order) ProductNames() []string {
	names := make([]string, 0, len(o.items))
	for _, item := range o.items {
		names = append(names, item.productName)
	}
	return names
}

// CanTransitionTo checks the transition table against the order's current status.
func (o *Order) CanTransitionTo(next Status) error {
	_, err := o.status.TransitionTo(next)
	return err
}

func (o *Order) validateItems() error {
	if len(o.items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range o.items {
		if item.quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("order items", fmt.Errorf("item %d was not created via NewItem", item.productID))
		}
	}
	return nil
}
