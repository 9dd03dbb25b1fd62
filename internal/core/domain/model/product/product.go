package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created through
	// the RestoreProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct constructor")
)

// Producer references the owner of a product.
type Producer struct {
	ID   kernel.ID
	Name string
}

// Category is a catalog category a product belongs to.
type Category struct {
	ID   kernel.ID
	Name string
}

// Details holds the producer-editable part of a product.
type Details struct {
	Name        string
	Description string
	Price       kernel.Money
	Quantity    int
}

// Moderation holds the moderation state of a product. Reason is set iff Status is Declined.
type Moderation struct {
	Status ModerationStatus
	Reason DeclineReason
}

// Product is an immutable snapshot of a producer's product as served by the marketplace.
//
// Product follows these invariants:
//   - Must have a valid identifier and producer reference
//   - Price must be constructed and quantity must not be negative
//   - A decline reason is present if and only if the product is DECLINED
//   - Can only be created through RestoreProduct
type Product struct {
	id         kernel.ID
	producer   Producer
	details    Details
	moderation Moderation
	categories []Category
	imageURL   string
	createdAt  time.Time

	isConstructed bool
}

// RestoreProduct rebuilds a Product from its upstream representation.
func RestoreProduct(
	id kernel.ID,
	producer Producer,
	details Details,
	moderation Moderation,
	categories []Category,
	imageURL string,
	createdAt time.Time,
) (*Product, error) {
	details.Name = strings.TrimSpace(details.Name)

	if err := errors.Join(
		id.Validate("product id"),
		producer.ID.Validate("producer id"),
		details.Price.Validate(),
		validateQuantity(details.Quantity),
		moderation.Status.Validate(),
		validateModeration(moderation),
	); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		producer:      producer,
		details:       details,
		moderation:    moderation,
		categories:    append([]Category(nil), categories...),
		imageURL:      imageURL,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product instance was properly constructed through RestoreProduct.
//
// Returns:
//   - nil if the product is valid and properly constructed
//   - ErrProductIsNotConstructed for a nil or zero-value product
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's identifier as issued by the marketplace.
func (p *Product) ID() kernel.ID {
	return p.id
}

// Producer returns the owner of the product.
func (p *Product) Producer() Producer {
	return p.producer
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.details.Name
}

// Description returns the product description. It may be empty.
func (p *Product) Description() string {
	return p.details.Description
}

// Price returns the unit price.
func (p *Product) Price() kernel.Money {
	return p.details.Price
}

// Quantity returns the units in stock. It is never negative.
func (p *Product) Quantity() int {
	return p.details.Quantity
}

// Status returns the moderation status of the product.
func (p *Product) Status() ModerationStatus {
	return p.moderation.Status
}

// DeclineReason returns why the product was declined.
// It is the zero value unless Status is Declined.
func (p *Product) DeclineReason() DeclineReason {
	return p.moderation.Reason
}

// ImageURL returns the product image location. The value is opaque to this service.
func (p *Product) ImageURL() string {
	return p.imageURL
}

// CreatedAt returns when the producer submitted the product.
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// Categories returns a copy of the product categories.
func (p *Product) Categories() []Category {
	return append([]Category(nil), p.categories...)
}

// CategoryNames returns the category names in declaration order.
func (p *Product) CategoryNames() []string {
	names := make([]string, 0, len(p.categories))
	for _, c := range p.categories {
		names = append(names, c.Name)
	}
	return names
}

// IsPending reports whether the product still awaits moderation.
func (p *Product) IsPending() bool {
	return p.moderation.Status == Pending
}

// CanModerateTo checks that the product may move to next.
//
// Only Pending products can be moderated, and only to Approved or Declined.
//
// Example:
//
//	if err := p.CanModerateTo(product.Declined); err != nil {
//	    return nil, err // matches errs.ErrTransitionIsInvalid
//	}
func (p *Product) CanModerateTo(next ModerationStatus) error {
	_, err := p.moderation.Status.TransitionTo(next)
	return err
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is negative", quantity))
	}
	return nil
}

func validateModeration(m Moderation) error {
	switch {
	case m.Status == Declined && strings.TrimSpace(m.Reason.String()) == "":
		return errs.NewValueIsRequiredError("decline reason")
	case m.Status != Declined && m.Reason != "":
		return errs.NewValueIsInvalidErrorWithCause("decline reason",
			fmt.Errorf("reason is only allowed for %s products, got %s", Declined, m.Status))
	}
	return nil
}
