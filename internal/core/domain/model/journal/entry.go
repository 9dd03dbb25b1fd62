package journal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry was not created through one of its constructors.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewOrderStatusChanged, NewProductModerated or RestoreEntry")
)

// Kind is the event type of an entry, in "<entity>.<event>" form.
type Kind string

const (
	OrderStatusChanged Kind = "order.status_changed"
	ProductApproved    Kind = "product.approved"
	ProductDeclined    Kind = "product.declined"
)

// AllKinds lists every known kind.
func AllKinds() []Kind {
	return []Kind{OrderStatusChanged, ProductApproved, ProductDeclined}
}

// ParseKind accepts a known kind name.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.TrimSpace(raw))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	if !slices.Contains(AllKinds(), k) {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a known journal kind", string(k)))
	}
	return nil
}

// Entity returns the entity part of the kind ("order" or "product").
func (k Kind) Entity() string {
	entity, _, _ := strings.Cut(string(k), ".")
	return entity
}

func (k Kind) String() string {
	return string(k)
}

// Entry is one recorded decision.
type Entry struct {
	id         kernel.UUID
	kind       Kind
	entityID   kernel.ID
	from       string
	to         string
	reason     string
	occurredAt time.Time

	isConstructed bool
}

// NewOrderStatusChanged records that o moved from the given status to its current one.
func NewOrderStatusChanged(o *order.Order, from order.Status, at time.Time) (Entry, error) {
	if err := o.Validate(); err != nil {
		return Entry{}, err
	}
	return RestoreEntry(kernel.NewUUID(), OrderStatusChanged, o.ID(), from.String(), o.Status().String(), "", at)
}

// NewProductModerated records the moderation outcome carried by p.
func NewProductModerated(p *product.Product, at time.Time) (Entry, error) {
	if err := p.Validate(); err != nil {
		return Entry{}, err
	}

	var kind Kind
	switch p.Status() {
	case product.Approved:
		kind = ProductApproved
	case product.Declined:
		kind = ProductDeclined
	case product.ModerationUnknown, product.Pending:
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("product status",
			fmt.Errorf("%s is not a moderation outcome", p.Status()))
	}

	return RestoreEntry(kernel.NewUUID(), kind, p.ID(), product.Pending.String(), p.Status().String(),
		p.DeclineReason().String(), at)
}

// RestoreEntry rebuilds an entry from storage.
func RestoreEntry(id kernel.UUID, kind Kind, entityID kernel.ID, from, to, reason string, occurredAt time.Time) (Entry, error) {
	if err := errors.Join(
		id.Validate(),
		kind.Validate(),
		entityID.Validate("entity id"),
	); err != nil {
		return Entry{}, err
	}
	if to == "" {
		return Entry{}, errs.NewValueIsRequiredError("to")
	}

	return Entry{
		id:            id,
		kind:          kind,
		entityID:      entityID,
		from:          from,
		to:            to,
		reason:        reason,
		occurredAt:    occurredAt.UTC(),
		isConstructed: true,
	}, nil
}

func (e Entry) Validate() error {
	if !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e Entry) ID() kernel.UUID { return e.id }
func (e Entry) Kind() Kind { return e.kind }
func (e Entry) EntityID() kernel.ID { return e.entityID }
func (e Entry) From() string { return e.from }
func (e Entry) To() string { return e.to }
func (e Entry) Reason() string { return e.reason }
func (e Entry) OccurredAt() time.Time { return e.occurredAt }
