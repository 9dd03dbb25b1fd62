package order

import (
	"fmt"
	"slices"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Manual transitions (everything else is forbidden):
//
//	PAYMENT_COMPLETED ──> PROCESSING ──> SHIPPED ──> DELIVERED ──> RETURNED
//	                          │
//	                          └──> CANCELLED
//
// PENDING_PAYMENT and PAYMENT_FAILED are only reached through payment callbacks,
// which are handled by the marketplace itself. CANCELLED and RETURNED are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status of a placed order awaiting payment.
	// It is left only through the marketplace's payment callbacks.
	PendingPayment

	// PaymentFailed indicates the payment was rejected. This is a final state.
	PaymentFailed

	// PaymentCompleted indicates the order is paid and waits for the producer
	// to start processing it.
	PaymentCompleted

	// Processing indicates the producer is preparing the order.
	// It can move on to Shipped or be Cancelled.
	Processing

	// Shipped indicates the order has been handed over to the carrier.
	Shipped

	// Delivered indicates the customer received the order.
	// A delivered order can still be Returned.
	Delivered

	// Cancelled indicates the producer cancelled the order before shipping.
	// This is a final state with no further transitions allowed.
	Cancelled

	// Returned indicates the customer sent a delivered order back.
	// This is a final state with no further transitions allowed.
	Returned
)

// getStatusStrings returns the wire names used by the marketplace API.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		PendingPayment:   "PENDING_PAYMENT",
		PaymentFailed:    "PAYMENT_FAILED",
		PaymentCompleted: "PAYMENT_COMPLETED",
		Processing:       "PROCESSING",
		Shipped:          "SHIPPED",
		Delivered:        "DELIVERED",
		Cancelled:        "CANCELLED",
		Returned:         "RETURNED",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		PendingPayment,
		PaymentFailed,
		PaymentCompleted,
		Processing,
		Shipped,
		Delivered,
		Cancelled,
		Returned,
	}
}

// ParseStatus maps a wire name such as "SHIPPED" to its Status.
//
// Returns:
//   - the matching Status for any valid wire name
//   - Unknown and a ValueIsInvalidError for anything else, including "UNKNOWN"
//
// Example:
//
//	next, err := order.ParseStatus(body.Status)
func ParseStatus(raw string) (Status, error) {
	for s, name := range getStatusStrings() {
		if s != Unknown && name == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", raw))
}

// Validate checks if the Status value is one of the declared lifecycle states.
//
// Unknown (0) and any value outside the declared constants are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., the marketplace API, request bodies) are valid before use.
func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire name of the status.
//
// Returns:
//   - "PENDING_PAYMENT", "PROCESSING", "SHIPPED", ... for valid statuses
//   - "UNKNOWN" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
//
// Example:
//
//	fmt.Println(o.Status()) // Output: "SHIPPED"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether no manual transition leaves this status.
func (s Status) IsFinal() bool {
	return len(AllowedTransitions(s)) == 0
}

// AllowedTransitions returns the statuses an order may be moved to by hand.
// The switch is exhaustive over Status.
func AllowedTransitions(current Status) []Status {
	switch current {
	case PaymentCompleted:
		return []Status{Processing}
	case Processing:
		return []Status{Shipped, Cancelled}
	case Shipped:
		return []Status{Delivered}
	case Delivered:
		return []Status{Returned}
	case Unknown, PendingPayment, PaymentFailed, Cancelled, Returned:
		return nil
	}
	return nil
}

// IsValidTransition reports whether current -> next is in the transition table.
// It is total: self-transitions, transitions out of final states and any pair
// involving an invalid status are rejected.
func IsValidTransition(current, next Status) bool {
	return slices.Contains(AllowedTransitions(current), next)
}

// TransitionTo returns next if the table allows it, or a TransitionIsInvalidError.
//
// The status itself is a value and is never modified; callers keep the result.
//
// Example:
//
//	if _, err := current.TransitionTo(order.Shipped); err != nil {
//	    return nil, err // matches errs.ErrTransitionIsInvalid
//	}
func (s Status) TransitionTo(next Status) (Status, error) {
	if !IsValidTransition(s, next) {
		return Unknown, errs.NewTransitionIsInvalidError("order", s, next)
	}
	return next, nil
}
