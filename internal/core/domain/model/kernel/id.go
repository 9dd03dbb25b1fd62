package kernel

import (
	"fmt"
	"strconv"

	"marketplace/internal/pkg/errs"
)

// ID identifies an order, product, customer, producer or category.
// Identifiers are issued by the marketplace API and are always positive.
type ID int64

// NewID validates a raw identifier. paramName is used in the error message.
func NewID(paramName string, raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(paramName); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal identifier, as found in URL path segments.
func ParseID(paramName string, raw string) (ID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not a number", raw))
	}
	return NewID(paramName, v)
}

// Validate reports whether the identifier is positive.
func (id ID) Validate(paramName string) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

// Int64 returns the raw identifier.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation used for search matching and URLs.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
