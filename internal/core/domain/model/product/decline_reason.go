package product

import (
	"strings"

	"marketplace/internal/pkg/errs"
)

// DeclineReason is the administrator's explanation for declining a product.
// It is never blank.
type DeclineReason string

// NewDeclineReason trims raw and rejects an empty or whitespace-only reason.
func NewDeclineReason(raw string) (DeclineReason, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError("decline reason")
	}
	return DeclineReason(trimmed), nil
}

func (r DeclineReason) String() string {
	return string(r)
}
