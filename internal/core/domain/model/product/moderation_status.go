package product

import (
	"fmt"
	"slices"

	"marketplace/internal/pkg/errs"
)

// ModerationStatus is the moderation state of a product.
//
//	PENDING ──> APPROVED
//	   │
//	   └──> DECLINED
//
// APPROVED and DECLINED are final.
type ModerationStatus int

const (
	// ModerationUnknown represents an invalid or undefined status.
	ModerationUnknown ModerationStatus = iota

	Pending
	Approved
	Declined
)

func getModerationStatusStrings() map[ModerationStatus]string {
	return map[ModerationStatus]string{
		ModerationUnknown: "UNKNOWN",
		Pending:           "PENDING",
		Approved:          "APPROVED",
		Declined:          "DECLINED",
	}
}

// AllModerationStatuses lists every valid moderation status.
func AllModerationStatuses() []ModerationStatus {
	return []ModerationStatus{Pending, Approved, Declined}
}

// ParseModerationStatus maps a wire name such as "PENDING" to its status.
func ParseModerationStatus(raw string) (ModerationStatus, error) {
	for _, s := range AllModerationStatuses() {
		if s.String() == raw {
			return s, nil
		}
	}
	return ModerationUnknown, errs.NewValueIsInvalidErrorWithCause("moderation status is invalid",
		fmt.Errorf("%q is not a valid moderation status", raw))
}

func (s ModerationStatus) Validate() error {
	if !slices.Contains(AllModerationStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("moderation status is invalid",
			fmt.Errorf("%d is not a valid moderation status", int(s)))
	}
	return nil
}

func (s ModerationStatus) String() string {
	if str, ok := getModerationStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// TransitionTo moves a pending product to a final status.
func (s ModerationStatus) TransitionTo(next ModerationStatus) (ModerationStatus, error) {
	switch s {
	case Pending:
		if next == Approved || next == Declined {
			return next, nil
		}
	case ModerationUnknown, Approved, Declined:
	}
	return ModerationUnknown, errs.NewTransitionIsInvalidError("product", s, next)
}
