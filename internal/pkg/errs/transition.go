package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTransitionIsInvalid = errors.New("transition is invalid")
	ErrTransitionInFlight  = errors.New("transition already in flight")
)

// TransitionIsInvalidError reports a requested status change that the
// transition table does not allow. It is produced locally and never sent upstream.
type TransitionIsInvalidError struct {
	Entity string
	From   fmt.Stringer
	To     fmt.Stringer
}

func NewTransitionIsInvalidError(entity string, from, to fmt.Stringer) *TransitionIsInvalidError {
	return &TransitionIsInvalidError{Entity: entity, From: from, To: to}
}

func (e *TransitionIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrTransitionIsInvalid, e.Entity, e.From, e.To)
}

func (e *TransitionIsInvalidError) Unwrap() error {
	return ErrTransitionIsInvalid
}

// TransitionInFlightError reports a mutation request for an entity that
// already has one outstanding.
type TransitionInFlightError struct {
	Entity string
	ID     int64
}

func NewTransitionInFlightError(entity string, id int64) *TransitionInFlightError {
	return &TransitionInFlightError{Entity: entity, ID: id}
}

func (e *TransitionInFlightError) Error() string {
	return fmt.Sprintf("%s: %s %d", ErrTransitionInFlight, e.Entity, e.ID)
}

func (e *TransitionInFlightError) Unwrap() error {
	return ErrTransitionInFlight
}
