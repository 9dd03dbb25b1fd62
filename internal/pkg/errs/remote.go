package errs

import (
	"errors"
	"fmt"
)

var (
	ErrTransitionFailed = errors.New("transition failed")
	ErrFetchFailed      = errors.New("fetch failed")

	// ErrStaleResponseDiscarded marks a fetch result that arrived after a newer
	// request was issued. It never leaves the store that produced it.
	ErrStaleResponseDiscarded = errors.New("stale response discarded")
)

// RemoteCallError reports a network or server-side rejection of an upstream call.
// Kind is ErrTransitionFailed or ErrFetchFailed. State owned by the caller is
// left unchanged whenever this error is returned.
type RemoteCallError struct {
	Kind      error
	Operation string
	Reason    string
	Cause     error
}

func NewTransitionFailedError(operation string, cause error) *RemoteCallError {
	return newRemoteCallError(ErrTransitionFailed, operation, cause)
}

func NewFetchFailedError(operation string, cause error) *RemoteCallError {
	return newRemoteCallError(ErrFetchFailed, operation, cause)
}

func newRemoteCallError(kind error, operation string, cause error) *RemoteCallError {
	reason := "unknown reason"
	if cause != nil {
		reason = cause.Error()
	}
	return &RemoteCallError{Kind: kind, Operation: operation, Reason: reason, Cause: cause}
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Operation, sanitize(e.Reason))
}

func (e *RemoteCallError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
