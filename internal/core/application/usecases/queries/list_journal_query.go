package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/journal"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	DefaultJournalLimit = 50
	MaxJournalLimit     = 500
)

var (
	ErrListJournalQueryIsNotConstructed = errors.New(
		"ListJournalQuery must be created via NewListJournalQuery constructor",
	)
)

// ListJournalQuery asks for the most recent decision journal entries.
//
// Example:
//
//	q, err := NewListJournalQuery("product.declined", 20)
//	entries, err := handler.Handle(ctx, q)
type ListJournalQuery struct {
	kind  journal.Kind
	limit int

	guard guard.ConstructorGuard
}

// NewListJournalQuery accepts an empty kind (every kind) and a zero limit
// (DefaultJournalLimit).
func NewListJournalQuery(kind string, limit int) (ListJournalQuery, error) {
	q := ListJournalQuery{guard: guard.NewConstructorGuard()}

	if kind != "" {
		parsed, err := journal.ParseKind(kind)
		if err != nil {
			return ListJournalQuery{}, err
		}
		q.kind = parsed
	}

	switch {
	case limit == 0:
		q.limit = DefaultJournalLimit
	case limit < 0 || limit > MaxJournalLimit:
		return ListJournalQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxJournalLimit)
	default:
		q.limit = limit
	}

	return q, nil
}

// Validate ensures the query was created through NewListJournalQuery.
func (q ListJournalQuery) Validate() error {
	return q.guard.Validate(ErrListJournalQueryIsNotConstructed)
}

// Kind returns the requested entry kind, or the zero Kind for every kind.
func (q ListJournalQuery) Kind() journal.Kind {
	return q.kind
}

// Limit returns the maximum number of entries to return.
func (q ListJournalQuery) Limit() int {
	return q.limit
}
