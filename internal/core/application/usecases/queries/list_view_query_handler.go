package queries

import (
	"context"

	"marketplace/internal/core/application/store"
	"marketplace/internal/core/domain/query"
)

// ListViewQueryHandler applies the query parameters to a collection store and
// returns the derived page.
//
// The same handler type serves the order collection, the pending groups and
// the producer catalog:
//
//	orders := NewListViewQueryHandler(orderStore)
//	pending := NewListViewQueryHandler(pendingStore)
type ListViewQueryHandler[T any] struct {
	collection *store.Store[T]
}

func NewListViewQueryHandler[T any](collection *store.Store[T]) ListViewQueryHandler[T] {
	return ListViewQueryHandler[T]{collection: collection}
}

// Handle makes the query parameters active and derives the view. A fetch is
// issued only when the store needs one (see store.Store.Apply).
func (h ListViewQueryHandler[T]) Handle(ctx context.Context, q ListViewQuery) (query.Page[T], error) {
	if err := q.Validate(); err != nil {
		return query.Page[T]{}, err
	}

	if err := h.collection.Apply(ctx, q.Params()); err != nil {
		return query.Page[T]{}, err
	}

	return h.collection.View()
}
