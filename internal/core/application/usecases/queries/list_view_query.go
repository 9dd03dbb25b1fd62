package queries

import (
	"errors"

	"marketplace/internal/core/application/store"
	"marketplace/internal/core/domain/query"
	"marketplace/internal/pkg/guard"
)

var (
	ErrListViewQueryIsNotConstructed = errors.New(
		"ListViewQuery must be created via NewListViewQuery constructor",
	)
)

// ListViewQuery asks for one page of a collection view.
//
// The parameters are checked against the collection's schema when the query
// is handled, so an unknown filter or sort field surfaces as a ValidationError
// from the handler.
//
// Example:
//
//	status, _ := query.Eq("status", "PROCESSING")
//	filter, _ := query.NewFilter(status)
//	q := NewListViewQuery("honey", filter,
//	    query.SortDescriptor{Field: "createdAt", Direction: query.Desc},
//	    query.PageRequest{Index: 0, Size: 20})
//
//	page, err := handler.Handle(ctx, q)
type ListViewQuery struct {
	params store.Params

	guard guard.ConstructorGuard
}

func NewListViewQuery(
	search string,
	filter query.FilterDescriptor,
	sort query.SortDescriptor,
	page query.PageRequest,
) ListViewQuery {
	return ListViewQuery{
		params: store.Params{
			Search: search,
			Filter: filter,
			Sort:   sort,
			Page:   page,
		},
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListViewQuery) Validate() error {
	return q.guard.Validate(ErrListViewQueryIsNotConstructed)
}

// Params returns the store parameters the query asks for.
func (q ListViewQuery) Params() store.Params {
	return q.params
}
