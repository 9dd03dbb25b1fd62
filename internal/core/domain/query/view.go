package query

import (
	"errors"
	"slices"
	"strings"
)

// DeriveView searches, filters and sorts items, in that order. It never mutates
// items and returns a fresh slice; identical inputs give identical output.
//
// The search term is matched case-insensitively as a substring of any search field.
// Every filter criterion must hold. The sort is stable and ties break on id, so
// the result is fully determined by the declared sort. A zero SortDescriptor
// keeps input order.
func DeriveView[T any](items []T, schema *Schema[T], search string, filter FilterDescriptor, sort SortDescriptor) ([]T, error) {
	if err := errors.Join(schema.ValidateFilter(filter), schema.ValidateSort(sort)); err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	view := make([]T, 0, len(items))
	for _, item := range items {
		if schema.matchesSearch(item, term) && schema.matchesFilter(item, filter) {
			view = append(view, item)
		}
	}

	if sort.Field != "" {
		slices.SortStableFunc(view, schema.comparator(sort))
	}

	return view, nil
}

// Paginate cuts the requested page out of a derived view. An empty view has zero
// pages and is both first and last. An index past the end yields no items.
func Paginate[T any](view []T, req PageRequest) Page[T] {
	index := max(req.Index, 0)
	size := max(req.Size, 1)
	total := len(view)
	totalPages := (total + size - 1) / size

	start := total
	if total > 0 && index <= (total-1)/size {
		start = index * size
	}
	end := min(start+size, total)

	return Page[T]{
		Items: slices.Clone(view[start:end]),
		Page: PageDescriptor{
			Index:         index,
			Size:          size,
			TotalElements: total,
			TotalPages:    totalPages,
			First:         index == 0,
			Last:          index >= totalPages-1,
		},
	}
}
