package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Schema declares how entities of type T are searched, filtered and sorted.
// Build it once with NewSchema and the chained declarations, then share it.
type Schema[T any] struct {
	id       func(T) int64
	search   []searchField[T]
	equality map[string]func(T) string
	ranges   map[string]func(T) decimal.Decimal
	sorts    map[string]func(a, b T) int
}

type searchField[T any] struct {
	name   string
	values func(T) []string
}

// NewSchema starts a schema. id is used as the final sort tie-break.
func NewSchema[T any](id func(T) int64) *Schema[T] {
	return &Schema[T]{
		id:       id,
		equality: make(map[string]func(T) string),
		ranges:   make(map[string]func(T) decimal.Decimal),
		sorts:    make(map[string]func(a, b T) int),
	}
}

// Search adds a free-text field. values may return several strings (e.g. product names).
func (s *Schema[T]) Search(name string, values func(T) []string) *Schema[T] {
	s.search = append(s.search, searchField[T]{name: name, values: values})
	return s
}

// Equality adds a field usable in equality criteria.
func (s *Schema[T]) Equality(name string, value func(T) string) *Schema[T] {
	s.equality[name] = value
	return s
}

// Range adds a numeric field usable in range criteria.
func (s *Schema[T]) Range(name string, value func(T) decimal.Decimal) *Schema[T] {
	s.ranges[name] = value
	return s
}

// Sort adds a sortable field with its ascending comparator.
func (s *Schema[T]) Sort(name string, compare func(a, b T) int) *Schema[T] {
	s.sorts[name] = compare
	return s
}

// SortFields lists the sortable field names in lexical order.
func (s *Schema[T]) SortFields() []string {
	names := make([]string, 0, len(s.sorts))
	for name := range s.sorts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SearchFields lists the searchable field names in declaration order.
func (s *Schema[T]) SearchFields() []string {
	names := make([]string, 0, len(s.search))
	for _, f := range s.search {
		names = append(names, f.name)
	}
	return names
}

// ValidateFilter rejects criteria on fields the schema does not declare for their kind.
func (s *Schema[T]) ValidateFilter(filter FilterDescriptor) error {
	for _, c := range filter.Criteria() {
		switch c.Kind {
		case KindEquality:
			if _, ok := s.equality[c.Field]; !ok {
				return errs.NewValueIsInvalidErrorWithCause("filter",
					fmt.Errorf("%q does not support equality criteria", c.Field))
			}
		case KindRange:
			if _, ok := s.ranges[c.Field]; !ok {
				return errs.NewValueIsInvalidErrorWithCause("filter",
					fmt.Errorf("%q does not support range criteria", c.Field))
			}
		default:
			return errs.NewValueIsInvalidErrorWithCause("filter",
				fmt.Errorf("criterion on %q has no kind", c.Field))
		}
	}
	return nil
}

// ValidateSort rejects sort fields the schema does not declare. The zero SortDescriptor
// (keep input order) is always valid.
func (s *Schema[T]) ValidateSort(sort SortDescriptor) error {
	if sort.Field == "" {
		return sort.Direction.Validate()
	}
	if _, ok := s.sorts[sort.Field]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("sortBy",
			fmt.Errorf("%q is not sortable, use one of %s", sort.Field, strings.Join(s.SortFields(), ", ")))
	}
	return sort.Direction.Validate()
}

func (s *Schema[T]) matchesSearch(item T, term string) bool {
	if term == "" {
		return true
	}
	for _, f := range s.search {
		for _, v := range f.values(item) {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
	}
	return false
}

func (s *Schema[T]) matchesFilter(item T, filter FilterDescriptor) bool {
	for _, c := range filter.Criteria() {
		switch c.Kind {
		case KindEquality:
			if s.equality[c.Field](item) != c.Value {
				return false
			}
		case KindRange:
			v := s.ranges[c.Field](item)
			if c.Min != nil && v.LessThan(*c.Min) {
				return false
			}
			if c.Max != nil && v.GreaterThan(*c.Max) {
				return false
			}
		}
	}
	return true
}

func (s *Schema[T]) comparator(sort SortDescriptor) func(a, b T) int {
	byField := s.sorts[sort.Field]
	return func(a, b T) int {
		c := byField(a, b)
		if sort.Direction == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(s.id(a), s.id(b))
	}
}
