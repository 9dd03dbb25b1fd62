package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AllValues is the equality value that disables a criterion.
const AllValues = "all"

// CriterionKind distinguishes equality criteria from numeric range criteria.
type CriterionKind int

const (
	KindUnknown CriterionKind = iota
	KindEquality
	KindRange
)

// Criterion is a single named predicate. Nil range bounds are unbounded.
type Criterion struct {
	Field string
	Kind  CriterionKind
	Value string
	Min   *decimal.Decimal
	Max   *decimal.Decimal
}

// Eq builds an equality criterion. An empty value or "all" (any case) yields no criterion.
func Eq(field, value string) (Criterion, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllValues) {
		return Criterion{}, false
	}
	return Criterion{Field: field, Kind: KindEquality, Value: value}, true
}

// Between builds a range criterion. Both bounds nil yields no criterion.
func Between(field string, minValue, maxValue *decimal.Decimal) (Criterion, bool) {
	if minValue == nil && maxValue == nil {
		return Criterion{}, false
	}
	return Criterion{Field: field, Kind: KindRange, Min: minValue, Max: maxValue}, true
}

func (c Criterion) equal(other Criterion) bool {
	return c.Field == other.Field &&
		c.Kind == other.Kind &&
		c.Value == other.Value &&
		boundEqual(c.Min, other.Min) &&
		boundEqual(c.Max, other.Max)
}

func boundEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// FilterDescriptor is an AND-combination of criteria keyed by field.
// Order of construction does not matter; the zero value matches everything.
type FilterDescriptor struct {
	criteria map[string]Criterion
}

// NewFilter builds a FilterDescriptor. A later criterion on the same field replaces an earlier one.
// A range with min greater than max is rejected.
func NewFilter(criteria ...Criterion) (FilterDescriptor, error) {
	f := FilterDescriptor{criteria: make(map[string]Criterion, len(criteria))}
	for _, c := range criteria {
		if c.Field == "" {
			return FilterDescriptor{}, errs.NewValueIsRequiredError("filter field")
		}
		if c.Kind == KindRange && c.Min != nil && c.Max != nil && c.Min.GreaterThan(*c.Max) {
			return FilterDescriptor{}, errs.NewValueIsOutOfRangeErrorWithCause(c.Field, c.Min.String(), "", c.Max.String(),
				fmt.Errorf("minimum %s exceeds maximum %s", c.Min, c.Max))
		}
		f.criteria[c.Field] = c
	}
	return f, nil
}

// Criteria returns the criteria sorted by field name.
func (f FilterDescriptor) Criteria() []Criterion {
	out := make([]Criterion, 0, len(f.criteria))
	for _, field := range slices.Sorted(maps.Keys(f.criteria)) {
		out = append(out, f.criteria[field])
	}
	return out
}

// IsEmpty reports whether the descriptor has no criteria.
func (f FilterDescriptor) IsEmpty() bool {
	return len(f.criteria) == 0
}

// Equal compares two descriptors independently of construction order.
func (f FilterDescriptor) Equal(other FilterDescriptor) bool {
	if len(f.criteria) != len(other.criteria) {
		return false
	}
	for field, c := range f.criteria {
		o, ok := other.criteria[field]
		if !ok || !c.equal(o) {
			return false
		}
	}
	return true
}

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection accepts "asc" or "desc" in any case; empty means ascending.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%q is not asc or desc", raw))
}

func (d Direction) Validate() error {
	if d != Asc && d != Desc {
		return errs.NewValueIsInvalidErrorWithCause("direction", fmt.Errorf("%d is not a valid direction", int(d)))
	}
	return nil
}

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortDescriptor names the sort field and direction. The zero value keeps input order.
type SortDescriptor struct {
	Field     string
	Direction Direction
}

// PageRequest selects a zero-based page of a given size.
type PageRequest struct {
	Index int
	Size  int
}

// Validate checks that the index is not negative and the size is within [1, maxSize].
func (r PageRequest) Validate(maxSize int) error {
	if r.Index < 0 {
		return errs.NewValueIsOutOfRangeError("page", r.Index, 0, "unbounded")
	}
	if r.Size < 1 || r.Size > maxSize {
		return errs.NewValueIsOutOfRangeError("size", r.Size, 1, maxSize)
	}
	return nil
}

// PageDescriptor describes a page of a derived view or of an upstream page envelope.
type PageDescriptor struct {
	Index         int
	Size          int
	TotalElements int
	TotalPages    int
	First         bool
	Last          bool
}

// Page is a slice of a view together with its descriptor.
type Page[T any] struct {
	Items []T
	Page  PageDescriptor
}
