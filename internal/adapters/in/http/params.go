package http

import (
	"errors"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/query"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// equalityParam maps a query parameter onto an equality criterion.
type equalityParam struct {
	param string
	field string
}

// rangeParam maps a pair of query parameters onto a range criterion.
type rangeParam struct {
	minParam string
	maxParam string
	field    string
}

// viewParams lists the filter parameters a collection endpoint accepts.
type viewParams struct {
	equality []equalityParam
	ranges   []rangeParam
}

// bindListViewQuery reads search, filter, sort and page parameters. Missing
// page parameters default to the first page of defaultSize items.
func bindListViewQuery(c echo.Context, params viewParams, defaultSize int) (queries.ListViewQuery, error) {
	values := c.QueryParams()

	var (
		search, sortBy, direction *string
		page, size                *int
	)
	if err := errors.Join(
		bindQuery(c, "search", &search),
		bindQuery(c, "sortBy", &sortBy),
		bindQuery(c, "direction", &direction),
		bindQuery(c, "page", &page),
		bindQuery(c, "size", &size),
	); err != nil {
		return queries.ListViewQuery{}, err
	}

	dir, err := query.ParseDirection(deref(direction))
	if err != nil {
		return queries.ListViewQuery{}, err
	}

	criteria := make([]query.Criterion, 0, len(params.equality)+len(params.ranges))
	for _, p := range params.equality {
		if crit, ok := query.Eq(p.field, values.Get(p.param)); ok {
			criteria = append(criteria, crit)
		}
	}
	for _, p := range params.ranges {
		minValue, minErr := bindDecimal(c, p.minParam)
		maxValue, maxErr := bindDecimal(c, p.maxParam)
		if err := errors.Join(minErr, maxErr); err != nil {
			return queries.ListViewQuery{}, err
		}
		if crit, ok := query.Between(p.field, minValue, maxValue); ok {
			criteria = append(criteria, crit)
		}
	}

	filter, err := query.NewFilter(criteria...)
	if err != nil {
		return queries.ListViewQuery{}, err
	}

	req := query.PageRequest{Index: 0, Size: defaultSize}
	if page != nil {
		req.Index = *page
	}
	if size != nil {
		req.Size = *size
	}

	return queries.NewListViewQuery(
		deref(search),
		filter,
		query.SortDescriptor{Field: deref(sortBy), Direction: dir},
		req,
	), nil
}

// bindQuery binds an optional form-style query parameter into dest, which must
// be a pointer to a pointer. dest stays nil when the parameter is absent.
func bindQuery(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func bindDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	var raw *string
	if err := bindQuery(c, name, &raw); err != nil {
		return nil, err
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &d, nil
}

// bindID reads the "id" path parameter.
func bindID(c echo.Context) (kernel.ID, error) {
	var raw int64
	if err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.NewID("id", raw)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
