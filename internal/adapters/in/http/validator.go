package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// requestValidator is echo's Validator for request bodies. Field errors are
// reported as errs validation errors named after the JSON field.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() (*requestValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		_, err := order.ParseStatus(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("register order_status validation: %w", err)
	}

	return &requestValidator{validate: v}, nil
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	joined := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = append(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause(
			fe.Field(),
			fmt.Errorf("%q fails %s", fmt.Sprint(fe.Value()), fe.Tag()),
		))
	}
	return errors.Join(joined...)
}
