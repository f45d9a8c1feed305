package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"crowddelivery/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs validator/v10 into echo.Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate reports the first failing field as a ValueIsInvalidError so the error
// handler answers 400.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errs.NewValueIsInvalidErrorWithCause(fe.Field(), fmt.Errorf("failed %q rule", fe.Tag()))
	}
	return errs.NewValueIsInvalidErrorWithCause("request", err)
}
