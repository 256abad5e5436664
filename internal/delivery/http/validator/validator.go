// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"reflect"
	"strings"

	domainerrors "checker/internal/domain/errors"
	"checker/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator validates request DTOs tagged with `validate`.
type Validator struct {
	validate *playground.Validate
}

// New returns a validator reporting JSON field names.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &Validator{validate: v}
}

// Validate returns ErrValidationFailed listing every failing field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describe(fe))
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; ")))
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min", "max", "gte", "lte":
		return fe.Field() + " must be " + fe.Tag() + " " + fe.Param()
	case "latitude", "longitude":
		return fe.Field() + " must be a valid " + fe.Tag()
	case "nefield":
		return fe.Field() + " must differ from " + fe.Param()
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}

	return fld.Name
}
