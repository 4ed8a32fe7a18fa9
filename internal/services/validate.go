package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validationError turns the first failed rule into an apierr validation error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apierr.Validation("", "%s", err.Error())
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apierr.Validation(field, "%s is required", field)
	case "email":
		return apierr.Validation(field, "%s must be a valid email address", field)
	case "max":
		return apierr.Validation(field, "%s must be at most %s characters", field, fe.Param())
	default:
		return apierr.Validation(field, "%s is invalid", field)
	}
}
