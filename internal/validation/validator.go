// Package validation validates catalog entities and patches using validator/v10.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
)

// enumValue is implemented by the domain enumerations.
type enumValue interface {
	Valid() bool
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the catalog domain.
// Besides the built-in tags it understands "enum", which defers to the
// field type's Valid method.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("enum", validateEnum)

	return &Validator{v: v}
}

func validateEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(enumValue)
	if !ok {
		return false
	}
	return e.Valid()
}

// Validate validates a struct and returns a domain validation error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// ValidateExcept is Validate with failures on the named fields (JSON names)
// ignored. Ingestion uses it for references that are resolved later.
func (v *Validator) ValidateExcept(s any, fields ...string) error {
	err := v.v.Struct(s)
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	kept := make(validator.ValidationErrors, 0, len(validationErrs))
	for _, e := range validationErrs {
		if !slices.Contains(fields, e.Field()) {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return v.formatError(kept)
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url":
		return "must be a valid URL"
	case "enum":
		return fmt.Sprintf("%v is not an allowed value", e.Value())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}
