// Package validation runs the field-level checks every document goes through
// before it is written: required fields, length bounds, enum membership and
// slug format.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sitecms/internal/content"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the set of field errors found in a single validation pass.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Map returns field -> message, keeping the first message per field.
func (e Errors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, exists := out[fe.Field]; !exists {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return content.ValidSlug(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register slug validation: %v", err))
	}
	return v
}

// Struct validates v and returns Errors when any field is rejected.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return out
}

// Field builds a single-field Errors value.
func Field(field, msg string) Errors {
	return Errors{{Field: field, Message: msg}}
}

// Prefix qualifies every field of a validation error with prefix. Other
// errors are returned unchanged.
func Prefix(prefix string, err error) error {
	var errs Errors
	if !errors.As(err, &errs) {
		return err
	}
	out := make(Errors, len(errs))
	for i, fe := range errs {
		out[i] = FieldError{Field: prefix + "." + fe.Field, Message: fe.Message}
	}
	return out
}

// Merge concatenates validation errors, returning nil when there are none.
func Merge(errs ...error) error {
	var out Errors
	for _, err := range errs {
		if err == nil {
			continue
		}
		var fieldErrs Errors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		out = append(out, fieldErrs...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace:
// "CustomPageInput.title" -> "title".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email address"
	case "slug":
		return "must contain only lowercase letters, digits and single hyphens"
	case "datetime":
		return fmt.Sprintf("must be a date in the form %s", fe.Param())
	default:
		return "is invalid"
	}
}
