package appcore

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/lllypuk/userhub/internal/domain/objectid"
)

// validate is safe for concurrent use and caches struct metadata
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})

	return v
}

// ValidateStruct checks v against its `validate` tags and returns the first violation
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("", err.Error())
	}

	fe := fieldErrs[0]
	return NewValidationError(fe.Field(), describe(fe.Tag(), fe.Param()))
}

func describe(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "nospace":
		return "must not contain whitespace"
	default:
		return "is invalid"
	}
}

// ValidateRequired checks that the string is not empty
func ValidateRequired(field, value string) error {
	if err := validate.Var(value, "required"); err != nil {
		return newValidationErrorWithCause(field, "is required", ErrEmptyField)
	}
	return nil
}

// ValidateObjectID checks that value is a 24-character hex ObjectID and returns it
func ValidateObjectID(field, value string) (objectid.ID, error) {
	if err := ValidateRequired(field, value); err != nil {
		return "", err
	}
	if err := validate.Var(value, "len=24,hexadecimal"); err != nil {
		return "", newValidationErrorWithCause(field, "must be a valid identifier", ErrInvalidID)
	}
	id, err := objectid.Parse(value)
	if err != nil {
		return "", newValidationErrorWithCause(field, "must be a valid identifier", ErrInvalidID)
	}
	return id, nil
}

// ValidateRange checks that the value is within the given range
func ValidateRange(field string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return NewValidationError(field, fmt.Sprintf("must be between %d and %d", minValue, maxValue))
	}
	return nil
}

// FieldString extracts a string field from an untyped payload as sent.
// A missing or null key yields "" so the caller's required rule reports it.
// A present key of any other JSON type is a format error.
func FieldString(raw map[string]any, field string) (string, error) {
	v, present := raw[field]
	if !present || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", newValidationErrorWithCause(field, "must be a string", ErrInvalidFormat)
	}
	return s, nil
}

// RejectUnknownFields fails if raw carries keys outside allowed
func RejectUnknownFields(raw map[string]any, allowed ...string) error {
	for key := range raw {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return newValidationErrorWithCause(key, "is not allowed", ErrUnknownField)
		}
	}
	return nil
}
