package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation failure for a specific field
type ValidationError struct {
	Field   string `json:"field"`
	Value   any    `json:"value,omitempty"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// ValidationErrors represents multiple validation failures
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return strings.Join(messages, "; ")
}

// Validator wraps go-playground/validator and reports failures as
// ValidationErrors named after struct tags instead of Go field names.
type Validator struct {
	validator *validator.Validate
}

// New creates a Validator. Field names are taken from the first of tagKeys
// present on the field (e.g. "query", "yaml", "json"), falling back to the
// Go field name.
func New(tagKeys ...string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range tagKeys {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &Validator{validator: v}
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s any) error {
	if err := v.validator.Struct(s); err != nil {
		return convert(err)
	}
	return nil
}

// Fields flattens err into field -> message, for logs.
func Fields(err error) map[string]string {
	if err == nil {
		return nil
	}

	var ve ValidationErrors
	if errors.As(err, &ve) {
		result := make(map[string]string, len(ve.Errors))
		for _, e := range ve.Errors {
			result[e.Field] = e.Message
		}
		return result
	}

	return map[string]string{"_error": err.Error()}
}

func convert(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	out := make([]ValidationError, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		out = append(out, ValidationError{
			Field:   e.Field(),
			Value:   e.Value(),
			Rule:    e.Tag(),
			Message: message(e),
			Param:   e.Param(),
		})
	}
	return ValidationErrors{Errors: out}
}

// message generates a readable description of a single failure
func message(err validator.FieldError) string {
	param := err.Param()

	switch err.Tag() {
	case "required":
		return "This field is required"
	case "url":
		return "Invalid URL format"
	case "hostname", "hostname_rfc1123":
		return "Invalid hostname"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Value must be at least %s characters long", param)
		}
		return fmt.Sprintf("Value must be at least %s", param)
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Value must be at most %s characters long", param)
		}
		return fmt.Sprintf("Value must be at most %s", param)
	case "gte":
		return fmt.Sprintf("Value must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Value must be less than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("Value must be one of: %s", param)
	case "numeric":
		return "Value must contain only numeric characters"
	case "printascii":
		return "Value must contain only printable ASCII characters"
	default:
		return fmt.Sprintf("Failed %s validation", err.Tag())
	}
}
