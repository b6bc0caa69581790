package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType is the machine readable kind of a FieldError
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
)

// FieldError describes one rejected field. It is returned to API clients as an
// element of the envelope's details.
type FieldError struct {
	Field   string              `json:"field"`
	Type    ValidationErrorType `json:"type"`
	Message string              `json:"message"`
	Value   interface{}         `json:"value,omitempty"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects every FieldError found in one request
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection ready for the Add methods
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: []FieldError{}}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Error()
	}
	return "multiple validation errors: " + strings.Join(parts, "; ")
}

// HasErrors returns true if any field was rejected
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ErrorOrNil returns ve when it holds errors and an untyped nil otherwise
func (ve *ValidationError) ErrorOrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// AddError appends a field error of any type
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

// AddRequiredError records a missing field. An empty message defaults to "<field> is required".
func (ve *ValidationError) AddRequiredError(field, message string) {
	if message == "" {
		message = field + " is required"
	}
	ve.AddError(field, ErrorTypeRequired, message, nil)
}

// AddInvalidLengthError records a value outside [min, max]; a zero bound is open
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	ve.AddError(field, ErrorTypeInvalidLength, field+" "+lengthRule(min, max), value)
}

func lengthRule(min, max int) string {
	switch {
	case min > 0 && max > 0:
		return fmt.Sprintf("must be between %d and %d characters long", min, max)
	case min > 0:
		return fmt.Sprintf("must be at least %d characters long", min)
	case max > 0:
		return fmt.Sprintf("must be at most %d characters long", max)
	}
	return "has invalid length"
}

// GetUserFriendlyMessage returns the single message, or a bulleted list of all of them
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}

// IsValidationError reports whether err's chain holds a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
