package errors

import (
	"context"
	"errors"
	"fmt"
)

// Codes are stable identifiers for each constructor below.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeDatabase     = "DATABASE_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeTimeout      = "TIMEOUT"
	CodeTransport    = "TRANSPORT_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

// NewValidationError creates a new validation error. The cause is usually a
// *validation.ValidationError listing the offending fields.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: CodeValidation, Message: message, Cause: cause}
}

// NewNotFoundError reports that no resource of the given kind has id
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
		Field:   resource,
		Value:   id,
	}
}

// NewDatabaseError wraps a store failure during op
func NewDatabaseError(op string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Code:    CodeDatabase,
		Message: "database operation failed: " + op,
		Op:      op,
		Cause:   cause,
	}
}

// NewInvalidInputError rejects value for field with a human readable reason
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Field:   field,
		Value:   value,
	}
}

// NewTimeoutError reports that op ran past its deadline or was cancelled
func NewTimeoutError(op string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Code:    CodeTimeout,
		Message: "operation timed out: " + op,
		Op:      op,
		Cause:   cause,
	}
}

// NewTransportError creates an error for a request that never produced a usable
// response: connection refused, broken body, unparsable JSON.
func NewTransportError(op string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Code:    CodeTransport,
		Message: "request failed: " + op,
		Op:      op,
		Cause:   cause,
	}
}

// FromStoreError classifies a raw driver error. Context deadline and cancellation
// become timeout errors, everything else is a database error.
func FromStoreError(op string, err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError(op, err)
	}
	return NewDatabaseError(op, err)
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error chain holds an AppError of the given type
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns a message fit for showing to the person at the terminal.
// Input problems keep their own wording; infrastructure failures get a retry hint.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return appErr.Message
	case ErrorTypeDatabase:
		return "A database error occurred. Please try again."
	case ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	case ErrorTypeTransport:
		return "Could not reach the task server. Please try again."
	}
	return "An unexpected error occurred. Please try again."
}

// GetErrorCode returns the error's code, or CodeUnknown for foreign errors
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// ShouldLogError is false for failures caused by the caller's input
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return !ok || !appErr.Type.IsClientError()
}
