package errors

import (
	"fmt"
	"log/slog"
)

// ErrorType classifies an AppError. The value is what appears in logs.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeDatabase     ErrorType = "database"
	ErrorTypeTimeout      ErrorType = "timeout"
	ErrorTypeTransport    ErrorType = "transport"
)

func (et ErrorType) String() string {
	if et == "" {
		return "unknown"
	}
	return string(et)
}

// IsClientError reports whether errors of this type are caused by the caller's input.
func (et ErrorType) IsClientError() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeInvalidInput:
		return true
	}
	return false
}

// AppError is the structured error passed from the store through the task
// service to the envelope layer and the CLI.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string

	// Op is the failing operation, e.g. "insert task".
	Op string
	// Field and Value name the offending input or the missing resource.
	Field string
	Value interface{}

	Cause error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Type.String() + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another AppError with the same type and code, so sentinel values
// such as &AppError{Type: ErrorTypeNotFound, Code: CodeNotFound} work with errors.Is.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType checks if this error is of the given type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// LogValue renders the error as a group when passed to a slog logger
func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.String("code", e.Code),
		slog.String("message", e.Message),
	}
	if e.Op != "" {
		attrs = append(attrs, slog.String("op", e.Op))
	}
	if e.Field != "" {
		attrs = append(attrs, slog.String("field", e.Field), slog.Any("value", e.Value))
	}
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	return slog.GroupValue(attrs...)
}
