package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"task-manager/internal/client"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for store, validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return fmt.Errorf("%s", eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	var actionErr *client.ActionError
	if stderrors.As(err, &actionErr) {
		return withDetails(actionErr.Message, actionErr.Details)
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}

	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err)
	}

	return err.Error()
}

// withDetails appends per-field messages that add something to the headline
func withDetails(message string, details []validation.FieldError) string {
	var extra []string
	for _, d := range details {
		if d.Message != "" && d.Message != message {
			extra = append(extra, d.Message)
		}
	}
	if len(extra) == 0 {
		return message
	}
	return message + " (" + strings.Join(extra, "; ") + ")"
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	var actionErr *client.ActionError
	if stderrors.As(err, &actionErr) && len(actionErr.Details) > 0 {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsTransportError checks if the task server could not be reached
func (eh *ErrorHandler) IsTransportError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeTransport)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
