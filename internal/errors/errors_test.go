package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("title is required")
	err := NewValidationError("invalid task title", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "invalid task title" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "invalid task title")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: abc" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: abc")
	}

	if err.Field != "task" || err.Value != "abc" {
		t.Errorf("NewNotFoundError field/value = %v/%v", err.Field, err.Value)
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewDatabaseError("insert task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: insert task" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if err.Op != "insert task" {
		t.Errorf("NewDatabaseError op = %v", err.Op)
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("id", "", "task ID is required")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for id: task ID is required" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if err.Field != "id" || err.Value != "" {
		t.Errorf("NewInvalidInputError field/value = %v/%v", err.Field, err.Value)
	}
}

func TestNewTimeoutError(t *testing.T) {
	cause := errors.New("deadline")
	err := NewTimeoutError("list tasks", cause)

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}
	if err.Op != "list tasks" || err.Cause != cause {
		t.Errorf("NewTimeoutError op/cause = %v/%v", err.Op, err.Cause)
	}
}

func TestNewTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("create task", cause)

	if err.Type != ErrorTypeTransport {
		t.Errorf("NewTransportError type = %v, want %v", err.Type, ErrorTypeTransport)
	}
	if err.Message != "request failed: create task" {
		t.Errorf("NewTransportError message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewTransportError should wrap its cause")
	}
}

func TestFromStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), ErrorTypeTimeout},
		{"canceled", context.Canceled, ErrorTypeTimeout},
		{"driver", errors.New("SQL logic error"), ErrorTypeDatabase},
		{"already classified", NewNotFoundError("task", "x"), ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStoreError("update task", tt.err)
			if got.Type != tt.expected {
				t.Errorf("FromStoreError type = %v, want %v", got.Type, tt.expected)
			}
		})
	}
}

func TestIsErrorType(t *testing.T) {
	err := fmt.Errorf("service: %w", NewNotFoundError("task", "1"))

	if !IsErrorType(err, ErrorTypeNotFound) {
		t.Error("IsErrorType should match wrapped not found error")
	}
	if IsErrorType(err, ErrorTypeDatabase) {
		t.Error("IsErrorType should not match a different type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeDatabase) {
		t.Error("IsErrorType should be false for plain errors")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("title is required", nil), "title is required"},
		{"not found", NewNotFoundError("task", "9"), "task not found: 9"},
		{"database", NewDatabaseError("insert", errors.New("x")), "A database error occurred. Please try again."},
		{"timeout", NewTimeoutError("list", nil), "The operation timed out. Please try again."},
		{"transport", NewTransportError("list", nil), "Could not reach the task server. Please try again."},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(NewNotFoundError("task", "1")); got != "NOT_FOUND" {
		t.Errorf("GetErrorCode() = %v, want NOT_FOUND", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", got)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"validation", NewValidationError("bad", nil), false},
		{"invalid input", NewInvalidInputError("id", "", "required"), false},
		{"not found", NewNotFoundError("task", "1"), true},
		{"database", NewDatabaseError("op", nil), true},
		{"plain", errors.New("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.expected)
			}
		})
	}
}
