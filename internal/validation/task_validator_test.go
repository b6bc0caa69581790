package validation

import (
	"strings"
	"testing"

	"task-manager/internal/domain"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTaskValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid title", "Buy milk", "Buy milk", false, ""},
		{"Trimmed title", "  Buy milk  ", "Buy milk", false, ""},
		{"Empty title", "", "", true, ErrorTypeRequired},
		{"Whitespace only", "   \t", "", true, ErrorTypeRequired},
		{"Too long title", strings.Repeat("a", 256), "", true, ErrorTypeInvalidLength},
		{"Max length title", strings.Repeat("a", 255), strings.Repeat("a", 255), false, ""},
		{"Max length after trim", "  " + strings.Repeat("a", 255) + "  ", strings.Repeat("a", 255), false, ""},
		{"Punctuation allowed", "Call Bob @ 5pm (urgent!)", "Call Bob @ 5pm (urgent!)", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.ValidateTitle(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatalf("ValidateTitle(%q) expected error, got nil", tt.input)
				}
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if ve.Errors[0].Field != FieldTitle || ve.Errors[0].Type != tt.errorType {
					t.Errorf("unexpected field error %+v", ve.Errors[0])
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateTitle(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ValidateTitle(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTaskValidator_ValidateCreate(t *testing.T) {
	validator := NewTaskValidator()

	in, err := validator.ValidateCreate(domain.CreateTaskInput{Title: "  Write report "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Title != "Write report" {
		t.Errorf("title = %q, expected trimmed", in.Title)
	}

	_, err = validator.ValidateCreate(domain.CreateTaskInput{Title: " "})
	if !IsValidationError(err) {
		t.Errorf("expected validation error for blank title, got %v", err)
	}
}

func TestTaskValidator_ValidateUpdate(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name         string
		input        domain.UpdateTaskInput
		expectFields []string
	}{
		{"Completed only", domain.UpdateTaskInput{ID: "1", Completed: boolPtr(true)}, nil},
		{"Title only", domain.UpdateTaskInput{ID: "1", Title: strPtr(" New ")}, nil},
		{"Both fields", domain.UpdateTaskInput{ID: "1", Title: strPtr("New"), Completed: boolPtr(false)}, nil},
		{"Missing id", domain.UpdateTaskInput{Completed: boolPtr(true)}, []string{FieldID}},
		{"Blank title", domain.UpdateTaskInput{ID: "1", Title: strPtr("  ")}, []string{FieldTitle}},
		{"Too long title", domain.UpdateTaskInput{ID: "1", Title: strPtr(strings.Repeat("x", 256))}, []string{FieldTitle}},
		{"Empty patch", domain.UpdateTaskInput{ID: "1"}, []string{FieldFields}},
		{"Nothing at all", domain.UpdateTaskInput{}, []string{FieldID, FieldFields}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validator.ValidateUpdate(tt.input)

			if len(tt.expectFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if len(ve.Errors) != len(tt.expectFields) {
				t.Fatalf("expected %d errors, got %d: %v", len(tt.expectFields), len(ve.Errors), ve)
			}
			for i, field := range tt.expectFields {
				if ve.Errors[i].Field != field {
					t.Errorf("error %d field = %q, expected %q", i, ve.Errors[i].Field, field)
				}
			}
		})
	}
}

func TestTaskValidator_ValidateUpdate_Cleans(t *testing.T) {
	validator := NewTaskValidator()

	out, err := validator.ValidateUpdate(domain.UpdateTaskInput{ID: " 42 ", Title: strPtr("  Renamed  ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "42" || *out.Title != "Renamed" || out.Completed != nil {
		t.Errorf("unexpected cleaned input %+v", out)
	}
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	if id, err := validator.ValidateTaskID(" abc "); err != nil || id != "abc" {
		t.Errorf("ValidateTaskID() = %q, %v", id, err)
	}

	_, err := validator.ValidateTaskID("")
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Errors[0].Message != "Task ID is required" {
		t.Errorf("unexpected message %q", ve.Errors[0].Message)
	}
}

func TestTaskValidator_WithConfig(t *testing.T) {
	validator := NewTaskValidatorWithConfig(nil)
	if _, err := validator.ValidateTitle(strings.Repeat("a", 255)); err != nil {
		t.Errorf("nil config should use defaults: %v", err)
	}
}
