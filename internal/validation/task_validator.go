package validation

import (
	"task-manager/internal/config"
	"task-manager/internal/domain"
)

const (
	FieldID     = "id"
	FieldTitle  = "title"
	FieldFields = "fields"
)

// TaskValidator validates task requests before they reach the store. Every method
// returns either the cleaned value and a nil error, or a *ValidationError listing
// each offending field.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured title limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle trims the title and checks it is present and within length limits
func (tv *TaskValidator) ValidateTitle(title string) (string, error) {
	ve := NewValidationError()
	tv.checkTitle(ve, title)
	if err := ve.ErrorOrNil(); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}

func (tv *TaskValidator) checkTitle(validationError *ValidationError, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)

	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(FieldTitle, "Task title is required")
		return
	}

	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError(FieldTitle, nil, tv.validator.TitleMinLength(), tv.validator.TitleMaxLength())
	}
}

// ValidateCreate validates a create request and returns it with the title trimmed
func (tv *TaskValidator) ValidateCreate(in domain.CreateTaskInput) (domain.CreateTaskInput, error) {
	title, err := tv.ValidateTitle(in.Title)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}
	return domain.CreateTaskInput{Title: title}, nil
}

// ValidateUpdate validates an update request. The id is required, a supplied title
// follows the create rules, and at least one of title or completed must be present.
func (tv *TaskValidator) ValidateUpdate(in domain.UpdateTaskInput) (domain.UpdateTaskInput, error) {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(in.ID) {
		validationError.AddRequiredError(FieldID, "Task ID is required")
	}

	if in.Title != nil {
		tv.checkTitle(validationError, *in.Title)
	}

	if in.Patch().IsEmpty() {
		validationError.AddError(FieldFields, ErrorTypeRequired, "at least one of title or completed must be provided", nil)
	}

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	cleaned := domain.UpdateTaskInput{
		ID:        tv.validator.TrimAndValidateString(in.ID),
		Completed: in.Completed,
	}
	if in.Title != nil {
		title := tv.validator.TrimAndValidateString(*in.Title)
		cleaned.Title = &title
	}
	return cleaned, nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) (string, error) {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError(FieldID, "Task ID is required")
		return "", validationError
	}
	return tv.validator.TrimAndValidateString(id), nil
}
