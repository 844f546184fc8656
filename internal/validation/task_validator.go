package validation

import (
	"taskboard/internal/domain"
)

// TaskValidator provides validation for task and comment forms
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: GetValidator()}
}

// ValidateTitle requires a title with at least one non-space character.
func (tv *TaskValidator) ValidateTitle(title string) error {
	if !tv.validator.IsNonEmptyString(title) {
		ve := NewValidationError()
		ve.AddRequiredError("title")
		return ve
	}
	return nil
}

// ValidateStatus parses a task status.
func (tv *TaskValidator) ValidateStatus(status string) (domain.TaskStatus, error) {
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidValueError("status", status, "must be one of "+joinStatuses(domain.TaskStatuses))
		return "", ve
	}
	return parsed, nil
}

// ValidateComment requires comment text with at least one non-space character.
func (tv *TaskValidator) ValidateComment(content string) error {
	if !tv.validator.IsNonEmptyString(content) {
		ve := NewValidationError()
		ve.AddRequiredError("content")
		return ve
	}
	return nil
}
