package validation

import (
	"strings"

	"taskboard/internal/domain"
)

// ProjectValidator checks project forms before they reach the API.
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: GetValidator()}
}

// ValidateName requires a name with at least one non-space character.
func (pv *ProjectValidator) ValidateName(name string) error {
	if !pv.validator.IsNonEmptyString(name) {
		ve := NewValidationError()
		ve.AddRequiredError("name")
		return ve
	}
	return nil
}

// ValidateStatus parses a project status.
func (pv *ProjectValidator) ValidateStatus(status string) (domain.ProjectStatus, error) {
	parsed, err := domain.ParseProjectStatus(status)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidValueError("status", status, "must be one of "+joinStatuses(domain.ProjectStatuses))
		return "", ve
	}
	return parsed, nil
}

// ValidateDueDate parses an optional due date; blank input means no date.
func (pv *ProjectValidator) ValidateDueDate(dueDate string) (*domain.Date, error) {
	due, err := domain.ParseOptionalDate(dueDate)
	if err != nil {
		ve := NewValidationError()
		ve.AddInvalidFormatError("dueDate", dueDate, domain.DateLayout)
		return nil, ve
	}
	return due, nil
}

// ValidateCreateForm checks the dashboard's create-project form and returns
// the parsed due date.
func (pv *ProjectValidator) ValidateCreateForm(name, dueDate string) (*domain.Date, error) {
	ve := NewValidationError()
	ve.Merge(pv.ValidateName(name))
	due, err := pv.ValidateDueDate(dueDate)
	ve.Merge(err)
	if err := ve.orNil(); err != nil {
		return nil, err
	}
	return due, nil
}

// ValidateEditForm checks the project edit form and returns its parsed status and due date.
func (pv *ProjectValidator) ValidateEditForm(name, status, dueDate string) (domain.ProjectStatus, *domain.Date, error) {
	ve := NewValidationError()
	ve.Merge(pv.ValidateName(name))
	parsedStatus, err := pv.ValidateStatus(status)
	ve.Merge(err)
	due, err := pv.ValidateDueDate(dueDate)
	ve.Merge(err)
	if err := ve.orNil(); err != nil {
		return "", nil, err
	}
	return parsedStatus, due, nil
}

func joinStatuses[S ~string](statuses []S) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
