package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator combines struct tag validation with the field helpers used by
// the entity validators.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := &Validator{validate: validator.New()}

	// Report json names so messages match the wire field names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Struct validates the tags of s and converts failures into a ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}

	validationError := NewValidationError()
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "notblank":
			validationError.AddRequiredError(fe.Field())
		case "oneof":
			reason := fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
			validationError.AddInvalidValueError(fe.Field(), fe.Value(), reason)
		default:
			validationError.AddInvalidValueError(fe.Field(), fe.Value(), fmt.Sprintf("failed %q", fe.Tag()))
		}
	}
	return validationError
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
