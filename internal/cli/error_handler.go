package cli

import (
	stderrors "errors"

	"taskboard/internal/config"
	"taskboard/internal/errors"
	"taskboard/internal/validation"
)

// Exit codes returned by the taskboard binary.
const (
	ExitSuccess = 0
	// ExitUserError covers bad arguments, rejected input and unknown ids.
	ExitUserError = 1
	// ExitConfigError means the configuration could not be loaded.
	ExitConfigError = 2
	// ExitBackendError means the server was unreachable or failed.
	ExitBackendError = 3
)

// CommandError is a failed command: a message for the terminal and the
// error that caused it.
type CommandError struct {
	Message string
	Err     error
}

func (e *CommandError) Error() string { return e.Message }

func (e *CommandError) Unwrap() error { return e.Err }

// ErrorHandler turns command failures into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message of err with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	message := err.Error()
	if validationErr, ok := err.(*validation.ValidationError); ok {
		message = validationErr.GetUserFriendlyMessage()
	} else if _, ok := errors.AsAppError(err); ok {
		message = errors.GetUserMessage(err)
	}
	return &CommandError{Message: "failed to " + operation + ": " + message, Err: err}
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation) || errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// IsNotFoundError reports a missing organization, project or task, whether
// raised locally or by the server.
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound) || errors.HasGraphQLCode(err, "NOT_FOUND")
}

// IsTransportError checks if the server could not be reached
func (eh *ErrorHandler) IsTransportError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeTransport)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// ExitCode maps a command failure to the process exit code.
func (eh *ErrorHandler) ExitCode(err error) int {
	var configErr *config.ConfigError
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.As(err, &configErr):
		return ExitConfigError
	case eh.IsValidationError(err), eh.IsNotFoundError(err),
		errors.HasGraphQLCode(err, "VALIDATION_FAILED"), errors.HasGraphQLCode(err, "INVALID_INPUT"):
		return ExitUserError
	case eh.IsTransportError(err), errors.IsErrorType(err, errors.ErrorTypeGraphQL),
		errors.IsErrorType(err, errors.ErrorTypeTimeout):
		return ExitBackendError
	default:
		return ExitUserError
	}
}

// ExitCode is the exit code for err returned by RootCommand.Execute.
func ExitCode(err error) int {
	return NewErrorHandler().ExitCode(err)
}
