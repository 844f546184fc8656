package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"Transport", ErrorTypeTransport, "transport"},
		{"GraphQL", ErrorTypeGraphQL, "graphql"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withoutCause := &AppError{Type: ErrorTypeValidation, Message: "invalid input"}
	assert.Equal(t, "validation: invalid input", withoutCause.Error())

	withCause := &AppError{Type: ErrorTypeDatabase, Message: "connection failed", Cause: errors.New("timeout")}
	assert.Equal(t, "database: connection failed (caused by: timeout)", withCause.Error())
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewTransportError("http://127.0.0.1:8000/graphql", 0, cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeTransport, Code: "TRANSPORT_ERROR"}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeGraphQL, Code: "GRAPHQL_ERROR"}))
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeNotFound}

	_, ok := err.GetContext("missing")
	assert.False(t, ok)

	err.WithContext("project_id", "p-1")
	value, ok := err.GetContext("project_id")
	assert.True(t, ok)
	assert.Equal(t, "p-1", value)
}
