package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "taskboard/internal/errors"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return 0, errors.New("not supported")
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestHandleDatabaseError(t *testing.T) {
	result := HandleDatabaseError("create task", errors.New("database is locked"))
	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeDatabase))
	assert.Contains(t, result.Error(), "create task")
	assert.Contains(t, result.Error(), "database is locked")

	timeout := HandleDatabaseError("list projects", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.True(t, apperrors.IsErrorType(timeout, apperrors.ErrorTypeTimeout))
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name           string
		result         sql.Result
		expectError    bool
		expectNotFound bool
	}{
		{"one row updated", &MockResult{rowsAffected: 1}, false, false},
		{"no rows updated", &MockResult{rowsAffected: 0}, true, true},
		{"driver error", &MockResult{rowsErr: errors.New("database error")}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "task", "t-1")
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.expectNotFound, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: organizations.slug (2067)")))
	assert.False(t, isUniqueViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, isUniqueViolation(nil))
}
