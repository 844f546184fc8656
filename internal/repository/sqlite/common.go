package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"taskboard/internal/errors"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HandleDatabaseError converts a driver error into an AppError. Deadline
// errors become timeouts so callers can tell a slow database from a broken one.
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err.Error())
	}
	return errors.NewDatabaseError(operation, err)
}

// isUniqueViolation reports a UNIQUE constraint failure from the sqlite driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ValidateRowsAffected turns an update that matched nothing into a not-found error.
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// insert runs an INSERT and maps its failure.
func insert(ctx context.Context, q querier, entityType string, query string, args ...interface{}) error {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return HandleDatabaseError("create "+entityType, err)
	}
	return nil
}

// update runs an UPDATE that must match the row identified by id.
func update(ctx context.Context, q querier, entityType string, id string, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("update "+entityType, err)
	}
	return ValidateRowsAffected(result, entityType, id)
}

// queryOne scans the single row identified by id; no row is a not-found error.
func queryOne[T any](ctx context.Context, q querier, entityType string, id string, scan func(Scanner) (*T, error), query string, args ...interface{}) (*T, error) {
	result, err := scan(q.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(entityType, id)
	}
	if err != nil {
		return nil, HandleDatabaseError("get "+entityType, err)
	}
	return result, nil
}

// queryAll scans every row of query, in the order the query returns them.
func queryAll[T any](ctx context.Context, q querier, entityType string, scan func(Rows) ([]*T, error), query string, args ...interface{}) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("list "+entityType, err)
	}
	defer rows.Close()

	results, err := scan(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return results, nil
}
