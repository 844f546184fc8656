package sqlite

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanner implements the Scanner interface for testing
type TestScanner struct {
	data []interface{}
	err  error
}

func (ts *TestScanner) Scan(dest ...interface{}) error {
	if ts.err != nil {
		return ts.err
	}
	if len(dest) != len(ts.data) {
		return errors.New("mismatch in number of destinations")
	}
	for i, d := range dest {
		switch v := d.(type) {
		case *int:
			*v = ts.data[i].(int)
		case *string:
			*v = ts.data[i].(string)
		case *sql.NullString:
			*v = ts.data[i].(sql.NullString)
		}
	}
	return nil
}

// TestRows replays a fixed list of scanners.
type TestRows struct {
	rows    []*TestScanner
	current int
	err     error
}

func (tr *TestRows) Next() bool {
	tr.current++
	return tr.current <= len(tr.rows)
}

func (tr *TestRows) Scan(dest ...interface{}) error {
	return tr.rows[tr.current-1].Scan(dest...)
}

func (tr *TestRows) Err() error {
	return tr.err
}

func TestScanProject(t *testing.T) {
	scanner := &TestScanner{data: []interface{}{
		"p-1", "o-1", "Launch", "", "ACTIVE",
		sql.NullString{String: "2026-10-18", Valid: true},
		"2026-10-17T09:00:00.000000000Z",
		3, 1,
	}}

	project, err := ScanProject(scanner)
	require.NoError(t, err)
	assert.Equal(t, "Launch", project.Name)
	require.NotNil(t, project.DueDate)
	assert.Equal(t, "2026-10-18", *project.DueDate)
	assert.Equal(t, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), project.CreatedAt)
	assert.Equal(t, 3, project.TaskCount)
	assert.Equal(t, 1, project.CompletedTaskCount)
}

func TestScanProjectWithoutDueDate(t *testing.T) {
	scanner := &TestScanner{data: []interface{}{
		"p-1", "o-1", "Legacy", "", "ON_HOLD", sql.NullString{}, "2026-10-17T09:00:00Z", 0, 0,
	}}

	project, err := ScanProject(scanner)
	require.NoError(t, err)
	assert.Nil(t, project.DueDate)
}

func TestScanTaskBadTimestamp(t *testing.T) {
	scanner := &TestScanner{data: []interface{}{"t-1", "p-1", "Draft release notes", "", "TODO", "", "yesterday"}}

	_, err := ScanTask(scanner)
	assert.Error(t, err)
}

func TestScanComments(t *testing.T) {
	rows := &TestRows{rows: []*TestScanner{
		{data: []interface{}{"c-1", "t-1", "first", "", "2026-10-17T09:00:00Z"}},
		{data: []interface{}{"c-2", "t-1", "second", "ada@voice.ai", "2026-10-17T10:00:00Z"}},
	}}

	comments, err := ScanComments(rows)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[1].Content)
	assert.Equal(t, "ada@voice.ai", comments[1].AuthorEmail)
}

func TestScanCommentsPropagatesErrors(t *testing.T) {
	rows := &TestRows{rows: []*TestScanner{{err: errors.New("scan failed")}}}
	_, err := ScanComments(rows)
	assert.EqualError(t, err, "scan failed")

	rows = &TestRows{err: errors.New("cursor closed")}
	_, err = ScanComments(rows)
	assert.EqualError(t, err, "cursor closed")
}
