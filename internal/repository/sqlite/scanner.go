package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanAll drains rows through scan.
func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanOrganization scans a single organization from a database row
func ScanOrganization(scanner Scanner) (*Organization, error) {
	org := &Organization{}
	var createdAt string
	if err := scanner.Scan(&org.ID, &org.Name, &org.Slug, &org.ContactEmail, &createdAt); err != nil {
		return nil, err
	}
	t, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	org.CreatedAt = t
	return org, nil
}

// ScanProject scans a project row including its two aggregate task counts.
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var dueDate sql.NullString
	var createdAt string
	err := scanner.Scan(
		&project.ID,
		&project.OrganizationID,
		&project.Name,
		&project.Description,
		&project.Status,
		&dueDate,
		&createdAt,
		&project.TaskCount,
		&project.CompletedTaskCount,
	)
	if err != nil {
		return nil, err
	}
	project.DueDate = StringPtrFromDB(dueDate)
	if project.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return scanAll(rows, ScanProject)
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var createdAt string
	err := scanner.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.AssigneeEmail,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	return scanAll(rows, ScanTask)
}

// ScanComment scans a single comment from a database row
func ScanComment(scanner Scanner) (*Comment, error) {
	comment := &Comment{}
	var createdAt string
	err := scanner.Scan(&comment.ID, &comment.TaskID, &comment.Content, &comment.AuthorEmail, &createdAt)
	if err != nil {
		return nil, err
	}
	if comment.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return comment, nil
}

// ScanComments scans multiple comments from database rows
func ScanComments(rows Rows) ([]*Comment, error) {
	return scanAll(rows, ScanComment)
}
