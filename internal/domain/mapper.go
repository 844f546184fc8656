package domain

import (
	"taskboard/internal/repository/sqlite"
)

// OrganizationMapper handles conversion between domain and database Organization models.
type OrganizationMapper struct{}

// ToDatabase converts a domain Organization to a database Organization.
func (m *OrganizationMapper) ToDatabase(org Organization) sqlite.Organization {
	return sqlite.Organization{
		ID:           org.ID,
		Name:         org.Name,
		Slug:         org.Slug,
		ContactEmail: org.ContactEmail,
		CreatedAt:    org.CreatedAt,
	}
}

// FromDatabase converts a database Organization to a domain Organization.
func (m *OrganizationMapper) FromDatabase(row sqlite.Organization) Organization {
	return Organization{
		ID:           row.ID,
		Name:         row.Name,
		Slug:         row.Slug,
		ContactEmail: row.ContactEmail,
		CreatedAt:    row.CreatedAt,
	}
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// ToDatabase converts a domain Project to a database Project. Counts are
// derived on read and not copied.
func (m *ProjectMapper) ToDatabase(project Project) sqlite.Project {
	var due *string
	if project.DueDate != nil {
		s := project.DueDate.String()
		due = &s
	}
	return sqlite.Project{
		ID:             project.ID,
		OrganizationID: project.OrganizationID,
		Name:           project.Name,
		Description:    project.Description,
		Status:         string(project.Status),
		DueDate:        due,
		CreatedAt:      project.CreatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project. A stored
// due date that does not parse is dropped.
func (m *ProjectMapper) FromDatabase(row sqlite.Project) Project {
	var due *Date
	if row.DueDate != nil {
		if d, err := ParseDate(*row.DueDate); err == nil {
			due = &d
		}
	}
	return Project{
		ID:                 row.ID,
		OrganizationID:     row.OrganizationID,
		Name:               row.Name,
		Description:        row.Description,
		Status:             ProjectStatus(row.Status),
		DueDate:            due,
		CreatedAt:          row.CreatedAt,
		TaskCount:          row.TaskCount,
		CompletedTaskCount: row.CompletedTaskCount,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(rows []*sqlite.Project) []Project {
	projects := make([]Project, len(rows))
	for i, row := range rows {
		projects[i] = m.FromDatabase(*row)
	}
	return projects
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(task Task) sqlite.Task {
	return sqlite.Task{
		ID:            task.ID,
		ProjectID:     task.ProjectID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        string(task.Status),
		AssigneeEmail: task.AssigneeEmail,
		CreatedAt:     task.CreatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(row sqlite.Task) Task {
	return Task{
		ID:            row.ID,
		ProjectID:     row.ProjectID,
		Title:         row.Title,
		Description:   row.Description,
		Status:        TaskStatus(row.Status),
		AssigneeEmail: row.AssigneeEmail,
		CreatedAt:     row.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.Task) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// CommentMapper handles conversion between domain and database Comment models.
type CommentMapper struct{}

// ToDatabase converts a domain Comment to a database Comment.
func (m *CommentMapper) ToDatabase(comment Comment) sqlite.Comment {
	return sqlite.Comment{
		ID:          comment.ID,
		TaskID:      comment.TaskID,
		Content:     comment.Content,
		AuthorEmail: comment.AuthorEmail,
		CreatedAt:   comment.CreatedAt,
	}
}

// FromDatabase converts a database Comment to a domain Comment.
func (m *CommentMapper) FromDatabase(row sqlite.Comment) Comment {
	return Comment{
		ID:          row.ID,
		TaskID:      row.TaskID,
		Content:     row.Content,
		AuthorEmail: row.AuthorEmail,
		CreatedAt:   row.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Comments to domain Comments.
func (m *CommentMapper) FromDatabaseSlice(rows []*sqlite.Comment) []Comment {
	comments := make([]Comment, len(rows))
	for i, row := range rows {
		comments[i] = m.FromDatabase(*row)
	}
	return comments
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Organization *OrganizationMapper
	Project      *ProjectMapper
	Task         *TaskMapper
	Comment      *CommentMapper
}

// NewMapper creates a new Mapper with all sub-mappers initialized.
func NewMapper() *Mapper {
	return &Mapper{
		Organization: &OrganizationMapper{},
		Project:      &ProjectMapper{},
		Task:         &TaskMapper{},
		Comment:      &CommentMapper{},
	}
}
