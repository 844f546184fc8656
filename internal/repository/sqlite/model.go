package sqlite

import "time"

// Organization is a row of the organizations table.
type Organization struct {
	ID           string
	Name         string
	Slug         string
	ContactEmail string
	CreatedAt    time.Time
}

// Project is a row of the projects table joined with its task counts.
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	Status         string
	DueDate        *string // YYYY-MM-DD, NULL when unset
	CreatedAt      time.Time

	// Derived from the tasks table on read, never written.
	TaskCount          int
	CompletedTaskCount int
}

// Task is a row of the tasks table.
type Task struct {
	ID            string
	ProjectID     string
	Title         string
	Description   string
	Status        string
	AssigneeEmail string
	CreatedAt     time.Time
}

// Comment is a row of the comments table.
type Comment struct {
	ID          string
	TaskID      string
	Content     string
	AuthorEmail string
	CreatedAt   time.Time
}
