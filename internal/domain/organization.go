package domain

import "time"

// Organization owns projects and is addressed by its slug.
type Organization struct {
	ID           string
	Name         string
	Slug         string
	ContactEmail string
	CreatedAt    time.Time
	Projects     []Project
}

// Project is a unit of work inside an organization.
type Project struct {
	ID                 string
	OrganizationID     string
	Name               string
	Description        string
	Status             ProjectStatus
	DueDate            *Date
	CreatedAt          time.Time
	TaskCount          int
	CompletedTaskCount int
	Tasks              []Task
}

// Progress is the completed share of tasks as a whole percentage, 0 when
// the project has no tasks.
func (p Project) Progress() int {
	if p.TaskCount <= 0 {
		return 0
	}
	return p.CompletedTaskCount * 100 / p.TaskCount
}

// Task belongs to exactly one project.
type Task struct {
	ID            string
	ProjectID     string
	Title         string
	Description   string
	Status        TaskStatus
	AssigneeEmail string
	CreatedAt     time.Time
	Comments      []Comment
}

// IsDone reports whether the task is finished.
func (t Task) IsDone() bool {
	return t.Status == TaskDone
}

// Assignee returns the assignee email or "Unassigned".
func (t Task) Assignee() string {
	if t.AssigneeEmail == "" {
		return "Unassigned"
	}
	return t.AssigneeEmail
}

// Comment is a note attached to a task.
type Comment struct {
	ID          string
	TaskID      string
	Content     string
	AuthorEmail string
	CreatedAt   time.Time
}
