package services

import (
	"context"

	"taskboard/internal/domain"
)

// CreateProjectInput carries the createProject mutation arguments.
type CreateProjectInput struct {
	OrgSlug     string       `json:"orgSlug" validate:"notblank"`
	Name        string       `json:"name" validate:"notblank"`
	Description string       `json:"description"`
	DueDate     *domain.Date `json:"dueDate"`
}

// UpdateProjectInput carries the updateProject mutation arguments. Name and
// Status are left unchanged when nil. DueDate is written only when
// SetDueDate is true, and a nil DueDate then clears the date.
type UpdateProjectInput struct {
	ProjectID  string       `json:"projectId" validate:"notblank"`
	Name       *string      `json:"name"`
	Status     *string      `json:"status"`
	DueDate    *domain.Date `json:"dueDate"`
	SetDueDate bool         `json:"-"`
}

// CreateTaskInput carries the createTask mutation arguments.
type CreateTaskInput struct {
	ProjectID     string `json:"projectId" validate:"notblank"`
	Title         string `json:"title" validate:"notblank"`
	Description   string `json:"description"`
	AssigneeEmail string `json:"assigneeEmail"`
}

// UpdateTaskStatusInput carries the updateTaskStatus mutation arguments.
type UpdateTaskStatusInput struct {
	TaskID string `json:"taskId" validate:"notblank"`
	Status string `json:"status" validate:"oneof=TODO IN_PROGRESS DONE"`
}

// AddCommentInput carries the addComment mutation arguments.
type AddCommentInput struct {
	TaskID      string `json:"taskId" validate:"notblank"`
	Content     string `json:"content" validate:"notblank"`
	AuthorEmail string `json:"authorEmail"`
}

// OrganizationService looks up and bootstraps organizations
type OrganizationService interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	// Ensure creates the organization unless one with the slug exists.
	Ensure(ctx context.Context, name, slug, contactEmail string) (*domain.Organization, bool, error)
}

// ProjectService handles project reads and writes
type ProjectService interface {
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	// GetWithTasks loads the project, its tasks and every task's comments.
	GetWithTasks(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, input UpdateProjectInput) (*domain.Project, error)
}

// TaskService handles task reads and writes
type TaskService interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, input UpdateTaskStatusInput) (*domain.Task, error)
}

// CommentService handles comment reads and writes
type CommentService interface {
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	Add(ctx context.Context, input AddCommentInput) (*domain.Comment, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Organizations OrganizationService
	Projects      ProjectService
	Tasks         TaskService
	Comments      CommentService
}
