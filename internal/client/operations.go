package client

import (
	"context"
	"time"

	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
)

// API is the set of typed operations the views depend on.
type API interface {
	Organization(ctx context.Context, slug string) (*domain.Organization, error)
	Project(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, orgSlug, name string, dueDate *domain.Date) (*domain.Project, error)
	CreateTask(ctx context.Context, projectID, title string) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error)
	AddComment(ctx context.Context, taskID, content string) (*domain.Comment, error)
	UpdateProject(ctx context.Context, projectID, name string, status domain.ProjectStatus, dueDate *domain.Date) (*domain.Project, error)
}

var _ API = (*Client)(nil)

type commentData struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type taskData struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Status        string        `json:"status"`
	AssigneeEmail string        `json:"assigneeEmail"`
	Comments      []commentData `json:"comments"`
}

type projectData struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	DueDate            *string    `json:"dueDate"`
	TaskCount          int        `json:"taskCount"`
	CompletedTaskCount int        `json:"completedTaskCount"`
	Tasks              []taskData `json:"tasks"`
}

type organizationData struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Projects []projectData `json:"projects"`
}

func (c commentData) toDomain(taskID string) domain.Comment {
	return domain.Comment{ID: c.ID, TaskID: taskID, Content: c.Content, CreatedAt: c.CreatedAt}
}

func (t taskData) toDomain(projectID string) domain.Task {
	task := domain.Task{
		ID:            t.ID,
		ProjectID:     projectID,
		Title:         t.Title,
		Status:        domain.TaskStatus(t.Status),
		AssigneeEmail: t.AssigneeEmail,
	}
	if t.Comments != nil {
		task.Comments = make([]domain.Comment, 0, len(t.Comments))
		for _, c := range t.Comments {
			task.Comments = append(task.Comments, c.toDomain(t.ID))
		}
	}
	return task
}

func (p projectData) toDomain(organizationID string) domain.Project {
	project := domain.Project{
		ID:                 p.ID,
		OrganizationID:     organizationID,
		Name:               p.Name,
		Status:             domain.ProjectStatus(p.Status),
		TaskCount:          p.TaskCount,
		CompletedTaskCount: p.CompletedTaskCount,
	}
	if p.DueDate != nil {
		// A date the server cannot have produced is treated as absent.
		if d, err := domain.ParseDate(*p.DueDate); err == nil {
			project.DueDate = &d
		}
	}
	if p.Tasks != nil {
		project.Tasks = make([]domain.Task, 0, len(p.Tasks))
		done := 0
		for _, t := range p.Tasks {
			task := t.toDomain(p.ID)
			if task.IsDone() {
				done++
			}
			project.Tasks = append(project.Tasks, task)
		}
		project.TaskCount = len(project.Tasks)
		project.CompletedTaskCount = done
	}
	return project
}

// Organization fetches an organization and its projects with task counts.
func (c *Client) Organization(ctx context.Context, slug string) (*domain.Organization, error) {
	var out struct {
		Organization *organizationData `json:"organization"`
	}
	if err := c.Execute(ctx, GetOrgProjects.Document, map[string]interface{}{"slug": slug}, &out); err != nil {
		return nil, err
	}
	if out.Organization == nil {
		return nil, apperrors.NewNotFoundError("organization", slug)
	}

	org := &domain.Organization{
		ID:       out.Organization.ID,
		Name:     out.Organization.Name,
		Slug:     slug,
		Projects: make([]domain.Project, 0, len(out.Organization.Projects)),
	}
	for _, p := range out.Organization.Projects {
		org.Projects = append(org.Projects, p.toDomain(org.ID))
	}
	return org, nil
}

// Project fetches a project with every task and comment.
func (c *Client) Project(ctx context.Context, id string) (*domain.Project, error) {
	var out struct {
		Project *projectData `json:"project"`
	}
	if err := c.Execute(ctx, GetProjectDetails.Document, map[string]interface{}{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Project == nil {
		return nil, apperrors.NewNotFoundError("project", id)
	}
	if out.Project.Tasks == nil {
		out.Project.Tasks = []taskData{}
	}
	project := out.Project.toDomain("")
	return &project, nil
}

// CreateProject creates a project; a nil dueDate sends null.
func (c *Client) CreateProject(ctx context.Context, orgSlug, name string, dueDate *domain.Date) (*domain.Project, error) {
	var out struct {
		CreateProject struct {
			Project projectData `json:"project"`
		} `json:"createProject"`
	}
	vars := map[string]interface{}{
		"orgSlug": orgSlug,
		"name":    name,
		"dueDate": dateVariable(dueDate),
	}
	if err := c.Execute(ctx, CreateProject.Document, vars, &out); err != nil {
		return nil, err
	}
	project := out.CreateProject.Project.toDomain("")
	return &project, nil
}

// CreateTask adds a task to a project.
func (c *Client) CreateTask(ctx context.Context, projectID, title string) (*domain.Task, error) {
	var out struct {
		CreateTask struct {
			Task taskData `json:"task"`
		} `json:"createTask"`
	}
	vars := map[string]interface{}{"projectId": projectID, "title": title}
	if err := c.Execute(ctx, CreateTask.Document, vars, &out); err != nil {
		return nil, err
	}
	task := out.CreateTask.Task.toDomain(projectID)
	return &task, nil
}

// UpdateTaskStatus moves a task to status.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	var out struct {
		UpdateTaskStatus struct {
			Task taskData `json:"task"`
		} `json:"updateTaskStatus"`
	}
	vars := map[string]interface{}{"taskId": taskID, "status": string(status)}
	if err := c.Execute(ctx, UpdateTaskStatus.Document, vars, &out); err != nil {
		return nil, err
	}
	task := out.UpdateTaskStatus.Task.toDomain("")
	return &task, nil
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID, content string) (*domain.Comment, error) {
	var out struct {
		AddComment struct {
			Comment commentData `json:"comment"`
		} `json:"addComment"`
	}
	vars := map[string]interface{}{"taskId": taskID, "content": content}
	if err := c.Execute(ctx, AddComment.Document, vars, &out); err != nil {
		return nil, err
	}
	comment := out.AddComment.Comment.toDomain(taskID)
	return &comment, nil
}

// UpdateProject sends all three editable fields; a nil dueDate clears the date.
func (c *Client) UpdateProject(ctx context.Context, projectID, name string, status domain.ProjectStatus, dueDate *domain.Date) (*domain.Project, error) {
	var out struct {
		UpdateProject struct {
			Project projectData `json:"project"`
		} `json:"updateProject"`
	}
	vars := map[string]interface{}{
		"projectId": projectID,
		"name":      name,
		"status":    string(status),
		"dueDate":   dateVariable(dueDate),
	}
	if err := c.Execute(ctx, UpdateProject.Document, vars, &out); err != nil {
		return nil, err
	}
	project := out.UpdateProject.Project.toDomain("")
	return &project, nil
}

func dateVariable(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}
