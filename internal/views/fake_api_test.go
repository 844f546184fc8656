package views

import (
	"context"
	"fmt"
	"sync"

	"taskboard/internal/client"
	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
)

// fakeAPI is an in-memory client.API that counts calls.
type fakeAPI struct {
	mu       sync.Mutex
	org      domain.Organization
	projects map[string]*domain.Project
	order    []string
	nextID   int
	calls    map[string]int

	// orgErr and projectErr fail the next fetches while set.
	orgErr     error
	projectErr error
	mutateErr  error
	// orgHook runs inside Organization before it answers.
	orgHook func(ctx context.Context)
}

var _ client.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		org:      domain.Organization{ID: "org-1", Name: "Voice AI", Slug: "voiceai"},
		projects: map[string]*domain.Project{},
		calls:    map[string]int{},
	}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeAPI) addProject(name string, due *domain.Date) *domain.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &domain.Project{ID: f.id("p"), OrganizationID: f.org.ID, Name: name, Status: domain.ProjectActive, DueDate: due, Tasks: []domain.Task{}}
	f.projects[p.ID] = p
	f.order = append(f.order, p.ID)
	return p
}

func (f *fakeAPI) Organization(ctx context.Context, slug string) (*domain.Organization, error) {
	f.mu.Lock()
	f.calls["Organization"]++
	hook := f.orgHook
	f.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.orgErr != nil {
		return nil, f.orgErr
	}
	org := f.org
	org.Projects = nil
	for _, id := range f.order {
		p := *f.projects[id]
		p.TaskCount = len(p.Tasks)
		p.CompletedTaskCount = 0
		for _, t := range p.Tasks {
			if t.IsDone() {
				p.CompletedTaskCount++
			}
		}
		p.Tasks = nil
		org.Projects = append(org.Projects, p)
	}
	return &org, nil
}

func (f *fakeAPI) Project(ctx context.Context, id string) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Project"]++
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, apperrors.NewGraphQLError("GetProjectDetails", []string{"project not found: " + id})
	}
	cp := *p
	cp.Tasks = make([]domain.Task, len(p.Tasks))
	for i, t := range p.Tasks {
		t.Comments = append([]domain.Comment{}, t.Comments...)
		cp.Tasks[i] = t
	}
	return &cp, nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, orgSlug, name string, dueDate *domain.Date) (*domain.Project, error) {
	f.mu.Lock()
	f.calls["CreateProject"]++
	err := f.mutateErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.addProject(name, dueDate), nil
}

func (f *fakeAPI) findTask(taskID string) *domain.Task {
	for _, p := range f.projects {
		for i := range p.Tasks {
			if p.Tasks[i].ID == taskID {
				return &p.Tasks[i]
			}
		}
	}
	return nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, projectID, title string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateTask"]++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	p := f.projects[projectID]
	task := domain.Task{ID: f.id("t"), ProjectID: projectID, Title: title, Status: domain.TaskTodo, Comments: []domain.Comment{}}
	p.Tasks = append(p.Tasks, task)
	return &task, nil
}

func (f *fakeAPI) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateTaskStatus"]++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	task := f.findTask(taskID)
	task.Status = status
	cp := *task
	return &cp, nil
}

func (f *fakeAPI) AddComment(ctx context.Context, taskID, content string) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["AddComment"]++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	task := f.findTask(taskID)
	c := domain.Comment{ID: f.id("c"), TaskID: taskID, Content: content}
	task.Comments = append(task.Comments, c)
	return &c, nil
}

func (f *fakeAPI) UpdateProject(ctx context.Context, projectID, name string, status domain.ProjectStatus, dueDate *domain.Date) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateProject"]++
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	p := f.projects[projectID]
	p.Name = name
	p.Status = status
	p.DueDate = dueDate
	cp := *p
	return &cp, nil
}
