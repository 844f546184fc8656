package cli

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
)

// mockAPI is an in-memory client.API for command tests.
type mockAPI struct {
	mu       sync.Mutex
	org      domain.Organization
	projects map[string]*domain.Project
	order    []string
	nextID   int
	calls    map[string]int

	orgErr    error
	mutateErr error
}

var _ client.API = (*mockAPI)(nil)

func newMockAPI() *mockAPI {
	return &mockAPI{
		org:      domain.Organization{ID: "org-1", Name: "Voice AI", Slug: "voiceai"},
		projects: map[string]*domain.Project{},
		calls:    map[string]int{},
	}
}

func (m *mockAPI) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockAPI) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *mockAPI) addProject(name string, due *domain.Date) *domain.Project {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &domain.Project{ID: m.id("p"), OrganizationID: m.org.ID, Name: name, Status: domain.ProjectActive, DueDate: due, Tasks: []domain.Task{}}
	m.projects[p.ID] = p
	m.order = append(m.order, p.ID)
	return p
}

func (m *mockAPI) addTask(projectID, title string, status domain.TaskStatus) *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.projects[projectID]
	p.Tasks = append(p.Tasks, domain.Task{ID: m.id("t"), ProjectID: projectID, Title: title, Status: status, Comments: []domain.Comment{}})
	return &p.Tasks[len(p.Tasks)-1]
}

func (m *mockAPI) setOrgErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orgErr = err
}

func (m *mockAPI) Organization(ctx context.Context, slug string) (*domain.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Organization"]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.orgErr != nil {
		return nil, m.orgErr
	}
	org := m.org
	for _, id := range m.order {
		p := *m.projects[id]
		p.TaskCount = len(p.Tasks)
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

func (m *mockAPI) Project(ctx context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Project"]++
	p, ok := m.projects[id]
	if !ok {
		return nil, apperrors.NewGraphQLError("GetProjectDetails", []string{"project not found: " + id}).
			WithContext("codes", []string{"NOT_FOUND"})
	}
	cp := *p
	cp.Tasks = make([]domain.Task, len(p.Tasks))
	for i, t := range p.Tasks {
		t.Comments = append([]domain.Comment{}, t.Comments...)
		cp.Tasks[i] = t
	}
	return &cp, nil
}

func (m *mockAPI) CreateProject(ctx context.Context, orgSlug, name string, dueDate *domain.Date) (*domain.Project, error) {
	m.mu.Lock()
	m.calls["CreateProject"]++
	err := m.mutateErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.addProject(name, dueDate), nil
}

func (m *mockAPI) findTask(taskID string) *domain.Task {
	for _, p := range m.projects {
		for i := range p.Tasks {
			if p.Tasks[i].ID == taskID {
				return &p.Tasks[i]
			}
		}
	}
	return nil
}

func (m *mockAPI) CreateTask(ctx context.Context, projectID, title string) (*domain.Task, error) {
	m.mu.Lock()
	m.calls["CreateTask"]++
	err := m.mutateErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	task := m.addTask(projectID, title, domain.TaskTodo)
	cp := *task
	return &cp, nil
}

func (m *mockAPI) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["UpdateTaskStatus"]++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	task := m.findTask(taskID)
	task.Status = status
	cp := *task
	return &cp, nil
}

func (m *mockAPI) AddComment(ctx context.Context, taskID, content string) (*domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["AddComment"]++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	task := m.findTask(taskID)
	c := domain.Comment{ID: m.id("c"), TaskID: taskID, Content: content, CreatedAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	task.Comments = append(task.Comments, c)
	return &c, nil
}

func (m *mockAPI) UpdateProject(ctx context.Context, projectID, name string, status domain.ProjectStatus, dueDate *domain.Date) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["UpdateProject"]++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	p := m.projects[projectID]
	p.Name = name
	p.Status = status
	p.DueDate = dueDate
	cp := *p
	return &cp, nil
}

// setupTestApp creates an App over a mock API with output captured and the
// clock fixed at 2026-10-17 15:30 UTC.
func setupTestApp(t *testing.T) (*App, *mockAPI, *bytes.Buffer) {
	t.Helper()

	original := timeNow
	timeNow = func() time.Time { return time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = original })

	api := newMockAPI()
	out := &bytes.Buffer{}
	cfg := config.NewConfig()
	cfg.API.OrgSlug = "voiceai"
	return NewApp(api, cfg, WithOutput(out)), api, out
}

func dueDate(t *testing.T, s string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return &d
}
