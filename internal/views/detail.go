package views

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/client"
	"taskboard/internal/domain"
	"taskboard/internal/validation"
)

// EditForm holds the editable copies of a project's fields.
type EditForm struct {
	Name    string
	Status  string
	DueDate string
}

func editFormOf(p *domain.Project) EditForm {
	if p == nil {
		return EditForm{}
	}
	return EditForm{
		Name:    p.Name,
		Status:  string(p.Status),
		DueDate: domain.FormatOptionalDate(p.DueDate),
	}
}

// DetailState is a snapshot of the project page.
type DetailState struct {
	Loading   bool
	Err       error
	Project   *domain.Project
	FetchedAt time.Time

	Editing    bool
	Form       EditForm
	Submitting bool
	// ActionErr holds the last failed mutation or rejected form.
	ActionErr error

	expanded map[string]bool
}

// Expanded reports whether a task's comment thread is open.
func (s DetailState) Expanded(taskID string) bool {
	return s.expanded[taskID]
}

// Tasks renders the project's tasks in order.
func (s DetailState) Tasks() []TaskRow {
	if s.Project == nil {
		return nil
	}
	rows := make([]TaskRow, 0, len(s.Project.Tasks))
	for _, t := range s.Project.Tasks {
		rows = append(rows, NewTaskRow(t, s.expanded[t.ID]))
	}
	return rows
}

// StatusBadge is the project status colour on this page.
func (s DetailState) StatusBadge() string {
	if s.Project == nil {
		return ""
	}
	return s.Project.Status.DetailBadge()
}

// Detail is one project with its tasks and comments. Every change is made by
// a mutation followed by a full re-fetch; nothing is updated optimistically.
type Detail struct {
	api       client.API
	projectID string
	opts      Options
	seq       fetchSeq
	project   *validation.ProjectValidator
	task      *validation.TaskValidator

	mu    sync.RWMutex
	state DetailState
}

// NewDetail creates the view for projectID.
func NewDetail(api client.API, projectID string, opts Options) *Detail {
	return &Detail{
		api:       api,
		projectID: projectID,
		opts:      opts.withDefaults(),
		project:   validation.NewProjectValidator(),
		task:      validation.NewTaskValidator(),
		state:     DetailState{Loading: true, expanded: map[string]bool{}},
	}
}

// ProjectID is the project the view shows.
func (v *Detail) ProjectID() string {
	return v.projectID
}

// State returns a snapshot of the current state.
func (v *Detail) State() DetailState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	state := v.state
	state.expanded = make(map[string]bool, len(v.state.expanded))
	for id, open := range v.state.expanded {
		state.expanded[id] = open
	}
	return state
}

// Submitting is true while a mutation and its re-fetch are in flight.
func (v *Detail) Submitting() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state.Submitting
}

// Load fetches the project with all tasks and comments. A failed first load
// is kept in Err; later failures keep the last good data.
func (v *Detail) Load(ctx context.Context) error {
	seq := v.seq.next()
	project, err := v.api.Project(ctx, v.projectID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !v.seq.apply(seq) {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		if v.state.Project == nil {
			v.state.Err = err
			v.state.Loading = false
		} else {
			v.opts.Logger.Warn("project refetch failed, keeping last data",
				zap.String("project_id", v.projectID), zap.Error(err))
		}
		return err
	}

	previous := editFormOf(v.state.Project)
	v.state.Project = project
	v.state.Err = nil
	v.state.Loading = false
	v.state.FetchedAt = v.opts.Now()
	if current := editFormOf(project); current != previous {
		v.state.Form = current
	}
	return nil
}

// StartEdit enters edit mode with the form reset from the last result.
func (v *Detail) StartEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Project == nil {
		return
	}
	v.state.Editing = true
	v.state.Form = editFormOf(v.state.Project)
	v.state.ActionErr = nil
}

// SetEditFields updates the local copies of the editable fields.
func (v *Detail) SetEditFields(name, status, dueDate string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Form = EditForm{Name: name, Status: status, DueDate: dueDate}
}

// CancelEdit leaves edit mode and discards local edits.
func (v *Detail) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Editing = false
	v.state.Form = editFormOf(v.state.Project)
	v.state.ActionErr = nil
}

// Save sends all three edited fields (a blank due date clears it), leaves
// edit mode and re-fetches. On failure the view stays in edit mode.
func (v *Detail) Save(ctx context.Context) error {
	form := v.State().Form

	status, due, err := v.project.ValidateEditForm(form.Name, form.Status, form.DueDate)
	if err != nil {
		return v.fail(userError(err))
	}

	return v.mutate(ctx, "update project", func(ctx context.Context) error {
		_, err := v.api.UpdateProject(ctx, v.projectID, form.Name, status, due)
		if err == nil {
			v.mu.Lock()
			v.state.Editing = false
			v.mu.Unlock()
		}
		return err
	})
}

// AddTask creates a TODO task titled title and re-fetches.
func (v *Detail) AddTask(ctx context.Context, title string) error {
	if err := v.task.ValidateTitle(title); err != nil {
		return v.fail(userError(err))
	}
	return v.mutate(ctx, "create task", func(ctx context.Context) error {
		_, err := v.api.CreateTask(ctx, v.projectID, title)
		return err
	})
}

// SetTaskStatus moves one task to status and re-fetches.
func (v *Detail) SetTaskStatus(ctx context.Context, taskID, status string) error {
	parsed, err := v.task.ValidateStatus(status)
	if err != nil {
		return v.fail(userError(err))
	}
	return v.mutate(ctx, "update task status", func(ctx context.Context) error {
		_, err := v.api.UpdateTaskStatus(ctx, taskID, parsed)
		return err
	})
}

// ToggleComments opens or closes a task's comment thread.
func (v *Detail) ToggleComments(taskID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.expanded[taskID] = !v.state.expanded[taskID]
}

// AddComment posts content on a task and re-fetches.
func (v *Detail) AddComment(ctx context.Context, taskID, content string) error {
	if err := v.task.ValidateComment(content); err != nil {
		return v.fail(userError(err))
	}
	return v.mutate(ctx, "add comment", func(ctx context.Context) error {
		_, err := v.api.AddComment(ctx, taskID, content)
		return err
	})
}

// mutate runs fn with Submitting set, then re-fetches if it succeeded.
func (v *Detail) mutate(ctx context.Context, action string, fn func(context.Context) error) error {
	v.mu.Lock()
	v.state.Submitting = true
	v.state.ActionErr = nil
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.state.Submitting = false
		v.mu.Unlock()
	}()

	if err := fn(ctx); err != nil {
		v.opts.Logger.Error(action+" failed", zap.String("project_id", v.projectID), zap.Error(err))
		return v.fail(err)
	}

	if err := v.Load(ctx); err != nil {
		v.opts.Logger.Warn("refetch after "+action+" failed", zap.Error(err))
	}
	return nil
}

// ClearActionErr forgets the last failed mutation.
func (v *Detail) ClearActionErr() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.ActionErr = nil
}

func (v *Detail) fail(err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.ActionErr = err
	return err
}
