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

// DefaultPollInterval is how often the dashboard re-fetches.
const DefaultPollInterval = 2 * time.Second

// CreateProjectForm is the dashboard's create-project form.
type CreateProjectForm struct {
	Name    string
	DueDate string
}

// DashboardState is a snapshot of the dashboard.
type DashboardState struct {
	// Loading is true until the first fetch completes.
	Loading bool
	// Err holds a failed first load. Later poll failures keep the last good data.
	Err          error
	Organization *domain.Organization
	FetchedAt    time.Time
	Form         CreateProjectForm
	FormErr      error
	Submitting   bool
}

// Dashboard lists an organization's projects and polls for changes.
type Dashboard struct {
	api     client.API
	slug    string
	opts    Options
	seq     fetchSeq
	project *validation.ProjectValidator

	mu        sync.RWMutex
	state     DashboardState
	interval  time.Duration
	listeners []func(DashboardState)
}

// NewDashboard creates a dashboard for the organization slug.
func NewDashboard(api client.API, slug string, interval time.Duration, opts Options) *Dashboard {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Dashboard{
		api:      api,
		slug:     slug,
		opts:     opts.withDefaults(),
		project:  validation.NewProjectValidator(),
		state:    DashboardState{Loading: true},
		interval: interval,
	}
}

// Slug is the organization the dashboard shows.
func (d *Dashboard) Slug() string {
	return d.slug
}

// State returns a snapshot of the current state.
func (d *Dashboard) State() DashboardState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Cards renders the current projects relative to now.
func (d *Dashboard) Cards() []ProjectCard {
	state := d.State()
	if state.Organization == nil {
		return nil
	}
	now := d.opts.Now()
	cards := make([]ProjectCard, 0, len(state.Organization.Projects))
	for _, p := range state.Organization.Projects {
		cards = append(cards, NewProjectCard(p, now))
	}
	return cards
}

// Interval returns the current poll interval.
func (d *Dashboard) Interval() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.interval
}

// SetInterval changes the poll interval from the next tick on.
func (d *Dashboard) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	d.mu.Lock()
	d.interval = interval
	d.mu.Unlock()
}

// OnChange registers fn to run after every applied fetch.
func (d *Dashboard) OnChange(fn func(DashboardState)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Run fetches immediately and then every poll interval until ctx is
// cancelled. Cancelling ctx also aborts the request in flight.
func (d *Dashboard) Run(ctx context.Context) error {
	d.Refresh(ctx)

	current := d.Interval()
	ticker := time.NewTicker(current)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Refresh(ctx)
			if next := d.Interval(); next != current {
				current = next
				ticker.Reset(current)
			}
		}
	}
}

// Refresh performs one full fetch and applies it unless a newer fetch has
// already been applied. It returns the fetch error, if any.
func (d *Dashboard) Refresh(ctx context.Context) error {
	seq := d.seq.next()
	org, err := d.api.Organization(ctx, d.slug)
	if ctx.Err() != nil {
		// Torn down while in flight.
		return ctx.Err()
	}
	if !d.seq.apply(seq) {
		d.recordPoll("stale")
		return err
	}

	d.mu.Lock()
	if err != nil {
		if d.state.Organization == nil {
			d.state.Err = err
			d.state.Loading = false
		} else {
			d.opts.Logger.Warn("dashboard poll failed, keeping last data",
				zap.String("slug", d.slug), zap.Error(err))
		}
	} else {
		d.state.Organization = org
		d.state.Err = nil
		d.state.Loading = false
		d.state.FetchedAt = d.opts.Now()
	}
	state := d.state
	listeners := append([]func(DashboardState){}, d.listeners...)
	d.mu.Unlock()

	if err != nil {
		d.recordPoll("error")
		return err
	}
	d.recordPoll("applied")
	for _, fn := range listeners {
		fn(state)
	}
	return nil
}

// SetForm stores the form inputs without submitting them.
func (d *Dashboard) SetForm(form CreateProjectForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Form = form
}

// CreateProject submits the create-project form. A blank name or a
// malformed due date fails validation without calling the API. On success
// the form is cleared and the dashboard re-fetched; on failure the form
// keeps what was entered.
func (d *Dashboard) CreateProject(ctx context.Context, form CreateProjectForm) error {
	d.mu.Lock()
	d.state.Form = form
	d.state.FormErr = nil
	d.mu.Unlock()

	due, err := d.project.ValidateCreateForm(form.Name, form.DueDate)
	if err != nil {
		err = userError(err)
		d.setFormErr(err)
		return err
	}

	d.mu.Lock()
	d.state.Submitting = true
	d.mu.Unlock()

	_, err = d.api.CreateProject(ctx, d.slug, form.Name, due)

	d.mu.Lock()
	d.state.Submitting = false
	if err == nil {
		d.state.Form = CreateProjectForm{}
	} else {
		d.state.FormErr = err
	}
	d.mu.Unlock()

	if err != nil {
		d.opts.Logger.Error("create project failed", zap.String("slug", d.slug), zap.Error(err))
		return err
	}

	if err := d.Refresh(ctx); err != nil {
		d.opts.Logger.Warn("refetch after create failed", zap.Error(err))
	}
	return nil
}

// ClearFormError drops a rejected submission: the error and the inputs that
// caused it. A form without an error is left alone.
func (d *Dashboard) ClearFormError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.FormErr == nil {
		return
	}
	d.state.FormErr = nil
	d.state.Form = CreateProjectForm{}
}

func (d *Dashboard) setFormErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.FormErr = err
}

func (d *Dashboard) recordPoll(result string) {
	if d.opts.Metrics != nil {
		d.opts.Metrics.RecordDashboardPoll(result)
	}
}
