package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/metrics"
)

var fixedNow = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Now: func() time.Time { return fixedNow }}
}

func TestDashboardFirstLoad(t *testing.T) {
	api := newFakeAPI()
	api.addProject("Launch", nil)
	d := NewDashboard(api, "voiceai", time.Second, testOptions())

	assert.True(t, d.State().Loading)

	require.NoError(t, d.Refresh(context.Background()))

	state := d.State()
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	require.NotNil(t, state.Organization)
	assert.Equal(t, "Voice AI", state.Organization.Name)
	assert.Equal(t, fixedNow, state.FetchedAt)
}

func TestDashboardErrorOnlyOnFirstLoad(t *testing.T) {
	api := newFakeAPI()
	collector := metrics.NewCollector()
	opts := testOptions()
	opts.Metrics = collector
	d := NewDashboard(api, "voiceai", time.Second, opts)

	api.orgErr = errors.New("connection refused")
	require.Error(t, d.Refresh(context.Background()))
	state := d.State()
	assert.False(t, state.Loading)
	assert.EqualError(t, state.Err, "connection refused")

	api.orgErr = nil
	require.NoError(t, d.Refresh(context.Background()))
	assert.NoError(t, d.State().Err)

	api.orgErr = errors.New("flaky")
	require.Error(t, d.Refresh(context.Background()))
	state = d.State()
	assert.NoError(t, state.Err, "later poll failures keep the last good data")
	assert.NotNil(t, state.Organization)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.DashboardPolls.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.DashboardPolls.WithLabelValues("applied")))
}

func TestDashboardCreateProjectThenListed(t *testing.T) {
	api := newFakeAPI()
	d := NewDashboard(api, "voiceai", time.Second, testOptions())
	require.NoError(t, d.Refresh(context.Background()))

	require.NoError(t, d.CreateProject(context.Background(), CreateProjectForm{Name: "Launch", DueDate: "2026-10-18"}))

	state := d.State()
	assert.Equal(t, CreateProjectForm{}, state.Form, "form is cleared")
	assert.NoError(t, state.FormErr)
	assert.Equal(t, 2, api.count("Organization"), "an immediate re-fetch follows the mutation")

	cards := d.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Launch", cards[0].Name)
	assert.Equal(t, "1 days left", cards[0].DueLabel)
}

func TestDashboardBlankSubmissionsIssueNoMutation(t *testing.T) {
	tests := []struct {
		name string
		form CreateProjectForm
	}{
		{"empty", CreateProjectForm{}},
		{"whitespace", CreateProjectForm{Name: "   \t"}},
		{"bad date", CreateProjectForm{Name: "Launch", DueDate: "next week"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			d := NewDashboard(api, "voiceai", time.Second, testOptions())

			err := d.CreateProject(context.Background(), tt.form)

			require.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
			assert.Equal(t, 0, api.count("CreateProject"))
			assert.Equal(t, tt.form, d.State().Form, "entered values are kept")
		})
	}
}

func TestDashboardCreateProjectFailureKeepsForm(t *testing.T) {
	api := newFakeAPI()
	api.mutateErr = apperrors.NewTransportError("http://x", 502, nil)
	d := NewDashboard(api, "voiceai", time.Second, testOptions())

	form := CreateProjectForm{Name: "Launch"}
	require.Error(t, d.CreateProject(context.Background(), form))

	state := d.State()
	assert.Equal(t, form, state.Form)
	assert.Error(t, state.FormErr)
	assert.False(t, state.Submitting)
	assert.Equal(t, 0, api.count("Organization"))
}

func TestDashboardClearFormError(t *testing.T) {
	api := newFakeAPI()
	d := NewDashboard(api, "voiceai", time.Second, testOptions())

	d.SetForm(CreateProjectForm{Name: "Draft"})
	d.ClearFormError()
	assert.Equal(t, CreateProjectForm{Name: "Draft"}, d.State().Form, "a form without an error is kept")

	require.Error(t, d.CreateProject(context.Background(), CreateProjectForm{Name: "  ", DueDate: "2026-10-18"}))
	d.ClearFormError()

	state := d.State()
	assert.NoError(t, state.FormErr)
	assert.Equal(t, CreateProjectForm{}, state.Form)
}

func TestDashboardCards(t *testing.T) {
	api := newFakeAPI()
	tomorrow := domain.DateOf(fixedNow).AddDays(1)
	past := domain.DateOf(fixedNow).AddDays(-3)
	launch := api.addProject("Launch", &tomorrow)
	api.addProject("Legacy", &past)
	api.addProject("Someday", nil)
	launch.Tasks = []domain.Task{
		{ID: "t1", Status: domain.TaskDone},
		{ID: "t2", Status: domain.TaskTodo},
		{ID: "t3", Status: domain.TaskInProgress},
	}
	api.projects[api.order[1]].Status = domain.ProjectCompleted
	api.projects[api.order[2]].Status = domain.ProjectOnHold

	d := NewDashboard(api, "voiceai", time.Second, testOptions())
	require.NoError(t, d.Refresh(context.Background()))
	cards := d.Cards()
	require.Len(t, cards, 3)

	assert.Equal(t, "1 days left", cards[0].DueLabel)
	assert.False(t, cards[0].Overdue)
	assert.Equal(t, domain.BadgeGreen, cards[0].Badge)
	assert.Equal(t, 1, cards[0].Completed)
	assert.Equal(t, 3, cards[0].Total)
	assert.Equal(t, 33, cards[0].Progress)

	assert.Equal(t, "Overdue by 3 days", cards[1].DueLabel)
	assert.True(t, cards[1].Overdue)
	assert.Equal(t, domain.BadgeBlue, cards[1].Badge)

	assert.Equal(t, "", cards[2].DueLabel)
	assert.Equal(t, domain.BadgeGray, cards[2].Badge)
	assert.Equal(t, 0, cards[2].Progress)
}

func TestDashboardDiscardsStaleResults(t *testing.T) {
	api := newFakeAPI()
	d := NewDashboard(api, "voiceai", time.Second, testOptions())

	// The first fetch stalls until a second, newer fetch has been applied.
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	api.orgHook = func(ctx context.Context) {
		stalled := false
		once.Do(func() { stalled = true })
		if stalled {
			close(slowStarted)
			<-release
		}
	}

	done := make(chan error, 1)
	go func() { done <- d.Refresh(context.Background()) }()
	<-slowStarted

	api.addProject("Fresh", nil)
	require.NoError(t, d.Refresh(context.Background()))
	require.Len(t, d.State().Organization.Projects, 1)

	// Rewind the data the slow fetch will return.
	api.mu.Lock()
	api.order = nil
	api.mu.Unlock()
	close(release)
	require.NoError(t, <-done)

	assert.Len(t, d.State().Organization.Projects, 1, "older result must not replace newer data")
}

func TestDashboardRunPollsUntilCancelled(t *testing.T) {
	api := newFakeAPI()
	d := NewDashboard(api, "voiceai", 10*time.Millisecond, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool { return api.count("Organization") >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	calls := api.count("Organization")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, api.count("Organization"), "no polling after teardown")
}

func TestDashboardTeardownDropsInFlightResult(t *testing.T) {
	api := newFakeAPI()
	d := NewDashboard(api, "voiceai", time.Hour, testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	api.orgHook = func(context.Context) { cancel() }

	err := d.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	state := d.State()
	assert.True(t, state.Loading, "a torn-down view is never updated")
	assert.NoError(t, state.Err)
}

func TestDashboardSetInterval(t *testing.T) {
	d := NewDashboard(newFakeAPI(), "voiceai", 0, testOptions())
	assert.Equal(t, DefaultPollInterval, d.Interval())

	d.SetInterval(5 * time.Second)
	assert.Equal(t, 5*time.Second, d.Interval())

	d.SetInterval(0)
	assert.Equal(t, 5*time.Second, d.Interval())
}

func TestDashboardOnChange(t *testing.T) {
	api := newFakeAPI()
	d := NewDashboard(api, "voiceai", time.Second, testOptions())

	var seen []DashboardState
	d.OnChange(func(s DashboardState) { seen = append(seen, s) })

	require.NoError(t, d.Refresh(context.Background()))
	api.orgErr = errors.New("down")
	_ = d.Refresh(context.Background())

	require.Len(t, seen, 1)
	assert.NotNil(t, seen[0].Organization)
}
