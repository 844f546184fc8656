package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/api"
	"taskboard/internal/client"
	"taskboard/internal/domain"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/services"
	"taskboard/internal/views"
)

var fixedNow = time.Date(2026, time.October, 17, 15, 30, 0, 0, time.UTC)

type testStack struct {
	server  *Server
	handler http.Handler
	api     *client.Client
	metrics *metrics.Collector
}

// newTestStack runs the web server against the real GraphQL server and an
// in-memory database.
func newTestStack(t *testing.T) *testStack {
	t.Helper()
	repo, err := sqlite.New(":memory:", sqlite.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	svc := services.NewServiceContainer(repo)
	_, _, err = svc.Organizations.Ensure(context.Background(), "Voice AI", "voiceai", "")
	require.NoError(t, err)

	schema, err := api.NewSchema(svc, zap.NewNop())
	require.NoError(t, err)
	backend := httptest.NewServer(api.NewRouter(schema, api.RouterConfig{Logger: zap.NewNop()}))
	t.Cleanup(backend.Close)

	apiClient := client.New(backend.URL + "/graphql")
	collector := metrics.NewCollector()
	now := func() time.Time { return fixedNow }

	dashboard := views.NewDashboard(apiClient, "voiceai", time.Second, views.Options{Now: now, Metrics: collector})
	srv, err := NewServer(dashboard, apiClient, Config{Metrics: collector, Now: now})
	require.NoError(t, err)

	return &testStack{server: srv, handler: srv.Handler(), api: apiClient, metrics: collector}
}

func (s *testStack) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *testStack) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testStack) createProject(t *testing.T, name string, due *domain.Date) *domain.Project {
	t.Helper()
	p, err := s.api.CreateProject(context.Background(), "voiceai", name, due)
	require.NoError(t, err)
	return p
}

func TestDashboardCreateProject(t *testing.T) {
	s := newTestStack(t)

	rec := s.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No projects yet.")

	rec = s.post(t, "/projects", url.Values{"name": {"Launch"}, "dueDate": {"2026-10-18"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Launch")
	assert.Contains(t, body, "1 days left")
	assert.Contains(t, body, "0/0 tasks done")
}

func TestDashboardRejectsBlankName(t *testing.T) {
	s := newTestStack(t)

	rec := s.post(t, "/projects", url.Values{"name": {"   "}, "dueDate": {"2026-10-18"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="error"`)
	// The rejected input stays in the form.
	assert.Contains(t, rec.Body.String(), `value="2026-10-18"`)

	org, err := s.api.Organization(context.Background(), "voiceai")
	require.NoError(t, err)
	assert.Empty(t, org.Projects)

	// The next visitor gets a clean form.
	rec = s.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="error"`)
	assert.NotContains(t, rec.Body.String(), `value="2026-10-18"`)
}

func TestDashboardHeadingShowsOrganizationName(t *testing.T) {
	s := newTestStack(t)

	body := s.get(t, "/").Body.String()
	assert.Contains(t, body, "<h1>Voice AI Projects</h1>")
}

func TestDashboardOverdueCard(t *testing.T) {
	s := newTestStack(t)
	due := domain.DateOf(fixedNow).AddDays(-3)
	s.createProject(t, "Legacy", &due)

	// Nothing has polled yet; the fragment fetches on demand.
	rec := s.get(t, "/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "Loading...")
	assert.Contains(t, body, "Legacy")
	assert.Contains(t, body, "Overdue by 3 days")
	assert.Contains(t, body, `class="overdue"`)
	assert.NotContains(t, body, "<html")
}

func TestProjectTaskLifecycle(t *testing.T) {
	s := newTestStack(t)
	p := s.createProject(t, "Launch", nil)
	path := "/project/" + p.ID

	rec := s.get(t, path)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no due date")
	assert.Contains(t, rec.Body.String(), "No tasks yet.")

	rec = s.post(t, path+"/tasks", url.Values{"title": {"Draft release notes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, path, rec.Header().Get("Location"))

	project, err := s.api.Project(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, project.Tasks, 1)
	task := project.Tasks[0]
	assert.Equal(t, domain.TaskTodo, task.Status)

	body := s.get(t, path).Body.String()
	assert.Contains(t, body, `<span class="">Draft release notes</span>`)
	assert.Contains(t, body, "Show comments (0)")

	rec = s.post(t, path+"/tasks/"+task.ID+"/status", url.Values{"status": {"DONE"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body = s.get(t, path).Body.String()
	assert.Contains(t, body, `<span class="done">Draft release notes</span>`)
	// Picking a status submits straight away.
	assert.Contains(t, body, `<select name="status" onchange="this.form.submit()">`)
}

func TestProjectRejectsInvalidInput(t *testing.T) {
	s := newTestStack(t)
	p := s.createProject(t, "Launch", nil)
	path := "/project/" + p.ID

	tests := []struct {
		name string
		path string
		form url.Values
	}{
		{name: "blank task title", path: path + "/tasks", form: url.Values{"title": {"  "}}},
		{name: "unknown task status", path: path + "/tasks/t-1/status", form: url.Values{"status": {"BLOCKED"}}},
		{name: "blank comment", path: path + "/tasks/t-1/comments", form: url.Values{"content": {""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.post(t, tt.path, tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), `class="error"`)

			rec = s.get(t, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.NotContains(t, rec.Body.String(), `class="error"`)
		})
	}

	project, err := s.api.Project(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, project.Tasks)
}

func TestProjectComments(t *testing.T) {
	s := newTestStack(t)
	p := s.createProject(t, "Launch", nil)
	task, err := s.api.CreateTask(context.Background(), p.ID, "Draft release notes")
	require.NoError(t, err)
	path := "/project/" + p.ID

	require.Equal(t, http.StatusSeeOther, s.post(t, path+"/tasks/"+task.ID+"/toggle", nil).Code)
	body := s.get(t, path).Body.String()
	assert.Contains(t, body, "Hide comments (0)")
	assert.Contains(t, body, "No comments yet.")

	rec := s.post(t, path+"/tasks/"+task.ID+"/comments", url.Values{"content": {"Looks good"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body = s.get(t, path).Body.String()
	assert.Contains(t, body, "Looks good")
	assert.Contains(t, body, "Hide comments (1)")

	require.Equal(t, http.StatusSeeOther, s.post(t, path+"/tasks/"+task.ID+"/toggle", nil).Code)
	body = s.get(t, path).Body.String()
	assert.Contains(t, body, "Show comments (1)")
	assert.NotContains(t, body, "Looks good")
}

func TestProjectEditAndSave(t *testing.T) {
	s := newTestStack(t)
	due := domain.Date{Year: 2026, Month: 12, Day: 1}
	p := s.createProject(t, "Launch", &due)
	path := "/project/" + p.ID

	require.Equal(t, http.StatusSeeOther, s.post(t, path+"/edit", nil).Code)
	body := s.get(t, path).Body.String()
	assert.Contains(t, body, `action="/project/`+p.ID+`/save"`)
	assert.Contains(t, body, `value="Launch"`)
	assert.Contains(t, body, `value="2026-12-01"`)

	rec := s.post(t, path+"/save", url.Values{"name": {"Relaunch"}, "status": {"ON_HOLD"}, "dueDate": {""}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body = s.get(t, path).Body.String()
	assert.NotContains(t, body, `/save"`)
	assert.Contains(t, body, "Relaunch")
	assert.Contains(t, body, "ON HOLD")
	assert.Contains(t, body, "badge amber")
	assert.Contains(t, body, "no due date")
}

func TestProjectSaveValidationKeepsEditing(t *testing.T) {
	s := newTestStack(t)
	p := s.createProject(t, "Launch", nil)
	path := "/project/" + p.ID

	require.Equal(t, http.StatusSeeOther, s.post(t, path+"/edit", nil).Code)
	rec := s.post(t, path+"/save", url.Values{"name": {" "}, "status": {"ACTIVE"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `/save"`)

	require.Equal(t, http.StatusSeeOther, s.post(t, path+"/cancel", nil).Code)
	body := s.get(t, path).Body.String()
	assert.NotContains(t, body, `/save"`)
	assert.Contains(t, body, "Launch")
}

func TestUnknownProject(t *testing.T) {
	s := newTestStack(t)

	rec := s.get(t, "/project/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "project not found: missing")

	rec = s.post(t, "/project/missing/tasks", url.Values{"title": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s.server.mu.Lock()
	defer s.server.mu.Unlock()
	assert.Empty(t, s.server.details)
}

func TestDashboardBackendDown(t *testing.T) {
	apiClient := client.New("http://127.0.0.1:1/graphql")
	dashboard := views.NewDashboard(apiClient, "voiceai", time.Second, views.Options{})
	srv, err := NewServer(dashboard, apiClient, Config{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error: Could not reach the server.")
}

func TestOperationalRoutes(t *testing.T) {
	s := newTestStack(t)

	rec := s.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	s.get(t, "/cards")
	rec = s.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/cards",status="200"} 1`)

	rec = s.get(t, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}
