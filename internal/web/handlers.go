package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/views"
)

var templateFuncs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
}

// Dashboard

func (s *Server) handleDashboard(c *gin.Context) {
	s.ensureLoaded(c)
	c.HTML(http.StatusOK, "dashboard.html", s.dashboardData())
}

func (s *Server) handleCards(c *gin.Context) {
	s.ensureLoaded(c)
	c.HTML(http.StatusOK, "cards", s.dashboardData())
}

// ensureLoaded fetches for this request when nothing has been polled yet,
// instead of showing a spinner.
func (s *Server) ensureLoaded(c *gin.Context) {
	if s.dashboard.State().Loading {
		s.dashboard.Refresh(c.Request.Context())
	}
}

func (s *Server) handleCreateProject(c *gin.Context) {
	form := views.CreateProjectForm{
		Name:    c.PostForm("name"),
		DueDate: c.PostForm("dueDate"),
	}
	if err := s.dashboard.CreateProject(c.Request.Context(), form); err != nil {
		c.HTML(statusFor(err), "dashboard.html", s.dashboardData())
		// The rejection belongs to this response only.
		s.dashboard.ClearFormError()
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) dashboardData() gin.H {
	state := s.dashboard.State()
	orgName := s.dashboard.Slug()
	if state.Organization != nil {
		orgName = state.Organization.Name
	}
	return gin.H{
		"Title":      orgName + " Projects",
		"OrgName":    orgName,
		"Slug":       s.dashboard.Slug(),
		"Loading":    state.Loading,
		"LoadErr":    message(state.Err),
		"Cards":      s.dashboard.Cards(),
		"Form":       state.Form,
		"FormErr":    message(state.FormErr),
		"Submitting": state.Submitting,
		"RefreshMs":  s.dashboard.Interval().Milliseconds(),
	}
}

// Project detail

func (s *Server) handleProject(c *gin.Context) {
	v := s.detail(c.Param("id"))
	if err := v.Load(c.Request.Context()); err != nil && v.State().Project == nil {
		s.forget(v.ProjectID())
		s.renderError(c, err)
		return
	}
	s.renderProject(c, http.StatusOK, v)
}

func (s *Server) handleEdit(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	v.StartEdit()
	c.Redirect(http.StatusSeeOther, projectPath(v.ProjectID()))
}

func (s *Server) handleCancel(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	v.CancelEdit()
	c.Redirect(http.StatusSeeOther, projectPath(v.ProjectID()))
}

func (s *Server) handleSave(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	v.SetEditFields(c.PostForm("name"), c.PostForm("status"), c.PostForm("dueDate"))
	s.afterMutation(c, v, v.Save(c.Request.Context()))
}

func (s *Server) handleAddTask(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	s.afterMutation(c, v, v.AddTask(c.Request.Context(), c.PostForm("title")))
}

func (s *Server) handleTaskStatus(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	s.afterMutation(c, v, v.SetTaskStatus(c.Request.Context(), c.Param("taskID"), c.PostForm("status")))
}

func (s *Server) handleAddComment(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	s.afterMutation(c, v, v.AddComment(c.Request.Context(), c.Param("taskID"), c.PostForm("content")))
}

func (s *Server) handleToggle(c *gin.Context) {
	v, ok := s.loaded(c)
	if !ok {
		return
	}
	v.ToggleComments(c.Param("taskID"))
	c.Redirect(http.StatusSeeOther, projectPath(v.ProjectID()))
}

// loaded returns the project's view with data, loading it if this is the
// first request for it. On failure the error page has been written.
func (s *Server) loaded(c *gin.Context) (*views.Detail, bool) {
	v := s.detail(c.Param("id"))
	if v.State().Project != nil {
		return v, true
	}
	if err := v.Load(c.Request.Context()); err != nil {
		s.forget(v.ProjectID())
		s.renderError(c, err)
		return nil, false
	}
	return v, true
}

func (s *Server) forget(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.details, projectID)
}

// afterMutation redirects back to the project on success so the browser
// renders the re-fetched state, or re-renders the page with the error.
func (s *Server) afterMutation(c *gin.Context, v *views.Detail, err error) {
	if err != nil {
		s.renderProject(c, statusFor(err), v)
		v.ClearActionErr()
		return
	}
	c.Redirect(http.StatusSeeOther, projectPath(v.ProjectID()))
}

func (s *Server) renderProject(c *gin.Context, status int, v *views.Detail) {
	state := v.State()
	p := state.Project
	c.HTML(status, "project.html", gin.H{
		"Title":           p.Name,
		"Project":         p,
		"Badge":           state.StatusBadge(),
		"DueDate":         domain.FormatOptionalDate(p.DueDate),
		"DueLabel":        domain.DueLabel(p.DueDate, s.opts.Now()),
		"Editing":         state.Editing,
		"Form":            state.Form,
		"Submitting":      state.Submitting,
		"ActionErr":       message(state.ActionErr),
		"Tasks":           state.Tasks(),
		"ProjectStatuses": domain.ProjectStatuses,
		"TaskStatuses":    domain.TaskStatuses,
	})
}

func (s *Server) renderError(c *gin.Context, err error) {
	c.HTML(statusFor(err), "error.html", gin.H{
		"Title":   "Error",
		"Message": message(err),
	})
}

func projectPath(id string) string {
	return "/project/" + id
}

// statusFor maps a failed action to the response code of the re-rendered page.
func statusFor(err error) int {
	switch {
	case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation),
		apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput),
		apperrors.HasGraphQLCode(err, "VALIDATION_FAILED"),
		apperrors.HasGraphQLCode(err, "INVALID_INPUT"):
		return http.StatusUnprocessableEntity
	case apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound),
		apperrors.HasGraphQLCode(err, "NOT_FOUND"):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.GetUserMessage(err)
}
