// Package web serves the dashboard and project pages to a browser.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taskboard/internal/client"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/server"
	"taskboard/internal/views"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Config carries the optional collaborators of the web server.
type Config struct {
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Tracer  trace.Tracer
	Now     func() time.Time
}

// Server is the browser front end. It renders the shared dashboard and one
// detail view per visited project.
type Server struct {
	dashboard *views.Dashboard
	api       client.API
	opts      views.Options
	tracer    trace.Tracer
	router    *gin.Engine

	mu      sync.Mutex
	details map[string]*views.Detail
}

// NewServer creates the web server for dashboard. api backs the project pages.
func NewServer(dashboard *views.Dashboard, api client.API, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Metrics != nil {
		router.Use(middleware.GinMetrics(cfg.Metrics))
	}
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		dashboard: dashboard,
		api:       api,
		opts:      views.Options{Logger: cfg.Logger, Metrics: cfg.Metrics, Now: cfg.Now},
		tracer:    cfg.Tracer,
		router:    router,
		details:   make(map[string]*views.Detail),
	}

	router.GET("/", s.handleDashboard)
	router.GET("/cards", s.handleCards)
	router.POST("/projects", s.handleCreateProject)

	project := router.Group("/project/:id")
	{
		project.GET("", s.handleProject)
		project.POST("/edit", s.handleEdit)
		project.POST("/cancel", s.handleCancel)
		project.POST("/save", s.handleSave)
		project.POST("/tasks", s.handleAddTask)
		project.POST("/tasks/:taskID/status", s.handleTaskStatus)
		project.POST("/tasks/:taskID/comments", s.handleAddComment)
		project.POST("/tasks/:taskID/toggle", s.handleToggle)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Not found", "Message": "Page not found"})
	})

	return s, nil
}

// Handler returns the engine wrapped in the shared request middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if s.tracer != nil {
		h = middleware.Tracing(s.tracer)(h)
	}
	h = middleware.Logger(s.opts.Logger)(h)
	return middleware.RequestID(h)
}

// Run serves on addr and polls the dashboard until ctx is cancelled or
// either of them fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.dashboard.Run(ctx)
	})
	g.Go(func() error {
		return server.Serve(ctx, addr, s.Handler(), s.opts.Logger)
	})
	return g.Wait()
}

// detail returns the view for a project, creating it on first visit.
func (s *Server) detail(projectID string) *views.Detail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.details[projectID]; ok {
		return v
	}
	v := views.NewDetail(s.api, projectID, s.opts)
	s.details[projectID] = v
	return v
}
