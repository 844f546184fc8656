package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/views"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App holds what the terminal commands share
type App struct {
	api      client.API
	config   *config.Config
	opts     views.Options
	out      io.Writer
	registry *CommandRegistry
}

// Option customises an App
type Option func(*App)

// WithOutput sends command output to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithViewOptions sets the logger and metrics the views report to
func WithViewOptions(opts views.Options) Option {
	return func(a *App) { a.opts = opts }
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(api client.API, cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:    api,
		config: cfg,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.opts.Now == nil {
		app.opts.Now = func() time.Time { return timeNow() }
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the named command with the remaining arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

func (a *App) dashboard() *views.Dashboard {
	return views.NewDashboard(a.api, a.config.API.OrgSlug, a.config.Web.PollInterval, a.opts)
}

// detail creates the project view and performs its first load.
func (a *App) detail(ctx context.Context, projectID string) (*views.Detail, error) {
	v := views.NewDetail(a.api, projectID, a.opts)
	if err := v.Load(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
