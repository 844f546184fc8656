package cli

import (
	"context"

	"taskboard/internal/errors"
	"taskboard/internal/views"
)

// WatchCommand polls the dashboard and prints it whenever it changes
type WatchCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// OnStart, when set, receives the dashboard before polling begins.
	OnStart func(*views.Dashboard)
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute polls until ctx is cancelled. A failed first load is returned;
// later failures keep the last printed state.
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "watch", "usage: taskboard watch")
	}

	d := c.app.dashboard()
	if err := d.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return c.errorHandler.Handle("load projects", err)
	}

	last := renderDashboard(d.State(), d.Cards())
	c.app.printf("%s", last)
	d.OnChange(func(state views.DashboardState) {
		out := renderDashboard(state, d.Cards())
		if out == last {
			return
		}
		last = out
		c.app.printf("\n-- %s --\n%s", state.FetchedAt.Format("15:04:05"), out)
	})

	if c.OnStart != nil {
		c.OnStart(d)
	}
	return d.Run(ctx)
}
