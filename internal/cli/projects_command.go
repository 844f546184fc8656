package cli

import (
	"context"

	"taskboard/internal/errors"
)

// ProjectsCommand prints the dashboard once
type ProjectsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProjectsCommand creates a new projects command handler
func NewProjectsCommand(app *App) *ProjectsCommand {
	return &ProjectsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the projects command
func (c *ProjectsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "projects", "usage: taskboard projects")
	}
	d := c.app.dashboard()
	if err := d.Refresh(ctx); err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	c.app.printf("%s", renderDashboard(d.State(), d.Cards()))
	return nil
}
