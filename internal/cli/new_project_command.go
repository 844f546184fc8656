package cli

import (
	"context"
	"strings"

	"taskboard/internal/errors"
	"taskboard/internal/views"
)

// NewProjectCommand creates a project in the configured organization
type NewProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// DueDate is an optional YYYY-MM-DD due date.
	DueDate string
}

// NewNewProjectCommand creates a new new-project command handler
func NewNewProjectCommand(app *App) *NewProjectCommand {
	return &NewProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute joins args into the project name and creates it
func (c *NewProjectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "new-project", "usage: taskboard new-project <name> [--due YYYY-MM-DD]")
	}
	name := strings.Join(args, " ")

	d := c.app.dashboard()
	if err := d.CreateProject(ctx, views.CreateProjectForm{Name: name, DueDate: c.DueDate}); err != nil {
		return c.errorHandler.Handle("create project", err)
	}

	// Projects are listed in creation order, so the newest match is ours.
	cards := d.Cards()
	for i := len(cards) - 1; i >= 0; i-- {
		if cards[i].Name == strings.TrimSpace(name) {
			c.app.printf("Created project %s: %s\n", cards[i].ID, cards[i].Name)
			return nil
		}
	}
	c.app.printf("Created project: %s\n", name)
	return nil
}
