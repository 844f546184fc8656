package cli

import (
	"context"

	"taskboard/internal/errors"
)

// ShowCommand prints one project with its tasks and comments
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: taskboard show <project-id>")
	}
	v, err := c.app.detail(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("load project", err)
	}
	c.app.printf("%s", renderProject(v.State(), timeNow(), true))
	return nil
}
