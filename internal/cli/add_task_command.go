package cli

import (
	"context"
	"strings"

	"taskboard/internal/errors"
)

// AddTaskCommand adds a TODO task to a project
type AddTaskCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddTaskCommand creates a new add-task command handler
func NewAddTaskCommand(app *App) *AddTaskCommand {
	return &AddTaskCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the add-task command
func (c *AddTaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "add-task", "usage: taskboard add-task <project-id> <title>")
	}
	title := strings.Join(args[1:], " ")

	v, err := c.app.detail(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("load project", err)
	}
	if err := v.AddTask(ctx, title); err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	rows := v.State().Tasks()
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Title == strings.TrimSpace(title) {
			c.app.printf("Added task %s: %s (%s)\n", rows[i].ID, rows[i].Title, rows[i].StatusLabel)
			return nil
		}
	}
	c.app.printf("Added task: %s\n", title)
	return nil
}
