package cli

import (
	"context"

	"taskboard/internal/errors"
	"taskboard/internal/views"
)

// StatusCommand moves one task to a new status
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.NewInvalidInputError("command", "status", "usage: taskboard status <project-id> <task-id> <TODO|IN_PROGRESS|DONE>")
	}
	projectID, taskID, status := args[0], args[1], args[2]

	v, err := c.app.detail(ctx, projectID)
	if err != nil {
		return c.errorHandler.Handle("load project", err)
	}
	if _, ok := findTask(v.State(), taskID); !ok {
		return c.errorHandler.Handle("update task", errors.NewNotFoundError("task", taskID))
	}
	if err := v.SetTaskStatus(ctx, taskID, status); err != nil {
		return c.errorHandler.Handle("update task", err)
	}

	if row, ok := findTask(v.State(), taskID); ok {
		c.app.printf("Task %s is now %s: %s\n", row.ID, row.StatusLabel, row.Title)
	}
	return nil
}

// findTask looks a task up in the last loaded project.
func findTask(state views.DetailState, taskID string) (views.TaskRow, bool) {
	for _, row := range state.Tasks() {
		if row.ID == taskID {
			return row, true
		}
	}
	return views.TaskRow{}, false
}
