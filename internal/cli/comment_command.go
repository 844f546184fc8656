package cli

import (
	"context"
	"strings"

	"taskboard/internal/errors"
)

// CommentCommand posts a comment on a task
type CommentCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCommentCommand creates a new comment command handler
func NewCommentCommand(app *App) *CommentCommand {
	return &CommentCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the comment command
func (c *CommentCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.NewInvalidInputError("command", "comment", "usage: taskboard comment <project-id> <task-id> <text>")
	}
	projectID, taskID := args[0], args[1]
	content := strings.Join(args[2:], " ")

	v, err := c.app.detail(ctx, projectID)
	if err != nil {
		return c.errorHandler.Handle("load project", err)
	}
	if _, ok := findTask(v.State(), taskID); !ok {
		return c.errorHandler.Handle("add comment", errors.NewNotFoundError("task", taskID))
	}
	if err := v.AddComment(ctx, taskID, content); err != nil {
		return c.errorHandler.Handle("add comment", err)
	}

	if row, ok := findTask(v.State(), taskID); ok {
		c.app.printf("Commented on %s (%d comments)\n", row.Title, row.CommentCount)
	}
	return nil
}
