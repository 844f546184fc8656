package cli

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// EditProjectCommand changes the name, status or due date of a project.
// Fields left nil keep their current value; an empty DueDate clears it.
type EditProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Name    *string
	Status  *string
	DueDate *string
}

// NewEditProjectCommand creates a new edit-project command handler
func NewEditProjectCommand(app *App) *EditProjectCommand {
	return &EditProjectCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the edit-project command
func (c *EditProjectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit-project", "usage: taskboard edit-project <project-id> [--name NAME] [--status STATUS] [--due YYYY-MM-DD]")
	}
	if c.Name == nil && c.Status == nil && c.DueDate == nil {
		return errors.NewInvalidInputError("command", "edit-project", "nothing to change: pass --name, --status or --due")
	}

	v, err := c.app.detail(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("load project", err)
	}

	v.StartEdit()
	form := v.State().Form
	if c.Name != nil {
		form.Name = *c.Name
	}
	if c.Status != nil {
		form.Status = *c.Status
	}
	if c.DueDate != nil {
		form.DueDate = *c.DueDate
	}
	v.SetEditFields(form.Name, form.Status, form.DueDate)

	if err := v.Save(ctx); err != nil {
		v.CancelEdit()
		return c.errorHandler.Handle("update project", err)
	}

	p := v.State().Project
	c.app.printf("Updated project %s: %s [%s] due %s\n", p.ID, p.Name, p.Status.Label(), dueOrNone(p.DueDate))
	return nil
}

func dueOrNone(d *domain.Date) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
