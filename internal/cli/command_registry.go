package cli

import (
	"context"
	"sort"
	"strings"

	"taskboard/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("projects", NewProjectsCommand(app))
	registry.Register("watch", NewWatchCommand(app))
	registry.Register("show", NewShowCommand(app))
	registry.Register("new-project", NewNewProjectCommand(app))
	registry.Register("add-task", NewAddTaskCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("comment", NewCommentCommand(app))
	registry.Register("edit-project", NewEditProjectCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// Names lists the registered commands alphabetically
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: taskboard <" + strings.Join(r.Names(), "|") + "> [args]"
}
