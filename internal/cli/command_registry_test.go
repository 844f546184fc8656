package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/errors"
)

func TestNewCommandRegistry(t *testing.T) {
	app, _, _ := setupTestApp(t)

	registry := NewCommandRegistry(app)

	assert.Equal(t, []string{
		"add-task", "comment", "edit-project", "new-project",
		"projects", "show", "status", "watch",
	}, registry.Names())
}

func TestCommandRegistry_Execute(t *testing.T) {
	app, api, out := setupTestApp(t)
	registry := NewCommandRegistry(app)
	ctx := context.Background()

	t.Run("executes new-project command", func(t *testing.T) {
		require.NoError(t, registry.Execute(ctx, "new-project", []string{"Launch"}))
		assert.Contains(t, out.String(), "Created project p-1: Launch")
		assert.Equal(t, 1, api.count("CreateProject"))
	})

	t.Run("unknown command", func(t *testing.T) {
		err := registry.Execute(ctx, "start", nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		assert.Contains(t, err.Error(), "unknown command")
	})
}

type recordingCommand struct {
	args []string
}

func (c *recordingCommand) Execute(ctx context.Context, args []string) error {
	c.args = args
	return nil
}

func TestCommandRegistry_Register(t *testing.T) {
	app, _, _ := setupTestApp(t)
	registry := NewCommandRegistry(app)

	cmd := &recordingCommand{}
	registry.Register("projects", cmd)

	require.NoError(t, registry.Execute(context.Background(), "projects", []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, cmd.args)
}

func TestAppRun(t *testing.T) {
	app, _, _ := setupTestApp(t)

	err := app.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "usage: taskboard <add-task|comment|edit-project|new-project|projects|show|status|watch> [args]", err.Error())
}
