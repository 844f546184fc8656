package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "taskboard.db"), DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedOrganization(t *testing.T, repo *SQLiteRepository) *Organization {
	t.Helper()
	org := &Organization{Name: "Voice AI", Slug: "voiceai", ContactEmail: "team@voice.ai"}
	require.NoError(t, repo.CreateOrganization(context.Background(), org))
	return org
}

func TestCreateAndGetOrganization(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	org := seedOrganization(t, repo)
	assert.NotEmpty(t, org.ID)
	assert.False(t, org.CreatedAt.IsZero())

	retrieved, err := repo.GetOrganizationBySlug(ctx, "voiceai")
	require.NoError(t, err)
	assert.Equal(t, org.ID, retrieved.ID)
	assert.Equal(t, "team@voice.ai", retrieved.ContactEmail)

	_, err = repo.GetOrganizationBySlug(ctx, "missing")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	err = repo.CreateOrganization(ctx, &Organization{Name: "Dup", Slug: "voiceai"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}

func TestProjectsWithTaskCounts(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	org := seedOrganization(t, repo)

	due := "2026-10-18"
	launch := &Project{OrganizationID: org.ID, Name: "Launch", DueDate: &due}
	require.NoError(t, repo.CreateProject(ctx, launch))
	assert.Equal(t, "ACTIVE", launch.Status)

	legacy := &Project{OrganizationID: org.ID, Name: "Legacy", Status: "ON_HOLD"}
	require.NoError(t, repo.CreateProject(ctx, legacy))

	for i, status := range []string{"TODO", "DONE", "DONE"} {
		task := &Task{ProjectID: launch.ID, Title: "task", Status: status, CreatedAt: time.Date(2026, 1, 1, 0, 0, i, 0, time.UTC)}
		require.NoError(t, repo.CreateTask(ctx, task))
	}

	projects, err := repo.ListProjectsByOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Launch", projects[0].Name)
	assert.Equal(t, 3, projects[0].TaskCount)
	assert.Equal(t, 2, projects[0].CompletedTaskCount)
	require.NotNil(t, projects[0].DueDate)
	assert.Equal(t, "2026-10-18", *projects[0].DueDate)
	assert.Equal(t, "Legacy", projects[1].Name)
	assert.Equal(t, 0, projects[1].TaskCount)
	assert.Nil(t, projects[1].DueDate)

	single, err := repo.GetProject(ctx, launch.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, single.TaskCount)

	_, err = repo.GetProject(ctx, "nope")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestCreateProjectRequiresOrganization(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.CreateProject(context.Background(), &Project{OrganizationID: "missing", Name: "Orphan"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestUpdateProject(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	org := seedOrganization(t, repo)

	due := "2026-12-01"
	project := &Project{OrganizationID: org.ID, Name: "Launch", DueDate: &due}
	require.NoError(t, repo.CreateProject(ctx, project))

	project.Name = "Launch v2"
	project.Status = "COMPLETED"
	project.DueDate = nil
	require.NoError(t, repo.UpdateProject(ctx, project))

	updated, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch v2", updated.Name)
	assert.Equal(t, "COMPLETED", updated.Status)
	assert.Nil(t, updated.DueDate)

	err = repo.UpdateProject(ctx, &Project{ID: "missing", Name: "x", Status: "ACTIVE"})
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestTasksAndStatus(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	org := seedOrganization(t, repo)
	project := &Project{OrganizationID: org.ID, Name: "Launch"}
	require.NoError(t, repo.CreateProject(ctx, project))

	first := &Task{ProjectID: project.ID, Title: "Draft release notes"}
	second := &Task{ProjectID: project.ID, Title: "Ship it", AssigneeEmail: "ada@voice.ai"}
	require.NoError(t, repo.CreateTask(ctx, first))
	require.NoError(t, repo.CreateTask(ctx, second))
	assert.Equal(t, "TODO", first.Status)

	require.NoError(t, repo.UpdateTaskStatus(ctx, first.ID, "DONE"))

	tasks, err := repo.ListTasksByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Draft release notes", tasks[0].Title)
	assert.Equal(t, "DONE", tasks[0].Status)
	assert.Equal(t, "TODO", tasks[1].Status)
	assert.Equal(t, "ada@voice.ai", tasks[1].AssigneeEmail)

	task, err := repo.GetTask(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship it", task.Title)

	err = repo.UpdateTaskStatus(ctx, "missing", "DONE")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	err = repo.UpdateTaskStatus(ctx, first.ID, "BLOCKED")
	assert.Error(t, err)
}

func TestComments(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	org := seedOrganization(t, repo)
	project := &Project{OrganizationID: org.ID, Name: "Launch"}
	require.NoError(t, repo.CreateProject(ctx, project))
	taskA := &Task{ProjectID: project.ID, Title: "A"}
	taskB := &Task{ProjectID: project.ID, Title: "B"}
	require.NoError(t, repo.CreateTask(ctx, taskA))
	require.NoError(t, repo.CreateTask(ctx, taskB))

	require.NoError(t, repo.CreateComment(ctx, &Comment{TaskID: taskA.ID, Content: "first"}))
	require.NoError(t, repo.CreateComment(ctx, &Comment{TaskID: taskA.ID, Content: "second"}))
	require.NoError(t, repo.CreateComment(ctx, &Comment{TaskID: taskB.ID, Content: "other", AuthorEmail: "ada@voice.ai"}))

	comments, err := repo.ListCommentsByTask(ctx, taskA.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	all, err := repo.ListCommentsByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	err = repo.CreateComment(ctx, &Comment{TaskID: "missing", Content: "lost"})
	assert.Error(t, err)
}

func TestInMemoryDatabase(t *testing.T) {
	repo, err := New(":memory:", Options{})
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.CreateOrganization(ctx, &Organization{Name: "Voice AI", Slug: "voiceai"}))
	_, err = repo.GetOrganizationBySlug(ctx, "voiceai")
	assert.NoError(t, err)
}
