package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the storage operations behind the GraphQL API.
type Repository interface {
	// Organizations
	CreateOrganization(ctx context.Context, org *Organization) error
	GetOrganizationBySlug(ctx context.Context, slug string) (*Organization, error)

	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjectsByOrganization(ctx context.Context, organizationID string) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]*Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status string) error

	// Comments
	CreateComment(ctx context.Context, comment *Comment) error
	ListCommentsByTask(ctx context.Context, taskID string) ([]*Comment, error)
	ListCommentsByProject(ctx context.Context, projectID string) ([]*Comment, error)

	// Utility
	Close() error
}

// Options bound every statement the repository runs.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// DefaultOptions match the configuration defaults.
func DefaultOptions() Options {
	return Options{QueryTimeout: 10 * time.Second, WriteTimeout: 5 * time.Second}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New opens the database at dbPath (":memory:" for a private in-memory
// database) and applies pending migrations.
func New(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}
	if _, err := migrations.Up(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	defaults := DefaultOptions()
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = defaults.QueryTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaults.WriteTimeout
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

// stamp fills in a generated ID and creation time when the caller left them empty.
func (r *SQLiteRepository) stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = r.now().UTC()
	}
}

// CreateOrganization inserts an organization. Slugs are unique.
func (r *SQLiteRepository) CreateOrganization(ctx context.Context, org *Organization) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	r.stamp(&org.ID, &org.CreatedAt)
	query := `
	INSERT INTO organizations (id, name, slug, contact_email, created_at)
	VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, org.ID, org.Name, org.Slug, org.ContactEmail, FormatTimeForDB(org.CreatedAt))
	if isUniqueViolation(err) {
		return errors.NewInvalidInputError("slug", org.Slug, "an organization with this slug already exists")
	}
	if err != nil {
		return HandleDatabaseError("create organization", err)
	}
	return nil
}

// GetOrganizationBySlug retrieves an organization by its slug
func (r *SQLiteRepository) GetOrganizationBySlug(ctx context.Context, slug string) (*Organization, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, name, slug, contact_email, created_at
	FROM organizations
	WHERE slug = ?`

	return queryOne(ctx, r.db, "organization", slug, ScanOrganization, query, slug)
}

// projectColumns selects a project with its task counts; callers append WHERE and ORDER BY.
const projectColumns = `
	SELECT p.id, p.organization_id, p.name, p.description, p.status, p.due_date, p.created_at,
		COUNT(t.id),
		COALESCE(SUM(CASE WHEN t.status = 'DONE' THEN 1 ELSE 0 END), 0)
	FROM projects p
	LEFT JOIN tasks t ON t.project_id = p.id`

// CreateProject inserts a project. Status defaults to ACTIVE.
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	r.stamp(&project.ID, &project.CreatedAt)
	if project.Status == "" {
		project.Status = "ACTIVE"
	}
	query := `
	INSERT INTO projects (id, organization_id, name, description, status, due_date, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	return insert(ctx, r.db, "project", query,
		project.ID, project.OrganizationID, project.Name, project.Description, project.Status,
		NullableString(project.DueDate), FormatTimeForDB(project.CreatedAt))
}

// GetProject retrieves a project by ID together with its task counts
func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := projectColumns + `
	WHERE p.id = ?
	GROUP BY p.id`

	return queryOne(ctx, r.db, "project", id, ScanProject, query, id)
}

// ListProjectsByOrganization lists an organization's projects in creation order
func (r *SQLiteRepository) ListProjectsByOrganization(ctx context.Context, organizationID string) ([]*Project, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := projectColumns + `
	WHERE p.organization_id = ?
	GROUP BY p.id
	ORDER BY p.created_at ASC, p.rowid ASC`

	return queryAll(ctx, r.db, "projects", ScanProjects, query, organizationID)
}

// UpdateProject writes name, description, status and due date
func (r *SQLiteRepository) UpdateProject(ctx context.Context, project *Project) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	UPDATE projects
	SET name = ?, description = ?, status = ?, due_date = ?
	WHERE id = ?`

	return update(ctx, r.db, "project", project.ID, query,
		project.Name, project.Description, project.Status, NullableString(project.DueDate), project.ID)
}

// CreateTask inserts a task. Status defaults to TODO.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	r.stamp(&task.ID, &task.CreatedAt)
	if task.Status == "" {
		task.Status = "TODO"
	}
	query := `
	INSERT INTO tasks (id, project_id, title, description, status, assignee_email, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	return insert(ctx, r.db, "task", query,
		task.ID, task.ProjectID, task.Title, task.Description, task.Status, task.AssigneeEmail,
		FormatTimeForDB(task.CreatedAt))
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, project_id, title, description, status, assignee_email, created_at
	FROM tasks
	WHERE id = ?`

	return queryOne(ctx, r.db, "task", id, ScanTask, query, id)
}

// ListTasksByProject lists a project's tasks in creation order
func (r *SQLiteRepository) ListTasksByProject(ctx context.Context, projectID string) ([]*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, project_id, title, description, status, assignee_email, created_at
	FROM tasks
	WHERE project_id = ?
	ORDER BY created_at ASC, rowid ASC`

	return queryAll(ctx, r.db, "tasks", ScanTasks, query, projectID)
}

// UpdateTaskStatus changes the status of one task
func (r *SQLiteRepository) UpdateTaskStatus(ctx context.Context, id string, status string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `UPDATE tasks SET status = ? WHERE id = ?`
	return update(ctx, r.db, "task", id, query, status, id)
}

// CreateComment inserts a comment
func (r *SQLiteRepository) CreateComment(ctx context.Context, comment *Comment) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	r.stamp(&comment.ID, &comment.CreatedAt)
	query := `
	INSERT INTO comments (id, task_id, content, author_email, created_at)
	VALUES (?, ?, ?, ?, ?)`

	return insert(ctx, r.db, "comment", query,
		comment.ID, comment.TaskID, comment.Content, comment.AuthorEmail, FormatTimeForDB(comment.CreatedAt))
}

// ListCommentsByTask lists a task's comments in creation order
func (r *SQLiteRepository) ListCommentsByTask(ctx context.Context, taskID string) ([]*Comment, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, task_id, content, author_email, created_at
	FROM comments
	WHERE task_id = ?
	ORDER BY created_at ASC, rowid ASC`

	return queryAll(ctx, r.db, "comments", ScanComments, query, taskID)
}

// ListCommentsByProject lists the comments of every task in a project, so a
// project page needs one query for all of its threads.
func (r *SQLiteRepository) ListCommentsByProject(ctx context.Context, projectID string) ([]*Comment, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT c.id, c.task_id, c.content, c.author_email, c.created_at
	FROM comments c
	JOIN tasks t ON t.id = c.task_id
	WHERE t.project_id = ?
	ORDER BY c.created_at ASC, c.rowid ASC`

	return queryAll(ctx, r.db, "comments", ScanComments, query, projectID)
}
