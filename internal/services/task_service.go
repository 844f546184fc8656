package services

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.Validator
}

func (s *taskServiceImpl) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := s.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Task.FromDatabaseSlice(rows), nil
}

// Create adds a TODO task to an existing project.
func (s *taskServiceImpl) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}

	// Surface a missing project as not found rather than a constraint failure.
	if _, err := s.repo.GetProject(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	row := s.mapper.Task.ToDatabase(domain.Task{
		ProjectID:     input.ProjectID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Status:        domain.TaskTodo,
		AssigneeEmail: strings.TrimSpace(input.AssigneeEmail),
	})
	if err := s.repo.CreateTask(ctx, &row); err != nil {
		return nil, err
	}
	task := s.mapper.Task.FromDatabase(row)
	task.Comments = []domain.Comment{}
	return &task, nil
}

// UpdateStatus moves one task to a new status; any transition is allowed.
func (s *taskServiceImpl) UpdateStatus(ctx context.Context, input UpdateTaskStatusInput) (*domain.Task, error) {
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTaskStatus(ctx, input.TaskID, input.Status); err != nil {
		return nil, err
	}
	row, err := s.repo.GetTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	task := s.mapper.Task.FromDatabase(*row)
	return &task, nil
}
