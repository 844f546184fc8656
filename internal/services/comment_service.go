package services

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

type commentServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.Validator
}

func (s *commentServiceImpl) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	rows, err := s.repo.ListCommentsByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Comment.FromDatabaseSlice(rows), nil
}

// Add appends a comment to an existing task; the server stamps createdAt.
func (s *commentServiceImpl) Add(ctx context.Context, input AddCommentInput) (*domain.Comment, error) {
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetTask(ctx, input.TaskID); err != nil {
		return nil, err
	}

	row := s.mapper.Comment.ToDatabase(domain.Comment{
		TaskID:      input.TaskID,
		Content:     strings.TrimSpace(input.Content),
		AuthorEmail: strings.TrimSpace(input.AuthorEmail),
	})
	if err := s.repo.CreateComment(ctx, &row); err != nil {
		return nil, err
	}
	comment := s.mapper.Comment.FromDatabase(row)
	return &comment, nil
}
