package services

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

type projectServiceImpl struct {
	repo             sqlite.Repository
	mapper           *domain.Mapper
	validator        *validation.Validator
	projectValidator *validation.ProjectValidator
}

func (s *projectServiceImpl) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Project, error) {
	rows, err := s.repo.ListProjectsByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Project.FromDatabaseSlice(rows), nil
}

func (s *projectServiceImpl) Get(ctx context.Context, id string) (*domain.Project, error) {
	row, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project := s.mapper.Project.FromDatabase(*row)
	return &project, nil
}

func (s *projectServiceImpl) GetWithTasks(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taskRows, err := s.repo.ListTasksByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	commentRows, err := s.repo.ListCommentsByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	byTask := make(map[string][]domain.Comment)
	for _, row := range commentRows {
		byTask[row.TaskID] = append(byTask[row.TaskID], s.mapper.Comment.FromDatabase(*row))
	}

	project.Tasks = s.mapper.Task.FromDatabaseSlice(taskRows)
	for i := range project.Tasks {
		comments := byTask[project.Tasks[i].ID]
		if comments == nil {
			comments = []domain.Comment{}
		}
		project.Tasks[i].Comments = comments
	}
	return project, nil
}

// Create adds an ACTIVE project to the organization named by slug.
func (s *projectServiceImpl) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}

	org, err := s.repo.GetOrganizationBySlug(ctx, strings.TrimSpace(input.OrgSlug))
	if err != nil {
		return nil, err
	}

	row := s.mapper.Project.ToDatabase(domain.Project{
		OrganizationID: org.ID,
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Status:         domain.ProjectActive,
		DueDate:        input.DueDate,
	})
	if err := s.repo.CreateProject(ctx, &row); err != nil {
		return nil, err
	}
	return s.Get(ctx, row.ID)
}

// Update applies the provided fields to an existing project.
func (s *projectServiceImpl) Update(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	if err := validate(s.validator, input); err != nil {
		return nil, err
	}

	ve := validation.NewValidationError()
	var name string
	if input.Name != nil {
		ve.Merge(s.projectValidator.ValidateName(*input.Name))
		name = strings.TrimSpace(*input.Name)
	}
	var status domain.ProjectStatus
	if input.Status != nil {
		parsed, err := s.projectValidator.ValidateStatus(*input.Status)
		ve.Merge(err)
		status = parsed
	}
	if ve.HasErrors() {
		return nil, ve.AppError()
	}

	project, err := s.Get(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		project.Name = name
	}
	if input.Status != nil {
		project.Status = status
	}
	if input.SetDueDate {
		project.DueDate = input.DueDate
	}

	row := s.mapper.Project.ToDatabase(*project)
	if err := s.repo.UpdateProject(ctx, &row); err != nil {
		return nil, err
	}
	return s.Get(ctx, project.ID)
}
