package services

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
	"taskboard/internal/repository/sqlite"
)

type organizationServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// GetBySlug retrieves an organization without its projects
func (s *organizationServiceImpl) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	row, err := s.repo.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	org := s.mapper.Organization.FromDatabase(*row)
	return &org, nil
}

func (s *organizationServiceImpl) Ensure(ctx context.Context, name, slug, contactEmail string) (*domain.Organization, bool, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, false, errors.NewInvalidInputError("slug", slug, "slug cannot be empty")
	}

	existing, err := s.GetBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, false, err
	}

	if strings.TrimSpace(name) == "" {
		name = slug
	}
	row := &sqlite.Organization{Name: name, Slug: slug, ContactEmail: contactEmail}
	if err := s.repo.CreateOrganization(ctx, row); err != nil {
		return nil, false, err
	}
	org := s.mapper.Organization.FromDatabase(*row)
	return &org, true, nil
}
