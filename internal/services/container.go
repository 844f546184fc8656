package services

import (
	"taskboard/internal/domain"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/validation"
)

// NewServiceContainer wires every service to one repository.
func NewServiceContainer(repo sqlite.Repository) *ServiceContainer {
	mapper := domain.NewMapper()
	v := validation.GetValidator()
	return &ServiceContainer{
		Organizations: &organizationServiceImpl{repo: repo, mapper: mapper},
		Projects: &projectServiceImpl{
			repo:             repo,
			mapper:           mapper,
			validator:        v,
			projectValidator: validation.NewProjectValidator(),
		},
		Tasks:    &taskServiceImpl{repo: repo, mapper: mapper, validator: v},
		Comments: &commentServiceImpl{repo: repo, mapper: mapper, validator: v},
	}
}

// validate runs struct validation and lifts failures into an AppError.
func validate(v *validation.Validator, input interface{}) error {
	if err := v.Struct(input); err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return ve.AppError()
		}
		return err
	}
	return nil
}
