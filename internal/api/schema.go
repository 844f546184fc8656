package api

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"taskboard/internal/domain"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/services"
)

// Schema is the GraphQL schema backed by the service layer.
type Schema struct {
	schema   graphql.Schema
	services *services.ServiceContainer
	logger   *zap.Logger
}

// NewSchema builds the schema. It only fails on a programming error in the
// type definitions.
func NewSchema(svc *services.ServiceContainer, logger *zap.Logger) (*Schema, error) {
	s := &Schema{services: svc, logger: logger}

	commentType := s.defineCommentType()
	taskType := s.defineTaskType(commentType)
	projectType := s.defineProjectType(taskType)
	organizationType := s.defineOrganizationType(projectType)

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"organization": &graphql.Field{
				Type: organizationType,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveOrganization,
			},
			"project": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveProject,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProject": &graphql.Field{
				Type: payloadType("CreateProjectPayload", "project", projectType),
				Args: graphql.FieldConfigArgument{
					"orgSlug":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"dueDate":     &graphql.ArgumentConfig{Type: DateScalar},
				},
				Resolve: s.resolveCreateProject,
			},
			"createTask": &graphql.Field{
				Type: payloadType("CreateTaskPayload", "task", taskType),
				Args: graphql.FieldConfigArgument{
					"projectId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description":   &graphql.ArgumentConfig{Type: graphql.String},
					"assigneeEmail": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: s.resolveCreateTask,
			},
			"updateTaskStatus": &graphql.Field{
				Type: payloadType("UpdateTaskStatusPayload", "task", taskType),
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveUpdateTaskStatus,
			},
			"addComment": &graphql.Field{
				Type: payloadType("AddCommentPayload", "comment", commentType),
				Args: graphql.FieldConfigArgument{
					"taskId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"content":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"authorEmail": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: s.resolveAddComment,
			},
			"updateProject": &graphql.Field{
				Type: payloadType("UpdateProjectPayload", "project", projectType),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":      &graphql.ArgumentConfig{Type: graphql.String},
					"status":    &graphql.ArgumentConfig{Type: graphql.String},
					"dueDate":   &graphql.ArgumentConfig{Type: DateScalar},
				},
				Resolve: s.resolveUpdateProject,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

// GraphQLSchema exposes the compiled schema.
func (s *Schema) GraphQLSchema() graphql.Schema {
	return s.schema
}

func payloadType(name, field string, of graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			field: &graphql.Field{Type: of},
		},
	})
}

func (s *Schema) defineCommentType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskComment",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"content":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"authorEmail": &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})
}

func (s *Schema) defineTaskType(commentType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":   &graphql.Field{Type: graphql.String},
			"status":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"assigneeEmail": &graphql.Field{Type: graphql.String},
			"createdAt":     &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"comments": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(commentType))),
				Resolve: s.resolveTaskComments,
			},
		},
	})
}

func (s *Schema) defineProjectType(taskType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":        &graphql.Field{Type: graphql.String},
			"status":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"dueDate":            &graphql.Field{Type: DateScalar},
			"createdAt":          &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"taskCount":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completedTaskCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"tasks": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Resolve: s.resolveProjectTasks,
			},
		},
	})
}

func (s *Schema) defineOrganizationType(projectType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Organization",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"slug":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"contactEmail": &graphql.Field{Type: graphql.String},
			"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"projects": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(projectType))),
				Resolve: s.resolveOrganizationProjects,
			},
		},
	})
}

// resolverError presents an AppError to GraphQL clients: the user message
// becomes errors[].message and the code goes into extensions.
type resolverError struct {
	err error
}

func (e *resolverError) Error() string {
	return apperrors.GetUserMessage(e.err)
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": apperrors.GetErrorCode(e.err)}
}

func (e *resolverError) Unwrap() error {
	return e.err
}

func (s *Schema) fail(operation string, err error) error {
	if apperrors.ShouldLogError(err) {
		s.logger.Error("resolver failed", zap.String("field", operation), zap.Error(err))
	}
	return &resolverError{err: err}
}

// sourceProject accepts both value and pointer projects as resolver sources.
func sourceProject(source interface{}) (domain.Project, bool) {
	switch p := source.(type) {
	case domain.Project:
		return p, true
	case *domain.Project:
		if p != nil {
			return *p, true
		}
	}
	return domain.Project{}, false
}

func sourceTask(source interface{}) (domain.Task, bool) {
	switch t := source.(type) {
	case domain.Task:
		return t, true
	case *domain.Task:
		if t != nil {
			return *t, true
		}
	}
	return domain.Task{}, false
}
