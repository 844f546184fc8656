package api

import (
	"github.com/graphql-go/graphql"

	"taskboard/internal/domain"
	"taskboard/internal/services"
)

func (s *Schema) resolveOrganization(p graphql.ResolveParams) (interface{}, error) {
	slug, _ := p.Args["slug"].(string)
	org, err := s.services.Organizations.GetBySlug(p.Context, slug)
	if err != nil {
		return nil, s.fail("organization", err)
	}
	return org, nil
}

func (s *Schema) resolveOrganizationProjects(p graphql.ResolveParams) (interface{}, error) {
	org, ok := p.Source.(*domain.Organization)
	if !ok || org == nil {
		return []domain.Project{}, nil
	}
	if org.Projects != nil {
		return org.Projects, nil
	}
	projects, err := s.services.Projects.ListByOrganization(p.Context, org.ID)
	if err != nil {
		return nil, s.fail("organization.projects", err)
	}
	return projects, nil
}

func (s *Schema) resolveProject(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	project, err := s.services.Projects.GetWithTasks(p.Context, id)
	if err != nil {
		return nil, s.fail("project", err)
	}
	return project, nil
}

func (s *Schema) resolveProjectTasks(p graphql.ResolveParams) (interface{}, error) {
	project, ok := sourceProject(p.Source)
	if !ok {
		return []domain.Task{}, nil
	}
	if project.Tasks != nil {
		return project.Tasks, nil
	}
	tasks, err := s.services.Tasks.ListByProject(p.Context, project.ID)
	if err != nil {
		return nil, s.fail("project.tasks", err)
	}
	return tasks, nil
}

func (s *Schema) resolveTaskComments(p graphql.ResolveParams) (interface{}, error) {
	task, ok := sourceTask(p.Source)
	if !ok {
		return []domain.Comment{}, nil
	}
	if task.Comments != nil {
		return task.Comments, nil
	}
	comments, err := s.services.Comments.ListByTask(p.Context, task.ID)
	if err != nil {
		return nil, s.fail("task.comments", err)
	}
	return comments, nil
}

func (s *Schema) resolveCreateProject(p graphql.ResolveParams) (interface{}, error) {
	input := services.CreateProjectInput{
		OrgSlug:     stringArg(p, "orgSlug"),
		Name:        stringArg(p, "name"),
		Description: stringArg(p, "description"),
		DueDate:     dateArg(p, "dueDate"),
	}
	project, err := s.services.Projects.Create(p.Context, input)
	if err != nil {
		return nil, s.fail("createProject", err)
	}
	return map[string]interface{}{"project": project}, nil
}

func (s *Schema) resolveCreateTask(p graphql.ResolveParams) (interface{}, error) {
	input := services.CreateTaskInput{
		ProjectID:     stringArg(p, "projectId"),
		Title:         stringArg(p, "title"),
		Description:   stringArg(p, "description"),
		AssigneeEmail: stringArg(p, "assigneeEmail"),
	}
	task, err := s.services.Tasks.Create(p.Context, input)
	if err != nil {
		return nil, s.fail("createTask", err)
	}
	return map[string]interface{}{"task": task}, nil
}

func (s *Schema) resolveUpdateTaskStatus(p graphql.ResolveParams) (interface{}, error) {
	input := services.UpdateTaskStatusInput{
		TaskID: stringArg(p, "taskId"),
		Status: stringArg(p, "status"),
	}
	task, err := s.services.Tasks.UpdateStatus(p.Context, input)
	if err != nil {
		return nil, s.fail("updateTaskStatus", err)
	}
	return map[string]interface{}{"task": task}, nil
}

func (s *Schema) resolveAddComment(p graphql.ResolveParams) (interface{}, error) {
	input := services.AddCommentInput{
		TaskID:      stringArg(p, "taskId"),
		Content:     stringArg(p, "content"),
		AuthorEmail: stringArg(p, "authorEmail"),
	}
	comment, err := s.services.Comments.Add(p.Context, input)
	if err != nil {
		return nil, s.fail("addComment", err)
	}
	return map[string]interface{}{"comment": comment}, nil
}

func (s *Schema) resolveUpdateProject(p graphql.ResolveParams) (interface{}, error) {
	input := services.UpdateProjectInput{
		ProjectID:  stringArg(p, "projectId"),
		Name:       optionalStringArg(p, "name"),
		Status:     optionalStringArg(p, "status"),
		DueDate:    dateArg(p, "dueDate"),
		SetDueDate: argumentPresent(p, "dueDate"),
	}
	project, err := s.services.Projects.Update(p.Context, input)
	if err != nil {
		return nil, s.fail("updateProject", err)
	}
	return map[string]interface{}{"project": project}, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

// optionalStringArg is nil when the argument was omitted or null.
func optionalStringArg(p graphql.ResolveParams, name string) *string {
	v, ok := p.Args[name].(string)
	if !ok {
		return nil
	}
	return &v
}

func dateArg(p graphql.ResolveParams, name string) *domain.Date {
	d, ok := p.Args[name].(domain.Date)
	if !ok {
		return nil
	}
	return &d
}

// argumentPresent reports whether the field's document names the argument.
// p.Args cannot tell an explicit null from an omitted argument.
func argumentPresent(p graphql.ResolveParams, name string) bool {
	for _, field := range p.Info.FieldASTs {
		for _, arg := range field.Arguments {
			if arg.Name != nil && arg.Name.Value == name {
				return true
			}
		}
	}
	return false
}
