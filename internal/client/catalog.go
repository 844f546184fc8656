package client

// Operation is a named GraphQL document.
type Operation struct {
	Name     string
	Document string
}

// The catalog of documents the front ends send. Field selections are exactly
// what the views render.
var (
	GetOrgProjects = Operation{Name: "GetOrgProjects", Document: `query GetOrgProjects($slug: String!) {
  organization(slug: $slug) {
    id
    name
    projects {
      id
      name
      status
      taskCount
      completedTaskCount
      dueDate
    }
  }
}`}

	GetProjectDetails = Operation{Name: "GetProjectDetails", Document: `query GetProjectDetails($id: ID!) {
  project(id: $id) {
    id
    name
    status
    dueDate
    tasks {
      id
      title
      status
      assigneeEmail
      comments {
        id
        content
        createdAt
      }
    }
  }
}`}

	CreateProject = Operation{Name: "CreateProject", Document: `mutation CreateProject($orgSlug: String!, $name: String!, $dueDate: Date) {
  createProject(orgSlug: $orgSlug, name: $name, dueDate: $dueDate) {
    project {
      id
      name
      dueDate
    }
  }
}`}

	CreateTask = Operation{Name: "CreateTask", Document: `mutation CreateTask($projectId: ID!, $title: String!) {
  createTask(projectId: $projectId, title: $title) {
    task { id title status }
  }
}`}

	UpdateTaskStatus = Operation{Name: "UpdateTaskStatus", Document: `mutation UpdateTaskStatus($taskId: ID!, $status: String!) {
  updateTaskStatus(taskId: $taskId, status: $status) {
    task { id status }
  }
}`}

	AddComment = Operation{Name: "AddComment", Document: `mutation AddComment($taskId: ID!, $content: String!) {
  addComment(taskId: $taskId, content: $content) {
    comment {
      id
      content
      createdAt
    }
  }
}`}

	UpdateProject = Operation{Name: "UpdateProject", Document: `mutation UpdateProject($projectId: ID!, $name: String, $status: String, $dueDate: Date) {
  updateProject(projectId: $projectId, name: $name, status: $status, dueDate: $dueDate) {
    project {
      id
      name
      status
      dueDate
    }
  }
}`}
)

// Catalog lists every operation in a stable order.
var Catalog = []Operation{
	GetOrgProjects,
	GetProjectDetails,
	CreateProject,
	CreateTask,
	UpdateTaskStatus,
	AddComment,
	UpdateProject,
}
