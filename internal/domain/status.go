package domain

import (
	"fmt"
	"strings"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
)

// ProjectStatuses lists every project status in display order.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectCompleted, ProjectOnHold}

// IsValid reports whether s is one of the known project statuses.
func (s ProjectStatus) IsValid() bool {
	for _, known := range ProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label renders the status for people, e.g. "ON HOLD".
func (s ProjectStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseProjectStatus accepts a status name in any case.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown project status %q", s)
	}
	return status, nil
}

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// TaskStatuses lists every task status in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label renders the status for people, e.g. "IN PROGRESS".
func (s TaskStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseTaskStatus accepts a status name in any case.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return status, nil
}

// Badge colours used by the front ends.
const (
	BadgeGreen = "green"
	BadgeBlue  = "blue"
	BadgeGray  = "gray"
	BadgeAmber = "amber"
)

// CardBadge is the colour of a project status on the dashboard.
func (s ProjectStatus) CardBadge() string {
	switch s {
	case ProjectActive:
		return BadgeGreen
	case ProjectCompleted:
		return BadgeBlue
	default:
		return BadgeGray
	}
}

// DetailBadge is the colour of a project status on the project page.
func (s ProjectStatus) DetailBadge() string {
	switch s {
	case ProjectActive:
		return BadgeGreen
	case ProjectCompleted:
		return BadgeBlue
	default:
		return BadgeAmber
	}
}

// Badge is the colour of a task status.
func (s TaskStatus) Badge() string {
	switch s {
	case TaskDone:
		return BadgeGreen
	case TaskInProgress:
		return BadgeBlue
	default:
		return BadgeGray
	}
}
