// Package views holds the front-end independent state of the dashboard and
// project detail screens. Web and terminal front ends render from it.
package views

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/domain"
	"taskboard/internal/metrics"
	"taskboard/internal/validation"
)

// Options configure a view.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ProjectCard is one project on the dashboard.
type ProjectCard struct {
	ID          string
	Name        string
	Status      domain.ProjectStatus
	StatusLabel string
	Badge       string
	Completed   int
	Total       int
	Progress    int
	DueDate     string
	DueLabel    string
	Overdue     bool
}

// NewProjectCard renders p relative to now.
func NewProjectCard(p domain.Project, now time.Time) ProjectCard {
	card := ProjectCard{
		ID:          p.ID,
		Name:        p.Name,
		Status:      p.Status,
		StatusLabel: string(p.Status),
		Badge:       p.Status.CardBadge(),
		Completed:   p.CompletedTaskCount,
		Total:       p.TaskCount,
		Progress:    p.Progress(),
		DueDate:     domain.FormatOptionalDate(p.DueDate),
		DueLabel:    domain.DueLabel(p.DueDate, now),
	}
	if p.DueDate != nil {
		card.Overdue = domain.DaysLeft(*p.DueDate, now) < 0
	}
	return card
}

// TaskRow is one task on the project page.
type TaskRow struct {
	ID           string
	Title        string
	Status       domain.TaskStatus
	StatusLabel  string
	Badge        string
	Done         bool
	Assignee     string
	CommentCount int
	Comments     []domain.Comment
	Expanded     bool
}

// NewTaskRow renders t; expanded controls whether its thread is shown.
func NewTaskRow(t domain.Task, expanded bool) TaskRow {
	return TaskRow{
		ID:           t.ID,
		Title:        t.Title,
		Status:       t.Status,
		StatusLabel:  t.Status.Label(),
		Badge:        t.Status.Badge(),
		Done:         t.IsDone(),
		Assignee:     t.Assignee(),
		CommentCount: len(t.Comments),
		Comments:     t.Comments,
		Expanded:     expanded,
	}
}

// fetchSeq orders fetches so a slow response never overwrites a newer one.
type fetchSeq struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

func (s *fetchSeq) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// apply reports whether seq is the newest result so far and records it.
func (s *fetchSeq) apply(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return false
	}
	s.applied = seq
	return true
}

// userError turns a raw validation failure into an AppError so every
// front end can present it with errors.GetUserMessage.
func userError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.AppError()
	}
	return err
}
