package cli

import (
	"fmt"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/views"
)

// renderDashboard prints one line per project card.
func renderDashboard(state views.DashboardState, cards []views.ProjectCard) string {
	var b strings.Builder
	if org := state.Organization; org != nil {
		fmt.Fprintf(&b, "%s (%s)\n", org.Name, org.Slug)
	}
	if len(cards) == 0 {
		b.WriteString("No projects yet\n")
		return b.String()
	}
	for _, card := range cards {
		fmt.Fprintf(&b, "%s  %s  [%s]  %d/%d tasks (%d%%)", card.ID, card.Name, card.StatusLabel, card.Completed, card.Total, card.Progress)
		if card.DueDate != "" {
			fmt.Fprintf(&b, "  due %s, %s", card.DueDate, card.DueLabel)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderProject prints a project with its tasks; comment threads are shown
// for every task when allComments is set, otherwise only for expanded ones.
func renderProject(state views.DetailState, now time.Time, allComments bool) string {
	p := state.Project
	if p == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s]\n", p.Name, p.Status.Label())
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", p.Description)
	}
	if p.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s (%s)\n", p.DueDate, domain.DueLabel(p.DueDate, now))
	} else {
		b.WriteString("Due: none\n")
	}

	rows := state.Tasks()
	done := 0
	for _, row := range rows {
		if row.Done {
			done++
		}
	}
	fmt.Fprintf(&b, "Tasks (%d/%d done):\n", done, len(rows))
	if len(rows) == 0 {
		b.WriteString("  none\n")
	}
	for _, row := range rows {
		mark := " "
		if row.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s  %s  %s  %s  (%d comments)\n", mark, row.ID, row.Title, row.StatusLabel, row.Assignee, row.CommentCount)
		if allComments || row.Expanded {
			for _, c := range row.Comments {
				fmt.Fprintf(&b, "      - %s  %s\n", c.Content, c.CreatedAt.Format("2006-01-02 15:04"))
			}
		}
	}
	return b.String()
}
