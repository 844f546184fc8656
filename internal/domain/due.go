package domain

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// DaysLeft is ceil((due - now) / 24h), with due taken as midnight in now's
// location. Today is 0, tomorrow 1, three days ago -3.
func DaysLeft(due Date, now time.Time) int {
	remaining := due.In(now.Location()).Sub(now)
	return int(math.Ceil(float64(remaining) / float64(day)))
}

// DaysLeftLabel renders a days-left value.
func DaysLeftLabel(days int) string {
	if days < 0 {
		return fmt.Sprintf("Overdue by %d days", -days)
	}
	return fmt.Sprintf("%d days left", days)
}

// DueLabel renders the due date of a project relative to now, or "" when
// the project has none.
func DueLabel(due *Date, now time.Time) string {
	if due == nil {
		return ""
	}
	return DaysLeftLabel(DaysLeft(*due, now))
}
