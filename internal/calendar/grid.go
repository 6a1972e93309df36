// Package calendar derives the 6x7 month-grid view model: for each of
// the 42 displayed days, which visible tasks touch it and where each
// task's bar starts and ends.
package calendar

import (
	"time"

	"mplan/internal/dateutil"
	"mplan/internal/models"
)

// Span is a task's presence on one grid day. IsRangeStart/IsRangeEnd
// mark the first/last day of the task's range (both true for a
// single-day task, both false on interior days); the renderer uses
// them to draw continuous bars and to place the name label.
type Span struct {
	Task         models.Task
	IsRangeStart bool
	IsRangeEnd   bool
}

// Day is one cell of the month grid
type Day struct {
	Date        string
	DayOfMonth  int
	InMonth     bool
	IsToday     bool
	InSelection bool
	Spans       []Span
}

// BuildGrid computes the 42-day grid for anchor's month. visible is the
// already-filtered task list in render order; selStart/selEnd is the
// normalized Create-gesture preview range, or empty strings when no
// selection is active.
func BuildGrid(anchor time.Time, today string, visible []models.Task, selStart, selEnd string) []Day {
	dates := dateutil.MonthGrid(anchor)
	days := make([]Day, len(dates))

	for i, d := range dates {
		key := dateutil.Key(d)
		day := Day{
			Date:        key,
			DayOfMonth:  d.Day(),
			InMonth:     d.Month() == anchor.Month(),
			IsToday:     key == today,
			InSelection: selStart != "" && dateutil.InRange(key, selStart, selEnd),
		}
		for _, t := range visible {
			if !dateutil.InRange(key, t.Start, t.End) {
				continue
			}
			day.Spans = append(day.Spans, Span{
				Task:         t,
				IsRangeStart: key == t.Start,
				IsRangeEnd:   key == t.End,
			})
		}
		days[i] = day
	}
	return days
}
