package store

import (
	"errors"
	"fmt"
	"strings"

	"mplan/internal/dateutil"
	"mplan/internal/models"
)

// Window is a relative-to-today visibility window in whole weeks.
// WindowAll disables the window.
type Window int

const (
	WindowAll Window = 0
)

// ErrBadWindow is returned for window values outside the closed set
var ErrBadWindow = errors.New("invalid time window")

// ParseWindow maps the input surface's window value ("all", "1", "2",
// "3") to a Window. The set is closed; anything else is rejected.
func ParseWindow(s string) (Window, error) {
	switch s {
	case "all":
		return WindowAll, nil
	case "1":
		return Window(1), nil
	case "2":
		return Window(2), nil
	case "3":
		return Window(3), nil
	}
	return 0, ErrBadWindow
}

func (w Window) String() string {
	switch {
	case w == WindowAll:
		return "all"
	case w == 1:
		return "1 week"
	default:
		return fmt.Sprintf("%d weeks", int(w))
	}
}

// Criteria selects the visible task subset. It is derived state,
// rebuilt by the UI as inputs change, never persisted.
type Criteria struct {
	Search     string
	Categories map[models.Category]bool
	Window     Window
}

// DefaultCriteria enables every category with no search and no window
func DefaultCriteria() Criteria {
	cats := make(map[models.Category]bool, len(models.Categories))
	for _, c := range models.Categories {
		cats[c] = true
	}
	return Criteria{Categories: cats, Window: WindowAll}
}

// Visible returns the tasks matching the criteria, preserving the input
// order. A task is retained when its category is enabled, its name
// contains the search text case-insensitively, and (when a window is
// set) its range intersects [today, today+7w]. An empty category set
// hides everything.
func Visible(tasks []models.Task, c Criteria, today string) []models.Task {
	search := strings.ToLower(c.Search)
	horizon := ""
	if c.Window != WindowAll {
		horizon = dateutil.AddDays(today, 7*int(c.Window))
	}

	var out []models.Task
	for _, t := range tasks {
		if !c.Categories[t.Category] {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), search) {
			continue
		}
		if horizon != "" && !dateutil.Intersect(t.Start, t.End, today, horizon) {
			continue
		}
		out = append(out, t)
	}
	return out
}
