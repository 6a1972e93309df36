package models

import "errors"

// Category classifies a task's workflow state
type Category int

const (
	CategoryToDo Category = iota
	CategoryInProgress
	CategoryReview
	CategoryCompleted
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryToDo,
	CategoryInProgress,
	CategoryReview,
	CategoryCompleted,
}

// ErrUnknownCategory is returned when parsing a name outside the closed set
var ErrUnknownCategory = errors.New("unknown category")

func (c Category) String() string {
	switch c {
	case CategoryToDo:
		return "todo"
	case CategoryInProgress:
		return "in-progress"
	case CategoryReview:
		return "review"
	case CategoryCompleted:
		return "completed"
	}
	return "unknown"
}

// Label returns the human-readable name shown in the UI
func (c Category) Label() string {
	switch c {
	case CategoryToDo:
		return "To Do"
	case CategoryInProgress:
		return "In Progress"
	case CategoryReview:
		return "Review"
	case CategoryCompleted:
		return "Completed"
	}
	return "Unknown"
}

// Color returns the hex color used for this category's chips
func (c Category) Color() string {
	switch c {
	case CategoryToDo:
		return "#7aa2f7"
	case CategoryInProgress:
		return "#e0af68"
	case CategoryReview:
		return "#bb9af7"
	case CategoryCompleted:
		return "#9ece6a"
	}
	return "#565f89"
}

// ParseCategory maps a name back to a Category. The set is closed;
// anything unrecognized is an integration error, not a runtime state.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if s == c.String() {
			return c, nil
		}
	}
	return 0, ErrUnknownCategory
}

// Task represents a single planned item spanning an inclusive date range.
// Start and End are day keys (YYYY-MM-DD); Start <= End always holds
// after creation and after any range update.
type Task struct {
	ID       string
	Name     string
	Category Category
	Start    string
	End      string
}
