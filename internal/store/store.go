// Package store owns the authoritative task collection and the filter
// predicates deriving the visible subset from it.
package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"mplan/internal/models"
)

// ErrEmptyName is returned when creating a task whose name is blank
// after trimming
var ErrEmptyName = errors.New("task name is empty")

// Store holds all tasks in insertion order. Insertion order is the
// stable per-day rendering order, so it is never re-sorted.
type Store struct {
	tasks []models.Task
}

// New creates an empty task store
func New() *Store {
	return &Store{}
}

// Create appends a new task with a fresh id. The name is trimmed;
// a blank result rejects the creation and nothing is added. Callers
// must pass start <= end.
func (s *Store) Create(name string, category models.Category, start, end string) (models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Task{}, ErrEmptyName
	}

	task := models.Task{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
		Start:    start,
		End:      end,
	}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// UpdateRange replaces only the start/end of the matching task. Unknown
// ids are a silent no-op. Callers must guarantee start <= end before
// committing.
func (s *Store) UpdateRange(id, start, end string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Start = start
			s.tasks[i].End = end
			return
		}
	}
}

// Get returns the task with the given id, if present
func (s *Store) Get(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// All returns the tasks in insertion order. The slice is a copy; the
// store's state only changes through Create and UpdateRange.
func (s *Store) All() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}
