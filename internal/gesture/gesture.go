// Package gesture implements the pointer-driven interaction state
// machine for the planner: dragging on empty cells to select a range
// for a new task, dragging a task chip to move it, and dragging a
// chip's edge to resize it.
package gesture

import (
	"mplan/internal/dateutil"
	"mplan/internal/models"
	"mplan/internal/store"
)

// DefaultEdgeZone is the pixel width of the grab zone at each end of a
// rendered chip that classifies a press as a resize instead of a move
const DefaultEdgeZone = 10

// Mode is the current gesture. At most one is active at a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCreating
	ModeMoving
	ModeResizing
)

// Edge identifies which end of a range a resize drags
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Controller drives gesture transitions from pointer events already
// resolved to calendar dates by the rendering layer. Move/Resize
// commits go straight to the store; a completed Create gesture instead
// yields a pending range for the creation form; the task only exists
// once the form confirms.
type Controller struct {
	store    *store.Store
	edgeZone int

	mode Mode

	// Creating
	anchor  string
	current string

	// Moving / Resizing
	taskID    string
	edge      Edge
	provStart string
	provEnd   string
}

// New creates an idle controller committing into s
func New(s *store.Store) *Controller {
	return &Controller{store: s, edgeZone: DefaultEdgeZone}
}

// SetEdgeZone overrides the resize grab-zone width in pixels.
// Non-positive values are ignored.
func (c *Controller) SetEdgeZone(px int) {
	if px > 0 {
		c.edgeZone = px
	}
}

// Mode returns the active gesture mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// ActiveTaskID returns the task a Move/Resize gesture holds, or ""
func (c *Controller) ActiveTaskID() string {
	if c.mode == ModeMoving || c.mode == ModeResizing {
		return c.taskID
	}
	return ""
}

// ResizeEdge returns which edge an active resize drags. Only
// meaningful while Mode() == ModeResizing.
func (c *Controller) ResizeEdge() Edge {
	return c.edge
}

// Provisional returns the uncommitted range of the active gesture in
// chronological order, regardless of drag direction. ok is false when
// idle.
func (c *Controller) Provisional() (start, end string, ok bool) {
	switch c.mode {
	case ModeCreating:
		if c.anchor <= c.current {
			return c.anchor, c.current, true
		}
		return c.current, c.anchor, true
	case ModeMoving, ModeResizing:
		return c.provStart, c.provEnd, true
	}
	return "", "", false
}

// PressEmptyCell begins a Create gesture anchored at date. Ignored
// unless idle.
func (c *Controller) PressEmptyCell(date string) {
	if c.mode != ModeIdle {
		return
	}
	c.mode = ModeCreating
	c.anchor = date
	c.current = date
}

// PressTask begins a Move or Resize gesture on task, classified by the
// horizontal pixel offset of the press within the chip's rendered
// width: a press inside the edge zone grabs that edge, anywhere else
// moves the whole task. Ignored unless idle.
func (c *Controller) PressTask(task models.Task, offsetPx, chipWidthPx int) {
	if c.mode != ModeIdle {
		return
	}
	c.taskID = task.ID
	c.provStart = task.Start
	c.provEnd = task.End

	switch {
	case offsetPx < c.edgeZone:
		c.mode = ModeResizing
		c.edge = EdgeStart
	case offsetPx > chipWidthPx-c.edgeZone:
		c.mode = ModeResizing
		c.edge = EdgeEnd
	default:
		c.mode = ModeMoving
	}
}

// Move updates the active gesture with the date now under the pointer
func (c *Controller) Move(date string) {
	switch c.mode {
	case ModeCreating:
		c.current = date

	case ModeMoving:
		// Dragging shifts the whole range; duration is preserved
		duration := dateutil.DaysBetween(c.provStart, c.provEnd)
		c.provStart = date
		c.provEnd = dateutil.AddDays(date, duration)

	case ModeResizing:
		// An edge may not cross the opposite edge; a crossing move is
		// ignored for this event, leaving the range at its last valid
		// value
		if c.edge == EdgeStart {
			if date <= c.provEnd {
				c.provStart = date
			}
		} else {
			if date >= c.provStart {
				c.provEnd = date
			}
		}
	}
}

// Release ends the active gesture. A Move/Resize commits its
// provisional range to the store (a no-net-change commit leaves the
// store identical). A Create yields its normalized range as a pending
// range for the creation form; nothing is persisted until the form
// confirms. Always returns to idle.
func (c *Controller) Release() (start, end string, pendingCreate bool) {
	switch c.mode {
	case ModeCreating:
		start, end, _ = c.Provisional()
		c.reset()
		return start, end, true

	case ModeMoving, ModeResizing:
		c.store.UpdateRange(c.taskID, c.provStart, c.provEnd)
		c.reset()
	}
	return "", "", false
}

// Leave handles the pointer leaving the interactive surface: an active
// Create is discarded, an active Move/Resize commits as on release.
// Always returns to idle.
func (c *Controller) Leave() {
	switch c.mode {
	case ModeMoving, ModeResizing:
		c.store.UpdateRange(c.taskID, c.provStart, c.provEnd)
	}
	c.reset()
}

func (c *Controller) reset() {
	c.mode = ModeIdle
	c.anchor = ""
	c.current = ""
	c.taskID = ""
	c.provStart = ""
	c.provEnd = ""
}
