package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mplan/internal/gesture"
	"mplan/internal/models"
	"mplan/internal/store"
)

// Fixed clock: today is Friday 2024-03-01, the app shows March 2024.
// The grid runs 2024-02-25 .. 2024-04-06 with 2024-03-10 at week row
// 2, column 0.
var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(s *store.Store) *App {
	a := NewApp(s)
	a.now = func() time.Time { return testNow }
	a.anchor = monthStart(testNow)
	a.Update(tea.WindowSizeMsg{Width: 112, Height: 40})
	return a
}

// Terminal coordinates for the test layout (cell width 16, week rows
// of 5 lines below the weekday header at y=3)
func dayLineY(weekRow int) int    { return headerLines + 1 + weekRow*5 }
func laneY(weekRow, lane int) int { return dayLineY(weekRow) + 1 + lane }

func press(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func motion(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func release(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func typeKeys(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestDragCreateOpensFormAndConfirmPersists(t *testing.T) {
	s := store.New()
	a := newTestApp(s)

	// Drag 2024-03-10 .. 2024-03-12 on the day-number line of week 2
	press(a, 0, dayLineY(2))
	motion(a, 2*16, dayLineY(2))
	release(a, 2*16, dayLineY(2))

	if !a.formOpen {
		t.Fatal("form did not open after a create drag")
	}
	if a.pendingStart != "2024-03-10" || a.pendingEnd != "2024-03-12" {
		t.Fatalf("pending range %s..%s, want 2024-03-10..2024-03-12", a.pendingStart, a.pendingEnd)
	}
	if s.Len() != 0 {
		t.Fatal("task persisted before the form confirmed")
	}

	typeKeys(a, "Design review")
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if a.formOpen {
		t.Error("form still open after confirm")
	}
	all := s.All()
	if len(all) != 1 {
		t.Fatalf("store has %d tasks, want 1", len(all))
	}
	got := all[0]
	if got.Name != "Design review" || got.Start != "2024-03-10" || got.End != "2024-03-12" {
		t.Errorf("created %q %s..%s", got.Name, got.Start, got.End)
	}
}

func TestBlankNameKeepsFormOpen(t *testing.T) {
	s := store.New()
	a := newTestApp(s)

	press(a, 0, dayLineY(2))
	release(a, 0, dayLineY(2))
	if !a.formOpen {
		t.Fatal("form did not open")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !a.formOpen {
		t.Error("form closed despite the blank name being rejected")
	}
	if s.Len() != 0 {
		t.Error("blank-name confirm created a task")
	}
}

func TestCancelCreationDropsPendingRange(t *testing.T) {
	s := store.New()
	a := newTestApp(s)

	press(a, 0, dayLineY(2))
	release(a, 0, dayLineY(2))
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if a.formOpen || a.pendingStart != "" || a.pendingEnd != "" {
		t.Error("cancel left creation state behind")
	}
	if s.Len() != 0 {
		t.Error("cancelled creation persisted a task")
	}
}

func TestDragOffGridDiscardsCreate(t *testing.T) {
	s := store.New()
	a := newTestApp(s)

	press(a, 0, dayLineY(2))
	motion(a, 0, 0) // above the grid: off the surface

	if a.gestures.Mode() != gesture.ModeIdle {
		t.Error("gesture still active after leaving the surface")
	}
	if a.formOpen {
		t.Error("abandoned create opened the form")
	}
}

func TestMouseMoveGesture(t *testing.T) {
	s := store.New()
	task, err := s.Create("move me", models.CategoryToDo, "2024-03-10", "2024-03-12")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := newTestApp(s)

	// The chip spans columns 0..2 of week row 2 on lane 0. Press its
	// middle (offset 24 of 48), outside both 10px edge zones.
	press(a, 24, laneY(2, 0))
	if a.gestures.Mode() != gesture.ModeMoving {
		t.Fatalf("mode = %v, want Moving", a.gestures.Mode())
	}

	// Drag to Friday 2024-03-15 (column 5)
	motion(a, 5*16, dayLineY(2))
	release(a, 5*16, dayLineY(2))

	got, _ := s.Get(task.ID)
	if got.Start != "2024-03-15" || got.End != "2024-03-17" {
		t.Errorf("moved to %s..%s, want 2024-03-15..2024-03-17 (duration kept)", got.Start, got.End)
	}
}

func TestMouseResizeStartEdge(t *testing.T) {
	s := store.New()
	task, err := s.Create("resize me", models.CategoryToDo, "2024-03-10", "2024-03-12")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := newTestApp(s)

	// Press 2px into the chip: inside the start edge zone
	press(a, 2, laneY(2, 0))
	if a.gestures.Mode() != gesture.ModeResizing || a.gestures.ResizeEdge() != gesture.EdgeStart {
		t.Fatalf("mode %v edge %v, want Resizing start", a.gestures.Mode(), a.gestures.ResizeEdge())
	}

	// Drag to Saturday 2024-03-09: the last column of week row 1
	motion(a, 6*16, dayLineY(1))
	release(a, 6*16, dayLineY(1))

	got, _ := s.Get(task.ID)
	if got.Start != "2024-03-09" || got.End != "2024-03-12" {
		t.Errorf("resized to %s..%s, want 2024-03-09..2024-03-12", got.Start, got.End)
	}
}

func TestMonthNavigate(t *testing.T) {
	a := newTestApp(store.New())

	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := a.anchor.Format("2006-01"); got != "2024-04" {
		t.Errorf("next month: %s, want 2024-04", got)
	}
	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := a.anchor.Format("2006-01"); got != "2024-02" {
		t.Errorf("prev month: %s, want 2024-02", got)
	}
	typeKeys(a, "t")
	if got := a.anchor.Format("2006-01"); got != "2024-03" {
		t.Errorf("today jump: %s, want 2024-03", got)
	}
}

func TestCategoryToggleKeysAffectGrid(t *testing.T) {
	s := store.New()
	if _, err := s.Create("Design review", models.CategoryToDo, "2024-03-10", "2024-03-12"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := newTestApp(s)

	countSpans := func() int {
		n := 0
		for _, d := range a.buildDays() {
			n += len(d.Spans)
		}
		return n
	}

	if countSpans() != 3 {
		t.Fatalf("task spans %d day cells, want 3", countSpans())
	}
	typeKeys(a, "1") // disable To Do
	if countSpans() != 0 {
		t.Error("disabled category still renders")
	}
	typeKeys(a, "1") // re-enable
	if countSpans() != 3 {
		t.Error("re-enabled category missing from grid")
	}
}

func TestSearchFiltersGrid(t *testing.T) {
	s := store.New()
	if _, err := s.Create("Design review", models.CategoryToDo, "2024-03-10", "2024-03-12"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create("Ship it", models.CategoryToDo, "2024-03-10", "2024-03-10"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := newTestApp(s)

	typeKeys(a, "/")
	if !a.searching {
		t.Fatal("search did not focus")
	}
	typeKeys(a, "REVIEW")
	if a.criteria.Search != "REVIEW" {
		t.Fatalf("criteria search %q", a.criteria.Search)
	}

	names := map[string]bool{}
	for _, d := range a.buildDays() {
		for _, sp := range d.Spans {
			names[sp.Task.Name] = true
		}
	}
	if !names["Design review"] || names["Ship it"] {
		t.Errorf("visible set %v, want only Design review", names)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.searching {
		t.Error("esc did not leave search mode")
	}
}

func TestSetTimeWindowRejectsUnknownValues(t *testing.T) {
	a := newTestApp(store.New())

	a.setTimeWindow("2")
	if a.criteria.Window != store.Window(2) {
		t.Fatalf("window = %v, want 2", a.criteria.Window)
	}
	a.setTimeWindow("6")
	if a.criteria.Window != store.Window(2) {
		t.Error("invalid window value was applied")
	}
	a.setTimeWindow("all")
	if a.criteria.Window != store.WindowAll {
		t.Error("window 'all' not applied")
	}
}

func TestWindowCycle(t *testing.T) {
	a := newTestApp(store.New())
	want := []store.Window{1, 2, 3, store.WindowAll, 1}
	for _, w := range want {
		typeKeys(a, "w")
		if a.criteria.Window != w {
			t.Fatalf("window = %v, want %v", a.criteria.Window, w)
		}
	}
}

func TestProvisionalRangeShownDuringDrag(t *testing.T) {
	s := store.New()
	if _, err := s.Create("chip", models.CategoryToDo, "2024-03-10", "2024-03-12"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a := newTestApp(s)

	press(a, 24, laneY(2, 0))
	motion(a, 5*16, dayLineY(2)) // provisional 03-15..03-17

	var spanDates []string
	for _, d := range a.buildDays() {
		if len(d.Spans) > 0 {
			spanDates = append(spanDates, d.Date)
		}
	}
	want := []string{"2024-03-15", "2024-03-16", "2024-03-17"}
	if len(spanDates) != len(want) {
		t.Fatalf("provisional chip on %v, want %v", spanDates, want)
	}
	for i := range want {
		if spanDates[i] != want[i] {
			t.Fatalf("provisional chip on %v, want %v", spanDates, want)
		}
	}

	// The store still holds the committed range until release
	all := s.All()
	if all[0].Start != "2024-03-10" {
		t.Error("provisional drag mutated the store before release")
	}

	release(a, 5*16, dayLineY(2))
}

func TestSelectionPreviewDuringCreateDrag(t *testing.T) {
	a := newTestApp(store.New())

	// Backward drag: 03-12 to 03-10; preview must still be chronological
	press(a, 2*16, dayLineY(2))
	motion(a, 0, dayLineY(2))

	var preview []string
	for _, d := range a.buildDays() {
		if d.InSelection {
			preview = append(preview, d.Date)
		}
	}
	want := []string{"2024-03-10", "2024-03-11", "2024-03-12"}
	if len(preview) != len(want) {
		t.Fatalf("preview %v, want %v", preview, want)
	}
	for i := range want {
		if preview[i] != want[i] {
			t.Fatalf("preview %v, want %v", preview, want)
		}
	}
}
