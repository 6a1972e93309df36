package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mplan/internal/calendar"
	"mplan/internal/dateutil"
	"mplan/internal/gesture"
	"mplan/internal/models"
	"mplan/internal/store"
	"mplan/internal/ui/keys"
	"mplan/internal/ui/styles"
	"mplan/internal/ui/views"
)

// headerLines is the number of lines rendered above the calendar
// view's weekday header: title, filter bar, blank
const headerLines = 3

// App is the root model. It is the single owner of all mutable state:
// the task store, the gesture controller, the filter criteria, and the
// month anchor. Views derive everything they render from it.
type App struct {
	store    *store.Store
	gestures *gesture.Controller
	criteria store.Criteria

	anchor time.Time // first day of the displayed month
	now    func() time.Time

	calView *views.CalendarView
	form    *views.TaskForm
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	// Creation flow: the range a Create gesture selected, held while
	// the form is open
	formOpen     bool
	pendingStart string
	pendingEnd   string

	searchInput textinput.Model
	searching   bool

	showHelpPopup bool
}

// NewApp creates the application model
func NewApp(s *store.Store) *App {
	st := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	now := time.Now
	t := now()
	return &App{
		store:       s,
		gestures:    gesture.New(s),
		criteria:    store.DefaultCriteria(),
		anchor:      monthStart(t),
		now:         now,
		calView:     views.NewCalendarView(st),
		form:        views.NewTaskForm(st),
		styles:      st,
		keys:        keys.DefaultKeyMap(),
		searchInput: search,
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.calView.SetWidth(msg.Width)
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		// Any key closes the help popup
		if a.showHelpPopup {
			a.showHelpPopup = false
			return a, nil
		}
		if a.formOpen {
			return a.updateForm(msg)
		}
		if a.searching {
			return a.updateSearching(msg)
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

func (a *App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.PrevMonth):
		a.monthNavigate(-1)
		return a, nil

	case key.Matches(msg, a.keys.NextMonth):
		a.monthNavigate(1)
		return a, nil

	case key.Matches(msg, a.keys.Today):
		a.monthNavigate(0)
		return a, nil

	case key.Matches(msg, a.keys.New):
		// Keyboard path to the creation form: today's single-day range
		today := a.todayKey()
		a.openForm(today, today)
		return a, a.form.Open(today, today)

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Window):
		a.cycleWindow()
		return a, nil

	case key.Matches(msg, a.keys.Help):
		a.showHelpPopup = true
		return a, nil

	case msg.String() == "1", msg.String() == "2", msg.String() == "3", msg.String() == "4":
		idx := int(msg.String()[0] - '1')
		cat := models.Categories[idx]
		a.toggleCategory(cat, !a.criteria.Categories[cat])
		return a, nil
	}

	return a, nil
}

func (a *App) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Enter):
		a.searchInput.Blur()
		a.searching = false
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.setSearchText(a.searchInput.Value())
	return a, cmd
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := a.form.Update(msg)
	switch result {
	case views.FormSubmit:
		a.confirmTaskCreation()
		return a, cmd
	case views.FormCancel:
		a.cancelTaskCreation()
		return a, cmd
	}
	return a, cmd
}

func (a *App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// The modal owns the screen; gestures happen on the grid only
	if a.formOpen || a.showHelpPopup {
		return a, nil
	}

	x, y := a.gridLocal(msg.X, msg.Y)
	days := a.buildDays()
	hit := a.calView.HitTest(x, y, days)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		switch hit.Kind {
		case views.HitDay:
			a.gestures.PressEmptyCell(hit.Date)
		case views.HitChip:
			a.gestures.PressTask(hit.Task, hit.OffsetPx, hit.ChipWidthPx)
		}

	case tea.MouseActionMotion:
		if a.gestures.Mode() == gesture.ModeIdle {
			return a, nil
		}
		if hit.Kind == views.HitOutside {
			// Pointer left the interactive surface
			a.gestures.Leave()
			return a, nil
		}
		a.gestures.Move(hit.Date)

	case tea.MouseActionRelease:
		if a.gestures.Mode() == gesture.ModeIdle {
			return a, nil
		}
		if hit.Kind == views.HitOutside {
			a.gestures.Leave()
			return a, nil
		}
		if start, end, pending := a.gestures.Release(); pending {
			a.openForm(start, end)
			return a, a.form.Open(start, end)
		}
	}

	return a, nil
}

// gridLocal converts terminal coordinates to the calendar view's frame
// (x relative to the grid's left edge, y relative to its weekday
// header line). The main screen is rendered at the terminal origin, so
// only the header rows above the grid are subtracted.
func (a *App) gridLocal(x, y int) (int, int) {
	return x, y - headerLines
}

// monthNavigate moves the displayed month by delta months; a delta of
// zero jumps back to today's month
func (a *App) monthNavigate(delta int) {
	if delta == 0 {
		a.anchor = monthStart(a.now())
		return
	}
	a.anchor = a.anchor.AddDate(0, delta, 0)
}

func (a *App) setSearchText(s string) {
	a.criteria.Search = s
}

func (a *App) toggleCategory(c models.Category, enabled bool) {
	a.criteria.Categories[c] = enabled
}

// setTimeWindow applies a window value from the input surface,
// rejecting anything outside the closed set
func (a *App) setTimeWindow(s string) {
	w, err := store.ParseWindow(s)
	if err != nil {
		return
	}
	a.criteria.Window = w
}

func (a *App) cycleWindow() {
	switch a.criteria.Window {
	case store.WindowAll:
		a.criteria.Window = store.Window(1)
	case store.Window(3):
		a.criteria.Window = store.WindowAll
	default:
		a.criteria.Window++
	}
}

func (a *App) openForm(start, end string) {
	a.formOpen = true
	a.pendingStart = start
	a.pendingEnd = end
}

// confirmTaskCreation persists the pending task. A blank name is
// rejected by the store and the form stays open.
func (a *App) confirmTaskCreation() {
	_, err := a.store.Create(a.form.Name(), a.form.Category(), a.pendingStart, a.pendingEnd)
	if err != nil {
		return
	}
	a.closeForm()
}

func (a *App) cancelTaskCreation() {
	a.closeForm()
}

func (a *App) closeForm() {
	a.formOpen = false
	a.pendingStart = ""
	a.pendingEnd = ""
}

func (a *App) todayKey() string {
	return dateutil.Key(a.now())
}

// buildDays derives the 42-day matrix for the current state: filtered
// tasks with the active gesture's provisional range substituted for the
// dragged task, and the Create gesture's selection preview
func (a *App) buildDays() []calendar.Day {
	today := a.todayKey()
	visible := store.Visible(a.store.All(), a.criteria, today)

	if id := a.gestures.ActiveTaskID(); id != "" {
		ps, pe, ok := a.gestures.Provisional()
		if ok {
			for i := range visible {
				if visible[i].ID == id {
					visible[i].Start = ps
					visible[i].End = pe
				}
			}
		}
	}

	selStart, selEnd := "", ""
	if a.gestures.Mode() == gesture.ModeCreating {
		selStart, selEnd, _ = a.gestures.Provisional()
	}

	return calendar.BuildGrid(a.anchor, today, visible, selStart, selEnd)
}

func (a *App) View() string {
	if a.showHelpPopup {
		return a.renderHelpPopup()
	}
	if a.formOpen {
		return a.form.View(a.width, a.height)
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(a.renderFilterBar())
	b.WriteString("\n\n")
	b.WriteString(a.calView.View(a.buildDays()))
	b.WriteString("\n")
	b.WriteString(a.renderHelp())

	// Left-aligned on purpose: horizontal centering would shift the
	// grid under the mouse coordinates
	return b.String()
}

func (a *App) renderTitleBar() string {
	s := a.styles
	title := s.Title.Render(a.anchor.Format("January 2006"))
	nav := s.TitleMuted.Render("  ← → month • t today")

	window := ""
	if a.criteria.Window != store.WindowAll {
		window = s.TitleMuted.Render("  window: " + a.criteria.Window.String())
	}
	return title + nav + window
}

func (a *App) renderFilterBar() string {
	s := a.styles

	var parts []string
	for i, c := range models.Categories {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color())).Render("●")
		label := fmt.Sprintf("%d %s %s", i+1, dot, c.Label())
		if a.criteria.Categories[c] {
			parts = append(parts, s.FilterActive.Render(label))
		} else {
			parts = append(parts, s.FilterOff.Render(label))
		}
	}

	search := ""
	if a.searching {
		search = "  " + a.searchInput.View()
	} else if a.criteria.Search != "" {
		search = "  " + s.TitleMuted.Render("search: "+a.criteria.Search)
	}

	return strings.Join(parts, "  ") + search
}

func (a *App) renderHelp() string {
	s := a.styles

	// Gesture feedback stands in for cursor hints
	switch a.gestures.Mode() {
	case gesture.ModeCreating:
		start, end, _ := a.gestures.Provisional()
		return s.Help.Render(fmt.Sprintf("selecting %s .. %s — release to create", start, end))
	case gesture.ModeMoving:
		start, end, _ := a.gestures.Provisional()
		return s.Help.Render(fmt.Sprintf("moving %s .. %s", start, end))
	case gesture.ModeResizing:
		edge := "start"
		if a.gestures.ResizeEdge() == gesture.EdgeEnd {
			edge = "end"
		}
		start, end, _ := a.gestures.Provisional()
		return s.Help.Render(fmt.Sprintf("resizing %s edge: %s .. %s", edge, start, end))
	}

	return s.Help.Render(
		fmt.Sprintf("%s new • %s search • %s filter • %s window • %s month • %s today • %s help • %s quit",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("1-4"),
			s.HelpKey.Render("w"),
			s.HelpKey.Render("←→"),
			s.HelpKey.Render("t"),
			s.HelpKey.Render("?"),
			s.HelpKey.Render("q"),
		),
	)
}

func (a *App) renderHelpPopup() string {
	s := a.styles
	contentWidth := styles.ContentWidth(a.width)

	helpItems := []string{
		s.HelpKey.Render("drag") + "       on empty days: select a range for a new task",
		s.HelpKey.Render("drag") + "       a task: move it, duration kept",
		s.HelpKey.Render("drag edge") + "  of a task: resize it",
		s.HelpKey.Render("n") + "          new task (today)",
		s.HelpKey.Render("/") + "          search by name",
		s.HelpKey.Render("1-4") + "        toggle category filters",
		s.HelpKey.Render("w") + "          cycle time window",
		s.HelpKey.Render("← →") + "        change month",
		s.HelpKey.Render("t") + "          jump to today",
		s.HelpKey.Render("q") + "          quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Month Planner"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, a.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, a.width, a.height)
}
