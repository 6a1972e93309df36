package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mplan/internal/models"
	"mplan/internal/ui/keys"
	"mplan/internal/ui/styles"
)

// FormResult is the outcome of feeding a key event to the form
type FormResult int

const (
	FormPending FormResult = iota
	FormSubmit
	FormCancel
)

// TaskForm is the modal creation form. It is seeded with the date
// range a Create gesture selected; the range itself is fixed here and
// only the name and category are entered. The task is persisted by the
// caller on FormSubmit; a rejected name (blank after trimming) leaves
// the form open.
type TaskForm struct {
	styles *styles.Styles
	keys   keys.KeyMap

	name     textinput.Model
	category int // index into models.Categories
	focusIdx int // 0=name, 1=category, 2=save

	start string
	end   string
}

// NewTaskForm creates an unopened form
func NewTaskForm(s *styles.Styles) *TaskForm {
	name := textinput.New()
	name.Placeholder = "Task name"
	name.CharLimit = 100

	return &TaskForm{
		styles: s,
		keys:   keys.DefaultKeyMap(),
		name:   name,
	}
}

// Open resets the form for a new task over the given range
func (f *TaskForm) Open(start, end string) tea.Cmd {
	f.start = start
	f.end = end
	f.category = 0
	f.focusIdx = 0
	f.name.Reset()
	f.name.Focus()
	return textinput.Blink
}

// Name returns the entered name as typed (the store trims it)
func (f *TaskForm) Name() string {
	return f.name.Value()
}

// Category returns the selected category
func (f *TaskForm) Category() models.Category {
	return models.Categories[f.category]
}

// Range returns the fixed start/end the form was opened with
func (f *TaskForm) Range() (start, end string) {
	return f.start, f.end
}

// Update handles a key event while the form is open
func (f *TaskForm) Update(msg tea.KeyMsg) (FormResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		f.name.Blur()
		return FormCancel, nil

	case msg.String() == "ctrl+s":
		return FormSubmit, nil

	case key.Matches(msg, f.keys.Tab):
		f.focusIdx = (f.focusIdx + 1) % 3
		f.updateFocus()
		return FormPending, nil

	case msg.String() == "shift+tab":
		f.focusIdx = (f.focusIdx + 2) % 3
		f.updateFocus()
		return FormPending, nil

	case key.Matches(msg, f.keys.Enter):
		// Enter on the name moves on; on the save button it submits
		if f.focusIdx == 0 {
			f.focusIdx = 1
			f.updateFocus()
			return FormPending, nil
		}
		if f.focusIdx == 2 {
			return FormSubmit, nil
		}
		return FormPending, nil

	case key.Matches(msg, f.keys.Up), key.Matches(msg, f.keys.Down),
		msg.String() == " ":
		if f.focusIdx == 1 {
			f.cycleCategory(msg)
			return FormPending, nil
		}
	}

	if f.focusIdx == 0 {
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return FormPending, cmd
	}
	return FormPending, nil
}

func (f *TaskForm) cycleCategory(msg tea.KeyMsg) {
	n := len(models.Categories)
	if key.Matches(msg, f.keys.Up) {
		f.category = (f.category + n - 1) % n
	} else {
		f.category = (f.category + 1) % n
	}
}

func (f *TaskForm) updateFocus() {
	f.name.Blur()
	if f.focusIdx == 0 {
		f.name.Focus()
	}
}

// View renders the centered modal
func (f *TaskForm) View(width, height int) string {
	s := f.styles
	contentWidth := styles.ContentWidth(width)

	nameStyle := s.Input
	catStyle := s.Input
	btnStyle := s.Button
	switch f.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		catStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	var catLines []string
	for i, c := range models.Categories {
		marker := "( )"
		if i == f.category {
			marker = "(•)"
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color())).Render("●")
		line := marker + " " + dot + " " + c.Label()
		if f.focusIdx == 1 && i == f.category {
			catLines = append(catLines, s.FilterActive.Render(line))
		} else {
			catLines = append(catLines, s.TitleMuted.Render(line))
		}
	}
	catSelector := catStyle.Width(inputWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, catLines...),
	)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%s to %s", f.start, f.end)),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(f.name.View()),
		"",
		"Category:",
		catSelector,
		"",
		btnStyle.Render(" Create "),
		"",
		s.TitleMuted.Render("Tab: next • ↑↓: category • Ctrl+S: create • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, width, height)
}
