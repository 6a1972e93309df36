package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mplan/internal/calendar"
	"mplan/internal/dateutil"
	"mplan/internal/models"
	"mplan/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// Grid geometry. Each week row is one day-number line, maxLanes chip
// lanes, and one overflow line.
const (
	maxLanes = 3
	rowLines = 1 + maxLanes + 1
)

// HitKind classifies what a pointer coordinate landed on
type HitKind int

const (
	HitOutside HitKind = iota
	HitDay
	HitChip
)

// Hit is the result of resolving a pointer coordinate against the grid
type Hit struct {
	Kind HitKind
	Date string

	// Chip hits only
	Task        models.Task
	OffsetPx    int
	ChipWidthPx int
}

// chipSeg is one task's rendered bar within a single week row
type chipSeg struct {
	task     models.Task
	startCol int
	endCol   int
	lane     int
	// the segment truncates at a week boundary rather than a range end
	contLeft  bool
	contRight bool
}

// weekLayout holds one week row's lane assignment
type weekLayout struct {
	segs     []chipSeg
	overflow [7]int
}

// CalendarView renders the month grid and resolves pointer coordinates
// back to dates and chips. It is stateless apart from styling and size;
// the day matrix is passed in for every render and every hit test so
// both always agree.
type CalendarView struct {
	styles *styles.Styles
	width  int
}

// NewCalendarView creates a calendar view
func NewCalendarView(s *styles.Styles) *CalendarView {
	return &CalendarView{styles: s}
}

// SetWidth updates the terminal width the view lays out against
func (v *CalendarView) SetWidth(w int) {
	v.width = w
}

// CellWidth returns the width of one day column in terminal cells
func (v *CalendarView) CellWidth() int {
	cw := styles.ContentWidth(v.width) / 7
	return clamp(cw, 8, 16)
}

// GridWidth returns the total rendered grid width
func (v *CalendarView) GridWidth() int {
	return v.CellWidth() * 7
}

// layoutWeek assigns each task touching the week a lane that is stable
// across every column the task covers, so multi-day bars render as one
// continuous segment. Tasks keep their input order; a task that cannot
// fit in maxLanes lanes counts toward the overflow of each covered day.
func layoutWeek(days []calendar.Day) weekLayout {
	var lw weekLayout
	var occupied [maxLanes][7]bool
	placed := map[string]bool{}

	for col := 0; col < 7; col++ {
		for _, span := range days[col].Spans {
			if placed[span.Task.ID] {
				continue
			}
			placed[span.Task.ID] = true

			endCol := col + dateutil.DaysBetween(days[col].Date, span.Task.End)
			contRight := endCol > 6
			if contRight {
				endCol = 6
			}
			contLeft := !span.IsRangeStart && col == 0

			lane := -1
			for l := 0; l < maxLanes; l++ {
				free := true
				for c := col; c <= endCol; c++ {
					if occupied[l][c] {
						free = false
						break
					}
				}
				if free {
					lane = l
					break
				}
			}
			if lane < 0 {
				for c := col; c <= endCol; c++ {
					lw.overflow[c]++
				}
				continue
			}
			for c := col; c <= endCol; c++ {
				occupied[lane][c] = true
			}
			lw.segs = append(lw.segs, chipSeg{
				task:      span.Task,
				startCol:  col,
				endCol:    endCol,
				lane:      lane,
				contLeft:  contLeft,
				contRight: contRight,
			})
		}
	}
	return lw
}

// HitTest resolves a coordinate (relative to the grid's top-left cell)
// to the day or chip under it. days is the same 42-entry matrix the
// grid was rendered from. Coordinates outside the grid report
// HitOutside, which the caller treats as leaving the surface.
func (v *CalendarView) HitTest(x, y int, days []calendar.Day) Hit {
	cellW := v.CellWidth()
	if x < 0 || x >= cellW*7 || y < 1 || y >= 1+6*rowLines {
		return Hit{Kind: HitOutside}
	}

	col := x / cellW
	row := (y - 1) / rowLines
	inRow := (y - 1) % rowLines
	day := days[row*7+col]

	// Chip lanes sit between the day-number line and the overflow line
	if inRow >= 1 && inRow <= maxLanes {
		lane := inRow - 1
		lw := layoutWeek(days[row*7 : row*7+7])
		for _, seg := range lw.segs {
			if seg.lane == lane && seg.startCol <= col && col <= seg.endCol {
				return Hit{
					Kind:        HitChip,
					Date:        day.Date,
					Task:        seg.task,
					OffsetPx:    x - seg.startCol*cellW,
					ChipWidthPx: (seg.endCol - seg.startCol + 1) * cellW,
				}
			}
		}
	}

	return Hit{Kind: HitDay, Date: day.Date}
}

// View renders the weekday header and the six week rows
func (v *CalendarView) View(days []calendar.Day) string {
	var b strings.Builder
	b.WriteString(v.renderWeekdays())
	b.WriteString("\n")
	for row := 0; row < 6; row++ {
		b.WriteString(v.renderWeek(days[row*7 : row*7+7]))
		if row < 5 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (v *CalendarView) renderWeekdays() string {
	cellW := v.CellWidth()
	var cells []string
	for _, n := range weekdayNames {
		cells = append(cells, v.styles.Weekday.Width(cellW).Render(n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (v *CalendarView) renderWeek(days []calendar.Day) string {
	lw := layoutWeek(days)
	lines := []string{v.renderDayNumbers(days)}
	for lane := 0; lane < maxLanes; lane++ {
		lines = append(lines, v.renderLane(days, lw, lane))
	}
	lines = append(lines, v.renderOverflow(lw))
	return strings.Join(lines, "\n")
}

func (v *CalendarView) renderDayNumbers(days []calendar.Day) string {
	s := v.styles
	cellW := v.CellWidth()
	var cells []string
	for _, d := range days {
		label := padDay(d.DayOfMonth)

		style := s.DayNumber
		switch {
		case d.IsToday:
			style = s.DayToday
		case d.InSelection:
			style = s.DaySelected
		case !d.InMonth:
			style = s.DayOutMonth
		}
		cells = append(cells, style.Render(label)+strings.Repeat(" ", cellW-len(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func padDay(n int) string {
	if n < 10 {
		return "  " + string(rune('0'+n)) + " "
	}
	return " " + string(rune('0'+n/10)) + string(rune('0'+n%10)) + " "
}

// renderLane draws one chip lane across the week: a continuous colored
// bar per segment, the name label only on the task's first rendered
// cell of the row, empty space elsewhere.
func (v *CalendarView) renderLane(days []calendar.Day, lw weekLayout, lane int) string {
	cellW := v.CellWidth()
	var b strings.Builder
	col := 0
	for col < 7 {
		seg, ok := segAt(lw, lane, col)
		if !ok {
			fill := strings.Repeat(" ", cellW)
			if days[col].InSelection {
				fill = v.styles.CellSelected.Render(fill)
			}
			b.WriteString(fill)
			col++
			continue
		}
		b.WriteString(v.renderChipSeg(seg, cellW))
		col = seg.endCol + 1
	}
	return b.String()
}

func segAt(lw weekLayout, lane, col int) (chipSeg, bool) {
	for _, seg := range lw.segs {
		if seg.lane == lane && seg.startCol == col {
			return seg, true
		}
	}
	return chipSeg{}, false
}

func (v *CalendarView) renderChipSeg(seg chipSeg, cellW int) string {
	width := (seg.endCol - seg.startCol + 1) * cellW

	label := " " + seg.task.Name
	if seg.contLeft {
		label = "‹" + label
	}
	suffix := " "
	if seg.contRight {
		suffix = "›"
	}
	// Leave a one-cell gap on the right so adjacent chips read as
	// separate bars
	body := clipPad(label, width-2) + suffix

	chip := v.styles.ChipBody.
		Background(lipgloss.Color(seg.task.Category.Color())).
		Render(body)
	return chip + " "
}

// clipPad truncates s to width (with an ellipsis) or pads it with
// spaces, returning exactly width cells
func clipPad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		if width == 1 {
			return "…"
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func (v *CalendarView) renderOverflow(lw weekLayout) string {
	cellW := v.CellWidth()
	var cells []string
	for col := 0; col < 7; col++ {
		if n := lw.overflow[col]; n > 0 {
			label := fmt.Sprintf(" +%d", n)
			cells = append(cells, v.styles.ChipEmpty.Render(label)+strings.Repeat(" ", cellW-len(label)))
		} else {
			cells = append(cells, strings.Repeat(" ", cellW))
		}
	}
	return strings.Join(cells, "")
}
