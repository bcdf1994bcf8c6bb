package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
)

var (
	cellBase     = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	cellOutside  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	cellDisabled = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70")).Strikethrough(true)
	cellToday    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")).Bold(true)
	cellInRange  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Background(lipgloss.Color("#313244"))
	cellHover    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Background(lipgloss.Color("#45475a")).Italic(true)
	cellEndpoint = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa")).Bold(true)
	cellCursor   = lipgloss.NewStyle().Reverse(true).Bold(true)
	calHeader    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	calWeekdays  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

// Cell is one pickable value on a panel.
type Cell struct {
	Value dateengine.Value
	Label string
	// Outside marks cells that belong to a neighbouring page.
	Outside bool
}

// CellState is how a cell relates to the picker state it is drawn from.
type CellState struct {
	Outside  bool
	Disabled bool
	Today    bool
	Cursor   bool
	Start    bool
	End      bool
	InRange  bool
	Hover    bool
}

// CellUnit is the granularity one cell of a mode covers.
func CellUnit(mode rangepick.Mode) dateengine.Unit {
	switch mode {
	case rangepick.ModeWeek:
		return dateengine.Week
	case rangepick.ModeMonth:
		return dateengine.Month
	case rangepick.ModeQuarter:
		return dateengine.Quarter
	case rangepick.ModeYear:
		return dateengine.Year
	case rangepick.ModeDecade:
		return dateengine.Decade
	case rangepick.ModeTime:
		return dateengine.Second
	}
	return dateengine.Day
}

// Cells lays out the grid for mode on the page that holds view. Time panels
// have no grid and return nil.
func Cells(e dateengine.Engine, mode rangepick.Mode, view dateengine.Value) [][]Cell {
	if !view.Valid() {
		return nil
	}
	switch mode {
	case rangepick.ModeDate, rangepick.ModeWeek:
		first := e.StartOf(view, dateengine.Month)
		start := e.StartOf(first, dateengine.Week)
		rows := make([][]Cell, 6)
		for r := range rows {
			rows[r] = make([]Cell, 7)
			for d := range rows[r] {
				v := e.Add(start, dateengine.Day, r*7+d)
				rows[r][d] = Cell{
					Value:   v,
					Label:   fmt.Sprintf("%2d", v.Time().Day()),
					Outside: !e.IsSame(v, first, dateengine.Month),
				}
			}
		}
		return rows
	case rangepick.ModeMonth:
		year := e.StartOf(view, dateengine.Year)
		locale := e.Locale()
		return grid(12, 3, func(i int) Cell {
			v := e.Add(year, dateengine.Month, i)
			return Cell{Value: v, Label: locale.ShortMonthName(v.Time().Month())}
		})
	case rangepick.ModeQuarter:
		year := e.StartOf(view, dateengine.Year)
		return grid(4, 4, func(i int) Cell {
			return Cell{Value: e.Add(year, dateengine.Quarter, i), Label: fmt.Sprintf("Q%d", i+1)}
		})
	case rangepick.ModeYear:
		decade := e.StartOf(view, dateengine.Decade)
		return grid(12, 3, func(i int) Cell {
			v := e.Add(decade, dateengine.Year, i-1)
			return Cell{Value: v, Label: fmt.Sprintf("%d", v.Time().Year()), Outside: i == 0 || i == 11}
		})
	case rangepick.ModeDecade:
		century := centuryStart(e, view)
		return grid(12, 3, func(i int) Cell {
			v := e.Add(century, dateengine.Decade, i-1)
			return Cell{Value: v, Label: fmt.Sprintf("%ds", v.Time().Year()), Outside: i == 0 || i == 11}
		})
	}
	return nil
}

func grid(n, cols int, cell func(int) Cell) [][]Cell {
	rows := make([][]Cell, 0, (n+cols-1)/cols)
	for i := 0; i < n; i += cols {
		row := make([]Cell, 0, cols)
		for j := i; j < i+cols && j < n; j++ {
			row = append(row, cell(j))
		}
		rows = append(rows, row)
	}
	return rows
}

func centuryStart(e dateengine.Engine, v dateengine.Value) dateengine.Value {
	decade := e.StartOf(v, dateengine.Decade)
	return e.Add(decade, dateengine.Year, -(decade.Time().Year() % 100))
}

// PageContains reports whether v is drawn, not greyed out, on the page of
// mode that starts at view.
func PageContains(e dateengine.Engine, mode rangepick.Mode, view, v dateengine.Value) bool {
	if !view.Valid() || !v.Valid() {
		return false
	}
	switch mode {
	case rangepick.ModeDate, rangepick.ModeWeek:
		return e.IsSame(view, v, dateengine.Month)
	case rangepick.ModeMonth, rangepick.ModeQuarter:
		return e.IsSame(view, v, dateengine.Year)
	case rangepick.ModeYear:
		return e.IsSame(view, v, dateengine.Decade)
	case rangepick.ModeDecade:
		return e.Equal(centuryStart(e, view), centuryStart(e, v))
	}
	return e.IsSame(view, v, dateengine.Day)
}

// Calendar draws one panel of a range picker.
type Calendar struct {
	Engine dateengine.Engine
	Panel  rangepick.PanelSnapshot
	Cursor dateengine.Value
	// TimeColumn is the focused column of a time grid: hours, minutes or
	// seconds. A negative value leaves the time grid unfocused.
	TimeColumn int
}

// State classifies cell against the panel's selection, hover preview,
// disabled rules and cursor.
func (c Calendar) State(cell Cell) CellState {
	e := c.Engine
	p := c.Panel
	unit := CellUnit(p.Mode)
	st := CellState{
		Outside: cell.Outside,
		Today:   e.IsSame(cell.Value, p.Now, unit),
		Cursor:  e.IsSame(cell.Value, c.Cursor, unit),
	}
	start, end := p.Range[rangepick.SideStart], p.Range[rangepick.SideEnd]
	st.Start = e.IsSame(cell.Value, start, unit)
	st.End = e.IsSame(cell.Value, end, unit)
	if start.Valid() && end.Valid() {
		at := e.StartOf(cell.Value, unit)
		st.InRange = e.IsAfter(at, e.StartOf(start, unit)) && e.IsAfter(e.StartOf(end, unit), at)
	}
	st.Hover = p.Hovering && (st.Start || st.End || st.InRange)
	// Coarser panels drilled up from the picker's own mode only navigate.
	if p.Mode == p.Picker {
		judge := p.Disabled
		if p.ShowTime {
			judge = p.CellDisabled
		}
		if judge != nil {
			st.Disabled = judge(cell.Value)
		}
	}
	return st
}

func (c Calendar) styleFor(st CellState) lipgloss.Style {
	var s lipgloss.Style
	switch {
	case st.Disabled:
		s = cellDisabled
	case st.Start || st.End:
		s = cellEndpoint
	case st.Hover:
		s = cellHover
	case st.InRange:
		s = cellInRange
	case st.Today:
		s = cellToday
	case st.Outside:
		s = cellOutside
	default:
		s = cellBase
	}
	if st.Cursor {
		s = s.Inherit(cellCursor).Reverse(true)
	}
	return s
}

// Header is the title line of the panel.
func (c Calendar) Header() string {
	e := c.Engine
	view := c.Panel.View
	switch c.Panel.Mode {
	case rangepick.ModeDate, rangepick.ModeWeek:
		pattern := "{MMM} 2006"
		if c.Panel.Locale != nil && c.Panel.Locale.PanelHeader != "" {
			pattern = c.Panel.Locale.PanelHeader
		}
		return e.Format(view, pattern)
	case rangepick.ModeMonth, rangepick.ModeQuarter:
		return e.Format(view, "2006")
	case rangepick.ModeYear:
		y := e.StartOf(view, dateengine.Decade).Time().Year()
		return fmt.Sprintf("%d-%d", y, y+9)
	case rangepick.ModeDecade:
		y := centuryStart(e, view).Time().Year()
		return fmt.Sprintf("%d-%d", y, y+99)
	}
	return e.Format(c.timeValue(), "15:04:05")
}

func (c Calendar) Render(width, height int) string {
	if width <= 0 || height <= 0 || c.Engine == nil {
		return ""
	}
	var lines []string
	switch c.Panel.Mode {
	case rangepick.ModeTime:
		lines = c.renderTime()
	default:
		lines = c.renderGrid()
		if c.Panel.ShowTime {
			lines = append(lines, "", c.renderTimeLine())
		}
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, calHeader.Render(center(c.Header(), min(width, gridWidth(lines)))))
	out = append(out, lines...)
	return clip(strings.Join(out, "\n"), width, height)
}

func gridWidth(lines []string) int {
	return max(12, maxLineWidth(lines))
}

func (c Calendar) renderGrid() []string {
	rows := Cells(c.Engine, c.Panel.Mode, c.Panel.View)
	week := c.Panel.Mode == rangepick.ModeWeek
	cellWidth := 2
	switch c.Panel.Mode {
	case rangepick.ModeMonth, rangepick.ModeQuarter:
		cellWidth = 4
	case rangepick.ModeYear:
		cellWidth = 5
	case rangepick.ModeDecade:
		cellWidth = 6
	}

	lines := make([]string, 0, len(rows)+1)
	if c.Panel.Mode == rangepick.ModeDate || week {
		locale := c.Panel.Locale
		if locale == nil {
			locale = dateengine.English
		}
		heads := locale.WeekdayHeaders(c.Panel.WeekStart)
		for i, h := range heads {
			heads[i] = padRight(h, cellWidth)
		}
		prefix := ""
		if week {
			prefix = "    "
		}
		lines = append(lines, calWeekdays.Render(prefix+strings.Join(heads, " ")))
	}
	for _, row := range rows {
		parts := make([]string, 0, len(row))
		for _, cell := range row {
			parts = append(parts, c.styleFor(c.State(cell)).Render(padRight(cell.Label, cellWidth)))
		}
		line := strings.Join(parts, " ")
		if week && len(row) > 0 {
			line = calWeekdays.Render(c.Engine.Format(row[0].Value, "W{WW}")) + " " + line
		}
		lines = append(lines, line)
	}
	return lines
}

// timeValue is what the time columns show: the cursor, else the draft, else
// the current time.
func (c Calendar) timeValue() dateengine.Value {
	switch {
	case c.Cursor.Valid():
		return c.Cursor
	case c.Panel.Selected.Valid():
		return c.Panel.Selected
	}
	return c.Panel.Now
}

func (c Calendar) renderTimeLine() string {
	v := c.timeValue()
	parts := make([]string, 0, 3)
	for col, unit := range []dateengine.Unit{dateengine.Hour, dateengine.Minute, dateengine.Second} {
		label := c.timeLabel(v, unit)
		s := cellBase
		if col == c.TimeColumn {
			s = cellCursor
		}
		parts = append(parts, s.Render(label))
	}
	return calWeekdays.Render("time ") + strings.Join(parts, ":")
}

const timeWindow = 3

func (c Calendar) renderTime() []string {
	e := c.Engine
	v := c.timeValue()
	units := []dateengine.Unit{dateengine.Hour, dateengine.Minute, dateengine.Second}
	lines := make([]string, 0, 2*timeWindow+1)
	for off := -timeWindow; off <= timeWindow; off++ {
		parts := make([]string, 0, len(units))
		for col, unit := range units {
			cand := WrapTime(e, v, unit, off)
			label := padRight(c.timeLabel(cand, unit), 5)
			st := CellState{Cursor: off == 0 && col == c.TimeColumn}
			if c.Panel.Disabled != nil {
				st.Disabled = c.Panel.Disabled(cand)
			}
			s := c.styleFor(st)
			if off == 0 && !st.Cursor && !st.Disabled {
				s = cellEndpoint
			}
			parts = append(parts, s.Render(label))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

func (c Calendar) timeLabel(v dateengine.Value, unit dateengine.Unit) string {
	t := v.Time()
	switch unit {
	case dateengine.Hour:
		if c.Panel.Use12Hours {
			return c.Engine.Format(v, "03pm")
		}
		return fmt.Sprintf("%02d", t.Hour())
	case dateengine.Minute:
		return fmt.Sprintf("%02d", t.Minute())
	}
	return fmt.Sprintf("%02d", t.Second())
}

// WrapTime moves one clock field of v by delta, wrapping inside its range so
// the date never changes.
func WrapTime(e dateengine.Engine, v dateengine.Value, unit dateengine.Unit, delta int) dateengine.Value {
	if !v.Valid() || delta == 0 {
		return v
	}
	t := v.Time()
	var cur, span int
	switch unit {
	case dateengine.Hour:
		cur, span = t.Hour(), 24
	case dateengine.Minute:
		cur, span = t.Minute(), 60
	default:
		cur, span = t.Second(), 60
	}
	next := ((cur+delta)%span + span) % span
	return e.Add(v, unit, next-cur)
}
