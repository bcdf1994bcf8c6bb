package screens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/rangepick/core"
	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
	"github.com/jask/rangepick/widgets"
)

const (
	ScopeRangePanel   = "screen:range"
	ScopeRangeInput   = "screen:range:input"
	ScopeRangePresets = "screen:range:presets"
)

// DefaultOpenRecordTTL is how long a closed side keeps counting as opened in
// the current session.
const DefaultOpenRecordTTL = 150 * time.Millisecond

// KeyMatcher resolves key presses to named actions. *core.KeyRegistry
// satisfies it.
type KeyMatcher interface {
	IsAction(msg tea.KeyMsg, action, scope string) bool
}

var errNothingToConfirm = errors.New("nothing to confirm")

// CleanupMsg fires when an OpenRecord cleanup scheduled on close is due.
type CleanupMsg struct {
	Ticket rangepick.Ticket
}

type rangeFocus int

const (
	focusPanel rangeFocus = iota
	focusInput
	focusPresets
)

var (
	inputActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	inputInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	inputHover    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Italic(true)
	presetOn      = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa"))
	presetOff     = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	buttonOff     = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
	buttonOn      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
)

// RangePickerScreen drives a rangepick.Picker from the keyboard. The cursor
// stands in for the mouse: moving it hovers, picking it clicks.
type RangePickerScreen struct {
	title  string
	picker *rangepick.Picker
	engine dateengine.Engine
	keys   KeyMatcher
	ttl    time.Duration

	inputs  [2]textinput.Model
	focus   rangeFocus
	cursor  dateengine.Value
	timeCol int
	preset  int

	side      rangepick.Side
	scheduled rangepick.Ticket
	onClose   func(rangepick.Range) tea.Cmd
}

// NewRangePickerScreen opens p on its first enabled side. It returns nil when
// both sides are disabled.
func NewRangePickerScreen(title string, p *rangepick.Picker, keys KeyMatcher, ttl time.Duration) *RangePickerScreen {
	if ttl <= 0 {
		ttl = DefaultOpenRecordTTL
	}
	s := &RangePickerScreen{
		title:   title,
		picker:  p,
		engine:  p.Engine(),
		keys:    keys,
		ttl:     ttl,
		timeCol: -1,
		preset:  -1,
	}
	for i := range s.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = p.Placeholder(rangepick.Side(i))
		in.CharLimit = 64
		s.inputs[i] = in
	}
	if !p.Activate() {
		return nil
	}
	if p.Mode() == rangepick.ModeTime {
		s.timeCol = 0
	}
	s.side = p.ActiveSide()
	s.resetCursor()
	s.syncInputs()
	return s
}

func (s *RangePickerScreen) Title() string { return s.title }

func (s *RangePickerScreen) Scope() string {
	switch s.focus {
	case focusInput:
		return ScopeRangeInput
	case focusPresets:
		return ScopeRangePresets
	}
	return ScopeRangePanel
}

// OnClose registers fn to run with the committed value when the picker
// closes and the screen pops.
func (s *RangePickerScreen) OnClose(fn func(rangepick.Range) tea.Cmd) *RangePickerScreen {
	s.onClose = fn
	return s
}

// Picker exposes the driven picker, mostly for tests.
func (s *RangePickerScreen) Picker() *rangepick.Picker { return s.picker }

func (s *RangePickerScreen) Cursor() dateengine.Value { return s.cursor }

func (s *RangePickerScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case CleanupMsg:
		s.picker.ExpireOpenRecord(msg.Ticket)
		return s, nil, false
	case tea.KeyMsg:
		var cmd tea.Cmd
		switch s.focus {
		case focusInput:
			cmd = s.updateInput(msg)
		case focusPresets:
			s.updatePresets(msg)
		default:
			cmd = s.updatePanel(msg)
		}
		return s.settle(cmd)
	}
	if s.focus == focusInput {
		side := s.picker.ActiveSide()
		var cmd tea.Cmd
		s.inputs[side], cmd = s.inputs[side].Update(msg)
		return s, cmd, false
	}
	return s, nil, false
}

// settle follows up on a picker operation: it pops the screen once the
// picker is closed, moves the cursor when auto-advance switched sides and
// schedules any pending OpenRecord cleanup.
func (s *RangePickerScreen) settle(cmd tea.Cmd) (core.Screen, tea.Cmd, bool) {
	cmds := []tea.Cmd{cmd}
	if t, ok := s.picker.PendingCleanup(); ok && t != s.scheduled {
		s.scheduled = t
		cmds = append(cmds, tea.Tick(s.ttl, func(time.Time) tea.Msg { return CleanupMsg{Ticket: t} }))
	}
	if !s.picker.IsOpen() {
		cmds = append(cmds, core.StatusCmd(s.summary()))
		if s.onClose != nil {
			cmds = append(cmds, s.onClose(s.picker.Value()))
		}
		return s, tea.Batch(cmds...), true
	}
	if side := s.picker.ActiveSide(); side != s.side {
		s.side = side
		s.blurInputs()
		s.resetCursor()
	}
	s.syncInputs()
	return s, tea.Batch(cmds...), false
}

func (s *RangePickerScreen) summary() string {
	v := s.picker.Value()
	if v.IsNull() {
		return "Range cleared"
	}
	text := s.picker.FormatRange(v)
	return fmt.Sprintf("Range: %s %s %s", text[0], s.picker.Separator(), text[1])
}

func (s *RangePickerScreen) is(msg tea.KeyMsg, action string) bool {
	return s.keys != nil && s.keys.IsAction(msg, action, s.Scope())
}

func (s *RangePickerScreen) updatePanel(msg tea.KeyMsg) tea.Cmd {
	p := s.picker
	switch {
	case s.is(msg, "close"):
		p.Cancel()
	case s.is(msg, "range-done"):
		p.Blur()
	case s.is(msg, "range-switch-side"):
		if !p.Open(p.ActiveSide().Other()) {
			return core.StatusCmd("That side is disabled")
		}
	case s.is(msg, "range-edit"):
		s.focusInput()
	case s.is(msg, "range-presets"):
		if len(p.Shortcuts()) == 0 {
			return core.StatusCmd("No presets configured")
		}
		s.focus = focusPresets
		s.preset = 0
		_ = p.ShortcutHover(0)
	case s.is(msg, "range-time"):
		if p.Mode() == rangepick.ModeTime {
			break
		}
		if !p.ShowTime() {
			return core.StatusCmd("This picker has no time column")
		}
		if s.timeCol < 0 {
			s.timeCol = 0
		} else {
			s.timeCol = -1
		}
	case s.is(msg, "range-ok"):
		if !p.NeedsConfirm() {
			return nil
		}
		if !p.Ok() {
			return core.ErrorCmd(errNothingToConfirm)
		}
	case s.is(msg, "range-clear"):
		if !p.Clear() {
			return core.StatusCmd("Nothing to clear")
		}
	case s.is(msg, "range-today"):
		s.cursor = s.engine.Now()
		s.reveal()
		return s.pick()
	case s.is(msg, "range-prev-page"):
		p.Page(rangepick.PanelLeft, -1)
		s.follow(-1)
	case s.is(msg, "range-next-page"):
		p.Page(rangepick.PanelLeft, 1)
		s.follow(1)
	case s.is(msg, "range-drill-up"):
		mode := p.Modes()[p.ActiveSide()]
		if parent, ok := rangepick.ParentMode(mode); ok {
			p.ChangePanel(s.position(), s.cursor, parent)
		}
	case s.is(msg, "range-pick"):
		return s.pick()
	case s.is(msg, "range-left"):
		s.move(-1, false)
	case s.is(msg, "range-right"):
		s.move(1, false)
	case s.is(msg, "range-up"):
		s.move(-1, true)
	case s.is(msg, "range-down"):
		s.move(1, true)
	}
	return nil
}

// pick clicks the cursor: coarser panels drill down toward the picker's own
// mode, the picker's own mode selects.
func (s *RangePickerScreen) pick() tea.Cmd {
	p := s.picker
	mode := p.Modes()[p.ActiveSide()]
	if child, ok := rangepick.ChildMode(mode, p.Mode()); ok {
		p.ChangePanel(s.position(), s.cursor, child)
		return nil
	}
	if !p.Select(s.cursor, rangepick.SelectMouse) {
		return core.StatusCmd("That date is not available")
	}
	return nil
}

func (s *RangePickerScreen) updateInput(msg tea.KeyMsg) tea.Cmd {
	p := s.picker
	side := p.ActiveSide()
	switch {
	case s.is(msg, "close"):
		p.ResetText(side)
		s.blurInputs()
		return nil
	case s.is(msg, "range-submit"):
		ok := p.SubmitText(side)
		s.blurInputs()
		if !ok {
			return core.StatusCmd("Could not read that date")
		}
		return nil
	}
	var cmd tea.Cmd
	s.inputs[side], cmd = s.inputs[side].Update(msg)
	if p.TypeText(side, s.inputs[side].Value()) {
		s.cursor = p.Working()[side]
	}
	return cmd
}

func (s *RangePickerScreen) updatePresets(msg tea.KeyMsg) {
	p := s.picker
	n := len(p.Shortcuts())
	switch {
	case s.is(msg, "close"):
		p.ShortcutLeave()
		s.focus = focusPanel
		s.preset = -1
	case s.is(msg, "range-up"), s.is(msg, "range-left"):
		s.preset = (s.preset - 1 + n) % n
		_ = p.ShortcutHover(s.preset)
	case s.is(msg, "range-down"), s.is(msg, "range-right"):
		s.preset = (s.preset + 1) % n
		_ = p.ShortcutHover(s.preset)
	case s.is(msg, "range-pick"):
		_ = p.ShortcutActivate(s.preset)
	}
}

func (s *RangePickerScreen) focusInput() {
	side := s.picker.ActiveSide()
	s.focus = focusInput
	s.inputs[side].SetValue(s.picker.Text(side))
	s.inputs[side].CursorEnd()
	s.inputs[side].Focus()
}

func (s *RangePickerScreen) blurInputs() {
	if s.focus == focusInput {
		s.focus = focusPanel
	}
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
}

func (s *RangePickerScreen) syncInputs() {
	for i := range s.inputs {
		side := rangepick.Side(i)
		if s.focus == focusInput && side == s.picker.ActiveSide() {
			continue
		}
		s.inputs[i].SetValue(s.picker.DisplayText(side))
	}
}

// resetCursor puts the cursor on the active side's draft, or on the first
// page it shows.
func (s *RangePickerScreen) resetCursor() {
	side := s.picker.ActiveSide()
	if v := s.picker.Working()[side]; v.Valid() {
		s.cursor = v
		s.reveal()
		return
	}
	s.cursor = s.picker.View(side)
	if s.picker.Mode() == rangepick.ModeTime {
		s.cursor = s.engine.Now()
	}
}

// cursorStep is how far one key press moves the cursor on a panel of mode.
func cursorStep(mode rangepick.Mode, vertical bool) (dateengine.Unit, int) {
	switch mode {
	case rangepick.ModeWeek:
		return dateengine.Week, 1
	case rangepick.ModeMonth:
		if vertical {
			return dateengine.Month, 3
		}
		return dateengine.Month, 1
	case rangepick.ModeQuarter:
		if vertical {
			return dateengine.Year, 1
		}
		return dateengine.Quarter, 1
	case rangepick.ModeYear:
		if vertical {
			return dateengine.Year, 3
		}
		return dateengine.Year, 1
	case rangepick.ModeDecade:
		if vertical {
			return dateengine.Decade, 3
		}
		return dateengine.Decade, 1
	}
	if vertical {
		return dateengine.Week, 1
	}
	return dateengine.Day, 1
}

var timeUnits = [3]dateengine.Unit{dateengine.Hour, dateengine.Minute, dateengine.Second}

func (s *RangePickerScreen) move(delta int, vertical bool) {
	p := s.picker
	if s.timeCol >= 0 {
		if !vertical {
			s.timeCol = (s.timeCol + delta + len(timeUnits)) % len(timeUnits)
			return
		}
		s.cursor = widgets.WrapTime(s.engine, s.cursor, timeUnits[s.timeCol], delta)
		s.hover()
		return
	}
	if !s.cursor.Valid() {
		s.cursor = p.View(p.ActiveSide())
	}
	unit, n := cursorStep(p.Modes()[p.ActiveSide()], vertical)
	s.cursor = s.engine.Add(s.cursor, unit, delta*n)
	s.reveal()
	s.hover()
}

func (s *RangePickerScreen) hover() {
	if len(s.picker.Panels()) == 0 {
		return
	}
	panel := s.picker.Panels()[0]
	if panel.Mode != panel.Picker {
		return
	}
	if panel.Disabled != nil && panel.Disabled(s.cursor) {
		s.picker.HoverLeave()
		return
	}
	s.picker.HoverEnter(s.cursor)
}

// reveal turns pages until the cursor is on a visible panel.
func (s *RangePickerScreen) reveal() {
	panels := s.picker.Panels()
	for _, panel := range panels {
		if widgets.PageContains(s.engine, panel.Mode, panel.View, s.cursor) {
			return
		}
	}
	if len(panels) == 2 && s.engine.IsAfter(s.cursor, s.picker.View(s.picker.ActiveSide())) {
		s.picker.ShowOnRight(s.cursor)
		return
	}
	s.picker.ShowOnLeft(s.cursor)
}

// follow keeps the cursor on screen after a page turn by moving it along.
func (s *RangePickerScreen) follow(delta int) {
	panels := s.picker.Panels()
	for _, panel := range panels {
		if widgets.PageContains(s.engine, panel.Mode, panel.View, s.cursor) {
			return
		}
	}
	mode := s.picker.Modes()[s.picker.ActiveSide()]
	unit, n := rangepick.PageStep(mode)
	s.cursor = s.engine.Add(s.cursor, unit, delta*n)
	for _, panel := range panels {
		if widgets.PageContains(s.engine, panel.Mode, panel.View, s.cursor) {
			return
		}
	}
	s.cursor = panels[0].View
}

// position is the panel the cursor is on.
func (s *RangePickerScreen) position() rangepick.Position {
	for _, panel := range s.picker.Panels() {
		if widgets.PageContains(s.engine, panel.Mode, panel.View, s.cursor) {
			return panel.Position
		}
	}
	return rangepick.PanelLeft
}

func (s *RangePickerScreen) View(width, height int) string {
	p := s.picker
	lines := []string{s.renderInputs(width)}

	panels := p.Panels()
	ws := make([]widgets.Widget, 0, len(panels))
	for _, panel := range panels {
		cal := widgets.Calendar{Engine: s.engine, Panel: panel, Cursor: s.cursor, TimeColumn: s.timeCol}
		if !widgets.PageContains(s.engine, panel.Mode, panel.View, s.cursor) && panel.Mode != rangepick.ModeTime {
			cal.Cursor = dateengine.Value{}
		}
		title := panel.Side.String()
		if panel.Mode != panel.Picker {
			title += " · " + panel.Mode.String()
		}
		ws = append(ws, widgets.Pane{
			Title:   title,
			Content: cal.Render(max(12, width/len(panels)-4), 12),
			Focused: s.focus == focusPanel,
		})
	}
	body := widgets.HStack{Widgets: ws, Gap: 1}.Render(max(20, width), 14)
	lines = append(lines, body)

	if sc := p.Shortcuts(); len(sc) > 0 {
		labels := make([]string, 0, len(sc))
		for i, c := range sc {
			style := presetOff
			if s.focus == focusPresets && i == s.preset {
				style = presetOn
			}
			labels = append(labels, style.Render(c.Label))
		}
		lines = append(lines, "Presets: "+strings.Join(labels, "  "))
	}
	lines = append(lines, s.renderButtons())
	return strings.Join(lines, "\n")
}

func (s *RangePickerScreen) renderInputs(width int) string {
	p := s.picker
	parts := make([]string, 0, 2)
	for i := range s.inputs {
		side := rangepick.Side(i)
		field := width/2 - 4
		s.inputs[i].Width = max(10, field)
		text := s.inputs[i].View()
		style := inputInactive
		if p.IsOpen() && p.ActiveSide() == side {
			style = inputActive
		}
		if _, ok := p.HoverText(side); ok && s.focus != focusInput {
			style = inputHover
		}
		if p.Disabled()[side] {
			text += " (locked)"
		}
		parts = append(parts, style.Render("["+text+"]"))
	}
	if p.Direction() == rangepick.RTL {
		parts[0], parts[1] = parts[1], parts[0]
	}
	return strings.Join(parts, " "+p.Separator()+" ")
}

func (s *RangePickerScreen) renderButtons() string {
	p := s.picker
	locale := s.engine.Locale()
	var parts []string
	if p.NeedsConfirm() {
		style := buttonOn
		if p.OkDisabled() {
			style = buttonOff
		}
		parts = append(parts, style.Render("["+locale.Ok+"]"))
	}
	if p.AllowClear() {
		style := buttonOn
		if !p.CanClear() {
			style = buttonOff
		}
		parts = append(parts, style.Render("["+locale.Clear+"]"))
	}
	return strings.Join(parts, " ")
}
