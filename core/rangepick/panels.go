package rangepick

import (
	"time"

	"github.com/jask/rangepick/internal/dateengine"
)

// PanelSnapshot is everything one panel needs for a render pass. It is a copy;
// changing it does not affect the picker.
type PanelSnapshot struct {
	Position Position
	Side     Side
	Mode     Mode
	Picker   Mode
	View     dateengine.Value
	Now      dateengine.Value
	// Selected is the active side's draft.
	Selected dateengine.Value
	// Range is the pair to highlight: the hover preview when it is valid,
	// otherwise the draft.
	Range    Range
	Hovering bool

	ShowTime   bool
	Use12Hours bool
	WeekStart  time.Weekday
	Locale     *dateengine.Locale

	// Disabled judges a full value; CellDisabled only its calendar part, for
	// date cells whose time is picked separately.
	Disabled     func(dateengine.Value) bool
	CellDisabled func(dateengine.Value) bool
}

// Double reports whether two panels are shown side by side. Time pickers,
// pickers with a time column and drilled-up panels show a single one.
func (p *Picker) Double() bool {
	side := p.active.ActiveSide()
	return p.cfg.Picker != ModeTime && !p.cfg.ShowTime && p.modes[side] == p.cfg.Picker
}

// Panels returns the panel snapshots in visual order.
func (p *Picker) Panels() []PanelSnapshot {
	side := p.active.ActiveSide()
	working := p.store.Working()
	left, right := p.views.Pages(side, working)

	highlight := working
	hover, valid := p.Hover()
	if valid {
		highlight = hover
	}
	base := PanelSnapshot{
		Side:       side,
		Mode:       p.modes[side],
		Picker:     p.cfg.Picker,
		Now:        p.engine.Now(),
		Selected:   working[side],
		Range:      highlight,
		Hovering:   valid,
		ShowTime:   p.cfg.ShowTime,
		Use12Hours: p.cfg.Use12Hours,
		WeekStart:  p.engine.WeekStart(),
		Locale:     p.engine.Locale(),
		Disabled:   p.policy.ForSide(side, working),
		CellDisabled: func(v dateengine.Value) bool {
			return p.policy.DateDisabled(side, v, working)
		},
	}

	l := base
	l.Position = PanelLeft
	l.View = left
	if !p.Double() {
		return []PanelSnapshot{l}
	}
	r := base
	r.Position = PanelRight
	r.View = right
	if p.cfg.Direction == RTL {
		return []PanelSnapshot{r, l}
	}
	return []PanelSnapshot{l, r}
}

// View returns the page side currently shows on the left.
func (p *Picker) View(side Side) dateengine.Value {
	return p.views.Get(side, p.store.Working())
}

// Page turns the panel at position by delta pages.
func (p *Picker) Page(position Position, delta int) {
	side := p.active.ActiveSide()
	p.views.Page(position, side, p.modes[side], delta, p.store.Working())
}

// ShowOnRight moves the active side's pages so v is on the right panel.
func (p *Picker) ShowOnRight(v dateengine.Value) {
	p.views.SetRight(p.active.ActiveSide(), v, p.store.Working())
}

// ShowOnLeft moves the active side's pages so v is on the left panel.
func (p *Picker) ShowOnLeft(v dateengine.Value) {
	p.views.Set(p.active.ActiveSide(), v, p.store.Working())
}

// ChangePanel switches the active side's panel to mode, landing on v. A page
// turn on the right panel that keeps the mode pulls the left panel back one
// unit instead of pushing the right one forward.
func (p *Picker) ChangePanel(position Position, v dateengine.Value, mode Mode) {
	side := p.active.ActiveSide()
	working := p.store.Working()
	p.hover.Leave(working)

	prev := p.modes[side]
	p.modes[side] = mode
	if p.cfg.OnPanelChange != nil {
		p.cfg.OnPanelChange(working.With(side, v), p.modes)
	}
	view := v
	if position == PanelRight && prev == mode {
		view = p.views.Closing(v, mode, -1)
	}
	p.views.Set(side, view, working)
}

// ParentMode is the coarser panel a header click drills up to.
func ParentMode(m Mode) (Mode, bool) {
	switch m {
	case ModeDate, ModeWeek:
		return ModeMonth, true
	case ModeMonth, ModeQuarter:
		return ModeYear, true
	case ModeYear:
		return ModeDecade, true
	}
	return m, false
}

// ChildMode is the finer panel a pick drills down to on the way back to the
// picker's own mode.
func ChildMode(m, picker Mode) (Mode, bool) {
	if m == picker {
		return m, false
	}
	switch m {
	case ModeDecade:
		return ModeYear, true
	case ModeYear:
		if picker == ModeQuarter {
			return ModeQuarter, true
		}
		return ModeMonth, true
	case ModeMonth:
		if picker == ModeDate || picker == ModeWeek {
			return picker, true
		}
	}
	return m, false
}
