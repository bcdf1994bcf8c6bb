package rangepick

import (
	"time"

	"github.com/jask/rangepick/internal/dateengine"
)

// Format renders v with the display pattern.
func (p *Picker) Format(v dateengine.Value) string {
	return p.engine.Format(v, p.patterns[0])
}

func (p *Picker) FormatRange(r Range) [2]string {
	return [2]string{p.Format(r[SideStart]), p.Format(r[SideEnd])}
}

// Parse reads text with every configured pattern. Time pickers keep the date
// of whatever the side already holds so times from text and from panels stay
// comparable.
func (p *Picker) Parse(side Side, text string) (dateengine.Value, error) {
	v, err := p.engine.Parse(text, p.patterns)
	if err != nil {
		return dateengine.Value{}, err
	}
	if p.cfg.Picker == ModeTime {
		v = p.AnchorTime(side, v)
	}
	return v, nil
}

// AnchorTime moves the clock reading of v onto the date the side already uses,
// falling back to the other side and then to today.
func (p *Picker) AnchorTime(side Side, v dateengine.Value) dateengine.Value {
	working := p.store.Working()
	base := working[side]
	if !base.Valid() {
		base = working[side.Other()]
	}
	if !base.Valid() {
		base = p.engine.Now()
	}
	b, t := base.Time(), v.Time()
	return dateengine.Of(time.Date(b.Year(), b.Month(), b.Day(), t.Hour(), t.Minute(), t.Second(), 0, b.Location()))
}

// Text is what side's input holds: the typed text while typing, otherwise the
// formatted draft.
func (p *Picker) Text(side Side) string {
	if p.typing[side] {
		return p.typed[side]
	}
	return p.Format(p.store.Working()[side])
}

// HoverText is the formatted preview for side, shown in place of the text
// while a cell or shortcut is hovered.
func (p *Picker) HoverText(side Side) (string, bool) {
	if !p.active.IsOpen() {
		return "", false
	}
	v, ok := p.hover.HoverValue(side)
	if !ok {
		return "", false
	}
	return p.Format(v), true
}

func (p *Picker) DisplayText(side Side) string {
	if s, ok := p.HoverText(side); ok {
		return s
	}
	return p.Text(side)
}

func (p *Picker) Typing(side Side) bool {
	return p.typing[side]
}

// TypeText records what the user typed into side's input. Text that parses to
// an enabled value moves the draft and the side's page; anything else only
// changes the text and is dropped on close.
func (p *Picker) TypeText(side Side, text string) bool {
	p.typed[side] = text
	p.typing[side] = true
	v, err := p.Parse(side, text)
	if err != nil {
		return false
	}
	working := p.store.Working()
	if p.policy.Disabled(side, v, working) {
		return false
	}
	next := working.With(side, v)
	p.store.SetWorking(next)
	p.views.Set(side, v, next)
	return true
}

// SubmitText commits the draft from side's input through the normal
// transition.
func (p *Picker) SubmitText(side Side) bool {
	working := p.store.Working()
	if !working[side].Valid() || p.policy.Disabled(side, working[side], working) {
		p.ResetText(side)
		return false
	}
	p.trigger(working, side, false, true)
	p.ResetText(side)
	return true
}

// ResetText drops typed text so the input shows the formatted draft again.
func (p *Picker) ResetText(side Side) {
	p.typing[side] = false
	p.typed[side] = ""
}
