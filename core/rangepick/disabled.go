package rangepick

import "github.com/jask/rangepick/internal/dateengine"

// Policy derives the per-side "is this candidate disabled" predicate. It is
// rebuilt from the current working value on every call; nothing is cached.
type Policy struct {
	engine       dateengine.Engine
	picker       Mode
	showTime     bool
	enforceOrder bool
	disabled     [2]bool
	disabledDate func(dateengine.Value, Side) bool
	disabledTime func(dateengine.Value, Side) DisabledTimes
}

func NewPolicy(cfg Config, engine dateengine.Engine) *Policy {
	return &Policy{
		engine:       engine,
		picker:       cfg.Picker,
		showTime:     cfg.ShowTime,
		enforceOrder: cfg.EnforceOrder,
		disabled:     cfg.Disabled,
		disabledDate: cfg.DisabledDate,
		disabledTime: cfg.DisabledTime,
	}
}

// ForSide returns the predicate for side against the given working value.
func (p *Policy) ForSide(side Side, working Range) func(dateengine.Value) bool {
	return func(v dateengine.Value) bool {
		return p.Disabled(side, v, working)
	}
}

func (p *Policy) Disabled(side Side, v dateengine.Value, working Range) bool {
	if !v.Valid() {
		return true
	}
	if p.disabled[side] {
		return true
	}
	if p.disabledDate != nil && p.disabledDate(v, side) {
		return true
	}
	if p.timeDisabled(side, v) {
		return true
	}
	return p.outOfOrder(side, v, working)
}

// DateDisabled checks only the calendar part of v, for cells whose time is not
// chosen yet.
func (p *Policy) DateDisabled(side Side, v dateengine.Value, working Range) bool {
	if !v.Valid() || p.disabled[side] {
		return true
	}
	if p.disabledDate != nil && p.disabledDate(v, side) {
		return true
	}
	return p.outOfOrder(side, v, working)
}

func (p *Policy) timeDisabled(side Side, v dateengine.Value) bool {
	if p.disabledTime == nil || (p.picker != ModeTime && !p.showTime) {
		return false
	}
	t := v.Time()
	return p.disabledTime(v, side).rejects(t.Hour(), t.Minute(), t.Second())
}

// outOfOrder rejects a start after the end or an end before the start, unless
// both land in the unit where the pair would simply be swapped.
func (p *Policy) outOfOrder(side Side, v dateengine.Value, working Range) bool {
	if p.picker == ModeTime && !p.enforceOrder {
		return false
	}
	other := working[side.Other()]
	if !other.Valid() {
		return false
	}
	unit := SameUnit(p.picker)
	if p.picker == ModeTime {
		unit = dateengine.Second
	}
	if p.engine.IsSame(v, other, unit) {
		return false
	}
	if side == SideStart {
		return p.engine.IsAfter(v, other)
	}
	return p.engine.IsAfter(other, v)
}
