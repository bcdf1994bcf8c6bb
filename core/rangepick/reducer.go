package rangepick

import "github.com/jask/rangepick/internal/dateengine"

// Reducer decides what a pick does to the pair. It holds no state of its own.
type Reducer struct {
	engine       dateengine.Engine
	picker       Mode
	enforceOrder bool
	disabled     [2]bool
	allowEmpty   [2]bool
}

func NewReducer(engine dateengine.Engine, picker Mode, enforceOrder bool, disabled, allowEmpty [2]bool) *Reducer {
	return &Reducer{
		engine:       engine,
		picker:       picker,
		enforceOrder: enforceOrder,
		disabled:     disabled,
		allowEmpty:   allowEmpty,
	}
}

// Transition is the outcome of a pick.
type Transition struct {
	Values Range
	// Invalidated is set when the side opposite the pick was cleared.
	Invalidated bool
	Eligible    bool
}

// SameUnit is the unit within which an out-of-order pair is swapped instead of
// cleared.
func SameUnit(picker Mode) dateengine.Unit {
	switch picker {
	case ModeWeek:
		return dateengine.Week
	case ModeQuarter:
		return dateengine.Quarter
	default:
		return dateengine.Day
	}
}

// OnPick places v on side and normalizes the result.
func (r *Reducer) OnPick(working Range, v dateengine.Value, side Side) Transition {
	return r.Apply(working.With(side, v), side)
}

// Apply normalizes an already built pair as if source had just been picked.
func (r *Reducer) Apply(values Range, source Side) Transition {
	next, invalidated := r.Normalize(values, source)
	return Transition{Values: next, Invalidated: invalidated, Eligible: r.Eligible(next)}
}

// Normalize swaps or clears an out-of-order pair. Time pickers keep the order
// they were given unless order is enforced.
func (r *Reducer) Normalize(values Range, source Side) (Range, bool) {
	start, end := values[SideStart], values[SideEnd]
	if !r.engine.IsAfter(start, end) {
		return values, false
	}
	if r.picker == ModeTime {
		if r.enforceOrder {
			return values.Swap(), false
		}
		return values, false
	}
	if r.engine.IsSame(start, end, SameUnit(r.picker)) {
		return values.Swap(), false
	}
	return values.With(source.Other(), dateengine.Value{}), true
}

// Reorder swaps an out-of-order pair without ever clearing, for values handed
// in from outside.
func (r *Reducer) Reorder(values Range) Range {
	if r.picker == ModeTime && !r.enforceOrder {
		return values
	}
	if r.engine.IsAfter(values[SideStart], values[SideEnd]) {
		return values.Swap()
	}
	return values
}

// SideEligible reports whether side may be published as it is. An empty side
// passes when it may stay empty or when a disabled side is involved, since
// nobody can fill it in.
func (r *Reducer) SideEligible(values Range, side Side) bool {
	return values[side].Valid() || r.allowEmpty[side] || r.disabled[side] || r.disabled[side.Other()]
}

func (r *Reducer) Eligible(values Range) bool {
	return values.IsNull() || (r.SideEligible(values, SideStart) && r.SideEligible(values, SideEnd))
}

// NextOpen says which side to open after a pick on source, if any. The other
// side opens when it is enabled, not already active, still needs a value or
// was never opened, and the pick actually left a value behind.
func (r *Reducer) NextOpen(values Range, source, active Side, opened [2]bool) (Side, bool) {
	other := source.Other()
	if r.disabled[other] || other == active {
		return source, false
	}
	if opened[other] && values[other].Valid() {
		return source, false
	}
	if !values[source].Valid() {
		return source, false
	}
	return other, true
}

// Clear empties every side that is not disabled.
func (r *Reducer) Clear(values Range) Range {
	for _, side := range []Side{SideStart, SideEnd} {
		if !r.disabled[side] {
			values[side] = dateengine.Value{}
		}
	}
	return values
}
