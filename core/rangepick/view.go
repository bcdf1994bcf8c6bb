package rangepick

import "github.com/jask/rangepick/internal/dateengine"

// ViewCoordinator tracks the page each side shows. A side's view is always the
// left page; the right page is the one after it.
type ViewCoordinator struct {
	engine   dateengine.Engine
	picker   Mode
	defaults Range
	views    Range
}

func NewViewCoordinator(engine dateengine.Engine, picker Mode, defaults Range) *ViewCoordinator {
	return &ViewCoordinator{engine: engine, picker: picker, defaults: defaults}
}

// ClosingUnit is the page a panel of mode covers. Two views on the same
// closing unit draw the same page.
func ClosingUnit(mode Mode) dateengine.Unit {
	unit, _ := PageStep(mode)
	return unit
}

// PageStep is how far one page turn moves a panel shown in mode.
func PageStep(mode Mode) (dateengine.Unit, int) {
	switch mode {
	case ModeMonth, ModeQuarter:
		return dateengine.Year, 1
	case ModeYear:
		return dateengine.Decade, 1
	case ModeDecade:
		return dateengine.Decade, 10
	case ModeTime:
		return dateengine.Hour, 1
	default:
		return dateengine.Month, 1
	}
}

// Closing is the view dir pages away from v, so the right panel never
// repeats the left one.
func (c *ViewCoordinator) Closing(v dateengine.Value, mode Mode, dir int) dateengine.Value {
	unit, n := PageStep(mode)
	return c.engine.Add(v, unit, dir*n)
}

// Get resolves a side's view: explicit default, then a page the user moved to,
// then one derived from the values, then whichever value exists, then now.
func (c *ViewCoordinator) Get(side Side, values Range) dateengine.Value {
	if v := c.defaults[side]; v.Valid() {
		return v
	}
	if v := c.views[side]; v.Valid() {
		return v
	}
	if v := c.fromRange(side, values); v.Valid() {
		return v
	}
	if v := values[SideStart]; v.Valid() {
		return v
	}
	if v := values[SideEnd]; v.Valid() {
		return v
	}
	return c.engine.Now()
}

// fromRange keeps both ends on screen when they fit in the two pages, and
// otherwise puts the end on the right page.
func (c *ViewCoordinator) fromRange(side Side, values Range) dateengine.Value {
	start, end := values[SideStart], values[SideEnd]
	if side == SideStart || !start.Valid() || !end.Valid() {
		return start
	}
	unit := ClosingUnit(c.picker)
	if c.engine.IsSame(start, end, unit) || c.engine.IsSame(c.Closing(start, c.picker, 1), end, unit) {
		return start
	}
	return c.Closing(end, c.picker, -1)
}

// Set moves a side's view. A side without a value follows along so it opens
// on the same page.
func (c *ViewCoordinator) Set(side Side, v dateengine.Value, values Range) {
	if !v.Valid() {
		return
	}
	c.views[side] = v
	c.defaults[side] = dateengine.Value{}
	if other := side.Other(); !values[other].Valid() {
		c.views[other] = v
	}
}

// SetRight moves a side's view so that v lands on the right page.
func (c *ViewCoordinator) SetRight(side Side, v dateengine.Value, values Range) {
	c.Set(side, c.Closing(v, c.picker, -1), values)
}

// ResetSide forgets paging on side so the next Get derives from values again.
// With no values at all there is nothing better to jump to, so the page stays.
func (c *ViewCoordinator) ResetSide(side Side, values Range) {
	if values.IsNull() {
		return
	}
	c.views[side] = dateengine.Value{}
}

// Pages returns the left and right page for the active side.
func (c *ViewCoordinator) Pages(active Side, values Range) (dateengine.Value, dateengine.Value) {
	left := c.Get(active, values)
	return left, c.Closing(left, c.picker, 1)
}

// Page turns one panel by delta pages in the given panel mode.
func (c *ViewCoordinator) Page(position Position, active Side, mode Mode, delta int, values Range) {
	unit, n := PageStep(mode)
	left, right := c.Pages(active, values)
	if position == PanelRight {
		c.SetRight(active, c.engine.Add(right, unit, delta*n), values)
		return
	}
	c.Set(active, c.engine.Add(left, unit, delta*n), values)
}
