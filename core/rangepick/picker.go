package rangepick

import (
	"fmt"

	"github.com/jask/rangepick/internal/dateengine"
)

// Picker wires the store, view coordinator, reducer, policy, hover tracker and
// active controller into the operations a presentation layer calls.
type Picker struct {
	cfg      Config
	engine   dateengine.Engine
	modes    [2]Mode
	patterns []string

	store   *Store
	views   *ViewCoordinator
	reducer *Reducer
	policy  *Policy
	hover   *HoverTracker
	active  *ActiveController

	typed  [2]string
	typing [2]bool
}

// New validates cfg and builds a closed picker. Configuration mistakes are
// reported here once and never per interaction.
func New(cfg Config) (*Picker, error) {
	modes, err := cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("rangepick: %w", err)
	}
	if cfg.Engine == nil {
		cfg.Engine = dateengine.NewTimeEngine()
	}
	locale := cfg.Engine.Locale()
	if cfg.Separator == "" {
		cfg.Separator = locale.Separator
	}
	if cfg.Placeholder[SideStart] == "" {
		cfg.Placeholder[SideStart] = locale.StartPlaceholder
	}
	if cfg.Placeholder[SideEnd] == "" {
		cfg.Placeholder[SideEnd] = locale.EndPlaceholder
	}
	patterns := cfg.Format
	if len(patterns) == 0 {
		patterns = DefaultFormat(cfg.Picker, cfg.ShowTime, cfg.Use12Hours)
	}

	p := &Picker{
		cfg:      cfg,
		engine:   cfg.Engine,
		modes:    modes,
		patterns: append([]string(nil), patterns...),
		reducer:  NewReducer(cfg.Engine, cfg.Picker, cfg.EnforceOrder, cfg.Disabled, cfg.AllowEmpty),
		policy:   NewPolicy(cfg, cfg.Engine),
		hover:    NewHoverTracker(cfg.Engine),
		active:   NewActiveController(),
	}

	var initial Range
	switch {
	case cfg.Value != nil:
		initial = *cfg.Value
	case cfg.DefaultValue != nil:
		initial = *cfg.DefaultValue
	}
	p.store = NewStore(cfg.Engine, cfg.Value != nil, p.reducer.Reorder(initial), cfg.Disabled, cfg.AllowEmpty)

	var pages Range
	if cfg.DefaultPickerValue != nil {
		pages = *cfg.DefaultPickerValue
	}
	p.views = NewViewCoordinator(cfg.Engine, cfg.Picker, pages)
	return p, nil
}

func (p *Picker) Engine() dateengine.Engine { return p.engine }
func (p *Picker) Mode() Mode                { return p.cfg.Picker }
func (p *Picker) Modes() [2]Mode            { return p.modes }
func (p *Picker) Direction() Direction      { return p.cfg.Direction }
func (p *Picker) Separator() string         { return p.cfg.Separator }
func (p *Picker) Patterns() []string        { return append([]string(nil), p.patterns...) }
func (p *Picker) NeedsConfirm() bool        { return p.cfg.NeedsConfirm() }
func (p *Picker) ShowTime() bool            { return p.cfg.ShowTime }
func (p *Picker) Use12Hours() bool          { return p.cfg.Use12Hours }
func (p *Picker) AllowClear() bool          { return p.cfg.AllowClear }
func (p *Picker) Disabled() [2]bool         { return p.cfg.Disabled }
func (p *Picker) Shortcuts() []Shortcut     { return append([]Shortcut(nil), p.cfg.Shortcuts...) }

func (p *Picker) Placeholder(side Side) string {
	return p.cfg.Placeholder[side]
}

// Value is the committed, externally visible pair.
func (p *Picker) Value() Range {
	return p.store.Read()
}

// Working is the draft the panels and inputs show.
func (p *Picker) Working() Range {
	return p.store.Working()
}

func (p *Picker) IsOpen() bool {
	return p.active.IsOpen()
}

func (p *Picker) State() ActiveState {
	return p.active.State()
}

func (p *Picker) ActiveSide() Side {
	return p.active.ActiveSide()
}

// Hover returns the preview pair and whether it is fit for highlighting.
func (p *Picker) Hover() (Range, bool) {
	return p.hover.Current(), p.hover.Hovering() && p.hover.Valid()
}

// SetValue hands the picker a new value from outside. Controlled owners call it
// from OnChange; uncontrolled owners may use it to reset.
func (p *Picker) SetValue(r Range) {
	p.store.Seed(p.reducer.Reorder(r))
	p.typing = [2]bool{}
	p.hover.Leave(p.store.Working())
}

// Open activates side. Disabled sides never open.
func (p *Picker) Open(side Side) bool {
	if p.cfg.Disabled[side] {
		return false
	}
	wasOpen := p.active.IsOpen()
	switching := wasOpen && p.active.ActiveSide() != side
	if p.active.Open(side) {
		p.views.ResetSide(side, p.store.Working())
	}
	if switching {
		p.hover.Leave(p.store.Working())
	}
	if !wasOpen && p.cfg.OnOpenChange != nil {
		p.cfg.OnOpenChange(true)
	}
	return true
}

// Activate opens the first side that is not disabled, as clicking the control
// outside both inputs does.
func (p *Picker) Activate() bool {
	if p.active.IsOpen() {
		return true
	}
	for _, side := range []Side{SideStart, SideEnd} {
		if !p.cfg.Disabled[side] {
			return p.Open(side)
		}
	}
	return false
}

// Close closes the active side and drops any draft.
func (p *Picker) Close() {
	p.closeSide(p.active.ActiveSide())
}

// Cancel is an explicit abort. The draft is discarded and the committed value
// shown again.
func (p *Picker) Cancel() {
	p.Close()
}

// Blur handles focus leaving the control. Pickers that need confirmation
// cancel; others keep what was typed and close.
func (p *Picker) Blur() {
	if !p.active.IsOpen() {
		return
	}
	if p.NeedsConfirm() {
		p.Cancel()
		return
	}
	side := p.active.ActiveSide()
	if p.typing[side] && p.store.Working()[side].Valid() {
		p.trigger(p.store.Working(), side, false, false)
	}
	p.closeSide(side)
}

func (p *Picker) closeSide(side Side) {
	if _, ok := p.active.Close(side); !ok {
		return
	}
	p.store.Revert()
	p.typing = [2]bool{}
	p.hover.Leave(p.store.Working())
	if p.cfg.OnOpenChange != nil {
		p.cfg.OnOpenChange(false)
	}
}

// PendingCleanup is the OpenRecord cleanup the host should schedule.
func (p *Picker) PendingCleanup() (Ticket, bool) {
	return p.active.Pending()
}

// ExpireOpenRecord runs a scheduled cleanup unless a later open superseded it.
func (p *Picker) ExpireOpenRecord(t Ticket) bool {
	return p.active.Expire(t)
}

// Select handles a pick on the active side's panel. Disabled candidates are
// ignored and reported as false.
func (p *Picker) Select(v dateengine.Value, source SelectSource) bool {
	if !p.active.IsOpen() {
		return false
	}
	if !v.Valid() {
		p.clear()
		return true
	}
	side := p.active.ActiveSide()
	working := p.store.Working()
	if p.policy.Disabled(side, v, working) {
		return false
	}
	values := working.With(side, v)
	if source == SelectSubmit || (source != SelectKey && !p.NeedsConfirm()) {
		p.trigger(values, side, false, true)
		p.hover.Leave(p.store.Working())
		return true
	}
	p.store.SetWorking(values)
	p.typing[side] = false
	return true
}

// Clear empties every enabled side, commits and closes. It does nothing unless
// clearing is allowed and there is something to clear.
func (p *Picker) Clear() bool {
	if !p.cfg.AllowClear || !p.CanClear() {
		return false
	}
	p.clear()
	return true
}

func (p *Picker) CanClear() bool {
	v := p.store.Read()
	return (v[SideStart].Valid() && !p.cfg.Disabled[SideStart]) ||
		(v[SideEnd].Valid() && !p.cfg.Disabled[SideEnd])
}

func (p *Picker) clear() {
	side := p.active.ActiveSide()
	values := p.reducer.Clear(p.store.Read())
	p.trigger(values, side, true, false)
	p.closeSide(side)
}

// OkDisabled reports whether Ok would be refused.
func (p *Picker) OkDisabled() bool {
	if !p.active.IsOpen() {
		return true
	}
	side := p.active.ActiveSide()
	working := p.store.Working()
	return !working[side].Valid() || p.policy.Disabled(side, working[side], working)
}

// Ok confirms the draft on pickers that need confirmation.
func (p *Picker) Ok() bool {
	if p.OkDisabled() {
		return false
	}
	tr := p.trigger(p.store.Working(), p.active.ActiveSide(), false, true)
	if p.cfg.OnOk != nil {
		p.cfg.OnOk(tr.Values)
	}
	return true
}

// HoverEnter previews v on the active side.
func (p *Picker) HoverEnter(v dateengine.Value) {
	if !p.active.IsOpen() {
		return
	}
	p.hover.Enter(v, p.active.ActiveSide(), p.store.Working())
}

func (p *Picker) HoverLeave() {
	p.hover.Leave(p.store.Working())
}

func (p *Picker) ShortcutHover(i int) error {
	if i < 0 || i >= len(p.cfg.Shortcuts) {
		return fmt.Errorf("%w: %d", ErrShortcutIndex, i)
	}
	p.hover.SetRange(p.cfg.Shortcuts[i].Resolve())
	return nil
}

func (p *Picker) ShortcutLeave() {
	p.hover.Leave(p.store.Working())
}

// ShortcutActivate commits a preset as one pick on the end side, bypassing
// auto-advance, and closes the control. An out-of-order preset is swapped
// rather than losing its start.
func (p *Picker) ShortcutActivate(i int) error {
	if i < 0 || i >= len(p.cfg.Shortcuts) {
		return fmt.Errorf("%w: %d", ErrShortcutIndex, i)
	}
	p.trigger(p.reducer.Reorder(p.cfg.Shortcuts[i].Resolve()), SideEnd, true, false)
	p.hover.Leave(p.store.Working())
	p.closeSide(p.active.ActiveSide())
	return nil
}

// trigger runs one transition: normalize, update the draft, publish when
// eligible, then auto-advance or close. OnCalendarChange always fires before
// OnChange.
func (p *Picker) trigger(values Range, source Side, force, advance bool) Transition {
	tr := p.reducer.Apply(values, source)
	if tr.Invalidated {
		p.active.Restart(source)
	}
	prev := p.store.Working()
	p.store.SetWorking(tr.Values)
	p.typing = [2]bool{}
	if p.cfg.OnCalendarChange != nil && !EqualRange(p.engine, prev, tr.Values) {
		p.cfg.OnCalendarChange(tr.Values, p.FormatRange(tr.Values), source)
	}
	if tr.Eligible || force {
		published, changed := p.store.Commit(tr.Values)
		if changed && p.cfg.OnChange != nil {
			p.cfg.OnChange(published, p.FormatRange(published))
		}
	}
	// A closed picker shows what the owner holds, even when a controlled
	// owner did not take the new value.
	if !p.active.IsOpen() {
		p.store.Revert()
	}
	if !advance {
		return tr
	}
	if next, ok := p.reducer.NextOpen(tr.Values, source, p.active.ActiveSide(), p.active.Opened()); ok {
		p.Open(next)
	} else {
		p.closeSide(source)
	}
	return tr
}
