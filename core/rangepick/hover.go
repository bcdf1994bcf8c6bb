package rangepick

import "github.com/jask/rangepick/internal/dateengine"

// HoverTracker holds the preview pair shown while the pointer or cursor rests
// on a cell. It never touches the working value.
type HoverTracker struct {
	engine    dateengine.Engine
	candidate Range
	side      Side
	hovering  bool
	shortcut  bool
}

func NewHoverTracker(engine dateengine.Engine) *HoverTracker {
	return &HoverTracker{engine: engine}
}

func (h *HoverTracker) Enter(v dateengine.Value, side Side, working Range) {
	h.candidate = working.With(side, v)
	h.side = side
	h.hovering = true
	h.shortcut = false
}

// SetRange previews a whole pair, as a shortcut does.
func (h *HoverTracker) SetRange(r Range) {
	h.candidate = r
	h.hovering = true
	h.shortcut = true
}

// Leave falls back to the last draft rather than to nothing.
func (h *HoverTracker) Leave(working Range) {
	h.candidate = working
	h.hovering = false
	h.shortcut = false
}

func (h *HoverTracker) Current() Range {
	return h.candidate
}

func (h *HoverTracker) Hovering() bool {
	return h.hovering
}

// Valid reports whether the candidate may be highlighted.
func (h *HoverTracker) Valid() bool {
	return h.candidate.Complete() && h.engine.IsAfter(h.candidate[SideEnd], h.candidate[SideStart])
}

// HoverValue is the value previewed on side, if the preview concerns it.
func (h *HoverTracker) HoverValue(side Side) (dateengine.Value, bool) {
	if !h.hovering {
		return dateengine.Value{}, false
	}
	if !h.shortcut && side != h.side {
		return dateengine.Value{}, false
	}
	v := h.candidate[side]
	return v, v.Valid()
}
