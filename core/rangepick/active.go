package rangepick

type ActiveState int

const (
	Closed ActiveState = iota
	OpenStart
	OpenEnd
)

func (s ActiveState) String() string {
	switch s {
	case OpenStart:
		return "open-start"
	case OpenEnd:
		return "open-end"
	default:
		return "closed"
	}
}

// Ticket identifies one scheduled OpenRecord cleanup.
type Ticket uint64

// ActiveController tracks which side is open and which sides were opened in
// the current session. A close schedules a cleanup of that record; an open
// before the cleanup fires cancels it.
type ActiveController struct {
	open    bool
	active  Side
	opened  [2]bool
	seq     Ticket
	pending Ticket
}

func NewActiveController() *ActiveController {
	return &ActiveController{}
}

func (a *ActiveController) State() ActiveState {
	if !a.open {
		return Closed
	}
	if a.active == SideEnd {
		return OpenEnd
	}
	return OpenStart
}

func (a *ActiveController) IsOpen() bool {
	return a.open
}

// ActiveSide is the side last opened. It stays meaningful after a close so the
// presentation layer can keep its underline where it was.
func (a *ActiveController) ActiveSide() Side {
	return a.active
}

func (a *ActiveController) Opened() [2]bool {
	return a.opened
}

// Open activates side. It reports whether the side was already opened in this
// session, in which case its view should jump back to the value.
func (a *ActiveController) Open(side Side) bool {
	again := a.opened[side]
	a.pending = 0
	a.opened[side] = true
	a.active = side
	a.open = true
	return again
}

// Close closes side if it is the active one and returns the cleanup ticket.
func (a *ActiveController) Close(side Side) (Ticket, bool) {
	if !a.open || a.active != side {
		return 0, false
	}
	a.open = false
	a.seq++
	a.pending = a.seq
	return a.pending, true
}

// Pending returns the cleanup that is waiting to fire, if any.
func (a *ActiveController) Pending() (Ticket, bool) {
	return a.pending, a.pending != 0
}

// Expire runs a cleanup. Tickets superseded by a later open or close are
// ignored.
func (a *ActiveController) Expire(t Ticket) bool {
	if t == 0 || t != a.pending {
		return false
	}
	a.pending = 0
	a.opened = [2]bool{}
	return true
}

// Restart forgets every side but source, after a pick invalidated the other.
func (a *ActiveController) Restart(source Side) {
	a.opened = [2]bool{}
	a.opened[source] = true
}
