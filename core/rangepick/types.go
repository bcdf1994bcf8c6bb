// Package rangepick is the state machine behind a two-sided range picker.
//
// A Picker owns the committed and working pair values, the per-side view pages,
// the hover preview and which side is open. It never renders anything: the
// presentation layer asks for Panels snapshots and feeds user events back in.
// Everything runs on the caller's goroutine; nothing here locks.
package rangepick

import (
	"fmt"
	"strings"

	"github.com/jask/rangepick/internal/dateengine"
)

type Side int

const (
	SideStart Side = iota
	SideEnd
)

func (s Side) Other() Side {
	if s == SideStart {
		return SideEnd
	}
	return SideStart
}

func (s Side) String() string {
	if s == SideEnd {
		return "end"
	}
	return "start"
}

// Mode is the granularity of a picker or of a single panel. ModeDecade only
// appears as a panel mode while drilling up from a year page.
type Mode int

const (
	ModeDate Mode = iota
	ModeWeek
	ModeMonth
	ModeQuarter
	ModeYear
	ModeTime
	ModeDecade
)

var modeNames = map[Mode]string{
	ModeDate:    "date",
	ModeWeek:    "week",
	ModeMonth:   "month",
	ModeQuarter: "quarter",
	ModeYear:    "year",
	ModeTime:    "time",
	ModeDecade:  "decade",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a configuration string to a picker mode. Decade is not a valid
// picker mode.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return ModeDate, nil
	}
	for m, name := range modeNames {
		if name == key && m != ModeDecade {
			return m, nil
		}
	}
	return ModeDate, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Range is a [start, end] pair. A Range with both slots empty is the null range.
type Range [2]dateengine.Value

func NewRange(start, end dateengine.Value) Range {
	return Range{start, end}
}

func (r Range) IsNull() bool {
	return !r[SideStart].Valid() && !r[SideEnd].Valid()
}

func (r Range) Complete() bool {
	return r[SideStart].Valid() && r[SideEnd].Valid()
}

func (r Range) Get(s Side) dateengine.Value {
	return r[s]
}

// With returns a copy of r with slot s replaced.
func (r Range) With(s Side, v dateengine.Value) Range {
	r[s] = v
	return r
}

func (r Range) Swap() Range {
	return Range{r[SideEnd], r[SideStart]}
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", r[SideStart], r[SideEnd])
}

// EqualRange compares two ranges slot by slot through the engine.
func EqualRange(e dateengine.Engine, a, b Range) bool {
	return e.Equal(a[SideStart], b[SideStart]) && e.Equal(a[SideEnd], b[SideEnd])
}

type Direction int

const (
	LTR Direction = iota
	RTL
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	}
	return LTR, fmt.Errorf("unknown direction %q", s)
}

// SelectSource says how a panel pick was produced.
type SelectSource int

const (
	SelectMouse SelectSource = iota
	// SelectKey moves the draft without committing, like arrow navigation.
	SelectKey
	// SelectSubmit commits even on pickers that need confirmation.
	SelectSubmit
)

// Position is where a panel sits in the two-panel layout before direction is
// applied.
type Position int

const (
	PanelLeft Position = iota
	PanelRight
)

func (p Position) String() string {
	if p == PanelRight {
		return "right"
	}
	return "left"
}

// DisabledTimes lists time components that may not be chosen.
type DisabledTimes struct {
	Hours   []int
	Minutes []int
	Seconds []int
}

func (d DisabledTimes) rejects(h, m, s int) bool {
	return containsInt(d.Hours, h) || containsInt(d.Minutes, m) || containsInt(d.Seconds, s)
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
