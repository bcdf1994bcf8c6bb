// Package dateengine is the calendar arithmetic the range picker depends on.
//
// The picker never compares or builds instants itself. Everything goes through an
// Engine so the same state machine can run against a fixed clock in tests, a
// different week start, or a different locale.
package dateengine

import "time"

// Value is an instant handed out by an Engine. The zero Value is empty.
type Value struct {
	t     time.Time
	valid bool
}

// Of wraps t as a Value.
func Of(t time.Time) Value {
	return Value{t: t, valid: true}
}

// Valid reports whether v holds an instant.
func (v Value) Valid() bool {
	return v.valid
}

// Time returns the wrapped instant, or the zero time for an empty Value.
func (v Value) Time() time.Time {
	if !v.valid {
		return time.Time{}
	}
	return v.t
}

func (v Value) String() string {
	if !v.valid {
		return "<empty>"
	}
	return v.t.Format(time.RFC3339)
}

// Unit is a calendar unit used for arithmetic and comparison.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
	Decade
)

func (u Unit) String() string {
	switch u {
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case Year:
		return "year"
	case Decade:
		return "decade"
	default:
		return "unknown"
	}
}

// Engine is the date capability injected into the picker.
type Engine interface {
	Now() Value
	IsAfter(a, b Value) bool
	IsSame(a, b Value, unit Unit) bool
	Equal(a, b Value) bool
	Add(v Value, unit Unit, delta int) Value
	StartOf(v Value, unit Unit) Value
	Format(v Value, pattern string) string
	Parse(text string, patterns []string) (Value, error)
	WeekStart() time.Weekday
	Locale() *Locale
}
