package dateengine

import (
	"time"
)

// TimeEngine implements Engine on top of time.Time.
type TimeEngine struct {
	loc       *time.Location
	weekStart time.Weekday
	locale    *Locale
	clock     func() time.Time
}

type Option func(*TimeEngine)

// WithLocation sets the zone used for day boundaries and parsing.
func WithLocation(loc *time.Location) Option {
	return func(e *TimeEngine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithWeekStart sets the first day of a week. The default is Monday.
func WithWeekStart(d time.Weekday) Option {
	return func(e *TimeEngine) {
		e.weekStart = d
	}
}

func WithLocale(l *Locale) Option {
	return func(e *TimeEngine) {
		if l != nil {
			e.locale = l
		}
	}
}

// WithClock replaces time.Now. Tests use it to pin "now".
func WithClock(clock func() time.Time) Option {
	return func(e *TimeEngine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func NewTimeEngine(opts ...Option) *TimeEngine {
	e := &TimeEngine{
		loc:       time.Local,
		weekStart: time.Monday,
		locale:    English,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *TimeEngine) Now() Value {
	return Of(e.clock().In(e.loc))
}

func (e *TimeEngine) WeekStart() time.Weekday {
	return e.weekStart
}

func (e *TimeEngine) Locale() *Locale {
	return e.locale
}

func (e *TimeEngine) Location() *time.Location {
	return e.loc
}

func (e *TimeEngine) IsAfter(a, b Value) bool {
	if !a.valid || !b.valid {
		return false
	}
	return a.t.After(b.t)
}

func (e *TimeEngine) Equal(a, b Value) bool {
	if !a.valid || !b.valid {
		return a.valid == b.valid
	}
	return a.t.Equal(b.t)
}

func (e *TimeEngine) IsSame(a, b Value, unit Unit) bool {
	if !a.valid || !b.valid {
		return false
	}
	return e.StartOf(a, unit).t.Equal(e.StartOf(b, unit).t)
}

func (e *TimeEngine) StartOf(v Value, unit Unit) Value {
	if !v.valid {
		return v
	}
	t := v.t.In(e.loc)
	y, m, d := t.Date()
	switch unit {
	case Second:
		return Of(time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, e.loc))
	case Minute:
		return Of(time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, e.loc))
	case Hour:
		return Of(time.Date(y, m, d, t.Hour(), 0, 0, 0, e.loc))
	case Day:
		return Of(time.Date(y, m, d, 0, 0, 0, 0, e.loc))
	case Week:
		back := (int(t.Weekday()) - int(e.weekStart) + 7) % 7
		return Of(time.Date(y, m, d-back, 0, 0, 0, 0, e.loc))
	case Month:
		return Of(time.Date(y, m, 1, 0, 0, 0, 0, e.loc))
	case Quarter:
		first := time.Month((int(m)-1)/3*3 + 1)
		return Of(time.Date(y, first, 1, 0, 0, 0, 0, e.loc))
	case Year:
		return Of(time.Date(y, time.January, 1, 0, 0, 0, 0, e.loc))
	case Decade:
		return Of(time.Date(y-y%10, time.January, 1, 0, 0, 0, 0, e.loc))
	default:
		return v
	}
}

func (e *TimeEngine) Add(v Value, unit Unit, delta int) Value {
	if !v.valid || delta == 0 {
		return v
	}
	t := v.t
	switch unit {
	case Second:
		return Of(t.Add(time.Duration(delta) * time.Second))
	case Minute:
		return Of(t.Add(time.Duration(delta) * time.Minute))
	case Hour:
		return Of(t.Add(time.Duration(delta) * time.Hour))
	case Day:
		return Of(t.AddDate(0, 0, delta))
	case Week:
		return Of(t.AddDate(0, 0, 7*delta))
	case Month:
		return Of(addMonths(t, delta))
	case Quarter:
		return Of(addMonths(t, 3*delta))
	case Year:
		return Of(addMonths(t, 12*delta))
	case Decade:
		return Of(addMonths(t, 120*delta))
	default:
		return v
	}
}

// addMonths moves t by n calendar months and clamps the day to the target month,
// so Jan 31 + 1 month is the last day of February rather than early March.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// weekNumber returns the week-year and week number of t, counting weeks from the
// engine's week start. With a Monday start this is the ISO-8601 week.
func (e *TimeEngine) weekNumber(t time.Time) (int, int) {
	return t.AddDate(0, 0, e.weekShift()).ISOWeek()
}

func (e *TimeEngine) weekShift() int {
	return (int(time.Monday) - int(e.weekStart) + 7) % 7
}

// firstDayOfWeek is the inverse of weekNumber.
func (e *TimeEngine) firstDayOfWeek(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, e.loc)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7-e.weekShift())
}
