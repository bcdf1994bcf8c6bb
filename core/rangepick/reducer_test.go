package rangepick

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/internal/dateengine"
)

func TestReducerClearsOppositeSideAcrossDates(t *testing.T) {
	e := testEngine()
	r := NewReducer(e, ModeDate, false, [2]bool{}, [2]bool{})

	tr := r.OnPick(NewRange(dateengine.Value{}, day(2024, 3, 5)), day(2024, 3, 10), SideStart)

	assert.True(t, tr.Invalidated)
	requireRange(t, e, NewRange(day(2024, 3, 10), dateengine.Value{}), tr.Values)
	assert.False(t, tr.Eligible)
}

func TestReducerSwapsWithinSameWeek(t *testing.T) {
	e := testEngine()
	r := NewReducer(e, ModeWeek, false, [2]bool{}, [2]bool{})

	tr := r.OnPick(NewRange(dateengine.Value{}, day(2024, 3, 5)), day(2024, 3, 10), SideStart)

	assert.False(t, tr.Invalidated)
	requireRange(t, e, NewRange(day(2024, 3, 5), day(2024, 3, 10)), tr.Values)
	assert.True(t, tr.Eligible)
}

func TestReducerSwapsWithinSameDateAndQuarter(t *testing.T) {
	e := testEngine()

	date := NewReducer(e, ModeDate, false, [2]bool{}, [2]bool{})
	morning := dateengine.Of(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	evening := dateengine.Of(time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC))
	got, invalidated := date.Normalize(NewRange(evening, morning), SideStart)
	assert.False(t, invalidated)
	requireRange(t, e, NewRange(morning, evening), got)

	quarter := NewReducer(e, ModeQuarter, false, [2]bool{}, [2]bool{})
	got, invalidated = quarter.Normalize(NewRange(day(2024, 5, 1), day(2024, 4, 1)), SideEnd)
	assert.False(t, invalidated)
	requireRange(t, e, NewRange(day(2024, 4, 1), day(2024, 5, 1)), got)

	got, invalidated = quarter.Normalize(NewRange(day(2024, 7, 1), day(2024, 4, 1)), SideEnd)
	assert.True(t, invalidated)
	requireRange(t, e, NewRange(dateengine.Value{}, day(2024, 4, 1)), got)
}

func TestReducerKeepsTimeOrderUnlessEnforced(t *testing.T) {
	e := testEngine()
	pair := NewRange(clock(10, 0), clock(8, 0))

	loose := NewReducer(e, ModeTime, false, [2]bool{}, [2]bool{})
	got, invalidated := loose.Normalize(pair, SideEnd)
	assert.False(t, invalidated)
	requireRange(t, e, pair, got)

	strict := NewReducer(e, ModeTime, true, [2]bool{}, [2]bool{})
	got, _ = strict.Normalize(pair, SideEnd)
	requireRange(t, e, pair.Swap(), got)
}

func TestReducerEligibility(t *testing.T) {
	e := testEngine()
	v := day(2024, 3, 1)
	cases := []struct {
		name       string
		disabled   [2]bool
		allowEmpty [2]bool
		values     Range
		want       bool
	}{
		{"null", [2]bool{}, [2]bool{}, Range{}, true},
		{"complete", [2]bool{}, [2]bool{}, NewRange(v, v), true},
		{"half", [2]bool{}, [2]bool{}, NewRange(v, dateengine.Value{}), false},
		{"end may be empty", [2]bool{}, [2]bool{false, true}, NewRange(v, dateengine.Value{}), true},
		{"empty side disabled", [2]bool{true, false}, [2]bool{}, NewRange(dateengine.Value{}, v), true},
		{"empty end disabled", [2]bool{false, true}, [2]bool{}, NewRange(v, dateengine.Value{}), true},
		{"opposite side disabled", [2]bool{true, false}, [2]bool{}, NewRange(v, dateengine.Value{}), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReducer(e, ModeDate, false, tc.disabled, tc.allowEmpty)
			assert.Equal(t, tc.want, r.Eligible(tc.values))
		})
	}
}

func TestReducerNextOpen(t *testing.T) {
	e := testEngine()
	r := NewReducer(e, ModeDate, false, [2]bool{}, [2]bool{})
	v := day(2024, 3, 1)

	next, ok := r.NextOpen(NewRange(v, dateengine.Value{}), SideStart, SideStart, [2]bool{true, false})
	require.True(t, ok)
	assert.Equal(t, SideEnd, next)

	// The end was opened and holds a value: close instead.
	_, ok = r.NextOpen(NewRange(v, v), SideStart, SideStart, [2]bool{true, true})
	assert.False(t, ok)

	// Opened before but still empty: go back to it.
	_, ok = r.NextOpen(NewRange(v, dateengine.Value{}), SideStart, SideStart, [2]bool{true, true})
	assert.True(t, ok)

	// Nothing picked on the source.
	_, ok = r.NextOpen(Range{}, SideStart, SideStart, [2]bool{true, false})
	assert.False(t, ok)

	disabledEnd := NewReducer(e, ModeDate, false, [2]bool{false, true}, [2]bool{})
	_, ok = disabledEnd.NextOpen(NewRange(v, dateengine.Value{}), SideStart, SideStart, [2]bool{true, false})
	assert.False(t, ok)
}

func TestStoreFillsDisabledSideOnCommit(t *testing.T) {
	e := testEngine()
	v := day(2024, 3, 20)
	s := NewStore(e, false, Range{}, [2]bool{true, false}, [2]bool{})

	got, changed := s.Commit(NewRange(dateengine.Value{}, v))

	assert.True(t, changed)
	requireRange(t, e, NewRange(dateengine.Of(testNow), v), got)
	requireRange(t, e, got, s.Read())
}

func TestStoreKeepsAllowedEmptySide(t *testing.T) {
	e := testEngine()
	v := day(2024, 3, 20)
	s := NewStore(e, false, Range{}, [2]bool{true, false}, [2]bool{true, false})

	got, _ := s.Commit(NewRange(dateengine.Value{}, v))

	assert.False(t, got[SideStart].Valid())
}

func TestStoreCommitIsIdempotent(t *testing.T) {
	e := testEngine()
	s := NewStore(e, false, Range{}, [2]bool{}, [2]bool{})
	pair := NewRange(day(2024, 1, 1), day(2024, 1, 10))

	_, first := s.Commit(pair)
	_, second := s.Commit(pair)

	assert.True(t, first)
	assert.False(t, second)
}

func TestControlledStoreWaitsForSeed(t *testing.T) {
	e := testEngine()
	s := NewStore(e, true, Range{}, [2]bool{}, [2]bool{})
	pair := NewRange(day(2024, 1, 1), day(2024, 1, 10))

	_, changed := s.Commit(pair)
	assert.True(t, changed)
	assert.True(t, s.Read().IsNull())
	requireRange(t, e, pair, s.Working())

	s.Seed(pair)
	requireRange(t, e, pair, s.Read())
}

func TestPolicyRejectsOutOfOrderCandidates(t *testing.T) {
	e := testEngine()
	working := NewRange(day(2024, 3, 5), day(2024, 3, 20))
	p := NewPolicy(Config{Picker: ModeDate}, e)

	assert.True(t, p.Disabled(SideStart, day(2024, 3, 21), working))
	assert.False(t, p.Disabled(SideStart, day(2024, 3, 20), working))
	assert.True(t, p.Disabled(SideEnd, day(2024, 3, 4), working))
	assert.False(t, p.Disabled(SideEnd, day(2024, 3, 6), working))

	week := NewPolicy(Config{Picker: ModeWeek}, e)
	assert.False(t, week.Disabled(SideStart, day(2024, 3, 10), NewRange(dateengine.Value{}, day(2024, 3, 5))))
	assert.True(t, week.Disabled(SideStart, day(2024, 3, 11), NewRange(dateengine.Value{}, day(2024, 3, 5))))
}

func TestPolicyComposesExternalPredicates(t *testing.T) {
	e := testEngine()
	weekends := func(v dateengine.Value, _ Side) bool {
		wd := v.Time().Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}
	noonOnly := func(_ dateengine.Value, side Side) DisabledTimes {
		if side == SideEnd {
			return DisabledTimes{Hours: []int{0, 1, 2}}
		}
		return DisabledTimes{}
	}
	p := NewPolicy(Config{Picker: ModeDate, ShowTime: true, DisabledDate: weekends, DisabledTime: noonOnly}, e)

	assert.True(t, p.Disabled(SideStart, day(2024, 3, 9), Range{}))
	assert.False(t, p.Disabled(SideStart, day(2024, 3, 8), Range{}))
	assert.True(t, p.Disabled(SideEnd, day(2024, 3, 8), Range{}))
	assert.False(t, p.DateDisabled(SideEnd, day(2024, 3, 8), Range{}))

	tp := NewPolicy(Config{Picker: ModeTime}, e)
	assert.False(t, tp.Disabled(SideEnd, clock(8, 0), NewRange(clock(10, 0), dateengine.Value{})))
}

func TestViewCoordinatorDerivesFromRange(t *testing.T) {
	e := testEngine()
	c := NewViewCoordinator(e, ModeDate, Range{})

	near := NewRange(day(2024, 1, 15), day(2024, 2, 3))
	assert.True(t, e.Equal(day(2024, 1, 15), c.Get(SideEnd, near)))

	far := NewRange(day(2024, 1, 15), day(2024, 6, 20))
	assert.True(t, e.Equal(day(2024, 5, 20), c.Get(SideEnd, far)))
	assert.True(t, e.Equal(day(2024, 1, 15), c.Get(SideStart, far)))

	assert.True(t, e.Equal(dateengine.Of(testNow), c.Get(SideStart, Range{})))
}

func TestViewCoordinatorMonthPages(t *testing.T) {
	e := testEngine()
	c := NewViewCoordinator(e, ModeMonth, Range{})

	c.Set(SideStart, day(2024, 3, 1), Range{})
	left, right := c.Pages(SideStart, Range{})
	assert.Equal(t, "2024-03", e.Format(left, "2006-01"))
	assert.Equal(t, "2025-03", e.Format(right, "2006-01"))

	c.SetRight(SideStart, day(2024, 9, 1), Range{})
	left, right = c.Pages(SideStart, Range{})
	assert.Equal(t, "2023-09", e.Format(left, "2006-01"))
	assert.Equal(t, "2024-09", e.Format(right, "2006-01"))
}

func TestViewCoordinatorSetMovesEmptyOtherSide(t *testing.T) {
	e := testEngine()
	c := NewViewCoordinator(e, ModeDate, Range{})
	values := NewRange(day(2024, 1, 1), dateengine.Value{})

	c.Set(SideStart, day(2024, 7, 1), values)
	assert.True(t, e.Equal(day(2024, 7, 1), c.Get(SideEnd, values)))

	values = NewRange(day(2024, 1, 1), day(2024, 1, 5))
	c.Set(SideEnd, day(2024, 10, 1), values)
	assert.True(t, e.Equal(day(2024, 7, 1), c.Get(SideStart, values)))
}

func TestViewCoordinatorDefaultsWinUntilSet(t *testing.T) {
	e := testEngine()
	c := NewViewCoordinator(e, ModeDate, NewRange(day(2023, 1, 1), dateengine.Value{}))
	values := NewRange(day(2024, 1, 1), day(2024, 1, 5))

	assert.True(t, e.Equal(day(2023, 1, 1), c.Get(SideStart, values)))
	c.Set(SideStart, day(2024, 5, 1), values)
	assert.True(t, e.Equal(day(2024, 5, 1), c.Get(SideStart, values)))
}

func TestNormalizeDisabled(t *testing.T) {
	cases := []struct {
		in      any
		want    [2]bool
		wantErr bool
	}{
		{nil, [2]bool{}, false},
		{true, [2]bool{true, true}, false},
		{[]any{true, false}, [2]bool{true, false}, false},
		{[]bool{false, true}, [2]bool{false, true}, false},
		{"end", [2]bool{false, true}, false},
		{[]any{true}, [2]bool{}, true},
		{[]any{"yes", false}, [2]bool{}, true},
		{3, [2]bool{}, true},
	}
	for _, tc := range cases {
		got, err := NormalizeDisabled(tc.in)
		if tc.wantErr {
			assert.True(t, errors.Is(err, ErrDisabledShape), "input %v", tc.in)
			continue
		}
		require.NoError(t, err, "input %v", tc.in)
		assert.Equal(t, tc.want, got, "input %v", tc.in)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Week ")
	require.NoError(t, err)
	assert.Equal(t, ModeWeek, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDate, m)

	_, err = ParseMode("decade")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestModeDrilling(t *testing.T) {
	up, ok := ParentMode(ModeDate)
	assert.True(t, ok)
	assert.Equal(t, ModeMonth, up)

	_, ok = ParentMode(ModeDecade)
	assert.False(t, ok)

	down, ok := ChildMode(ModeYear, ModeQuarter)
	assert.True(t, ok)
	assert.Equal(t, ModeQuarter, down)

	down, ok = ChildMode(ModeMonth, ModeWeek)
	assert.True(t, ok)
	assert.Equal(t, ModeWeek, down)

	_, ok = ChildMode(ModeMonth, ModeMonth)
	assert.False(t, ok)
}
