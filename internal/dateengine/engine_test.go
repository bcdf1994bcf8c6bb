package dateengine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) Value {
	return Of(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newUTCEngine(opts ...Option) *TimeEngine {
	base := []Option{
		WithLocation(time.UTC),
		WithClock(func() time.Time { return time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC) }),
	}
	return NewTimeEngine(append(base, opts...)...)
}

func TestEmptyValues(t *testing.T) {
	e := newUTCEngine()
	var empty Value

	assert.False(t, empty.Valid())
	assert.True(t, empty.Time().IsZero())
	assert.False(t, e.IsAfter(empty, day(2024, 1, 1)))
	assert.False(t, e.IsAfter(day(2024, 1, 1), empty))
	assert.True(t, e.Equal(empty, Value{}))
	assert.False(t, e.Equal(empty, day(2024, 1, 1)))
	assert.False(t, e.IsSame(empty, empty, Day))
	assert.Equal(t, "", e.Format(empty, "2006"))
	assert.False(t, e.Add(empty, Day, 1).Valid())
}

func TestNowUsesClock(t *testing.T) {
	e := newUTCEngine()
	assert.Equal(t, time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC), e.Now().Time())
}

func TestAddUsesCalendarArithmetic(t *testing.T) {
	e := newUTCEngine()

	cases := []struct {
		name  string
		from  Value
		unit  Unit
		delta int
		want  Value
	}{
		{"month clamps to february", day(2024, 1, 31), Month, 1, day(2024, 2, 29)},
		{"month backwards", day(2024, 3, 31), Month, -1, day(2024, 2, 29)},
		{"quarter", day(2024, 11, 30), Quarter, 1, day(2025, 2, 28)},
		{"year from leap day", day(2024, 2, 29), Year, 1, day(2025, 2, 28)},
		{"week", day(2024, 3, 4), Week, 1, day(2024, 3, 11)},
		{"decade", day(2024, 6, 1), Decade, -1, day(2014, 6, 1)},
		{"day across month", day(2024, 2, 28), Day, 2, day(2024, 3, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Add(tc.from, tc.unit, tc.delta)
			assert.True(t, e.Equal(tc.want, got), "got %s want %s", got, tc.want)
		})
	}
}

func TestIsSameRespectsWeekStart(t *testing.T) {
	tue := day(2024, 3, 5)
	sun := day(2024, 3, 10)

	iso := newUTCEngine()
	assert.True(t, iso.IsSame(tue, sun, Week), "ISO week 10 runs Mon 4th to Sun 10th")

	sundayFirst := newUTCEngine(WithWeekStart(time.Sunday))
	assert.False(t, sundayFirst.IsSame(tue, sun, Week), "Sunday the 10th opens a new week")
}

func TestStartOfUnits(t *testing.T) {
	e := newUTCEngine()
	v := Of(time.Date(2024, time.August, 17, 13, 45, 12, 99, time.UTC))

	assert.Equal(t, time.Date(2024, 8, 17, 13, 45, 12, 0, time.UTC), e.StartOf(v, Second).Time())
	assert.Equal(t, time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC), e.StartOf(v, Day).Time())
	assert.Equal(t, time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), e.StartOf(v, Week).Time())
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), e.StartOf(v, Quarter).Time())
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), e.StartOf(v, Decade).Time())
}

func TestFormatExtendedTokens(t *testing.T) {
	e := newUTCEngine()

	assert.Equal(t, "2024-W10", e.Format(day(2024, 3, 10), "{GGGG}-W{WW}"))
	assert.Equal(t, "2025-W01", e.Format(day(2024, 12, 30), "{GGGG}-W{WW}"))
	assert.Equal(t, "2024-Q3", e.Format(day(2024, 8, 1), "2006-Q{Q}"))
	assert.Equal(t, "Mar 2024", e.Format(day(2024, 3, 1), "{MMM} 2006"))
	assert.Equal(t, "2024-03-10", e.Format(day(2024, 3, 10), "2006-01-02"))

	de := newUTCEngine(WithLocale(German))
	assert.Equal(t, "März 2024", de.Format(day(2024, 3, 1), "{MMMM} 2006"))
}

func TestParsePatterns(t *testing.T) {
	e := newUTCEngine()

	v, err := e.Parse("2024-W10", []string{"{GGGG}-W{WW}"})
	require.NoError(t, err)
	assert.True(t, e.Equal(day(2024, 3, 4), v))

	v, err = e.Parse("2024-Q2", []string{"2006-Q{Q}"})
	require.NoError(t, err)
	assert.True(t, e.Equal(day(2024, 4, 1), v))

	v, err = e.Parse(" 2024-03-10 ", []string{"2006/01/02", "2006-01-02"})
	require.NoError(t, err)
	assert.True(t, e.Equal(day(2024, 3, 10), v))

	_, err = e.Parse("2024-W54", []string{"{GGGG}-W{WW}"})
	assert.True(t, errors.Is(err, ErrUnparseable))

	_, err = e.Parse("", []string{"2006"})
	assert.True(t, errors.Is(err, ErrUnparseable))
}

func TestParseSundayWeeks(t *testing.T) {
	e := newUTCEngine(WithWeekStart(time.Sunday))

	v, err := e.Parse("2024-W10", []string{"{GGGG}-W{WW}"})
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, v.Time().Weekday())
	assert.Equal(t, "2024-W10", e.Format(v, "{GGGG}-W{WW}"))
}

func TestParseNormalizesMonthNames(t *testing.T) {
	e := newUTCEngine()

	v, err := e.Parse("Mrch 5 2024", []string{"January 2 2006"})
	require.NoError(t, err)
	assert.True(t, e.Equal(day(2024, 3, 5), v))

	de := newUTCEngine(WithLocale(German))
	v, err = de.Parse("5 März 2024", []string{"2 January 2006"})
	require.NoError(t, err)
	assert.True(t, de.Equal(day(2024, 3, 5), v))

	v, err = de.Parse("Okt 2024", []string{"{MMM} 2006"})
	require.NoError(t, err)
	assert.True(t, de.Equal(day(2024, 10, 1), v))
}

func TestNormalizeMonthsLeavesOtherWords(t *testing.T) {
	assert.Equal(t, "Mon 4 March", English.NormalizeMonths("Mon 4 Mrch"))
	assert.Equal(t, "10:00 PM", English.NormalizeMonths("10:00 PM"))
	assert.Equal(t, "banana", English.NormalizeMonths("banana"))
}

func TestLookupLocale(t *testing.T) {
	assert.Same(t, German, LookupLocale("de-AT"))
	assert.Same(t, Chinese, LookupLocale("zh-CN"))
	assert.Same(t, English, LookupLocale("en-GB"))
	assert.Same(t, English, LookupLocale("not a tag"))
}

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}, English.WeekdayHeaders(time.Monday))
	assert.Equal(t, "Su", English.WeekdayHeaders(time.Sunday)[0])
}
