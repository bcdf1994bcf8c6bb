package rangepick

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/internal/dateengine"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *dateengine.TimeEngine {
	return dateengine.NewTimeEngine(
		dateengine.WithLocation(time.UTC),
		dateengine.WithClock(func() time.Time { return testNow }),
	)
}

func day(y int, m time.Month, d int) dateengine.Value {
	return dateengine.Of(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func clock(h, m int) dateengine.Value {
	return dateengine.Of(time.Date(2024, time.March, 15, h, m, 0, 0, time.UTC))
}

func rng(a, b dateengine.Value) *Range {
	r := NewRange(a, b)
	return &r
}

func newTestPicker(t *testing.T, cfg Config) *Picker {
	t.Helper()
	if cfg.Engine == nil {
		cfg.Engine = testEngine()
	}
	p, err := New(cfg)
	require.NoError(t, err)
	return p
}

// events records callbacks in the order they fire.
type events struct {
	log     []string
	changes []Range
	drafts  []Range
}

func (e *events) wire(cfg *Config) {
	cfg.OnChange = func(r Range, _ [2]string) {
		e.log = append(e.log, "change")
		e.changes = append(e.changes, r)
	}
	cfg.OnCalendarChange = func(r Range, _ [2]string, _ Side) {
		e.log = append(e.log, "calendar")
		e.drafts = append(e.drafts, r)
	}
}

func requireRange(t *testing.T, e dateengine.Engine, want, got Range) {
	t.Helper()
	require.True(t, EqualRange(e, want, got), "got %s, want %s", got, want)
}
