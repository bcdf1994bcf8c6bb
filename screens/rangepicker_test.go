package screens

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/core"
	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
)

var screenNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func screenEngine() *dateengine.TimeEngine {
	return dateengine.NewTimeEngine(
		dateengine.WithLocation(time.UTC),
		dateengine.WithClock(func() time.Time { return screenNow }),
	)
}

func sday(d int) dateengine.Value {
	return dateengine.Of(time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC))
}

func newScreen(t *testing.T, cfg rangepick.Config) *RangePickerScreen {
	t.Helper()
	if cfg.Engine == nil {
		cfg.Engine = screenEngine()
	}
	p, err := rangepick.New(cfg)
	require.NoError(t, err)
	s := NewRangePickerScreen("Range", p, core.NewKeyRegistry(core.DefaultKeyBindings()), 0)
	require.NotNil(t, s)
	return s
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// press feeds msgs in order and reports whether the last one popped the
// screen.
func press(t *testing.T, s *RangePickerScreen, msgs ...tea.KeyMsg) bool {
	t.Helper()
	pop := false
	for i, msg := range msgs {
		require.False(t, pop, "screen popped before key %d", i)
		_, _, pop = s.Update(msg)
	}
	return pop
}

func sameDays(t *testing.T, e dateengine.Engine, want, got rangepick.Range) {
	t.Helper()
	for _, side := range []rangepick.Side{rangepick.SideStart, rangepick.SideEnd} {
		require.True(t, e.IsSame(want[side], got[side], dateengine.Day), "%s = %s, want %s", side, got[side], want[side])
	}
}

func TestRangeScreenPicksBothSidesWithCursor(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	require.Equal(t, rangepick.OpenStart, p.State())

	popped := press(t, s, key(tea.KeyRight), key(tea.KeyEnter))
	require.False(t, popped)
	require.Equal(t, rangepick.OpenEnd, p.State())

	popped = press(t, s, key(tea.KeyDown), key(tea.KeyEnter))
	require.True(t, popped)
	sameDays(t, p.Engine(), rangepick.NewRange(sday(16), sday(23)), p.Value())
}

func TestRangeScreenCursorHovers(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	press(t, s, key(tea.KeyEnter))
	press(t, s, key(tea.KeyRight), key(tea.KeyRight))

	hover, ok := p.Hover()
	require.True(t, ok)
	sameDays(t, p.Engine(), rangepick.NewRange(sday(15), sday(17)), hover)
	require.False(t, p.Working()[rangepick.SideEnd].Valid(), "hover must not touch the draft")
}

func TestRangeScreenEscCancels(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	require.True(t, press(t, s, key(tea.KeyRight), key(tea.KeyEsc)))
	require.True(t, p.Value().IsNull())
	require.False(t, p.IsOpen())
}

func TestRangeScreenCleanupTicket(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	press(t, s, key(tea.KeyEsc))

	ticket, ok := p.PendingCleanup()
	require.True(t, ok)
	s.Update(CleanupMsg{Ticket: ticket})
	_, ok = p.PendingCleanup()
	require.False(t, ok)
}

func TestRangeScreenTypedEndDate(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	press(t, s, key(tea.KeyRight), key(tea.KeyEnter), runes("i"))
	require.Equal(t, ScopeRangeInput, s.Scope())

	press(t, s, runes("2024-03-20"))
	require.True(t, p.Typing(rangepick.SideEnd))
	require.True(t, press(t, s, key(tea.KeyEnter)))
	sameDays(t, p.Engine(), rangepick.NewRange(sday(16), sday(20)), p.Value())
}

func TestRangeScreenInputEscKeepsPickerOpen(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	press(t, s, runes("i"), runes("garbage"), key(tea.KeyEsc))
	require.Equal(t, ScopeRangePanel, s.Scope())
	require.True(t, p.IsOpen())
	require.False(t, p.Typing(rangepick.SideStart))
}

func TestRangeScreenRefusesDisabledDate(t *testing.T) {
	s := newScreen(t, rangepick.Config{
		DisabledDate: func(v dateengine.Value, _ rangepick.Side) bool {
			wd := v.Time().Weekday()
			return wd == time.Saturday || wd == time.Sunday
		},
	})
	p := s.Picker()
	// 2024-03-16 is a Saturday.
	press(t, s, key(tea.KeyRight), key(tea.KeyEnter))
	require.Equal(t, rangepick.OpenStart, p.State())
	require.False(t, p.Working()[rangepick.SideStart].Valid())
}

func TestRangeScreenPresets(t *testing.T) {
	preset := rangepick.NewRange(sday(1), sday(7))
	s := newScreen(t, rangepick.Config{
		Shortcuts: []rangepick.Shortcut{
			{Label: "First week", Value: preset},
			{Label: "Today", Supplier: func() rangepick.Range { return rangepick.NewRange(sday(15), sday(15)) }},
		},
	})
	p := s.Picker()
	press(t, s, runes("p"))
	require.Equal(t, ScopeRangePresets, s.Scope())
	text, ok := p.HoverText(rangepick.SideStart)
	require.True(t, ok)
	require.Equal(t, "2024-03-01", text)

	require.True(t, press(t, s, key(tea.KeyEnter)))
	sameDays(t, p.Engine(), preset, p.Value())
}

func TestRangeScreenDrillsUpAndDown(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	p := s.Picker()
	press(t, s, runes("u"))
	require.Equal(t, rangepick.ModeMonth, p.Modes()[rangepick.SideStart])
	require.False(t, p.Double())

	press(t, s, key(tea.KeyRight), key(tea.KeyEnter))
	require.Equal(t, rangepick.ModeDate, p.Modes()[rangepick.SideStart])
	require.Equal(t, time.April, p.View(rangepick.SideStart).Time().Month())
}

func TestRangeScreenConfirmPicker(t *testing.T) {
	s := newScreen(t, rangepick.Config{ShowTime: true})
	p := s.Picker()
	press(t, s, key(tea.KeyEnter))
	require.Equal(t, rangepick.OpenStart, p.State(), "picking on a confirm picker only drafts")
	require.True(t, p.Working()[rangepick.SideStart].Valid())

	press(t, s, runes("o"))
	require.Equal(t, rangepick.OpenEnd, p.State())
}

func TestRangeScreenTimeColumn(t *testing.T) {
	s := newScreen(t, rangepick.Config{ShowTime: true})
	before := s.Cursor().Time()
	press(t, s, runes("t"), key(tea.KeyRight), key(tea.KeyDown))
	after := s.Cursor().Time()
	require.Equal(t, before.Day(), after.Day())
	require.Equal(t, (before.Minute()+1)%60, after.Minute())
}

func TestRangeScreenView(t *testing.T) {
	s := newScreen(t, rangepick.Config{AllowClear: true})
	out := ansi.Strip(s.View(80, 24))
	require.True(t, strings.Contains(out, "Mar 2024"), out)
	require.True(t, strings.Contains(out, "Apr 2024"), out)
	require.True(t, strings.Contains(out, "Start date"), out)
	require.True(t, strings.Contains(out, "[Clear]"), out)
}

func TestRangeScreenNilWhenBothSidesDisabled(t *testing.T) {
	p, err := rangepick.New(rangepick.Config{
		Engine:   screenEngine(),
		Disabled: [2]bool{true, true},
		Value:    &rangepick.Range{sday(1), sday(2)},
	})
	require.NoError(t, err)
	require.Nil(t, NewRangePickerScreen("Range", p, core.NewKeyRegistry(core.DefaultKeyBindings()), 0))
}

func TestRangeScreenOnCloseSeesCommittedValue(t *testing.T) {
	s := newScreen(t, rangepick.Config{})
	var got rangepick.Range
	calls := 0
	s.OnClose(func(r rangepick.Range) tea.Cmd {
		calls++
		got = r
		return nil
	})
	press(t, s, key(tea.KeyEnter), key(tea.KeyRight))
	require.Equal(t, 0, calls)
	require.True(t, press(t, s, key(tea.KeyEnter)))
	require.Equal(t, 1, calls)
	sameDays(t, s.Picker().Engine(), rangepick.NewRange(sday(15), sday(16)), got)
}
