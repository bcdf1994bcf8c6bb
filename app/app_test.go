package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/core"
	"github.com/jask/rangepick/internal/config"
	"github.com/jask/rangepick/internal/dateengine"
	"github.com/jask/rangepick/internal/presets"
	"github.com/jask/rangepick/screens"
	"github.com/jask/rangepick/tabs"
)

func build(t *testing.T) core.Model {
	t.Helper()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	cfg := config.Config{UI: config.UIConfig{Timezone: "UTC"}}
	e, err := cfg.Engine(dateengine.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	m, err := Build(Deps{Config: cfg, Engine: e})
	require.NoError(t, err)
	return m
}

func TestBuildWiresTabs(t *testing.T) {
	m := build(t)
	assert.Equal(t, tabs.ScopeRange, m.ActiveScope())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m = next.(core.Model)
	assert.Equal(t, tabs.ScopePresets, m.ActiveScope())
}

func TestPaletteOpensWithCommands(t *testing.T) {
	m := build(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	m = next.(core.Model)
	_, ok := m.TopScreen().(*screens.CommandScreen)
	require.True(t, ok)

	results := m.CommandRegistry().Search("", tabs.ScopeRange, &m)
	byID := map[string]core.CommandResult{}
	for _, r := range results {
		byID[r.CommandID] = r
	}
	require.Contains(t, byID, "open-picker")
	assert.True(t, byID["clear-range"].Disabled)
	assert.Equal(t, "no database", byID["save-preset"].Reason)

	presetsScope := m.CommandRegistry().Search("", tabs.ScopePresets, &m)
	for _, r := range presetsScope {
		assert.NotEqual(t, "open-picker", r.CommandID)
	}
}

func TestPaletteCommandOpensPicker(t *testing.T) {
	m := build(t)
	cmd := m.CommandRegistry().Execute("open-picker", &m)
	require.NotNil(t, cmd)
	push, ok := cmd().(core.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*screens.RangePickerScreen)
	assert.True(t, ok)
}

func TestHeaderShowsCommittedRange(t *testing.T) {
	m := build(t)
	assert.NotContains(t, m.View(), "2024-03-01")

	q1 := presets.Preset{Name: "Early March", Kind: presets.KindAbsolute, Start: "2024-03-01", End: "2024-03-07"}
	next, _ := m.Update(tabs.ApplyPresetMsg{Preset: q1})
	m = next.(core.Model)
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(core.Model)
	assert.Contains(t, m.View(), "2024-03-01 ~ 2024-03-07")
}

func TestKeybindingOverrides(t *testing.T) {
	cfg := config.Config{
		UI:          config.UIConfig{Timezone: "UTC"},
		Keybindings: map[string][]string{"open-picker": {"p"}},
	}
	m, err := Build(Deps{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, "p", m.Keys().KeyFor("open-picker", tabs.ScopeRange))
}

func TestBuildRejectsBadPickerConfig(t *testing.T) {
	cfg := config.Config{UI: config.UIConfig{Timezone: "UTC"}, Picker: config.PickerConfig{Mode: "eon"}}
	_, err := Build(Deps{Config: cfg})
	assert.Error(t, err)
}
