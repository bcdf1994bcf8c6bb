package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/rangepick/core"
)

type choiceMsg struct{ id string }

func modeItems() []PickerItem {
	return []PickerItem{
		{ID: "date", Label: "Date"},
		{ID: "week", Label: "Week"},
		{ID: "month", Label: "Month"},
	}
}

func TestPickerScreenStartsOnSelected(t *testing.T) {
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	s := NewPickerScreen("Mode", keys, modeItems(), "month", func(it PickerItem) tea.Msg { return choiceMsg{it.ID} })
	it, ok := s.Selected()
	require.True(t, ok)
	require.Equal(t, "month", it.ID)

	_, cmd, pop := s.Update(key(tea.KeyEnter))
	require.True(t, pop)
	require.NotNil(t, cmd)
	require.Equal(t, choiceMsg{"month"}, cmd())
}

func TestPickerScreenFilters(t *testing.T) {
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	s := NewPickerScreen("Mode", keys, modeItems(), "", nil)
	s.Update(runes("wk"))
	it, ok := s.Selected()
	require.True(t, ok)
	require.Equal(t, "week", it.ID)

	_, cmd, pop := s.Update(key(tea.KeyEsc))
	require.True(t, pop)
	require.Nil(t, cmd)
}

func TestCommandScreenDisabledReportsReason(t *testing.T) {
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	search := func(string) []CommandOption {
		return []CommandOption{{ID: "save", Name: "Save preset", Disabled: true, Reason: "nothing committed"}}
	}
	s := NewCommandScreen("tab:range", keys, search, func(id string) tea.Msg { return core.CommandExecuteMsg{CommandID: id} })
	_, cmd, pop := s.Update(key(tea.KeyEnter))
	require.True(t, pop)
	require.Equal(t, core.StatusMsg{Text: "nothing committed"}, cmd())
}

func TestCommandScreenTypingQStaysOpen(t *testing.T) {
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	s := NewCommandScreen("tab:range", keys, func(string) []CommandOption { return nil }, nil)
	_, _, pop := s.Update(runes("q"))
	require.False(t, pop)
}
