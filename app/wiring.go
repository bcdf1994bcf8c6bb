package app

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rangepick/core"
	"github.com/jask/rangepick/internal/config"
	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/dateengine"
	"github.com/jask/rangepick/screens"
	"github.com/jask/rangepick/tabs"
)

const Title = "rangepick"

// Deps is everything the TUI needs from the outside. DB may be nil, in
// which case nothing is persisted.
type Deps struct {
	Config config.Config
	Engine *dateengine.TimeEngine
	DB     *sql.DB
	Logger *slog.Logger
}

// Build wires tabs, keys and commands into a ready model.
func Build(deps Deps) (core.Model, error) {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Engine == nil {
		e, err := deps.Config.Engine()
		if err != nil {
			return core.Model{}, err
		}
		deps.Engine = e
	}
	options, err := deps.Config.PickerOptions(deps.Engine)
	if err != nil {
		return core.Model{}, err
	}

	var presetStore tabs.PresetStore
	var rangeStore tabs.RangeStore
	if deps.DB != nil {
		presetStore = repository.NewPresetRepo(deps.DB)
		rangeStore = repository.NewLastRangeRepo(deps.DB)
	}

	rangeTab, err := tabs.NewRangeTab(tabs.RangeDeps{
		PickerID: "main",
		Engine:   deps.Engine,
		Options:  options,
		TTL:      deps.Config.UI.OpenRecordTTL,
		Presets:  presetStore,
		Ranges:   rangeStore,
		Logger:   deps.Logger.With("tab", "range"),
	})
	if err != nil {
		return core.Model{}, fmt.Errorf("range tab: %w", err)
	}
	presetsTab := tabs.NewPresetsTab(tabs.PresetsDeps{
		Store:    presetStore,
		Engine:   deps.Engine,
		Logger:   deps.Logger.With("tab", "presets"),
		RangeTab: 0,
	})

	keys := core.NewKeyRegistry(core.ApplyActionKeybindings(core.DefaultKeyBindings(), deps.Config.Keybindings))
	for _, clash := range keys.Conflicts() {
		deps.Logger.Warn("key binding conflict", "detail", clash)
	}
	m := core.NewModel(Title, []core.Tab{rangeTab, presetsTab}, keys, core.NewCommandRegistry(Commands(rangeTab, presetStore)))
	m.HeaderInfo = rangeTab.Committed
	m.OpenCommandModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewCommandScreen(scope, model.Keys(), screens.CommandSearch(model, scope), func(id string) tea.Msg {
			return core.CommandExecuteMsg{CommandID: id}
		})
	}
	return m, nil
}

// Commands are the palette entries.
func Commands(rt *tabs.RangeTab, store tabs.PresetStore) []core.Command {
	noValue := func(*core.Model) (bool, string) {
		if rt.Value().IsNull() {
			return true, "no range committed"
		}
		return false, ""
	}
	return []core.Command{
		{
			ID:          "switch-range",
			Name:        "Switch to range",
			Description: "Activate range tab",
			Scopes:      []string{"*"},
			Execute: func(m *core.Model) tea.Cmd {
				m.SwitchTab(0)
				return core.StatusCmd("Range")
			},
		},
		{
			ID:          "switch-presets",
			Name:        "Switch to presets",
			Description: "Activate presets tab",
			Scopes:      []string{"*"},
			Execute: func(m *core.Model) tea.Cmd {
				m.SwitchTab(1)
				return core.StatusCmd("Presets")
			},
		},
		{
			ID:          "open-picker",
			Name:        "Pick range",
			Description: "Open the range picker",
			Scopes:      []string{tabs.ScopeRange},
			Execute: func(m *core.Model) tea.Cmd {
				return rt.OpenPicker(m)
			},
		},
		{
			ID:          "cycle-mode",
			Name:        "Change picker mode",
			Description: "date, week, month, quarter, year or time",
			Scopes:      []string{tabs.ScopeRange},
			Execute:     rt.ChooseMode,
		},
		{
			ID:          "clear-range",
			Name:        "Clear range",
			Description: "Empty both sides",
			Scopes:      []string{tabs.ScopeRange},
			Execute:     func(*core.Model) tea.Cmd { return rt.Clear() },
			Disabled:    noValue,
		},
		{
			ID:          "save-preset",
			Name:        "Save range as preset",
			Description: "Store the committed range as an absolute preset",
			Scopes:      []string{tabs.ScopeRange},
			Execute:     func(*core.Model) tea.Cmd { return rt.SavePreset() },
			Disabled: func(m *core.Model) (bool, string) {
				if store == nil {
					return true, "no database"
				}
				return noValue(m)
			},
		},
		{
			ID:          "reload-presets",
			Name:        "Reload presets",
			Description: "Read presets from the database again",
			Scopes:      []string{"*"},
			Execute:     func(*core.Model) tea.Cmd { return tabs.LoadPresetsCmd(store) },
			Disabled: func(*core.Model) (bool, string) {
				if store == nil {
					return true, "no database"
				}
				return false, ""
			},
		},
	}
}
