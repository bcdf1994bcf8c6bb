package tabs

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/presets"
)

const storeTimeout = 5 * time.Second

// PresetStore is the preset persistence the tabs need.
// *repository.PresetRepo satisfies it.
type PresetStore interface {
	List(ctx context.Context) ([]presets.Preset, error)
	Upsert(ctx context.Context, p presets.Preset) error
	Delete(ctx context.Context, id string) (bool, error)
	NextSortOrder(ctx context.Context) (int, error)
}

// RangeStore keeps the last committed range per picker.
// *repository.LastRangeRepo satisfies it.
type RangeStore interface {
	Get(ctx context.Context, pickerID string) (*repository.LastRange, error)
	Save(ctx context.Context, lr repository.LastRange) error
	Clear(ctx context.Context, pickerID string) error
}

// PresetsLoadedMsg carries a fresh preset list to every tab.
type PresetsLoadedMsg struct {
	Presets []presets.Preset
	Err     error
}

// ApplyPresetMsg asks the range tab to commit a preset.
type ApplyPresetMsg struct {
	Preset presets.Preset
}

type lastRangeLoadedMsg struct {
	last *repository.LastRange
	err  error
}

type rangeSavedMsg struct {
	err error
}

type presetSavedMsg struct {
	preset presets.Preset
	err    error
}

type presetDeletedMsg struct {
	preset  presets.Preset
	removed bool
	err     error
}

// LoadPresetsCmd reads every preset in display order.
func LoadPresetsCmd(store PresetStore) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		ps, err := store.List(ctx)
		return PresetsLoadedMsg{Presets: ps, Err: err}
	}
}

func loadLastRangeCmd(store RangeStore, pickerID string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		lr, err := store.Get(ctx, pickerID)
		return lastRangeLoadedMsg{last: lr, err: err}
	}
}

func saveRangeCmd(store RangeStore, lr repository.LastRange) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if lr.Start == nil && lr.End == nil {
			return rangeSavedMsg{err: store.Clear(ctx, lr.PickerID)}
		}
		return rangeSavedMsg{err: store.Save(ctx, lr)}
	}
}

func savePresetCmd(store PresetStore, p presets.Preset) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		next, err := store.NextSortOrder(ctx)
		if err != nil {
			return presetSavedMsg{preset: p, err: err}
		}
		p.SortOrder = next
		return presetSavedMsg{preset: p, err: store.Upsert(ctx, p)}
	}
}

func deletePresetCmd(store PresetStore, p presets.Preset) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		removed, err := store.Delete(ctx, p.ID)
		return presetDeletedMsg{preset: p, removed: removed, err: err}
	}
}
