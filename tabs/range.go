package tabs

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rangepick/core"
	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/database/repository"
	"github.com/jask/rangepick/internal/dateengine"
	"github.com/jask/rangepick/internal/presets"
	"github.com/jask/rangepick/screens"
	"github.com/jask/rangepick/widgets"
)

const (
	ScopeRange = "tab:range"
	maxEvents  = 40
)

// selectableModes are the picker modes offered by cycle-mode.
var selectableModes = []rangepick.Mode{
	rangepick.ModeDate,
	rangepick.ModeWeek,
	rangepick.ModeMonth,
	rangepick.ModeQuarter,
	rangepick.ModeYear,
	rangepick.ModeTime,
}

type modeChosenMsg struct {
	mode rangepick.Mode
}

// RangeDeps wires the range tab.
type RangeDeps struct {
	PickerID string
	Engine   dateengine.Engine
	// Options is the base picker configuration. The tab owns the value,
	// the shortcuts and the callbacks.
	Options rangepick.Config
	TTL     time.Duration
	Presets PresetStore
	Ranges  RangeStore
	Logger  *slog.Logger
}

// RangeTab shows the committed range, opens the picker over it and records
// every picker event.
type RangeTab struct {
	deps    RangeDeps
	picker  *rangepick.Picker
	value   rangepick.Range
	saved   []presets.Preset
	events  []string
	dirty   bool
	lastErr error
}

func NewRangeTab(deps RangeDeps) (*RangeTab, error) {
	if deps.PickerID == "" {
		deps.PickerID = "main"
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Engine == nil {
		deps.Engine = deps.Options.Engine
	}
	deps.Options.Engine = deps.Engine
	t := &RangeTab{deps: deps}
	if err := t.rebuild(deps.Options.Picker); err != nil {
		return nil, err
	}
	t.value = t.picker.Value()
	return t, nil
}

func (t *RangeTab) ID() string    { return "range" }
func (t *RangeTab) Title() string { return "Range" }
func (t *RangeTab) Scope() string { return ScopeRange }

func (t *RangeTab) Picker() *rangepick.Picker { return t.picker }
func (t *RangeTab) Value() rangepick.Range    { return t.value }
func (t *RangeTab) Events() []string          { return append([]string(nil), t.events...) }

func (t *RangeTab) InitTab(m *core.Model) tea.Cmd {
	return tea.Batch(LoadPresetsCmd(t.deps.Presets), loadLastRangeCmd(t.deps.Ranges, t.deps.PickerID))
}

// rebuild replaces the picker, keeping the committed value. Shortcuts and
// mode only take effect on a new picker.
func (t *RangeTab) rebuild(mode rangepick.Mode) error {
	cfg := t.deps.Options
	cfg.Picker = mode
	cfg.Modes = nil
	if mode != t.deps.Options.Picker {
		cfg.Format = nil
	}
	if !t.value.IsNull() {
		v := t.value
		cfg.DefaultValue = &v
	}
	cfg.Value = nil
	shortcuts, errs := presets.Shortcuts(t.deps.Engine, t.saved)
	for _, err := range errs {
		t.deps.Logger.Warn("skipping preset", "err", err)
	}
	cfg.Shortcuts = shortcuts
	cfg.OnChange = t.onChange
	cfg.OnCalendarChange = func(r rangepick.Range, text [2]string, side rangepick.Side) {
		t.event("calendar %s: %s", side, t.joinText(text))
	}
	cfg.OnPanelChange = func(_ rangepick.Range, modes [2]rangepick.Mode) {
		t.event("panels %s / %s", modes[0], modes[1])
	}
	cfg.OnOk = func(r rangepick.Range) {
		t.event("ok: %s", t.joinText(t.picker.FormatRange(r)))
	}
	cfg.OnOpenChange = func(open bool) {
		if open {
			t.event("opened")
		} else {
			t.event("closed")
		}
	}
	p, err := rangepick.New(cfg)
	if err != nil {
		return fmt.Errorf("build %s picker: %w", mode, err)
	}
	t.picker = p
	return nil
}

func (t *RangeTab) onChange(r rangepick.Range, text [2]string) {
	t.value = r
	t.dirty = true
	t.event("change: %s", t.joinText(text))
	t.deps.Logger.Info("range committed", "picker", t.deps.PickerID, "start", text[0], "end", text[1])
}

// Committed is the committed range as display text, or "" when empty.
func (t *RangeTab) Committed() string {
	if t.value.IsNull() {
		return ""
	}
	return t.joinText(t.picker.FormatRange(t.value))
}

func (t *RangeTab) joinText(text [2]string) string {
	for i := range text {
		if text[i] == "" {
			text[i] = "-"
		}
	}
	return text[0] + " " + t.picker.Separator() + " " + text[1]
}

func (t *RangeTab) event(format string, args ...any) {
	t.events = append(t.events, fmt.Sprintf(format, args...))
	if len(t.events) > maxEvents {
		t.events = t.events[len(t.events)-maxEvents:]
	}
}

func (t *RangeTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case screens.CleanupMsg:
		// The screen may already be gone; the picker outlives it.
		t.picker.ExpireOpenRecord(msg.Ticket)
		return nil
	case PresetsLoadedMsg:
		if msg.Err != nil {
			return t.fail("load presets", msg.Err)
		}
		t.saved = msg.Presets
		return t.fail("rebuild picker", t.rebuild(t.picker.Mode()))
	case lastRangeLoadedMsg:
		if msg.err != nil {
			return t.fail("load last range", msg.err)
		}
		return t.restore(msg.last)
	case rangeSavedMsg:
		if msg.err != nil {
			return t.fail("save range", msg.err)
		}
		return nil
	case presetSavedMsg:
		if msg.err != nil {
			return t.fail("save preset", msg.err)
		}
		t.deps.Logger.Info("preset saved", "name", msg.preset.Name, "id", msg.preset.ID)
		return tea.Batch(core.StatusCmd("Saved preset "+msg.preset.Name), LoadPresetsCmd(t.deps.Presets))
	case modeChosenMsg:
		if err := t.rebuild(msg.mode); err != nil {
			return t.fail("change mode", err)
		}
		t.event("mode: %s", msg.mode)
		return core.StatusCmd("Picker mode: " + msg.mode.String())
	case ApplyPresetMsg:
		return t.apply(msg.Preset)
	case tea.KeyMsg:
		return t.handleKey(m, msg)
	}
	return nil
}

func (t *RangeTab) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.Keys()
	switch {
	case keys.IsAction(msg, "open-picker", ScopeRange):
		return t.OpenPicker(m)
	case keys.IsAction(msg, "cycle-mode", ScopeRange):
		return t.ChooseMode(m)
	case keys.IsAction(msg, "save-preset", ScopeRange):
		return t.SavePreset()
	case keys.IsAction(msg, "clear-range", ScopeRange):
		return t.Clear()
	}
	return nil
}

// Clear empties the committed value without opening the picker.
func (t *RangeTab) Clear() tea.Cmd {
	if t.value.IsNull() {
		return core.StatusCmd("Nothing to clear")
	}
	t.commit(rangepick.Range{}, "cleared")
	return tea.Batch(core.StatusCmd("Range cleared"), t.flush())
}

// ChooseMode opens the mode chooser.
func (t *RangeTab) ChooseMode(m *core.Model) tea.Cmd {
	return core.PushScreenCmd(t.modeScreen(m))
}

// OpenPicker pushes the picker screen over the tab.
func (t *RangeTab) OpenPicker(m *core.Model) tea.Cmd {
	t.dirty = false
	s := screens.NewRangePickerScreen(t.Title(), t.picker, m.Keys(), t.deps.TTL)
	if s == nil {
		return core.StatusCmd("Both sides are disabled")
	}
	s.OnClose(func(rangepick.Range) tea.Cmd { return t.flush() })
	return core.PushScreenCmd(s)
}

func (t *RangeTab) modeScreen(m *core.Model) core.Screen {
	items := make([]screens.PickerItem, 0, len(selectableModes))
	for _, mode := range selectableModes {
		items = append(items, screens.PickerItem{ID: mode.String(), Label: modeLabel(mode), Desc: rangepick.DefaultFormat(mode, false, false)[0]})
	}
	return screens.NewPickerScreen("Picker mode", m.Keys(), items, t.picker.Mode().String(), func(it screens.PickerItem) tea.Msg {
		mode, err := rangepick.ParseMode(it.ID)
		if err != nil {
			return core.StatusMsg{Text: err.Error(), IsErr: true}
		}
		return modeChosenMsg{mode: mode}
	})
}

func modeLabel(mode rangepick.Mode) string {
	name := mode.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// commit sets the value outside the picker, as presets and clear do.
func (t *RangeTab) commit(r rangepick.Range, how string) {
	t.picker.SetValue(r)
	t.value = t.picker.Value()
	t.dirty = true
	t.event("%s: %s", how, t.joinText(t.picker.FormatRange(t.value)))
	t.deps.Logger.Info("range set", "picker", t.deps.PickerID, "how", how)
}

// flush persists the value when it changed since the picker opened.
func (t *RangeTab) flush() tea.Cmd {
	if !t.dirty {
		return nil
	}
	t.dirty = false
	lr := repository.LastRange{PickerID: t.deps.PickerID, Mode: t.picker.Mode().String()}
	if v := t.value[rangepick.SideStart]; v.Valid() {
		ts := v.Time()
		lr.Start = &ts
	}
	if v := t.value[rangepick.SideEnd]; v.Valid() {
		ts := v.Time()
		lr.End = &ts
	}
	return saveRangeCmd(t.deps.Ranges, lr)
}

func (t *RangeTab) restore(lr *repository.LastRange) tea.Cmd {
	if lr == nil {
		return nil
	}
	var r rangepick.Range
	if lr.Start != nil {
		r[rangepick.SideStart] = dateengine.Of(*lr.Start)
	}
	if lr.End != nil {
		r[rangepick.SideEnd] = dateengine.Of(*lr.End)
	}
	t.value = r
	mode, err := rangepick.ParseMode(lr.Mode)
	if err != nil {
		mode = t.picker.Mode()
	}
	if err := t.rebuild(mode); err != nil {
		return t.fail("restore range", err)
	}
	t.event("restored: %s", t.joinText(t.picker.FormatRange(t.value)))
	return nil
}

func (t *RangeTab) apply(p presets.Preset) tea.Cmd {
	r, err := p.Resolve(t.deps.Engine)
	if err != nil {
		return t.fail("apply preset", err)
	}
	t.commit(r, "preset "+p.Name)
	return tea.Batch(core.StatusCmd("Applied "+p.Name), t.flush())
}

// SavePreset stores the committed range as an absolute preset.
func (t *RangeTab) SavePreset() tea.Cmd {
	if t.deps.Presets == nil {
		return core.StatusCmd("No preset storage configured")
	}
	if !t.value.Complete() {
		return core.StatusCmd("Pick both sides before saving a preset")
	}
	text := t.picker.FormatRange(t.value)
	p := presets.Preset{
		ID:    presets.NewID(),
		Name:  text[0] + " " + t.picker.Separator() + " " + text[1],
		Kind:  presets.KindAbsolute,
		Start: t.deps.Engine.Format(t.value[rangepick.SideStart], presets.DateLayouts[0]),
		End:   t.deps.Engine.Format(t.value[rangepick.SideEnd], presets.DateLayouts[0]),
	}
	for _, existing := range t.saved {
		if strings.EqualFold(existing.Name, p.Name) {
			return core.StatusCmd("Preset " + existing.Name + " already exists")
		}
	}
	return savePresetCmd(t.deps.Presets, p)
}

func (t *RangeTab) fail(what string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	t.lastErr = err
	t.deps.Logger.Error(what, "err", err)
	return core.ErrorCmd(fmt.Errorf("%s: %w", what, err))
}

func (t *RangeTab) Build(m *core.Model) widgets.Widget {
	return widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.Pane{Title: "Range", Hint: t.hint(m), Content: t.summary(), Selected: true},
			widgets.Pane{Title: "Events", Content: t.eventLog()},
		},
		Ratios:  []float64{0.45, 0.55},
		Spacing: 0,
	}
}

func (t *RangeTab) hint(m *core.Model) string {
	keys := m.Keys()
	return fmt.Sprintf("%s pick  %s mode  %s save  %s clear",
		keys.KeyFor("open-picker", ScopeRange),
		keys.KeyFor("cycle-mode", ScopeRange),
		keys.KeyFor("save-preset", ScopeRange),
		keys.KeyFor("clear-range", ScopeRange))
}

func (t *RangeTab) summary() string {
	p := t.picker
	text := p.FormatRange(t.value)
	for i, s := range text {
		if s == "" {
			text[i] = p.Placeholder(rangepick.Side(i))
		}
	}
	lines := []string{
		fmt.Sprintf("Value:      %s  %s  %s", text[0], p.Separator(), text[1]),
		fmt.Sprintf("Mode:       %s", p.Mode()),
		fmt.Sprintf("Format:     %s", p.Patterns()[0]),
		fmt.Sprintf("Disabled:   start=%t end=%t", p.Disabled()[0], p.Disabled()[1]),
		fmt.Sprintf("Presets:    %d", len(p.Shortcuts())),
	}
	if p.NeedsConfirm() {
		lines = append(lines, "Confirm:    press ok to commit each side")
	}
	if t.lastErr != nil {
		lines = append(lines, "Last error: "+t.lastErr.Error())
	}
	return strings.Join(lines, "\n")
}

func (t *RangeTab) eventLog() string {
	if len(t.events) == 0 {
		return "No events yet"
	}
	out := make([]string, 0, len(t.events))
	for i := len(t.events) - 1; i >= 0; i-- {
		out = append(out, t.events[i])
	}
	return strings.Join(out, "\n")
}
