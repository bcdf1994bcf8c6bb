package tabs

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/rangepick/core"
	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
	"github.com/jask/rangepick/internal/presets"
	"github.com/jask/rangepick/widgets"
)

const (
	ScopePresets       = "tab:presets"
	ScopePresetsFilter = "tab:presets:filter"
)

var (
	rowCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89b4fa"))
	rowNormal  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	rowSection = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")).Bold(true)
)

type PresetsDeps struct {
	Store  PresetStore
	Engine dateengine.Engine
	Logger *slog.Logger
	// RangeTab is the tab index that receives applied presets.
	RangeTab int
}

// PresetsTab lists saved presets. Enter applies one to the range tab.
type PresetsTab struct {
	deps      PresetsDeps
	all       []presets.Preset
	list      *core.ListFilter
	filtering bool
}

func NewPresetsTab(deps PresetsDeps) *PresetsTab {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PresetsTab{deps: deps, list: core.NewListFilter(nil)}
}

func (t *PresetsTab) ID() string    { return "presets" }
func (t *PresetsTab) Title() string { return "Presets" }

func (t *PresetsTab) Scope() string {
	if t.filtering {
		return ScopePresetsFilter
	}
	return ScopePresets
}

// Current returns the preset under the cursor.
func (t *PresetsTab) Current() (presets.Preset, bool) {
	item, ok := t.list.Current()
	if !ok {
		return presets.Preset{}, false
	}
	for _, p := range t.all {
		if p.ID == item.ID {
			return p, true
		}
	}
	return presets.Preset{}, false
}

func (t *PresetsTab) setPresets(ps []presets.Preset) {
	t.all = ps
	items := make([]core.ListItem, 0, len(ps))
	for _, kind := range []presets.Kind{presets.KindRelative, presets.KindAbsolute} {
		for _, p := range ps {
			if p.Kind != kind {
				continue
			}
			items = append(items, core.ListItem{
				ID:      p.ID,
				Label:   p.Name,
				Section: sectionTitle(kind),
				Meta:    p.Describe(),
				Search:  p.Name + " " + p.Describe(),
			})
		}
	}
	t.list.SetItems(items)
}

func sectionTitle(kind presets.Kind) string {
	if kind == presets.KindRelative {
		return "Relative"
	}
	return "Absolute"
}

func (t *PresetsTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PresetsLoadedMsg:
		if msg.Err == nil {
			t.setPresets(msg.Presets)
		}
		return nil
	case presetDeletedMsg:
		if msg.err != nil {
			t.deps.Logger.Error("delete preset", "name", msg.preset.Name, "err", msg.err)
			return core.ErrorCmd(fmt.Errorf("delete preset: %w", msg.err))
		}
		if !msg.removed {
			return core.StatusCmd("Preset " + msg.preset.Name + " was already gone")
		}
		t.deps.Logger.Info("preset deleted", "name", msg.preset.Name, "id", msg.preset.ID)
		return tea.Batch(core.StatusCmd("Deleted "+msg.preset.Name), LoadPresetsCmd(t.deps.Store))
	case tea.KeyMsg:
		if t.filtering {
			return t.updateFilter(msg)
		}
		return t.handleKey(m, msg)
	}
	return nil
}

func (t *PresetsTab) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	keys := m.Keys()
	switch {
	case keys.IsAction(msg, "preset-down", ScopePresets):
		t.list.CursorDown()
	case keys.IsAction(msg, "preset-up", ScopePresets):
		t.list.CursorUp()
	case keys.IsAction(msg, "filter-presets", ScopePresets):
		t.filtering = true
	case keys.IsAction(msg, "apply-preset", ScopePresets):
		return t.apply()
	case keys.IsAction(msg, "delete-preset", ScopePresets):
		p, ok := t.Current()
		if !ok || t.deps.Store == nil {
			return nil
		}
		return deletePresetCmd(t.deps.Store, p)
	case keys.IsAction(msg, "reload-presets", ScopePresets):
		return LoadPresetsCmd(t.deps.Store)
	}
	return nil
}

func (t *PresetsTab) updateFilter(msg tea.KeyMsg) tea.Cmd {
	res := t.list.HandleKey(msg.String())
	switch res.Action {
	case core.ListActionCancelled:
		t.filtering = false
		t.list.SetQuery("")
	case core.ListActionSelected:
		t.filtering = false
		return t.apply()
	}
	return nil
}

func (t *PresetsTab) apply() tea.Cmd {
	p, ok := t.Current()
	if !ok {
		return core.StatusCmd("No preset selected")
	}
	index := t.deps.RangeTab
	return tea.Batch(
		func() tea.Msg { return ApplyPresetMsg{Preset: p} },
		func() tea.Msg { return core.TabSwitchMsg{Index: index} },
	)
}

func (t *PresetsTab) Build(m *core.Model) widgets.Widget {
	title := "Presets"
	if q := t.list.Query(); q != "" || t.filtering {
		title = "Presets /" + q
	}
	return widgets.HStack{
		Widgets: []widgets.Widget{
			widgets.Pane{Title: title, Hint: t.hint(m), Content: t.renderList(), Selected: !t.filtering, Focused: t.filtering},
			widgets.Pane{Title: "Preview", Content: t.preview()},
		},
		Ratios: []float64{0.55, 0.45},
		Gap:    1,
	}
}

func (t *PresetsTab) hint(m *core.Model) string {
	if t.filtering {
		return "type to filter  enter apply  esc done"
	}
	keys := m.Keys()
	return fmt.Sprintf("%s apply  %s filter  %s delete  %s reload",
		keys.KeyFor("apply-preset", ScopePresets),
		keys.KeyFor("filter-presets", ScopePresets),
		keys.KeyFor("delete-preset", ScopePresets),
		keys.KeyFor("reload-presets", ScopePresets))
}

func (t *PresetsTab) renderList() string {
	items := t.list.Items()
	if len(items) == 0 {
		if t.list.Query() != "" {
			return "No preset matches"
		}
		return "No presets saved"
	}
	lines := make([]string, 0, len(items)+2)
	section := ""
	for i, it := range items {
		if it.Section != section {
			section = it.Section
			lines = append(lines, rowSection.Render(section))
		}
		style := rowNormal
		if i == t.list.Cursor() {
			style = rowCursor
		}
		lines = append(lines, style.Render("  "+it.Label))
	}
	return strings.Join(lines, "\n")
}

func (t *PresetsTab) preview() string {
	p, ok := t.Current()
	if !ok {
		return ""
	}
	lines := []string{p.Name, p.Describe()}
	if t.deps.Engine == nil {
		return strings.Join(lines, "\n")
	}
	r, err := p.Resolve(t.deps.Engine)
	if err != nil {
		return strings.Join(append(lines, "", "Invalid: "+err.Error()), "\n")
	}
	lines = append(lines, "",
		"From: "+t.deps.Engine.Format(r[rangepick.SideStart], "Mon 2006-01-02"),
		"To:   "+t.deps.Engine.Format(r[rangepick.SideEnd], "Mon 2006-01-02"))
	return strings.Join(lines, "\n")
}
