package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rangepick/core"
)

const ScopePicker = "screen:picker"

type PickerItem struct {
	ID    string
	Label string
	Desc  string
}

func (i PickerItem) Title() string       { return i.Label }
func (i PickerItem) Description() string { return i.Desc }
func (i PickerItem) FilterValue() string { return i.Label + " " + i.Desc }

// PickerScreen is a filtered single-choice list. The range tab uses it to
// choose the picker mode and a locale.
type PickerScreen struct {
	title      string
	keys       KeyMatcher
	input      textinput.Model
	list       list.Model
	allItems   []PickerItem
	onSelected func(PickerItem) tea.Msg
}

func NewPickerScreen(title string, keys KeyMatcher, items []PickerItem, selected string, onSelected func(PickerItem) tea.Msg) *PickerScreen {
	inp := textinput.New()
	inp.Placeholder = "filter"
	inp.Prompt = "> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 40, 12)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowTitle(false)
	lst.KeyMap.Quit.SetEnabled(false)
	s := &PickerScreen{title: title, keys: keys, input: inp, list: lst, allItems: items, onSelected: onSelected}
	s.refreshFiltered()
	for i, it := range items {
		if it.ID == selected {
			s.list.Select(i)
			break
		}
	}
	return s
}

func (s *PickerScreen) Title() string { return s.title }
func (s *PickerScreen) Scope() string { return ScopePicker }

// Selected returns the highlighted item.
func (s *PickerScreen) Selected() (PickerItem, bool) {
	it, ok := s.list.SelectedItem().(PickerItem)
	return it, ok
}

func (s *PickerScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case s.keys.IsAction(msg, "close", ScopePicker):
			return s, nil, true
		case s.keys.IsAction(msg, "select", ScopePicker):
			it, ok := s.Selected()
			if ok && s.onSelected != nil {
				return s, func() tea.Msg { return s.onSelected(it) }, true
			}
			return s, nil, true
		}
	}
	var cmd1 tea.Cmd
	s.input, cmd1 = s.input.Update(msg)
	s.refreshFiltered()
	var cmd2 tea.Cmd
	s.list, cmd2 = s.list.Update(msg)
	return s, tea.Batch(cmd1, cmd2), false
}

func (s *PickerScreen) refreshFiltered() {
	q := strings.TrimSpace(s.input.Value())
	items := make([]list.Item, 0, len(s.allItems))
	for _, it := range s.allItems {
		if ok, _ := core.FuzzyScore(it.Label+" "+it.Desc, q); ok {
			items = append(items, it)
		}
	}
	_ = s.list.SetItems(items)
}

func (s *PickerScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-4))
	return s.input.View() + "\n" + s.list.View()
}
