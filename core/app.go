package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rangepick/widgets"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

type TabInitializer interface {
	InitTab(m *Model) tea.Cmd
}

type Model struct {
	width     int
	height    int
	title     string
	tabs      []Tab
	activeTab int
	screens   ScreenStack
	keys      *KeyRegistry
	commands  *CommandRegistry
	status    string
	statusErr bool
	quitting  bool

	OpenCommandModal func(m *Model, scope string) Screen
	// HeaderInfo, when set, is shown next to the title on every tab.
	HeaderInfo func() string
}

func NewModel(title string, tabs []Tab, keys *KeyRegistry, commands *CommandRegistry) Model {
	if keys == nil {
		keys = NewKeyRegistry(nil)
	}
	if commands == nil {
		commands = NewCommandRegistry(nil)
	}
	return Model{
		title:    title,
		tabs:     tabs,
		keys:     keys,
		commands: commands,
		status:   "Ready",
		width:    100,
		height:   32,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, t := range m.tabs {
		if initTab, ok := t.(TabInitializer); ok {
			if cmd := initTab.InitTab(&m); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

func (m *Model) SwitchTab(index int) {
	if index < 0 || index >= len(m.tabs) {
		return
	}
	m.activeTab = index
}

func (m Model) ActiveTab() int {
	return m.activeTab
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

func (m Model) TopScreen() Screen {
	return m.screens.Top()
}

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

func (m *Model) Keys() *KeyRegistry {
	return m.keys
}
