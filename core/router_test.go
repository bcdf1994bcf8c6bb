package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/rangepick/widgets"
)

type routerTab struct {
	hits  int
	other int
}

func (t *routerTab) ID() string                    { return "r" }
func (t *routerTab) Title() string                 { return "Router" }
func (t *routerTab) Scope() string                 { return "tab:r" }
func (t *routerTab) Build(m *Model) widgets.Widget { return widgets.Text("tab body") }
func (t *routerTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.hits++
	} else {
		t.other++
	}
	return nil
}

type fakeScreen struct{ hits, other int }

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen body" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		s.other++
		return s, nil, false
	}
	s.hits++
	if km.String() == "esc" {
		return s, nil, true
	}
	return s, nil, false
}

type pingMsg struct{}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	tab := &routerTab{}
	m := NewModel("test", []Tab{tab}, nil, nil)
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	updated := next.(Model)
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if tab.hits != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	m := NewModel("test", []Tab{&routerTab{}}, nil, nil)
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestOtherMessagesReachScreenAndEveryTab(t *testing.T) {
	a, b := &routerTab{}, &routerTab{}
	m := NewModel("test", []Tab{a, b}, nil, nil)
	screen := &fakeScreen{}
	m.PushScreen(screen)
	m.Update(pingMsg{})
	if screen.other != 1 || a.other != 1 || b.other != 1 {
		t.Fatalf("screen=%d a=%d b=%d, want 1 each", screen.other, a.other, b.other)
	}
}

func TestQuitOnlyFromTabScope(t *testing.T) {
	keys := NewKeyRegistry(DefaultKeyBindings())
	m := NewModel("test", []Tab{&routerTab{}}, keys, nil)
	m.PushScreen(&fakeScreen{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil || next.(Model).quitting {
		t.Fatalf("q inside a screen must not quit")
	}
}

func TestViewOverlaysScreen(t *testing.T) {
	m := NewModel("rangepick", []Tab{&routerTab{}}, NewKeyRegistry(DefaultKeyBindings()), nil)
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	out := next.(Model).View()
	for _, want := range []string{"rangepick", "1:Router", "screen body", "Ready"} {
		if !containsPlain(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

type paletteScreen struct{ fakeScreen }

func (s *paletteScreen) Scope() string { return "screen:palette" }

func TestPushSkipsScreenAlreadyOnTop(t *testing.T) {
	var s ScreenStack
	if !s.Push(&fakeScreen{}) {
		t.Fatalf("first push refused")
	}
	if s.Push(&fakeScreen{}) {
		t.Fatalf("same scope stacked twice")
	}
	if !s.Push(&paletteScreen{}) || s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	if s.Push(nil) {
		t.Fatalf("nil screen pushed")
	}
}

func TestReplaceSwapsTopOnly(t *testing.T) {
	var s ScreenStack
	s.Replace(&fakeScreen{})
	if s.Len() != 0 {
		t.Fatalf("replace on an empty stack added a screen")
	}
	bottom, top := &fakeScreen{}, &paletteScreen{}
	s.Push(bottom)
	s.Push(top)
	next := &paletteScreen{}
	s.Replace(next)
	if s.Top() != Screen(next) || s.Len() != 2 {
		t.Fatalf("top = %v, len = %d", s.Top(), s.Len())
	}
	s.Pop()
	if s.Top() != Screen(bottom) {
		t.Fatalf("bottom screen changed")
	}
}
