package core

// ScreenStack holds the open screens; only the top one receives keys.
type ScreenStack struct {
	items []Screen
}

// Push opens screen on top. A screen whose scope is already on top is not
// stacked twice, so opening the picker while it is shown does nothing.
func (s *ScreenStack) Push(screen Screen) bool {
	if screen == nil {
		return false
	}
	if top := s.Top(); top != nil && top.Scope() == screen.Scope() {
		return false
	}
	s.items = append(s.items, screen)
	return true
}

func (s *ScreenStack) Pop() Screen {
	if len(s.items) == 0 {
		return nil
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

// Replace swaps the top screen for next, as when a screen's Update returns a
// new value of itself.
func (s *ScreenStack) Replace(next Screen) {
	if next == nil || len(s.items) == 0 {
		return
	}
	s.items[len(s.items)-1] = next
}

func (s ScreenStack) Top() Screen {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s ScreenStack) Len() int {
	return len(s.items)
}
