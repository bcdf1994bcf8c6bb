package rangepick

import "github.com/jask/rangepick/internal/dateengine"

// Store holds the committed pair and the working draft. Controlled stores never
// change their committed value on Commit; the owner feeds it back through Seed.
type Store struct {
	engine     dateengine.Engine
	controlled bool
	disabled   [2]bool
	allowEmpty [2]bool

	committed Range
	working   Range
}

func NewStore(engine dateengine.Engine, controlled bool, initial Range, disabled, allowEmpty [2]bool) *Store {
	return &Store{
		engine:     engine,
		controlled: controlled,
		disabled:   disabled,
		allowEmpty: allowEmpty,
		committed:  initial,
		working:    initial,
	}
}

func (s *Store) Controlled() bool {
	return s.controlled
}

// Read returns the externally visible value.
func (s *Store) Read() Range {
	return s.committed
}

func (s *Store) Working() Range {
	return s.working
}

func (s *Store) SetWorking(next Range) {
	s.working = next
}

// Revert drops the draft.
func (s *Store) Revert() {
	s.working = s.committed
}

// Seed replaces the committed value from outside, as when a controlled owner
// hands back a new value.
func (s *Store) Seed(value Range) {
	s.committed = value
	s.working = value
}

// Commit fills disabled empty sides and publishes the result. It returns the
// value as published and whether it differs from the previous one.
func (s *Store) Commit(next Range) (Range, bool) {
	filled := s.fillDisabled(next)
	changed := !EqualRange(s.engine, filled, s.committed)
	s.working = filled
	if !s.controlled {
		s.committed = filled
	}
	return filled, changed
}

func (s *Store) fillDisabled(r Range) Range {
	for _, side := range []Side{SideStart, SideEnd} {
		if s.disabled[side] && !r[side].Valid() && !s.allowEmpty[side] {
			r[side] = s.engine.Now()
		}
	}
	return r
}
