package rangepick

import (
	"fmt"
	"strings"

	"github.com/jask/rangepick/internal/dateengine"
)

// Config is everything a Picker is built from. Only Engine has no usable zero
// value, and New falls back to a local TimeEngine when it is nil.
type Config struct {
	Engine dateengine.Engine

	Picker Mode
	// Modes overrides the starting panel mode per side. Empty means both sides
	// start in Picker's mode.
	Modes      []Mode
	ShowTime   bool
	Use12Hours bool
	// Format lists parse patterns; the first one is used for display.
	Format      []string
	Separator   string
	Placeholder [2]string
	Direction   Direction

	// Value makes the picker controlled: the owner must call SetValue after
	// OnChange for the change to stick.
	Value        *Range
	DefaultValue *Range
	// DefaultPickerValue seeds the view pages instead of the value.
	DefaultPickerValue *Range

	Disabled     [2]bool
	AllowEmpty   [2]bool
	EnforceOrder bool
	AllowClear   bool

	DisabledDate func(v dateengine.Value, side Side) bool
	DisabledTime func(v dateengine.Value, side Side) DisabledTimes

	Shortcuts []Shortcut

	OnChange         func(r Range, text [2]string)
	OnCalendarChange func(r Range, text [2]string, side Side)
	OnPanelChange    func(r Range, modes [2]Mode)
	OnOk             func(r Range)
	OnOpenChange     func(open bool)
}

// NeedsConfirm reports whether picks only move the draft until Ok.
func (c Config) NeedsConfirm() bool {
	return c.Picker == ModeTime || c.ShowTime
}

func (c Config) validate() ([2]Mode, error) {
	modes := [2]Mode{c.Picker, c.Picker}
	if _, ok := modeNames[c.Picker]; !ok || c.Picker == ModeDecade {
		return modes, fmt.Errorf("%w: %s", ErrUnknownMode, c.Picker)
	}
	switch len(c.Modes) {
	case 0:
	case 2:
		modes = [2]Mode{c.Modes[0], c.Modes[1]}
	default:
		return modes, fmt.Errorf("%w: got %d", ErrModeShape, len(c.Modes))
	}
	for _, m := range modes {
		if _, ok := modeNames[m]; !ok {
			return modes, fmt.Errorf("%w: %s", ErrUnknownMode, m)
		}
	}
	if c.Picker == ModeTime && (modes[0] != ModeTime || modes[1] != ModeTime) {
		return modes, fmt.Errorf("%w: %s/%s", ErrTimeModes, modes[0], modes[1])
	}
	if c.Value != nil && c.DefaultValue != nil {
		return modes, ErrControlledConflict
	}
	return modes, nil
}

// NormalizeDisabled turns the loose shapes a config file may carry into a
// fixed pair: a bool applies to both sides, a list must hold exactly two bools.
func NormalizeDisabled(raw any) ([2]bool, error) {
	switch v := raw.(type) {
	case nil:
		return [2]bool{}, nil
	case bool:
		return [2]bool{v, v}, nil
	case [2]bool:
		return v, nil
	case []bool:
		if len(v) != 2 {
			return [2]bool{}, fmt.Errorf("%w: got %d entries", ErrDisabledShape, len(v))
		}
		return [2]bool{v[0], v[1]}, nil
	case []any:
		if len(v) != 2 {
			return [2]bool{}, fmt.Errorf("%w: got %d entries", ErrDisabledShape, len(v))
		}
		var out [2]bool
		for i, item := range v {
			b, ok := item.(bool)
			if !ok {
				return [2]bool{}, fmt.Errorf("%w: entry %d is %T", ErrDisabledShape, i, item)
			}
			out[i] = b
		}
		return out, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "none":
			return [2]bool{}, nil
		case "true", "both":
			return [2]bool{true, true}, nil
		case "start":
			return [2]bool{true, false}, nil
		case "end":
			return [2]bool{false, true}, nil
		}
	}
	return [2]bool{}, fmt.Errorf("%w: %v", ErrDisabledShape, raw)
}

// DefaultFormat returns the display pattern followed by lenient parse
// fallbacks for a picker mode.
func DefaultFormat(picker Mode, showTime, use12Hours bool) []string {
	switch picker {
	case ModeTime:
		if use12Hours {
			return []string{"03:04:05 PM", "3:04 PM", "15:04:05"}
		}
		return []string{"15:04:05", "15:04"}
	case ModeWeek:
		return []string{"{GGGG}-W{WW}", "{GGGG}W{WW}"}
	case ModeMonth:
		return []string{"2006-01", "2006-1", "{MMM} 2006", "January 2006"}
	case ModeQuarter:
		return []string{"2006-Q{Q}", "2006Q{Q}"}
	case ModeYear:
		return []string{"2006"}
	}
	if showTime {
		if use12Hours {
			return []string{"2006-01-02 03:04:05 PM", "2006-01-02 3:04 PM", "2006-01-02 15:04:05"}
		}
		return []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05"}
	}
	return []string{"2006-01-02", "2006-1-2", "2006/01/02", "Jan 2 2006", "January 2 2006", "2 January 2006"}
}
