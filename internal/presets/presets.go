// Package presets defines the named ranges offered as picker shortcuts.
// A preset is either absolute (two fixed dates) or relative to the moment it
// is resolved (a unit, an offset from the current unit and a span).
package presets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/rangepick/core/rangepick"
	"github.com/jask/rangepick/internal/dateengine"
)

type Kind string

const (
	KindAbsolute Kind = "absolute"
	KindRelative Kind = "relative"
)

var (
	ErrInvalid  = errors.New("invalid preset")
	ErrNotFound = errors.New("preset not found")
)

// DateLayouts are accepted for the start and end of absolute presets.
var DateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

type Preset struct {
	ID        string `yaml:"id,omitempty" toml:"id,omitempty"`
	Name      string `yaml:"name" toml:"name"`
	Kind      Kind   `yaml:"kind" toml:"kind"`
	Start     string `yaml:"start,omitempty" toml:"start,omitempty"`
	End       string `yaml:"end,omitempty" toml:"end,omitempty"`
	Unit      string `yaml:"unit,omitempty" toml:"unit,omitempty"`
	Offset    int    `yaml:"offset,omitempty" toml:"offset,omitempty"`
	Span      int    `yaml:"span,omitempty" toml:"span,omitempty"`
	SortOrder int    `yaml:"-" toml:"-"`
}

var units = map[string]dateengine.Unit{
	"day":     dateengine.Day,
	"week":    dateengine.Week,
	"month":   dateengine.Month,
	"quarter": dateengine.Quarter,
	"year":    dateengine.Year,
}

func ParseUnit(s string) (dateengine.Unit, error) {
	u, ok := units[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return dateengine.Day, fmt.Errorf("%w: unknown unit %q", ErrInvalid, s)
	}
	return u, nil
}

// SeedID is the stable ID of a built-in preset, so reseeding is idempotent.
func SeedID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("preset:"+strings.ToLower(name))).String()
}

// NewID returns a fresh ID for a user preset.
func NewID() string {
	return uuid.NewString()
}

func relative(name, unit string, offset, span int) Preset {
	return Preset{ID: SeedID(name), Name: name, Kind: KindRelative, Unit: unit, Offset: offset, Span: span}
}

// Defaults are seeded into new databases.
func Defaults() []Preset {
	out := []Preset{
		relative("Today", "day", 0, 1),
		relative("Yesterday", "day", -1, 1),
		relative("Last 7 days", "day", -6, 7),
		relative("This week", "week", 0, 1),
		relative("This month", "month", 0, 1),
		relative("Last month", "month", -1, 1),
		relative("This quarter", "quarter", 0, 1),
		relative("This year", "year", 0, 1),
	}
	for i := range out {
		out[i].SortOrder = i
	}
	return out
}

// Normalize trims fields and fills the kind when it can be inferred.
func (p Preset) Normalize() Preset {
	p.Name = strings.TrimSpace(p.Name)
	p.Start = strings.TrimSpace(p.Start)
	p.End = strings.TrimSpace(p.End)
	p.Unit = strings.ToLower(strings.TrimSpace(p.Unit))
	if p.Kind == "" {
		if p.Unit != "" {
			p.Kind = KindRelative
		} else {
			p.Kind = KindAbsolute
		}
	}
	if p.Kind == KindRelative && p.Span == 0 {
		p.Span = 1
	}
	return p
}

func (p Preset) Validate(e dateengine.Engine) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	switch p.Kind {
	case KindRelative:
		if _, err := ParseUnit(p.Unit); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		if p.Span < 1 {
			return fmt.Errorf("%w: %s: span must be at least 1", ErrInvalid, p.Name)
		}
	case KindAbsolute:
		start, err := e.Parse(p.Start, DateLayouts)
		if err != nil {
			return fmt.Errorf("%w: %s: start: %v", ErrInvalid, p.Name, err)
		}
		end, err := e.Parse(p.End, DateLayouts)
		if err != nil {
			return fmt.Errorf("%w: %s: end: %v", ErrInvalid, p.Name, err)
		}
		if e.IsAfter(start, end) {
			return fmt.Errorf("%w: %s: start is after end", ErrInvalid, p.Name)
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalid, p.Name, p.Kind)
	}
	return nil
}

// Resolve turns the preset into a range as of the engine's current time.
// Relative ranges start at the start of the offset unit and end on the last
// day of the span.
func (p Preset) Resolve(e dateengine.Engine) (rangepick.Range, error) {
	if err := p.Validate(e); err != nil {
		return rangepick.Range{}, err
	}
	if p.Kind == KindAbsolute {
		start, _ := e.Parse(p.Start, DateLayouts)
		end, _ := e.Parse(p.End, DateLayouts)
		return rangepick.NewRange(start, end), nil
	}
	unit, _ := ParseUnit(p.Unit)
	start := e.Add(e.StartOf(e.Now(), unit), unit, p.Offset)
	end := e.StartOf(e.Add(e.Add(start, unit, p.Span), dateengine.Day, -1), dateengine.Day)
	return rangepick.NewRange(start, end), nil
}

// Describe is a one-line summary for lists.
func (p Preset) Describe() string {
	if p.Kind == KindAbsolute {
		return p.Start + " to " + p.End
	}
	span := plural(p.Span, p.Unit)
	switch {
	case p.Offset == 0:
		return span + " starting this " + p.Unit
	case p.Offset < 0:
		return span + " starting " + plural(-p.Offset, p.Unit) + " ago"
	default:
		return span + " starting in " + plural(p.Offset, p.Unit)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Shortcut converts the preset for the picker. Relative presets resolve
// lazily so a long-running session still gets the current range.
func (p Preset) Shortcut(e dateengine.Engine) (rangepick.Shortcut, error) {
	r, err := p.Resolve(e)
	if err != nil {
		return rangepick.Shortcut{}, err
	}
	if p.Kind == KindAbsolute {
		return rangepick.Shortcut{Label: p.Name, Value: r}, nil
	}
	return rangepick.Shortcut{Label: p.Name, Supplier: func() rangepick.Range {
		r, _ := p.Resolve(e)
		return r
	}}, nil
}

// Shortcuts converts every valid preset and reports the ones it skipped.
func Shortcuts(e dateengine.Engine, ps []Preset) ([]rangepick.Shortcut, []error) {
	out := make([]rangepick.Shortcut, 0, len(ps))
	var errs []error
	for _, p := range ps {
		sc, err := p.Shortcut(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, sc)
	}
	return out, errs
}

// Find looks a preset up by name. Exact matches ignore case; otherwise the
// closest name within a small edit distance wins, so "last mnth" still finds
// "Last month".
func Find(ps []Preset, name string) (Preset, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return Preset{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	best, bestDist := -1, 0
	for i, p := range ps {
		candidate := strings.ToLower(p.Name)
		if candidate == q || p.ID == name {
			return p, nil
		}
		d := levenshtein.ComputeDistance(candidate, q)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 && bestDist <= max(2, len(q)/4) {
		return ps[best], nil
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
