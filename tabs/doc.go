// Package tabs contains the top-level tabs: the range tab that owns the
// picker and its persistence, and the presets tab.
//
// Allowed here:
// - tab layout trees, tab-specific keys, async store commands
//
// Not allowed here:
// - shared app routing logic (core) or low-level drawing primitives (widgets)
// - picker state transitions (core/rangepick)
package tabs
