// Package screens contains overlay flows rendered on top of tabs.
//
// Allowed here:
// - screen implementations that satisfy core.Screen (range picker, choice picker, command palette)
// - screen-specific key handling and presentation wiring
//
// Not allowed here:
// - app-wide routing tables and key registry ownership
// - picker state transitions (those live in core/rangepick)
// - low-level widget/layout primitives
package screens
