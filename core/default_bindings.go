package core

import "strings"

var (
	tabScopes     = []string{"tab:range", "tab:presets"}
	pickerScopes  = []string{"screen:range"}
	cursorScopes  = []string{"screen:range", "screen:range:presets"}
	closingScopes = []string{"screen:range", "screen:range:input", "screen:range:presets", "screen:picker", "screen:command"}
)

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: tabScopes},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: tabScopes},
		{Keys: []string{"1"}, Action: "switch-tab-1", Description: "range", Scopes: tabScopes},
		{Keys: []string{"2"}, Action: "switch-tab-2", Description: "presets", Scopes: tabScopes},

		{Keys: []string{"enter", "o"}, Action: "open-picker", Description: "pick range", Scopes: []string{"tab:range"}},
		{Keys: []string{"m"}, Action: "cycle-mode", Description: "picker mode", Scopes: []string{"tab:range"}},
		{Keys: []string{"s"}, Action: "save-preset", Description: "save as preset", Scopes: []string{"tab:range"}},
		{Keys: []string{"x"}, Action: "clear-range", Description: "clear", Scopes: []string{"tab:range"}},

		{Keys: []string{"j", "down"}, Action: "preset-down", Description: "down", Scopes: []string{"tab:presets"}},
		{Keys: []string{"k", "up"}, Action: "preset-up", Description: "up", Scopes: []string{"tab:presets"}},
		{Keys: []string{"enter"}, Action: "apply-preset", Description: "apply", Scopes: []string{"tab:presets"}},
		{Keys: []string{"d"}, Action: "delete-preset", Description: "delete", Scopes: []string{"tab:presets"}},
		{Keys: []string{"r"}, Action: "reload-presets", Description: "reload", Scopes: []string{"tab:presets"}},
		{Keys: []string{"/"}, Action: "filter-presets", Description: "filter", Scopes: []string{"tab:presets"}},

		{Keys: []string{"left", "h"}, Action: "range-left", Description: "prev", Scopes: cursorScopes},
		{Keys: []string{"right", "l"}, Action: "range-right", Description: "next", Scopes: cursorScopes},
		{Keys: []string{"up", "k"}, Action: "range-up", Description: "up", Scopes: cursorScopes},
		{Keys: []string{"down", "j"}, Action: "range-down", Description: "down", Scopes: cursorScopes},
		{Keys: []string{"enter"}, Action: "range-pick", Description: "pick", Scopes: cursorScopes},
		{Keys: []string{"[", "pgup"}, Action: "range-prev-page", Description: "prev page", Scopes: pickerScopes},
		{Keys: []string{"]", "pgdown"}, Action: "range-next-page", Description: "next page", Scopes: pickerScopes},
		{Keys: []string{"u", "backspace"}, Action: "range-drill-up", Description: "zoom out", Scopes: pickerScopes},
		{Keys: []string{"tab"}, Action: "range-switch-side", Description: "other side", Scopes: pickerScopes},
		{Keys: []string{"i", "/"}, Action: "range-edit", Description: "type", Scopes: pickerScopes},
		{Keys: []string{"p"}, Action: "range-presets", Description: "presets", Scopes: pickerScopes},
		{Keys: []string{"t"}, Action: "range-time", Description: "time", Scopes: pickerScopes},
		{Keys: []string{"n"}, Action: "range-today", Description: "today", Scopes: pickerScopes},
		{Keys: []string{"o"}, Action: "range-ok", Description: "ok", Scopes: pickerScopes},
		{Keys: []string{"x"}, Action: "range-clear", Description: "clear", Scopes: pickerScopes},
		{Keys: []string{"q"}, Action: "range-done", Description: "done", Scopes: pickerScopes},
		{Keys: []string{"enter"}, Action: "range-submit", Description: "submit", Scopes: []string{"screen:range:input"}},

		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: closingScopes},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{"screen:picker", "screen:command"}},
	}
}

// DefaultKeybindingsByAction maps each action to the keys of its first
// binding.
func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings replaces the keys of every binding whose action has
// an override. Scopes and descriptions stay as they were.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
