// Package keymap holds the TUI key bindings and their help groups.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is shared by every view. Form and list keys overlap on purpose
// ("up" moves focus in the form and selection in lists).
type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	NextField key.Binding
	PrevField key.Binding
	Run       key.Binding
	Report    key.Binding

	Refresh key.Binding
	Default key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the bindings used by kmzmerge.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("ctrl+c", "quit", "ctrl+c"),
		Back: bind("esc", "back", "esc"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "select", "enter"),

		NextField: bind("tab", "next field", "tab", "down"),
		PrevField: bind("shift+tab", "previous field", "shift+tab", "up"),
		Run:       bind("enter", "merge", "ctrl+r", "enter"),
		Report:    bind("ctrl+o", "report format", "ctrl+o"),

		Refresh: bind("r", "refresh", "r"),
		Default: bind("d", "default", "d"),
	}
}

// ShortHelp is shown when no view supplies its own hints.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// FormHelp is shown on the merge form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Report, k.Run, k.Back}
}

// ListHelp is shown on the history list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Refresh, k.Back}
}

// SettingsHelp is shown on the settings editor.
func (k *KeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Default, k.Back}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, is bound.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
