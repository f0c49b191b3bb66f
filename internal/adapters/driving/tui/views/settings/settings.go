// Package settings provides the settings editor view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// errUnavailable is reported when no settings service was wired.
var errUnavailable = errors.New("settings service not available")

// View lists settings as key/value pairs and edits one at a time.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	entries  []messages.SettingEntry
	selected int
	editing  bool
	editor   *input.Field
	saved    string
	err      error

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		settingsService: settingsService,
		editor:          input.NewField(s, "Value", ""),
		width:           80,
		height:          24,
	}
}

// Init loads current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errUnavailable}
		}
		keys := svc.Keys()
		entries := make([]messages.SettingEntry, 0, len(keys))
		for _, key := range keys {
			value, err := svc.GetValue(key)
			if err != nil {
				return messages.SettingsLoaded{Err: fmt.Errorf("reading %s: %w", key, err)}
			}
			entries = append(entries, messages.SettingEntry{Key: key, Value: value})
		}
		return messages.SettingsLoaded{Entries: entries}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingSaved{Key: key, Err: errUnavailable}
		}
		return messages.SettingSaved{Key: key, Err: svc.SetValue(key, value)}
	}
}

func (v *View) resetSetting(key string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingSaved{Key: key, Err: errUnavailable}
		}
		return messages.SettingSaved{Key: key, Err: svc.Reset(key)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.entries = msg.Entries
			if v.selected >= len(v.entries) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.editing = false
		v.editor.Blur()
		v.saved = msg.Key
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.entries)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Default):
		if len(v.entries) == 0 {
			return v, nil
		}
		v.saved = ""
		return v, v.resetSetting(v.entries[v.selected].Key)
	case keymap.Matches(k, v.keymap.Select):
		if len(v.entries) == 0 {
			return v, nil
		}
		v.editing = true
		v.saved = ""
		v.err = nil
		v.editor.SetValue(v.entries[v.selected].Value)
		return v, v.editor.Focus()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = false
		v.err = nil
		v.editor.Blur()
		return v, nil
	case "enter":
		entry := v.entries[v.selected]
		return v, v.saveSetting(entry.Key, strings.TrimSpace(v.editor.Value()))
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// View renders the settings list and editor.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	width := 0
	for _, e := range v.entries {
		width = max(width, len(e.Key))
	}

	for i, e := range v.entries {
		line := fmt.Sprintf("%-*s  %s", width, e.Key, displayValue(e.Value))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	if len(v.entries) == 0 && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Edit " + v.entries[v.selected].Key))
		b.WriteString("\n")
		b.WriteString(v.editor.View())
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	} else if v.saved != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("Saved " + v.saved))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Edit  [d] Default  [esc] Menu"))
	}
	return b.String()
}

func displayValue(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.editor.SetWidth(width - 4)
}

// Entries returns the loaded settings.
func (v *View) Entries() []messages.SettingEntry {
	return v.entries
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset leaves edit mode and clears status.
func (v *View) Reset() {
	v.editing = false
	v.editor.Blur()
	v.err = nil
	v.saved = ""
}
