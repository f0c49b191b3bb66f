// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
)

// Field is a labelled single-line text input.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewField creates a new, unfocused field.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 50

	return &Field{
		label:     label,
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input box.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.label)
	box := f.styles.InputField
	if f.textinput.Focused() {
		box = f.styles.FocusedField
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(f.textinput.View()))
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
	f.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the total width including the label.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - f.styles.Label.GetWidth() - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
