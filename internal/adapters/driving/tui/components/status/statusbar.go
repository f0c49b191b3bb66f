// Package status renders the one-line bar under every non-menu view.
package status

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// State is the merge state shown on the left of the bar.
type State string

const (
	StateReady   State = "ready"
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// Bar shows the merge state on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	hints  []key.Binding

	state   State
	message string
	percent float64
	width   int
}

// NewBar creates a bar in the ready state. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = s.Muted
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted

	return &Bar{
		styles: s,
		keymap: km,
		help:   h,
		hints:  km.ShortHelp(),
		state:  StateReady,
		width:  80,
	}
}

// Progress marks a merge as running at percent.
func (b *Bar) Progress(percent float64, message string) {
	b.state = StateRunning
	b.percent = percent
	b.message = message
}

// Finished marks a merge as done and names the written archive.
func (b *Bar) Finished(result *domain.MergeResult) {
	b.state = StateDone
	b.percent = 100
	b.message = "Merge complete"
	if result != nil && result.OutputPath != "" {
		b.message = fmt.Sprintf("Wrote %s (%d homes)", filepath.Base(result.OutputPath), result.Stats.AlleyHomes)
	}
}

// Failed shows err until the next merge or Clear.
func (b *Bar) Failed(err error) {
	b.state = StateError
	b.message = ""
	if err != nil {
		b.message = err.Error()
	}
}

// Clear returns to the ready state with the default hints.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
	b.percent = 0
	b.hints = b.keymap.ShortHelp()
}

// SetHints replaces the key hints shown on the right.
func (b *Bar) SetHints(bindings []key.Binding) {
	b.hints = bindings
}

func (b *Bar) SetWidth(width int) { b.width = width }

func (b *Bar) Width() int { return b.width }

func (b *Bar) State() State { return b.state }

func (b *Bar) Message() string { return b.message }

func (b *Bar) Percent() float64 { return b.percent }

// View renders the bar padded to its width.
func (b *Bar) View() string {
	left := b.status()
	right := b.help.ShortHelpView(b.hints)

	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) status() string {
	switch b.state {
	case StateRunning:
		return b.styles.Normal.Render(fmt.Sprintf("%3.0f%% %s", b.percent, b.message))
	case StateDone:
		return b.styles.Success.Render(b.message)
	case StateError:
		if b.message == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.message)
	default:
		return b.styles.Muted.Render("Ready")
	}
}
