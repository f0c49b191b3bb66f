// Package history provides the run history view for the TUI.
package history

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// Limit is how many runs the view loads.
const Limit = 50

// View lists recorded merge runs with a detail panel for the selection.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	history driving.RunHistory
	list    *list.RunList
	detail  bool
	err     error
	width   int
	height  int
}

// NewView creates a history view.
func NewView(s *styles.Styles, history driving.RunHistory) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		history: history,
		list:    list.NewRunList(s),
		width:   80,
		height:  24,
	}
}

// SetContext sets the context used for loading runs.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads runs.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	ctx, history := v.ctx, v.history
	return func() tea.Msg {
		if history == nil {
			return messages.RunsLoaded{Err: errors.New("run history not available")}
		}
		runs, err := history.List(ctx, Limit)
		return messages.RunsLoaded{Runs: runs, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RunsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.list.SetRuns(msg.Runs)
		}
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Back):
			if v.detail {
				v.detail = false
				return v, nil
			}
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case keymap.Matches(k, v.keymap.Select):
			v.detail = v.list.Selected() != nil
			return v, nil
		case keymap.Matches(k, v.keymap.Refresh):
			return v, v.load()
		}
		if !v.detail {
			v.list, _ = v.list.Update(msg)
		}
	}
	return v, nil
}

// View renders the history list or the selected run's detail.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Run history"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.detail {
		b.WriteString(v.styles.Panel.Render(v.list.Detail()))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back to list"))
		return b.String()
	}

	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Details  [r] Refresh  [esc] Menu"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetSize(width, height-6)
}

// List returns the underlying run list.
func (v *View) List() *list.RunList {
	return v.list
}

// ShowingDetail reports whether the detail panel is open.
func (v *View) ShowingDetail() bool {
	return v.detail
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Reset closes the detail panel.
func (v *View) Reset() {
	v.detail = false
	v.err = nil
}
