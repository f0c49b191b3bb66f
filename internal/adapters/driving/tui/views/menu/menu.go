// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool
}

// DefaultItems returns the top-level menu entries.
func DefaultItems() []Item {
	return []Item{
		{Label: "Merge", Description: "Conflate a regular and an alley KMZ", View: messages.ViewMerge},
		{Label: "History", Description: "Browse recorded merge runs", View: messages.ViewHistory},
		{Label: "Settings", Description: "Matching radius, output and publishing", View: messages.ViewSettings},
		{Label: "Quit", Description: "Leave kmzmerge", Quit: true},
	}
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items:  DefaultItems(),
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			v.selected = (v.selected - 1 + len(v.items)) % len(v.items)
		case keymap.Matches(k, v.keymap.Down):
			v.selected = (v.selected + 1) % len(v.items)
		case keymap.Matches(k, v.keymap.Select):
			return v, v.choose(v.items[v.selected])
		case k == "q":
			return v, tea.Quit
		case len(k) == 1 && k[0] >= '1' && int(k[0]-'0') <= len(v.items):
			v.selected = int(k[0] - '1')
			return v, v.choose(v.items[v.selected])
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("kmzmerge"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Home-pass KMZ conflation"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + label))
			b.WriteString("  ")
			b.WriteString(v.styles.Muted.Render(item.Description))
		} else {
			b.WriteString("  ")
			b.WriteString(v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [1-4] Jump  [Enter] Select  [q] Quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
