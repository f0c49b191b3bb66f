package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/views/merge"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	mergeView    *merge.View
	historyView  *history.View
	settingsView *settings.View
	statusBar    *status.Bar

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		mergeView:    merge.NewView(s, ports.Merge),
		historyView:  history.NewView(s, ports.History),
		settingsView: settings.NewView(s, ports.Settings),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context merges and history loads run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.mergeView.SetContext(ctx)
	a.historyView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("kmzmerge"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.MergeStarted:
		a.err = nil
		a.statusBar.Progress(0, "Merging "+msg.Request.AreaID)
		return a, nil

	case messages.MergeProgress:
		a.statusBar.Progress(msg.Percent, msg.Message)
		a.mergeView, cmd = a.mergeView.Update(msg)
		return a, cmd

	case messages.MergeCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.Failed(msg.Err)
		} else {
			a.statusBar.Finished(msg.Result)
		}
		a.mergeView, cmd = a.mergeView.Update(msg)
		return a, cmd

	case messages.RunsLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.Failed(msg.Err)
		return a, nil
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewMerge:
		a.mergeView, cmd = a.mergeView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	}
	return cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	if !a.mergeView.Running() {
		a.statusBar.Clear()
	}

	switch view {
	case messages.ViewMerge:
		a.statusBar.SetHints(a.keymap.FormHelp())
		a.mergeView.Reset()
		return a.mergeView.Init()
	case messages.ViewHistory:
		a.statusBar.SetHints(a.keymap.ListHelp())
		a.historyView.Reset()
		return a.historyView.Init()
	case messages.ViewSettings:
		a.statusBar.SetHints(a.keymap.SettingsHelp())
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMerge:
		body = a.mergeView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	default:
		body = a.menuView.View()
	}

	if a.currentView == messages.ViewMenu {
		return body
	}

	gap := a.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.NewStyle().Height(gap).Render(""), a.statusBar.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.mergeView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
