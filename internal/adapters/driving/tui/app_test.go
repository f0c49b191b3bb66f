package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/services"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	ports := NewPorts(
		&MockMergeService{},
		&MockRunHistory{Runs: []domain.Run{{
			ID: "0f1e2d3c-aaaa", AreaID: "JKT01", Status: domain.RunSucceeded,
			StartedAt: start, EndedAt: start.Add(time.Second),
		}}},
		services.NewSettingsService(memory.NewConfigStore()),
	)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

// navigate switches views and feeds the view's init message back in.
func navigate(t *testing.T, app *App, view messages.ViewType) {
	t.Helper()
	_, cmd := app.Update(messages.ViewChanged{View: view})
	if view == messages.ViewHistory || view == messages.ViewSettings {
		require.NotNil(t, cmd)
		app.Update(cmd())
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(NewPorts(&MockMergeService{}, nil, nil))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.ErrorIs(t, err, ErrMissingMergeService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(&MockMergeService{}, nil, nil))
	require.NoError(t, err)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.StatusBar().Width())
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewMerge)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_MenuToMerge(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewMerge, app.CurrentView())
	assert.Contains(t, app.View(), "Merge KMZ")
	assert.Contains(t, app.View(), "report format")
}

func TestApp_HistoryView(t *testing.T) {
	app := newTestApp(t)

	navigate(t, app, messages.ViewHistory)

	assert.Equal(t, messages.ViewHistory, app.CurrentView())
	assert.Contains(t, app.View(), "Run history")
	assert.Contains(t, app.View(), "JKT01")
}

func TestApp_SettingsView(t *testing.T) {
	app := newTestApp(t)

	navigate(t, app, messages.ViewSettings)

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "match.hook_radius_m")
}

func TestApp_BackToMenu(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewHistory)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, app.View(), "kmzmerge")
}

func TestApp_MergeProgressUpdatesStatusBar(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewMerge)

	app.Update(messages.MergeStarted{Request: domain.MergeRequest{AreaID: "JKT01"}})
	assert.Equal(t, status.StateRunning, app.StatusBar().State())
	assert.Equal(t, "Merging JKT01", app.StatusBar().Message())

	app.Update(messages.MergeProgress{Percent: 40, Message: "Parsing KML data"})
	assert.InDelta(t, 40, app.StatusBar().Percent(), 0)
	assert.Equal(t, "Parsing KML data", app.StatusBar().Message())

	app.Update(messages.MergeCompleted{Result: &domain.MergeResult{OutputPath: "/out/x.kmz"}})
	assert.Equal(t, status.StateDone, app.StatusBar().State())
	assert.Equal(t, "Wrote x.kmz (0 homes)", app.StatusBar().Message())
	assert.NoError(t, app.Err())
}

func TestApp_MergeFailureShowsError(t *testing.T) {
	app := newTestApp(t)
	navigate(t, app, messages.ViewMerge)

	app.Update(messages.MergeCompleted{Err: domain.ErrInvalidArchive})

	assert.ErrorIs(t, app.Err(), domain.ErrInvalidArchive)
	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Contains(t, app.View(), "Merge failed")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("disk full")})

	assert.EqualError(t, app.Err(), "disk full")
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_SwitchingViewsClearsStatus(t *testing.T) {
	app := newTestApp(t)
	app.Update(messages.ErrorOccurred{Err: errors.New("disk full")})

	navigate(t, app, messages.ViewSettings)

	assert.Equal(t, status.StateReady, app.StatusBar().State())
}
