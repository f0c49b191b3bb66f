package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

type fakeMergeService struct {
	req    domain.MergeRequest
	steps  []float64
	result *domain.MergeResult
	err    error
}

func (f *fakeMergeService) Merge(
	_ context.Context, req domain.MergeRequest, progress domain.ProgressFunc,
) (*domain.MergeResult, error) {
	f.req = req
	for _, p := range f.steps {
		progress(p, "step")
	}
	return f.result, f.err
}

func tempInputs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular.kmz")
	alley := filepath.Join(dir, "alley.kmz")
	require.NoError(t, os.WriteFile(regular, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(alley, []byte("x"), 0o600))
	return regular, alley
}

func fillForm(v *View, regular, alley, area string) {
	v.fields[fieldRegular].SetValue(regular)
	v.fields[fieldAlley].SetValue(alley)
	v.fields[fieldArea].SetValue(area)
	v.setFocus(fieldArea)
}

// drain runs the batched submit command and collects every message until completion.
func drain(t *testing.T, v *View, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var out []tea.Msg
	for _, c := range batch {
		next := c
		for next != nil {
			msg := next()
			if msg == nil {
				break
			}
			out = append(out, msg)
			_, next = v.Update(msg)
		}
	}
	return out
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Len(t, v.fields, fieldCount)
	assert.Equal(t, domain.ReportNone, v.report)
	assert.False(t, v.Running())
}

func TestView_Init_FocusesFirstEmptyField(t *testing.T) {
	v := NewView(nil, nil)
	v.fields[fieldRegular].SetValue("/a.kmz")

	v.Init()

	assert.Equal(t, fieldAlley, v.focus)
	assert.True(t, v.fields[fieldAlley].Focused())
	assert.False(t, v.fields[fieldRegular].Focused())
}

func TestView_FieldNavigation(t *testing.T) {
	v := NewView(nil, nil)
	v.Init()

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldAlley, v.focus)

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldArea, v.focus, "wraps backwards")

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldRegular, v.focus, "wraps forwards")

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, fieldAlley, v.focus, "enter advances before the last field")
}

func TestView_ReportCycle(t *testing.T) {
	v := NewView(nil, nil)
	key := tea.KeyMsg{Type: tea.KeyCtrlO}

	v.Update(key)
	assert.Equal(t, domain.ReportXLSX, v.report)
	v.Update(key)
	assert.Equal(t, domain.ReportCSV, v.report)
	v.Update(key)
	assert.Equal(t, domain.ReportNone, v.report)
}

func TestView_Request(t *testing.T) {
	v := NewView(nil, nil)
	fillForm(v, " /r.kmz ", "/a.kmz", " JKT01 ")
	v.report = domain.ReportCSV

	req := v.Request()

	assert.Equal(t, "/r.kmz", req.RegularPath)
	assert.Equal(t, "/a.kmz", req.AlleyPath)
	assert.Equal(t, "JKT01", req.AreaID)
	assert.Equal(t, domain.ReportCSV, req.ReportFormat)
}

func TestView_Submit_InvalidInputStaysOnForm(t *testing.T) {
	svc := &fakeMergeService{}
	v := NewView(nil, svc)
	fillForm(v, "", "", "JKT01")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Running())
	require.Error(t, v.Err())
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
	assert.Contains(t, v.View(), "regular KMZ file is required")
}

func TestView_Submit_RunsMerge(t *testing.T) {
	regular, alley := tempInputs(t)
	svc := &fakeMergeService{
		steps: []float64{10, 40, 80},
		result: &domain.MergeResult{
			OutputPath: "/out/JKT01_Processed.kmz",
			Stats:      domain.MergeStats{AlleyHomes: 3, Residential: 2, Business: 1},
		},
	}
	v := NewView(nil, svc)
	fillForm(v, regular, alley, "JKT01")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, v.Running())

	msgs := drain(t, v, cmd)

	require.NotEmpty(t, msgs)
	assert.IsType(t, messages.MergeStarted{}, msgs[0])
	assert.IsType(t, messages.MergeCompleted{}, msgs[len(msgs)-1])
	assert.False(t, v.Running())
	require.NoError(t, v.Err())
	assert.Equal(t, svc.result, v.Result())
	assert.InDelta(t, 100, v.Percent(), 0)
	assert.Equal(t, "JKT01", svc.req.AreaID)

	out := v.View()
	assert.Contains(t, out, "Merge complete")
	assert.Contains(t, out, "/out/JKT01_Processed.kmz")
	assert.Contains(t, out, "3 (2 residential, 1 business)")
}

func TestView_Submit_ServiceError(t *testing.T) {
	regular, alley := tempInputs(t)
	svc := &fakeMergeService{err: domain.ErrNoKML}
	v := NewView(nil, svc)
	fillForm(v, regular, alley, "JKT01")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, v, cmd)

	assert.ErrorIs(t, v.Err(), domain.ErrNoKML)
	assert.Contains(t, v.View(), "Merge failed")
}

func TestView_KeysIgnoredWhileRunning(t *testing.T) {
	v := NewView(nil, nil)
	v.phase = phaseRunning

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.True(t, v.Running())
}

func TestView_ProgressIgnoredOutsideRun(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(messages.MergeProgress{Percent: 50, Message: "x"})

	assert.Nil(t, cmd)
	assert.Zero(t, v.Percent())
}

func TestView_DoneKeys(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(messages.MergeCompleted{Err: errors.New("boom")})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.Running())
	assert.NoError(t, v.Err())
	assert.Equal(t, fieldArea, v.focus)
	assert.NotNil(t, cmd)

	v.Update(messages.MergeCompleted{Err: errors.New("boom")})
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoService(t *testing.T) {
	v := NewView(nil, nil)
	fillForm(v, "/r.kmz", "/a.kmz", "JKT01")

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Error(t, v.Err())
	assert.Contains(t, v.Err().Error(), "not available")
}

func TestView_Reset(t *testing.T) {
	v := NewView(nil, nil)
	fillForm(v, "/r.kmz", "/a.kmz", "JKT01")
	v.Update(messages.MergeCompleted{Err: errors.New("boom")})

	v.Reset()

	assert.NoError(t, v.Err())
	assert.Equal(t, "/r.kmz", v.fields[fieldRegular].Value())
}

func TestView_SetDimensions(t *testing.T) {
	v := NewView(nil, nil)

	v.SetDimensions(120, 40)

	assert.Equal(t, 112, v.bar.Width)
	v.SetDimensions(10, 10)
	assert.Equal(t, 20, v.bar.Width)
}
