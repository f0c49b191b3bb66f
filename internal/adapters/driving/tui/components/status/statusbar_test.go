package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Contains(t, bar.View(), "Ready")
	assert.Contains(t, bar.View(), "esc back")
	assert.Contains(t, bar.View(), "ctrl+c quit")
}

func TestBar_Progress(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Progress(56, "Processing home-pass 40/100")

	assert.Equal(t, StateRunning, bar.State())
	assert.Equal(t, 56.0, bar.Percent())
	assert.Contains(t, bar.View(), " 56% Processing home-pass 40/100")
}

func TestBar_Finished(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.MergeResult
		want   string
	}{
		{name: "no result", want: "Merge complete"},
		{
			name: "with output",
			result: &domain.MergeResult{
				OutputPath: "/data/out/JKT01_Processed.kmz",
				Stats:      domain.MergeStats{AlleyHomes: 12},
			},
			want: "Wrote JKT01_Processed.kmz (12 homes)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.Progress(80, "Creating KMZ")

			bar.Finished(tt.result)

			assert.Equal(t, StateDone, bar.State())
			assert.Equal(t, 100.0, bar.Percent())
			assert.Equal(t, tt.want, bar.Message())
			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestBar_Failed(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.Failed(nil)
	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Error")

	bar.Failed(errors.New("no KML document found in KMZ"))
	assert.Contains(t, bar.View(), "Error: no KML document found in KMZ")
}

func TestBar_HintsAndClear(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)

	bar.SetHints(km.FormHelp())
	bar.Progress(10, "Reading KMZ archives")
	assert.Contains(t, bar.View(), "ctrl+o report format")

	bar.Clear()
	assert.NotContains(t, bar.View(), "ctrl+o")
	assert.Equal(t, StateReady, bar.State())
	assert.Zero(t, bar.Percent())
	assert.Empty(t, bar.Message())
}

func TestBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetWidth(10)

	assert.Equal(t, 10, bar.Width())
	assert.NotEmpty(t, bar.View())
}
