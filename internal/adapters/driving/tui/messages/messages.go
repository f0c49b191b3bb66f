// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewMerge is the merge form and progress view.
	ViewMerge
	// ViewHistory lists recorded runs.
	ViewHistory
	// ViewSettings is the settings editor.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewMerge:
		return "merge"
	case ViewHistory:
		return "history"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// MergeStarted is sent when the form submits a valid request.
type MergeStarted struct {
	Request domain.MergeRequest
}

// MergeProgress carries one progress notification from a running merge.
type MergeProgress struct {
	Percent float64
	Message string
}

// MergeCompleted carries the outcome of a merge.
type MergeCompleted struct {
	Result *domain.MergeResult
	Err    error
}

// RunsLoaded carries recorded runs from the history service.
type RunsLoaded struct {
	Runs []domain.Run
	Err  error
}

// SettingEntry is one key/value pair shown in the settings view.
type SettingEntry struct {
	Key   string
	Value string
}

// SettingsLoaded carries the current settings as key/value pairs.
type SettingsLoaded struct {
	Entries []SettingEntry
	Err     error
}

// SettingSaved signals a setting was written.
type SettingSaved struct {
	Key string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
