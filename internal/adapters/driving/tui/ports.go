// Package tui provides an interactive terminal user interface for kmzmerge.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Merge runs conflations. Required.
	Merge driving.MergeService

	// History lists recorded runs. Optional; the history view reports it as unavailable.
	History driving.RunHistory

	// Settings edits operator settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a Ports aggregate.
func NewPorts(merge driving.MergeService, history driving.RunHistory, settings driving.SettingsService) *Ports {
	return &Ports{
		Merge:    merge,
		History:  history,
		Settings: settings,
	}
}

// Validate ensures required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Merge == nil {
		return ErrMissingMergeService
	}
	return nil
}
