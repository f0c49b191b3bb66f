package mcp

import (
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Merge runs conflations.
	Merge driving.MergeService

	// History lists recorded runs. Optional.
	History driving.RunHistory
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Merge == nil {
		return ErrMissingMergeService
	}
	return nil
}
