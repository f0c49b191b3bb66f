package tui

import "errors"

// ErrMissingMergeService is returned when the merge service is not provided.
var ErrMissingMergeService = errors.New("tui: merge service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
