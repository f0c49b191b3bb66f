// Package mcp provides an MCP (Model Context Protocol) server adapter for kmzmerge.
// It lets assistants run merges and inspect run history.
package mcp

import "errors"

// ErrMissingMergeService is returned when the merge service is not provided.
var ErrMissingMergeService = errors.New("mcp: merge service is required")
