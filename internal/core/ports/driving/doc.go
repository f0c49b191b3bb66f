// Package driving holds the interfaces the CLI, TUI and MCP server call:
// MergeService runs a conflation, RunHistory reads recorded runs and
// SettingsService edits operator settings. internal/core/services implements
// all three.
package driving
