// Package services implements the driving ports on top of the driven ports.
//
// MergeService is the orchestrator: it reads both KMZ archives, parses them,
// runs the conflation engine, assembles the output KML and writes the KMZ,
// with an optional audit report and S3 upload. RunHistoryService and
// SettingsService back the history and settings commands.
package services
