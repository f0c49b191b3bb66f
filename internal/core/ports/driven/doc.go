// Package driven lists what the merge service needs from the outside world:
// archives, KML parsing, settings, run history, reports and uploads.
//
// # Required
//
//   - ArchiveReader: Extracts the KML document from a KMZ file
//   - ArchiveWriter: Packs a KML document into a KMZ file
//   - KMLCodec: Parses input KML and builds the output document
//   - ConfigStore: Application configuration
//
// # Optional
//
// A nil value disables the feature:
//
//   - RunStore: Merge history. Without it, runs are not recorded.
//   - ReportWriter: Audit reports. Without one for a format, that format is rejected.
//   - Publisher: Upload of output files. Without it, --publish fails.
//
// Ports import domain only; adapters import ports, never the reverse.
package driven
