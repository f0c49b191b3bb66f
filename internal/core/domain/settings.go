package domain

const unknownDescription = "Unknown"

// ReportFormat selects the audit report written next to the output KMZ.
type ReportFormat string

// Available report formats.
const (
	// ReportNone writes no report.
	ReportNone ReportFormat = "none"

	// ReportXLSX writes an Excel workbook.
	ReportXLSX ReportFormat = "xlsx"

	// ReportCSV writes a comma-separated file.
	ReportCSV ReportFormat = "csv"
)

// IsValid returns true if the report format is recognised.
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportNone, ReportXLSX, ReportCSV:
		return true
	default:
		return false
	}
}

// Enabled returns true if a report file should be written.
func (f ReportFormat) Enabled() bool {
	return f == ReportXLSX || f == ReportCSV
}

// Extension returns the file extension including the dot.
func (f ReportFormat) Extension() string {
	switch f {
	case ReportXLSX:
		return ".xlsx"
	case ReportCSV:
		return ".csv"
	default:
		return ""
	}
}

// String returns the string representation.
func (f ReportFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f ReportFormat) Description() string {
	switch f {
	case ReportNone:
		return "No report"
	case ReportXLSX:
		return "Excel workbook (.xlsx)"
	case ReportCSV:
		return "CSV (.csv)"
	default:
		return unknownDescription
	}
}

// MatchSettings tune the conflation engine.
type MatchSettings struct {
	// HookRadiusMeters is the inclusive linking distance for anchor hooks.
	HookRadiusMeters float64

	// ProgressEvery is how many homes pass between progress notifications.
	ProgressEvery int
}

// OutputSettings control where results go.
type OutputSettings struct {
	// Dir is the default output directory.
	Dir string

	// Report is the default report format.
	Report ReportFormat
}

// HistorySettings control the run ledger.
type HistorySettings struct {
	// Enabled records every merge in the history store.
	Enabled bool

	// Keep is how many runs are retained; older ones are pruned.
	Keep int
}

// PublishSettings configure the optional S3 upload of output KMZ files.
type PublishSettings struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// Configured reports whether a bucket has been set.
func (p PublishSettings) Configured() bool {
	return p.Bucket != ""
}

// Settings is the full operator configuration.
type Settings struct {
	Match   MatchSettings
	Output  OutputSettings
	History HistorySettings
	Publish PublishSettings
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Match: MatchSettings{
			HookRadiusMeters: 50,
			ProgressEvery:    100,
		},
		Output: OutputSettings{
			Dir:    ".",
			Report: ReportNone,
		},
		History: HistorySettings{
			Enabled: true,
			Keep:    200,
		},
		Publish: PublishSettings{
			Prefix: "kmz/",
		},
	}
}
