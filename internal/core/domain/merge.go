package domain

import "strings"

// Folder paths in the planning datasets. Segments are separated by '/'.
const (
	PathHomePass      = "DISTRIBUSI/HP"
	PathHook          = "DISTRIBUSI/HOOK"
	PathBoundaryFAT   = "Boundary/BOUNDARY FAT"
	FolderBoundaryFAT = "BOUNDARY FAT"
)

// CopyThroughPaths are copied verbatim from the regular dataset into the output.
var CopyThroughPaths = []string{
	"DISTRIBUSI/POLE",
	"DISTRIBUSI/FDT",
	"DISTRIBUSI/FAT",
	"DISTRIBUSI/CABLE DISTRIBUTION",
	"DISTRIBUSI/CABLE DROP",
	"DISTRIBUSI/SLING WIRE",
	"QSPAN",
}

// ProgressFunc receives ordered (percent, message) notifications.
// Percent is in the range 0 to 100. Implementations must not block.
type ProgressFunc func(percent float64, message string)

// NopProgress discards progress notifications.
func NopProgress(float64, string) {}

// MergeRequest describes one conflation run.
type MergeRequest struct {
	// RegularPath is the authoritative KMZ (attributes, hooks, copy-through folders).
	RegularPath string

	// AlleyPath is the small-alley KMZ (extra home-passes, FAT boundaries).
	AlleyPath string

	// AreaID names the output file. Required, trimmed.
	AreaID string

	// OutputDir is where the KMZ (and report) are written. Empty means settings default.
	OutputDir string

	// ReportFormat selects an audit report next to the KMZ. Empty means settings default.
	ReportFormat ReportFormat

	// Publish uploads the KMZ through the configured publisher.
	Publish bool
}

// Validate checks operator input before any work starts. It does not
// touch the filesystem.
func (r *MergeRequest) Validate() error {
	if strings.TrimSpace(r.RegularPath) == "" {
		return NewValidationError("regular", "regular KMZ file is required")
	}
	if strings.TrimSpace(r.AlleyPath) == "" {
		return NewValidationError("alley", "small-alley KMZ file is required")
	}
	if strings.TrimSpace(r.AreaID) == "" {
		return NewValidationError("area", "area ID is required")
	}
	if strings.ContainsAny(r.AreaID, `/\`) {
		return NewValidationError("area", "area ID must not contain path separators")
	}
	if r.ReportFormat != "" && !r.ReportFormat.IsValid() {
		return NewValidationError("report", "unknown report format "+string(r.ReportFormat))
	}
	return nil
}

// OutputBaseName returns the file stem used for the KMZ, KML and report.
func (r *MergeRequest) OutputBaseName() string {
	return strings.TrimSpace(r.AreaID) + "_Processed"
}

// MergeStats summarises what a run extracted, matched and wrote.
type MergeStats struct {
	AlleyHomes       int `json:"alley_homes" yaml:"alley_homes"`
	RegularHomes     int `json:"regular_homes" yaml:"regular_homes"`
	Hooks            int `json:"hooks" yaml:"hooks"`
	Boundaries       int `json:"boundaries" yaml:"boundaries"`
	Inherited        int `json:"inherited" yaml:"inherited"`
	ZoneAssigned     int `json:"zone_assigned" yaml:"zone_assigned"`
	HookLinked       int `json:"hook_linked" yaml:"hook_linked"`
	Business         int `json:"business" yaml:"business"`
	Residential      int `json:"residential" yaml:"residential"`
	CopiedElements   int `json:"copied_elements" yaml:"copied_elements"`
	SkippedCopyPaths int `json:"skipped_copy_paths" yaml:"skipped_copy_paths"`
}

// MergeResult is returned for a successful run.
type MergeResult struct {
	RunID        string
	OutputPath   string
	ReportPath   string
	PublishedURL string
	Stats        MergeStats
}
