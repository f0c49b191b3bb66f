package domain

import "time"

// RunStatus is the lifecycle state of a merge run.
type RunStatus string

// Run states.
const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is one merge as recorded in history.
type Run struct {
	// ID is the unique identifier for the run.
	ID string `json:"id" yaml:"id"`

	// AreaID is the operator-supplied area identifier.
	AreaID string `json:"area_id" yaml:"area_id"`

	// RegularPath and AlleyPath are the input KMZ files.
	RegularPath string `json:"regular_path" yaml:"regular_path"`
	AlleyPath   string `json:"alley_path" yaml:"alley_path"`

	// OutputPath is the written KMZ, empty until the run succeeds.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Status is the current state.
	Status RunStatus `json:"status" yaml:"status"`

	// Error contains the failure message if Status is RunFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// StartedAt is when the run started.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// EndedAt is when the run finished; zero while running.
	EndedAt time.Time `json:"ended_at,omitempty" yaml:"ended_at,omitempty"`

	// Stats is filled in on success.
	Stats MergeStats `json:"stats" yaml:"stats"`
}

// Duration returns how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Finish marks the run as ended with the given error (nil for success).
func (r *Run) Finish(at time.Time, err error) {
	r.EndedAt = at
	if err != nil {
		r.Status = RunFailed
		r.Error = err.Error()
		return
	}
	r.Status = RunSucceeded
	r.Error = ""
}
