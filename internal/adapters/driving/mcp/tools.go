package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// defaultListLimit applies when list_runs is called without a limit.
const defaultListLimit = 10

// MergeInput is the input schema for the merge_kmz tool.
type MergeInput struct {
	RegularPath string `json:"regular_path" jsonschema:"path to the regular KMZ (attributes, hooks, infrastructure)"`
	AlleyPath   string `json:"alley_path" jsonschema:"path to the small-alley KMZ (extra homes, FAT boundaries)"`
	AreaID      string `json:"area_id" jsonschema:"area identifier; output is <area_id>_Processed.kmz"`
	OutputDir   string `json:"output_dir,omitempty" jsonschema:"output directory (default from settings)"`
	Report      string `json:"report,omitempty" jsonschema:"audit report format: none, xlsx or csv"`
	Publish     bool   `json:"publish,omitempty" jsonschema:"upload the KMZ to the configured bucket"`
}

// MergeOutput is the output schema for the merge_kmz tool.
type MergeOutput struct {
	RunID        string            `json:"run_id"`
	OutputPath   string            `json:"output_path"`
	ReportPath   string            `json:"report_path,omitempty"`
	PublishedURL string            `json:"published_url,omitempty"`
	Stats        domain.MergeStats `json:"stats"`
}

// ListRunsInput is the input schema for the list_runs tool.
type ListRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default 10)"`
}

// ListRunsOutput is the output schema for the list_runs tool.
type ListRunsOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput is a recorded run as returned to clients.
type RunOutput struct {
	ID         string            `json:"id"`
	AreaID     string            `json:"area_id"`
	Status     string            `json:"status"`
	OutputPath string            `json:"output_path,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMS int64             `json:"duration_ms"`
	Stats      domain.MergeStats `json:"stats"`
}

func toRunOutput(run *domain.Run) RunOutput {
	return RunOutput{
		ID:         run.ID,
		AreaID:     run.AreaID,
		Status:     string(run.Status),
		OutputPath: run.OutputPath,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		DurationMS: run.Duration().Milliseconds(),
		Stats:      run.Stats,
	}
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "merge_kmz",
		Description: "Conflate a small-alley KMZ into a regular KMZ and write <area_id>_Processed.kmz",
	}, s.handleMerge)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_runs",
		Description: "List recent merge runs, newest first",
	}, s.handleListRuns)
}

// handleMerge handles the merge_kmz tool invocation.
func (s *Server) handleMerge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeInput,
) (*mcp.CallToolResult, MergeOutput, error) {
	req := domain.MergeRequest{
		RegularPath:  input.RegularPath,
		AlleyPath:    input.AlleyPath,
		AreaID:       input.AreaID,
		OutputDir:    input.OutputDir,
		ReportFormat: domain.ReportFormat(input.Report),
		Publish:      input.Publish,
	}

	progress := func(percent float64, message string) {
		logger.Debug("mcp merge %s: %3.0f%% %s", input.AreaID, percent, message)
	}

	result, err := s.ports.Merge.Merge(ctx, req, progress)
	if err != nil {
		return nil, MergeOutput{}, fmt.Errorf("merge %s: %w", input.AreaID, err)
	}

	return nil, MergeOutput{
		RunID:        result.RunID,
		OutputPath:   result.OutputPath,
		ReportPath:   result.ReportPath,
		PublishedURL: result.PublishedURL,
		Stats:        result.Stats,
	}, nil
}

// handleListRuns handles the list_runs tool invocation.
func (s *Server) handleListRuns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRunsInput,
) (*mcp.CallToolResult, ListRunsOutput, error) {
	if s.ports.History == nil {
		return nil, ListRunsOutput{Runs: []RunOutput{}}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	runs, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, ListRunsOutput{}, fmt.Errorf("listing runs: %w", err)
	}

	output := ListRunsOutput{
		Runs:  make([]RunOutput, len(runs)),
		Count: len(runs),
	}
	for i := range runs {
		output.Runs[i] = toRunOutput(&runs[i])
	}
	return nil, output, nil
}
