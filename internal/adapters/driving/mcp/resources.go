package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

const (
	uriScheme = "runs://"

	// RecentURI lists the most recent runs.
	RecentURI = uriScheme + "recent"

	// recentLimit is how many runs RecentURI returns.
	recentLimit = 20

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         RecentURI,
		Name:        "recent-runs",
		Description: "Most recent merge runs with their statistics",
		MIMEType:    mimeJSON,
	}, s.handleRecentRuns)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "{runId}",
		Name:        "run",
		Description: "A single merge run by ID or unique ID prefix",
		MIMEType:    mimeJSON,
	}, s.handleRun)
}

// handleRecentRuns returns the most recent runs as JSON.
func (s *Server) handleRecentRuns(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, []RunOutput{})
	}

	runs, err := s.ports.History.List(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	out := make([]RunOutput, len(runs))
	for i := range runs {
		out[i] = toRunOutput(&runs[i])
	}
	return jsonResult(req.Params.URI, out)
}

// handleRun returns one run as JSON.
func (s *Server) handleRun(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractRunID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return jsonResult(req.Params.URI, toRunOutput(run))
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like runs://{runId}.
func extractRunID(uri string) string {
	if !strings.HasPrefix(uri, uriScheme) {
		return ""
	}
	id := strings.TrimPrefix(uri, uriScheme)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
