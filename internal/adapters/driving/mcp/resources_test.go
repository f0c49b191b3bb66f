package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRunID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid run URI", uri: "runs://a1b2c3d4", expected: "a1b2c3d4"},
		{name: "invalid prefix", uri: "file://a1b2c3d4", expected: ""},
		{name: "nested path", uri: "runs://a1b2/extra", expected: ""},
		{name: "scheme only", uri: "runs://", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractRunID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleRecentRuns(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Merge: &mockMergeService{}})
		require.NoError(t, err)

		result, err := server.handleRecentRuns(ctx, makeReadResourceRequest(RecentURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, RecentURI, result.Contents[0].URI)
	})

	t.Run("returns runs as JSON", func(t *testing.T) {
		history := &mockRunHistory{runs: sampleRuns()}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, History: history})
		require.NoError(t, err)

		result, err := server.handleRecentRuns(ctx, makeReadResourceRequest(RecentURI))

		require.NoError(t, err)
		assert.Equal(t, recentLimit, history.limit)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var runs []RunOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "JKT01", runs[0].AreaID)
		assert.Equal(t, "/out/JKT01_Processed.kmz", runs[0].OutputPath)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		history := &mockRunHistory{err: errors.New("database error")}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, History: history})
		require.NoError(t, err)

		_, err = server.handleRecentRuns(ctx, makeReadResourceRequest(RecentURI))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing runs")
	})
}

func TestServer_handleRun(t *testing.T) {
	ctx := context.Background()

	t.Run("nil history returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Merge: &mockMergeService{}})
		require.NoError(t, err)

		_, err = server.handleRun(ctx, makeReadResourceRequest("runs://a1b2"))

		require.Error(t, err)
	})

	t.Run("returns run by prefix", func(t *testing.T) {
		history := &mockRunHistory{runs: sampleRuns()}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, History: history})
		require.NoError(t, err)

		result, err := server.handleRun(ctx, makeReadResourceRequest("runs://a1b2"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "a1b2c3d4-0000-4000-8000-000000000001")
		assert.Contains(t, result.Contents[0].Text, `"status": "succeeded"`)
	})

	t.Run("unknown run returns not found", func(t *testing.T) {
		history := &mockRunHistory{runs: sampleRuns()}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, History: history})
		require.NoError(t, err)

		_, err = server.handleRun(ctx, makeReadResourceRequest("runs://ffff"))

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "getting run")
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		history := &mockRunHistory{runs: sampleRuns()}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, History: history})
		require.NoError(t, err)

		_, err = server.handleRun(ctx, makeReadResourceRequest("runs://a/b"))

		require.Error(t, err)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		history := &mockRunHistory{err: errors.New("database error")}
		server, err := NewServer(&Ports{Merge: &mockMergeService{}, History: history})
		require.NoError(t, err)

		_, err = server.handleRun(ctx, makeReadResourceRequest("runs://a1b2"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting run")
	})
}
