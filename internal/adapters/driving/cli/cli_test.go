package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// mockMergeService implements driving.MergeService for command tests.
type mockMergeService struct {
	req    domain.MergeRequest
	calls  int
	result *domain.MergeResult
	err    error
}

func (m *mockMergeService) Merge(
	_ context.Context, req domain.MergeRequest, progress domain.ProgressFunc,
) (*domain.MergeResult, error) {
	m.calls++
	m.req = req
	progress(10, "Reading KMZ archives")
	progress(100, "Done")
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockRunHistory implements driving.RunHistory for command tests.
type mockRunHistory struct {
	runs  []domain.Run
	limit int
	err   error
}

func (m *mockRunHistory) List(_ context.Context, limit int) ([]domain.Run, error) {
	m.limit = limit
	return m.runs, m.err
}

func (m *mockRunHistory) Get(_ context.Context, id string) (*domain.Run, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if strings.HasPrefix(m.runs[i].ID, id) {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// resetFlags restores every flag of cmd and its children to the default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and the given services,
// returning stdout and stderr.
func executeCommand(t *testing.T, s Services, args ...string) (string, string, error) {
	t.Helper()

	prevMerge, prevHistory, prevSettings := mergeService, runHistory, settingsService
	SetServices(s)
	resetFlags(rootCmd)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		mergeService, runHistory, settingsService = prevMerge, prevHistory, prevSettings
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
