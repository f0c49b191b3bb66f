package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// Output formats for history commands.
const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

var (
	historyLimit  int
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded merge runs",
	Long:  `Lists recorded merge runs, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one merge run",
	Long:  `Shows a recorded merge run. A unique prefix of the run ID is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs (0 = all)")
	historyCmd.PersistentFlags().StringVarP(&historyOutput, "output", "o", formatTable, "output format: table, yaml or json")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if runHistory == nil {
		return errors.New("history service not configured")
	}

	runs, err := runHistory.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	switch historyOutput {
	case formatYAML, formatJSON:
		if runs == nil {
			runs = []domain.Run{}
		}
		return printStructured(cmd, historyOutput, runs)
	case formatTable:
		return printRunTable(cmd, runs)
	default:
		return fmt.Errorf("unknown output format %q", historyOutput)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return errors.New("history service not configured")
	}

	run, err := runHistory.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %s not found", args[0])
	}
	if err != nil {
		return err
	}

	switch historyOutput {
	case formatYAML, formatJSON:
		return printStructured(cmd, historyOutput, run)
	case formatTable:
		printRunDetail(cmd, run)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", historyOutput)
	}
}

func printStructured(cmd *cobra.Command, format string, v any) error {
	var (
		data []byte
		err  error
	)
	if format == formatJSON {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printRunTable(cmd *cobra.Command, runs []domain.Run) error {
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAREA\tSTATUS\tSTARTED\tDURATION\tHOMES\tLINKED")
	for i := range runs {
		r := &runs[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			shortID(r.ID), r.AreaID, r.Status,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Duration().Round(time.Millisecond),
			r.Stats.AlleyHomes, r.Stats.HookLinked)
	}
	return tw.Flush()
}

func printRunDetail(cmd *cobra.Command, r *domain.Run) {
	cmd.Printf("Run:      %s\n", r.ID)
	cmd.Printf("Area:     %s\n", r.AreaID)
	cmd.Printf("Status:   %s\n", r.Status)
	cmd.Printf("Started:  %s\n", r.StartedAt.Local().Format(time.RFC3339))
	if !r.EndedAt.IsZero() {
		cmd.Printf("Duration: %s\n", r.Duration().Round(time.Millisecond))
	}
	cmd.Printf("Regular:  %s\n", r.RegularPath)
	cmd.Printf("Alley:    %s\n", r.AlleyPath)
	if r.OutputPath != "" {
		cmd.Printf("Output:   %s\n", r.OutputPath)
	}
	if r.Error != "" {
		cmd.Printf("Error:    %s\n", r.Error)
	}
	if r.Status != domain.RunSucceeded {
		return
	}

	s := r.Stats
	cmd.Println()
	cmd.Printf("  Small-alley home-passes: %d\n", s.AlleyHomes)
	cmd.Printf("  Regular home-passes:     %d\n", s.RegularHomes)
	cmd.Printf("  Hooks:                   %d\n", s.Hooks)
	cmd.Printf("  FAT boundaries:          %d\n", s.Boundaries)
	cmd.Printf("  Inherited:               %d\n", s.Inherited)
	cmd.Printf("  FAT assigned:            %d\n", s.ZoneAssigned)
	cmd.Printf("  Hook linked:             %d\n", s.HookLinked)
	cmd.Printf("  Residential / business:  %d / %d\n", s.Residential, s.Business)
	cmd.Printf("  Copied elements:         %d\n", s.CopiedElements)
}

// shortID trims a UUID to its first block for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
