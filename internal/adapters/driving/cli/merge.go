package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// mergeFlags are shared by merge and watch.
type mergeFlags struct {
	regular string
	alley   string
	area    string
	out     string
	report  string
	publish bool
}

func (f *mergeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.regular, "regular", "r", "", "regular KMZ file (attributes, hooks, infrastructure)")
	cmd.Flags().StringVarP(&f.alley, "alley", "a", "", "small-alley KMZ file (extra home-passes, FAT boundaries)")
	cmd.Flags().StringVar(&f.area, "area", "", "area ID used to name the output file")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (default from settings)")
	cmd.Flags().StringVar(&f.report, "report", "", "audit report format: none, xlsx or csv (default from settings)")
	cmd.Flags().BoolVar(&f.publish, "publish", false, "upload the output KMZ to the configured S3 bucket")
	_ = cmd.MarkFlagRequired("regular")
	_ = cmd.MarkFlagRequired("alley")
	_ = cmd.MarkFlagRequired("area")
}

func (f *mergeFlags) request() domain.MergeRequest {
	return domain.MergeRequest{
		RegularPath:  f.regular,
		AlleyPath:    f.alley,
		AreaID:       f.area,
		OutputDir:    f.out,
		ReportFormat: domain.ReportFormat(f.report),
		Publish:      f.publish,
	}
}

var mergeOpts mergeFlags

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a small-alley KMZ into a regular KMZ",
	Long: `Reads both KMZ files, enriches every small-alley home-pass and writes
<AREA>_Processed.kmz to the output directory.

Example:
  kmzmerge merge --regular JKT01.kmz --alley JKT01_alley.kmz --area JKT01 --report xlsx`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	mergeOpts.register(mergeCmd)
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	bar := newProgressPrinter(cmd.ErrOrStderr())
	result, err := mergeService.Merge(cmd.Context(), mergeOpts.request(), bar.Update)
	bar.Done()
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result *domain.MergeResult) {
	s := result.Stats
	cmd.Printf("Wrote %s\n", result.OutputPath)
	if result.ReportPath != "" {
		cmd.Printf("Report: %s\n", result.ReportPath)
	}
	if result.PublishedURL != "" {
		cmd.Printf("Published: %s\n", result.PublishedURL)
	}
	cmd.Printf("Home-passes: %d (%d residential, %d business)\n", s.AlleyHomes, s.Residential, s.Business)
	cmd.Printf("Inherited: %d  FAT assigned: %d  Hook linked: %d\n", s.Inherited, s.ZoneAssigned, s.HookLinked)
	if s.SkippedCopyPaths > 0 {
		cmd.Printf("Skipped copy paths: %d\n", s.SkippedCopyPaths)
	}
	if result.RunID != "" {
		cmd.Printf("Run: %s\n", result.RunID)
	}
}

// progressPrinter renders merge progress as a bar on a terminal and as
// plain lines otherwise.
type progressPrinter struct {
	out io.Writer
	tty bool
	bar progress.Model
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &progressPrinter{
		out: out,
		tty: tty,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// Update implements domain.ProgressFunc.
func (p *progressPrinter) Update(percent float64, message string) {
	if p.tty {
		fmt.Fprintf(p.out, "\r%s %s\x1b[K", p.bar.ViewAs(percent/100), message)
		return
	}
	fmt.Fprintf(p.out, "[%3.0f%%] %s\n", percent, message)
}

// Done ends the bar line.
func (p *progressPrinter) Done() {
	if p.tty {
		fmt.Fprintln(p.out)
	}
}
