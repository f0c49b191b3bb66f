package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kmzmerge/internal/watch"
)

var (
	watchOpts     mergeFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the merge whenever an input KMZ changes",
	Long: `Runs a merge once, then watches both input files and merges again after
each change. Runs never overlap. Press Ctrl-C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchOpts.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	w, err := watch.New([]string{watchOpts.regular, watchOpts.alley}, watchDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	once := func(ctx context.Context) error {
		bar := newProgressPrinter(cmd.ErrOrStderr())
		result, err := mergeService.Merge(ctx, watchOpts.request(), bar.Update)
		bar.Done()
		if err != nil {
			cmd.PrintErrf("merge failed: %v\n", err)
			return ctx.Err()
		}
		printResult(cmd, result)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_ = once(ctx)

	cmd.Printf("Watching %s and %s\n", watchOpts.regular, watchOpts.alley)
	err = w.Run(ctx, once)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("watch stopped: %w", err)
	}
	return nil
}
