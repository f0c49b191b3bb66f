package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI.

The TUI collects the regular KMZ, the small-alley KMZ and the area ID, runs the
merge with a live progress bar and shows the result. Run history and settings
are available from the menu.

Controls:
  ↑/k, ↓/j   Navigate
  Tab        Next field
  Ctrl+O     Cycle report format
  Enter      Select / Merge
  Esc        Back
  Ctrl+C     Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app from the injected services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	app, err := tui.NewApp(tui.NewPorts(mergeService, runHistory, settingsService))
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.WithContext(ctx), nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
