// Package cli provides the kmzmerge command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kmzmerge/internal/core/ports/driving"
	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services injected by main before Execute.
var (
	mergeService    driving.MergeService
	runHistory      driving.RunHistory
	settingsService driving.SettingsService
)

// verbose enables debug logging for every command.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kmzmerge",
	Short: "Merge small-alley home-passes into a regular FTTH KMZ",
	Long: `kmzmerge conflates two FTTH planning KMZ files.

Home-passes from the small-alley dataset inherit attributes from the nearest
regular home-pass, get a FAT_CODE from the FAT boundary that contains them and
are linked to an anchor hook within range. The result is written as
<AREA>_Processed.kmz together with the regular dataset's infrastructure.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services groups the driving ports used by the commands.
type Services struct {
	Merge    driving.MergeService
	History  driving.RunHistory
	Settings driving.SettingsService
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	mergeService = s.Merge
	runHistory = s.History
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}
