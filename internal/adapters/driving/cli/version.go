package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kmzmerge version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	short, err := cmd.Flags().GetBool("short")
	if err != nil {
		return err
	}
	if short {
		cmd.Println(version)
		return nil
	}
	cmd.Printf("kmzmerge %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
