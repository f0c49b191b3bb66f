package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure merge settings.

Keys:
  match.hook_radius_m   Inclusive hook linking distance in meters
  match.progress_every  Home-passes between progress updates
  output.dir            Default output directory
  output.report         Default report format: none, xlsx or csv
  history.enabled       Record merge runs
  history.keep          Runs kept in history (0 = all)
  publish.bucket        S3 bucket for --publish
  publish.prefix        Key prefix inside the bucket
  publish.region        AWS region
  publish.endpoint      Custom S3 endpoint (MinIO and similar)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore the default for one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where settings are stored",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsGetCmd, settingsSetCmd, settingsResetCmd, settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Printf("Settings (%s)\n", settingsService.Path())
	for _, key := range settingsService.Keys() {
		val, err := settingsService.GetValue(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		if val == "" {
			val = "(not set)"
		}
		cmd.Printf("  %-22s %s\n", key, val)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	val, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Println(val)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated.\n", args[0])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return err
	}
	val, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s reset to %s.\n", args[0], val)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}
