package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeisme/gosloc/pkg/utils/version"
)

var (
	// Version command flags
	versionDetailed bool
	versionJSON     bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `
Display version information for gosloc.

Examples:
  # Show short version info (default)
  gosloc version

  # Show detailed version info
  gosloc version --detailed

  # Show version info in JSON format
  gosloc version --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		switch {
		case versionJSON:
			output, err := json.MarshalIndent(version.GetVersion(), "", "  ")
			if err != nil {
				return fmt.Errorf("error formatting JSON: %w", err)
			}
			_, err = fmt.Fprintln(out, string(output))
			return err
		case versionDetailed:
			_, err := fmt.Fprintln(out, version.GetVersionString())
			return err
		default:
			_, err := fmt.Fprintln(out, version.GetShortVersionString())
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionDetailed, "detailed", "d", false, "show detailed version information")
	versionCmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "output version information in JSON format")
}
