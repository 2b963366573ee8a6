package cmd

import (
	"github.com/huangsam/codequal/core"
	"github.com/spf13/cobra"
)

// trendCmd follows the root indicators across many versions.
var trendCmd = &cobra.Command{
	Use:   "trend <results-dir>...",
	Short: "Track project-level indicators across versions",
	Long: `Score every given results directory and report the project-level indicators
per version, in the order the directories are given.

Versions are scored concurrently, bounded by --workers.

Examples:
  # Trend three releases, naming versions after their directories
  codequal trend results/1.13.1 results/1.14.3 results/1.15.1 --project jhy/jsoup

  # Explicit version names
  codequal trend a b c --project jhy/jsoup --versions 1.13.1,1.14.3,1.15.1 --output csv`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run trend analysis", core.ExecuteTrend)
	},
}
