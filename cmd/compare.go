package cmd

import (
	"github.com/huangsam/codequal/core"
	"github.com/spf13/cobra"
)

// compareCmd focused on per-class deltas between two versions.
var compareCmd = &cobra.Command{
	Use:   "compare <base-dir> <target-dir>",
	Short: "Compare class indicators between two versions",
	Long: `Score two versions and report how each class changed on the selected indicator.

Ideal for:
- Release comparisons - see what changed between versions
- Refactoring validation - verify changes improved the indicator
- Regression detection - catch classes getting worse

Classes only present in one version are reported as new or removed.
Regressions are listed first.

Examples:
  # Compare maintainability between two releases
  codequal compare results/1.14.3 results/1.15.1 --project jhy/jsoup

  # Export complexity deltas to CSV
  codequal compare results/1.14.3 results/1.15.1 --project jhy/jsoup --indicator complexity --output csv --output-file deltas.csv`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run compare analysis", core.ExecuteCompare)
	},
}
