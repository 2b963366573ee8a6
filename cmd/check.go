package cmd

import (
	"github.com/huangsam/codequal/core"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <results-dir>",
	Short: "Enforce indicator thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Score one version and fail with a non-zero exit code when any class crosses
an indicator threshold.

For inheritance and complexity a class fails above its threshold. For the other
indicators a class fails below it. Only indicators with a threshold are checked.

Thresholds come from the config file or --thresholds-override:

  thresholds:
    complexity: 60
    maintainability: -2

Examples:
  # Gate a release on complexity
  codequal check results/1.15.1 --project jhy/jsoup --thresholds-override "complexity:60"

  # Several indicators at once
  codequal check results/1.15.1 --project jhy/jsoup --thresholds-override "complexity:60,readability:0.2"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Policy check failed", core.ExecuteCheck)
	},
}
