package cmd

import (
	"github.com/huangsam/codequal/core"
	"github.com/spf13/cobra"
)

// validateCmd correlates an indicator with raw class metrics.
var validateCmd = &cobra.Command{
	Use:   "validate <results-dir>",
	Short: "Correlate an indicator with raw SourceMeter metrics",
	Long: `Compute the Spearman rank correlation between the selected indicator and
eleven raw class metrics (LOC, SIZE2, NLM, NOC, WMC, RFC, DIT, CBO, NOI, NII, LCOM5).

Each row reports the coefficient, its two-sided p-value and the sample size.
A coefficient is undefined when either column is constant.

Examples:
  codequal validate results/1.15.1 --project jhy/jsoup --indicator readability`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run validation", core.ExecuteValidate)
	},
}
