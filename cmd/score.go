package cmd

import (
	"github.com/huangsam/codequal/core"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor runs a core executor against the validated config and exits on failure.
func runExecutor(msg string, executeFunc core.ExecutorFunc) {
	if err := executeFunc(rootCtx, cfg, cacheManager); err != nil {
		contract.LogFatal(msg, err)
	}
}

// scoreCmd scores a single project version.
var scoreCmd = &cobra.Command{
	Use:   "score <results-dir>",
	Short: "Score one project version and rank its classes",
	Long: `Compute the six quality indicators for every class of one project version,
then fold them up the package hierarchy.

The results directory holds the SourceMeter and PMD output of one scan:
  <short>-Class.csv, <short>-Method.csv and <short>-PMD.xml

Indicators:
  maintainability, testability, readability, reusability (higher is better)
  inheritance, complexity (lower is better)

Examples:
  # Rank the least maintainable classes
  codequal score results/jsoup-1.15.1 --project jhy/jsoup

  # Show every indicator for the most complex classes in one package
  codequal score results/jsoup-1.15.1 --project jhy/jsoup --indicator complexity --detail --filter jsoup/org/jsoup/nodes

  # Emit the complexity hierarchy as JSON for a sunburst chart
  codequal score results/jsoup-1.15.1 --project jhy/jsoup --indicator complexity --chart --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run score analysis", core.ExecuteScore)
	},
}
