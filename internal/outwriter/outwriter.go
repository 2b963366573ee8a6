// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScore prints the ranked classes of one scored version using the configured output format.
func (ow *OutWriter) WriteScore(result *schema.ScoreResult, ranked []schema.EnrichedClassScore, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResults(result, ranked, cfg, duration)
}

// WriteChart prints the single-indicator tree of one scored version.
func (ow *OutWriter) WriteChart(chart schema.ChartNode, cfg *contract.Config) error {
	return WriteChartResults(chart, cfg)
}

// WriteTrend prints the root totals of several versions using the configured output format.
func (ow *OutWriter) WriteTrend(result schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTrendResults(result, cfg, duration)
}

// WriteComparison prints comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(result, cfg, duration)
}

// WriteValidation prints indicator correlations using the configured output format.
func (ow *OutWriter) WriteValidation(result schema.ValidationResult, cfg *contract.Config, duration time.Duration) error {
	return WriteValidationResults(result, cfg, duration)
}
