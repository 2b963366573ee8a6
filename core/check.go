package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// ErrCheckFailed is returned when at least one class violates a threshold.
var ErrCheckFailed = errors.New("policy check failed")

// maxViolationsShown caps the violations listed per indicator.
const maxViolationsShown = 5

// ExecuteCheck runs the check command for CI/CD gating.
// It scores one version and fails when any class is worse than its indicator threshold.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	printCheckResult(os.Stdout, result, time.Since(start))
	if !result.Passed {
		return fmt.Errorf("%w: %d violation(s) found", ErrCheckFailed, len(result.FailedClasses))
	}
	return nil
}

// GetCheckResults scores the configured version and checks every class against the
// configured thresholds.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.CheckResult, error) {
	if len(cfg.Thresholds) == 0 {
		return nil, errors.New("no thresholds configured. use --thresholds-override or the thresholds section of the config file")
	}
	score, err := GetScoreResults(WithSuppressHeader(ctx), cfg, mgr)
	if err != nil {
		return nil, err
	}
	return checkClasses(score, cfg), nil
}

// violates reports whether a value is on the wrong side of a threshold.
func violates(ind schema.Indicator, value, threshold float64) bool {
	if schema.LowerIsBetter(ind) {
		return value > threshold
	}
	return value < threshold
}

// checkClasses builds the check result of one scored version.
func checkClasses(score *schema.ScoreResult, cfg *contract.Config) *schema.CheckResult {
	result := &schema.CheckResult{
		Version:     score.Version,
		Thresholds:  cfg.Thresholds,
		WorstValues: make(map[schema.Indicator]float64, len(cfg.Thresholds)),
	}

	for _, c := range score.Classes {
		if !contract.FilterPaths(c.Path, cfg.PathFilter, cfg.Excludes) {
			continue
		}
		result.TotalClasses++

		for _, ind := range schema.AllIndicators {
			threshold, ok := cfg.Thresholds[ind]
			if !ok {
				continue
			}
			value := c.Get(ind)
			if worst, ok := result.WorstValues[ind]; !ok || violates(ind, value, worst) {
				result.WorstValues[ind] = value
			}
			if violates(ind, value, threshold) {
				result.FailedClasses = append(result.FailedClasses, schema.CheckFailedClass{
					Path:      c.Path,
					Indicator: ind,
					Value:     value,
					Threshold: threshold,
				})
			}
		}
	}

	result.Passed = len(result.FailedClasses) == 0
	return result
}

// checkedIndicators returns the thresholded indicators in canonical order.
func checkedIndicators(thresholds map[schema.Indicator]float64) []schema.Indicator {
	var out []schema.Indicator
	for _, ind := range schema.AllIndicators {
		if _, ok := thresholds[ind]; ok {
			out = append(out, ind)
		}
	}
	return out
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	printCheckHeader(w, result, duration)

	if result.Passed {
		printCheckSuccess(w, result)
	} else {
		printCheckFailure(w, result)
	}
}

// printCheckHeader prints the common header information for check results.
func printCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Policy Check Results:")

	parts := make([]string, 0, len(result.Thresholds))
	for _, ind := range checkedIndicators(result.Thresholds) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", ind, result.Thresholds[ind]))
	}

	// Define labels and values for dynamic padding
	labels := []string{"Version:", "Thresholds:"}
	values := []any{result.Version, strings.Join(parts, ", ")}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}

	for i, label := range labels {
		_, _ = fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "Checked %d classes in %v\n\n", result.TotalClasses, duration)
}

// printCheckSuccess prints the success case output.
func printCheckSuccess(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "✅ All classes passed policy checks\n\n")
	_, _ = fmt.Fprintln(w, "Worst values observed:")
	for _, ind := range checkedIndicators(result.Thresholds) {
		_, _ = fmt.Fprintf(w, "  %s: %.2f\n", ind, result.WorstValues[ind])
	}
}

// printCheckFailure prints the failure case output.
func printCheckFailure(w io.Writer, result *schema.CheckResult) {
	_, _ = fmt.Fprintf(w, "❌ Policy check failed: %d violation(s) found across %d classes\n\n", len(result.FailedClasses), result.TotalClasses)

	// Group by indicator for better readability
	groups := make(map[schema.Indicator][]schema.CheckFailedClass)
	for _, failed := range result.FailedClasses {
		groups[failed.Indicator] = append(groups[failed.Indicator], failed)
	}

	for _, ind := range checkedIndicators(result.Thresholds) {
		classes := groups[ind]
		if len(classes) == 0 {
			continue
		}

		// Worst first
		sort.SliceStable(classes, func(i, j int) bool {
			return violates(ind, classes[i].Value, classes[j].Value)
		})

		_, _ = fmt.Fprintf(w, "Indicator: %s (%d violations)\n", ind, len(classes))
		op := "<"
		if schema.LowerIsBetter(ind) {
			op = ">"
		}
		for i, c := range classes {
			if i == maxViolationsShown {
				_, _ = fmt.Fprintf(w, "  ... and %d more\n", len(classes)-i)
				break
			}
			_, _ = fmt.Fprintf(w, "  - %s (value: %.2f %s threshold: %.2f)\n", c.Path, c.Value, op, c.Threshold)
		}
		_, _ = fmt.Fprintln(w)
	}
}
