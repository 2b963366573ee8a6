package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/huangsam/codequal/core/algo"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/outwriter"
	"github.com/huangsam/codequal/schema"
)

// minSignificantDelta is the smallest change of an active class that is reported.
const minSignificantDelta = 0.01

// GetCompareResults scores the base and target versions and computes per-class deltas.
func GetCompareResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.ComparisonResult, error) {
	if len(cfg.ResultsDirs) != 2 {
		return nil, fmt.Errorf("compare expects a base and a target results directory (received %d)", len(cfg.ResultsDirs))
	}
	if !shouldSuppressHeader(ctx) {
		logCompareHeader(cfg)
	}

	quiet := WithSuppressHeader(ctx)
	base, err := runScore(quiet, cfg, cfg.ResultsDirs[0], cfg.VersionNames[0], mgr)
	if err != nil {
		return nil, fmt.Errorf("scoring base %s: %w", cfg.VersionNames[0], err)
	}
	target, err := runScore(quiet, cfg, cfg.ResultsDirs[1], cfg.VersionNames[1], mgr)
	if err != nil {
		return nil, fmt.Errorf("scoring target %s: %w", cfg.VersionNames[1], err)
	}

	result := compareScores(base, target, cfg)
	return &result, nil
}

// ExecuteCompare prints the per-class deltas between two versions.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetCompareResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteComparison(*result, cfg, time.Since(start))
}

// compareScores matches classes of both versions by entity path and computes the
// delta of the configured indicator. Base classes come first in table order,
// followed by classes that only exist in the target.
func compareScores(base, target *schema.ScoreResult, cfg *contract.Config) schema.ComparisonResult {
	ind := cfg.Indicator
	baseTable := schema.NewClassTable(base.Classes)
	targetTable := schema.NewClassTable(target.Classes)

	paths := baseTable.Paths()
	for _, p := range targetTable.Paths() {
		if _, ok := baseTable.Lookup(p); !ok {
			paths = append(paths, p)
		}
	}

	summary := schema.ComparisonSummary{
		BaseVersion:   base.Version,
		TargetVersion: target.Version,
		RootDelta:     target.Tree.Indicators.Sub(base.Tree.Indicators),
	}
	details := make([]schema.ComparisonDetail, 0, len(paths))

	for _, path := range paths {
		baseRow, baseExists := baseTable.Lookup(path)
		targetRow, targetExists := targetTable.Lookup(path)

		var before, after float64
		if baseExists {
			before = baseRow.Get(ind)
		}
		if targetExists {
			after = targetRow.Get(ind)
		}
		delta := after - before
		status := determineStatus(baseExists, targetExists)

		switch status {
		case schema.NewStatus:
			summary.TotalNewClasses++
		case schema.InactiveStatus:
			summary.TotalRemovedClasses++
		case schema.ActiveStatus:
			if math.Abs(delta) <= minSignificantDelta {
				continue
			}
			summary.TotalModifiedClasses++
		}

		improved := isImprovement(ind, delta)
		if status == schema.ActiveStatus {
			if improved {
				summary.TotalImproved++
			} else {
				summary.TotalRegressed++
			}
		}

		if !contract.FilterPaths(path, cfg.PathFilter, cfg.Excludes) {
			continue
		}
		details = append(details, schema.ComparisonDetail{
			Path:      path,
			Before:    before,
			After:     after,
			Delta:     delta,
			Improved:  improved,
			Status:    status,
			Indicator: ind,
		})
	}

	return schema.ComparisonResult{
		Details: algo.RankDetails(details, cfg.ResultLimit),
		Summary: summary,
	}
}

// isImprovement reports whether a delta moves the indicator towards better quality.
func isImprovement(ind schema.Indicator, delta float64) bool {
	if delta == 0 {
		return false
	}
	if schema.LowerIsBetter(ind) {
		return delta < 0
	}
	return delta > 0
}

// determineStatus returns the status based on existence in base and target.
func determineStatus(baseExists, targetExists bool) schema.Status {
	switch {
	case !baseExists && targetExists:
		return schema.NewStatus
	case baseExists && targetExists:
		return schema.ActiveStatus
	case baseExists: // Target does not exist in this case
		return schema.InactiveStatus
	default:
		return schema.UnknownStatus
	}
}
