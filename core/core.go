// Package core has core logic for scoring, trending, comparing and validating
// project versions.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/codequal/core/agg"
	"github.com/huangsam/codequal/core/algo"
	"github.com/huangsam/codequal/core/stats"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/outwriter"
	"github.com/huangsam/codequal/schema"
	"golang.org/x/sync/errgroup"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// GetScoreResults scores the single configured version.
func GetScoreResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.ScoreResult, error) {
	if len(cfg.ResultsDirs) != 1 {
		return nil, fmt.Errorf("score expects exactly one results directory (received %d)", len(cfg.ResultsDirs))
	}
	return runScore(ctx, cfg, cfg.ResultsDirs[0], cfg.VersionNames[0], mgr)
}

// ExecuteScore scores one version and prints either its ranked classes or the
// single-indicator chart tree.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetScoreResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ow := outwriter.NewOutWriter()
	if cfg.Chart {
		return ow.WriteChart(agg.Extract(result.Tree, cfg.Indicator), cfg)
	}
	ranked := RankedClasses(result.Classes, cfg)
	return ow.WriteScore(result, ranked, cfg, time.Since(start))
}

// RankedClasses filters the classes by path, ranks them worst-first by the
// configured indicator and keeps the top ResultLimit entries.
func RankedClasses(classes []schema.ClassScore, cfg *contract.Config) []schema.EnrichedClassScore {
	filtered := make([]schema.ClassScore, 0, len(classes))
	for _, c := range classes {
		if contract.FilterPaths(c.Path, cfg.PathFilter, cfg.Excludes) {
			filtered = append(filtered, c)
		}
	}
	return schema.EnrichClasses(algo.RankClasses(filtered, cfg.Indicator, cfg.ResultLimit))
}

// GetTrendResults scores every configured version and collects their root totals
// in version order.
func GetTrendResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.TrendResult, error) {
	if len(cfg.ResultsDirs) < 2 {
		return nil, fmt.Errorf("trend expects at least two results directories (received %d)", len(cfg.ResultsDirs))
	}
	if !shouldSuppressHeader(ctx) {
		logTrendHeader(cfg)
	}

	points := make([]schema.TrendPoint, len(cfg.ResultsDirs))
	g, gctx := errgroup.WithContext(WithSuppressHeader(ctx))
	g.SetLimit(cfg.Workers)
	for i, dir := range cfg.ResultsDirs {
		version := cfg.VersionNames[i]
		g.Go(func() error {
			result, err := runScore(gctx, cfg, dir, version, mgr)
			if err != nil {
				return fmt.Errorf("scoring %s: %w", version, err)
			}
			points[i] = schema.TrendPoint{
				Version:    version,
				Classes:    len(result.Classes),
				Indicators: result.Tree.Indicators,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &schema.TrendResult{Project: cfg.Project, Points: points}, nil
}

// ExecuteTrend prints the root totals of several versions in order.
func ExecuteTrend(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetTrendResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTrend(*result, cfg, time.Since(start))
}

// GetValidateResults correlates the configured indicator with raw class metrics.
// Validation always reads the inputs fresh since it needs the raw metrics.
func GetValidateResults(ctx context.Context, cfg *contract.Config) (*schema.ValidationResult, error) {
	if len(cfg.ResultsDirs) != 1 {
		return nil, fmt.Errorf("validate expects exactly one results directory (received %d)", len(cfg.ResultsDirs))
	}
	if !shouldSuppressHeader(ctx) {
		logScoreHeader(cfg, cfg.ResultsDirs[0], cfg.VersionNames[0])
	}
	v, _, table, err := loadAndMerge(ctx, cfg, cfg.ResultsDirs[0])
	if err != nil {
		return nil, err
	}
	return &schema.ValidationResult{
		Version:      cfg.VersionNames[0],
		Indicator:    cfg.Indicator,
		Correlations: stats.Validate(v, table, cfg.Indicator),
	}, nil
}

// ExecuteValidate prints the rank correlations of one indicator.
func ExecuteValidate(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	result, err := GetValidateResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteValidation(*result, cfg, time.Since(start))
}
