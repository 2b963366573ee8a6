package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/codequal/core/agg"
	"github.com/huangsam/codequal/core/algo"
	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// loadAndMerge reads one results directory and merges its six indicators per class.
func loadAndMerge(ctx context.Context, cfg *contract.Config, dir string) (*metrics.Version, *algo.IndicatorSet, *schema.ClassTable, error) {
	v, err := metrics.Load(dir, cfg.ShortName)
	if err != nil {
		return nil, nil, nil, err
	}
	set, err := algo.ComputeIndicators(ctx, v, cfg.Workers)
	if err != nil {
		return nil, nil, nil, err
	}
	table, err := algo.Merge(v, set, cfg.ShortName)
	if err != nil {
		return nil, nil, nil, err
	}
	return v, set, table, nil
}

// scoreVersion computes the aggregated tree of one version from its results directory.
func scoreVersion(ctx context.Context, cfg *contract.Config, dir, version string) (*schema.ScoreResult, error) {
	_, set, table, err := loadAndMerge(ctx, cfg, dir)
	if err != nil {
		return nil, err
	}
	return &schema.ScoreResult{
		Project: cfg.Project,
		Version: version,
		Tree:    agg.Build(table, cfg.Project, version, cfg.ShortName),
		Classes: table.Rows,
		Smells:  set.Smells,
	}, nil
}

// runScore scores one version through the result cache and records the run in the
// analysis store when one is configured.
func runScore(ctx context.Context, cfg *contract.Config, dir, version string, mgr contract.CacheManager) (*schema.ScoreResult, error) {
	if !shouldSuppressHeader(ctx) {
		logScoreHeader(cfg, dir, version)
	}

	// --- 1. Begin Run Tracking (if configured) ---
	var runID int64
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		var err error
		runID, err = analysisStore.BeginRun(schema.RunInfo{
			RunUUID:   uuid.NewString(),
			Project:   cfg.Project,
			Version:   version,
			StartTime: time.Now(),
			Params: map[string]any{
				"results_dir": dir,
				"short_name":  cfg.ShortName,
				"workers":     cfg.Workers,
			},
		})
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	// --- 2. Scoring (with caching) ---
	result, err := cachedScore(ctx, cfg, dir, version, mgr)
	if err != nil {
		return nil, err
	}

	// --- 3. End Run Tracking ---
	if analysisStore != nil && runID > 0 {
		now := time.Now()
		if err := analysisStore.RecordClassScores(runID, now, result.Classes); err != nil {
			contract.LogWarn("Failed to record class scores", err)
		}
		if err := analysisStore.EndRun(runID, now, len(result.Classes)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return result, nil
}
