package core

import (
	"context"
	"testing"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name         string
		baseExists   bool
		targetExists bool
		expected     schema.Status
	}{
		{"new", false, true, schema.NewStatus},
		{"active", true, true, schema.ActiveStatus},
		{"inactive", true, false, schema.InactiveStatus},
		{"unknown", false, false, schema.UnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineStatus(tt.baseExists, tt.targetExists))
		})
	}
}

func TestIsImprovement(t *testing.T) {
	tests := []struct {
		name     string
		ind      schema.Indicator
		delta    float64
		expected bool
	}{
		{"maintainability up", schema.Maintainability, 1, true},
		{"maintainability down", schema.Maintainability, -1, false},
		{"complexity down", schema.Complexity, -3, true},
		{"complexity up", schema.Complexity, 3, false},
		{"readability down", schema.Readability, -0.2, true},
		{"no change", schema.Testability, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isImprovement(tt.ind, tt.delta))
		})
	}
}

func compareFixture() (*schema.ScoreResult, *schema.ScoreResult) {
	base := &schema.ScoreResult{
		Version: "1.0",
		Tree:    &schema.HierarchyNode{Indicators: schema.Indicators{Complexity: 10}},
		Classes: []schema.ClassScore{
			{Path: "p/a/A", Indicators: schema.Indicators{Maintainability: 1}},
			{Path: "p/a/B", Indicators: schema.Indicators{Maintainability: -1}},
			{Path: "p/b/C", Indicators: schema.Indicators{Maintainability: 0}},
		},
	}
	target := &schema.ScoreResult{
		Version: "2.0",
		Tree:    &schema.HierarchyNode{Indicators: schema.Indicators{Complexity: 14}},
		Classes: []schema.ClassScore{
			{Path: "p/a/A", Indicators: schema.Indicators{Maintainability: 1}},
			{Path: "p/a/B", Indicators: schema.Indicators{Maintainability: 1}},
			{Path: "p/b/D", Indicators: schema.Indicators{Maintainability: -2}},
		},
	}
	return base, target
}

func TestCompareScores(t *testing.T) {
	base, target := compareFixture()
	cfg := testConfig()
	cfg.Indicator = schema.Maintainability

	result := compareScores(base, target, cfg)

	assert.Equal(t, schema.ComparisonSummary{
		BaseVersion:          "1.0",
		TargetVersion:        "2.0",
		RootDelta:            schema.Indicators{Complexity: 4},
		TotalNewClasses:      1,
		TotalRemovedClasses:  1,
		TotalModifiedClasses: 1,
		TotalImproved:        1,
		TotalRegressed:       0,
	}, result.Summary)

	// Unchanged A is dropped; worst regression first
	require.Len(t, result.Details, 3)
	assert.Equal(t, "p/b/D", result.Details[0].Path)
	assert.Equal(t, schema.NewStatus, result.Details[0].Status)
	assert.Equal(t, -2.0, result.Details[0].Delta)
	assert.False(t, result.Details[0].Improved)

	assert.Equal(t, "p/b/C", result.Details[1].Path)
	assert.Equal(t, schema.InactiveStatus, result.Details[1].Status)

	assert.Equal(t, "p/a/B", result.Details[2].Path)
	assert.Equal(t, schema.ActiveStatus, result.Details[2].Status)
	assert.Equal(t, -1.0, result.Details[2].Before)
	assert.Equal(t, 1.0, result.Details[2].After)
	assert.True(t, result.Details[2].Improved)
}

func TestCompareScoresFilterAndLimit(t *testing.T) {
	base, target := compareFixture()

	t.Run("filter keeps summary", func(t *testing.T) {
		cfg := testConfig()
		cfg.Indicator = schema.Maintainability
		cfg.PathFilter = "p/a"

		result := compareScores(base, target, cfg)
		require.Len(t, result.Details, 1)
		assert.Equal(t, "p/a/B", result.Details[0].Path)
		assert.Equal(t, 1, result.Summary.TotalNewClasses)
	})

	t.Run("limit", func(t *testing.T) {
		cfg := testConfig()
		cfg.Indicator = schema.Maintainability
		cfg.ResultLimit = 1

		result := compareScores(base, target, cfg)
		require.Len(t, result.Details, 1)
		assert.Equal(t, "p/b/D", result.Details[0].Path)
	})
}

func TestGetCompareResults(t *testing.T) {
	t.Run("same inputs", func(t *testing.T) {
		cfg := testConfig(fixtureDir, fixtureDir)
		cfg.VersionNames = []string{"before", "after"}

		result, err := GetCompareResults(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Details)
		assert.Equal(t, "before", result.Summary.BaseVersion)
		assert.Equal(t, "after", result.Summary.TargetVersion)
		assert.Equal(t, schema.Indicators{}, result.Summary.RootDelta)
		assert.Zero(t, result.Summary.TotalModifiedClasses)
	})

	t.Run("wrong directory count", func(t *testing.T) {
		_, err := GetCompareResults(context.Background(), testConfig(fixtureDir), nil)
		assert.Error(t, err)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := GetCompareResults(context.Background(), testConfig(fixtureDir, t.TempDir()), nil)
		assert.ErrorContains(t, err, "scoring target")
	})
}
