package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolates(t *testing.T) {
	tests := []struct {
		name      string
		ind       schema.Indicator
		value     float64
		threshold float64
		expected  bool
	}{
		{"maintainability below", schema.Maintainability, -1.5, -1, true},
		{"maintainability at threshold", schema.Maintainability, -1, -1, false},
		{"complexity above", schema.Complexity, 51, 50, true},
		{"complexity at threshold", schema.Complexity, 50, 50, false},
		{"inheritance below", schema.Inheritance, 0.1, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, violates(tt.ind, tt.value, tt.threshold))
		})
	}
}

func checkScore() *schema.ScoreResult {
	return &schema.ScoreResult{
		Version: "1.0",
		Classes: []schema.ClassScore{
			{Path: "p/a/X", Indicators: schema.Indicators{Maintainability: -1.5, Complexity: 5}},
			{Path: "p/b/Y", Indicators: schema.Indicators{Maintainability: 0.5, Complexity: 30}},
		},
	}
}

func TestCheckClasses(t *testing.T) {
	t.Run("violations", func(t *testing.T) {
		cfg := testConfig()
		cfg.Thresholds = map[schema.Indicator]float64{schema.Maintainability: -1, schema.Complexity: 20}

		result := checkClasses(checkScore(), cfg)
		assert.False(t, result.Passed)
		assert.Equal(t, 2, result.TotalClasses)
		assert.Equal(t, []schema.CheckFailedClass{
			{Path: "p/a/X", Indicator: schema.Maintainability, Value: -1.5, Threshold: -1},
			{Path: "p/b/Y", Indicator: schema.Complexity, Value: 30, Threshold: 20},
		}, result.FailedClasses)
		assert.Equal(t, map[schema.Indicator]float64{schema.Maintainability: -1.5, schema.Complexity: 30}, result.WorstValues)
	})

	t.Run("excluded classes are skipped", func(t *testing.T) {
		cfg := testConfig()
		cfg.Thresholds = map[schema.Indicator]float64{schema.Complexity: 20}
		cfg.Excludes = []string{"p/b/"}

		result := checkClasses(checkScore(), cfg)
		assert.True(t, result.Passed)
		assert.Equal(t, 1, result.TotalClasses)
		assert.Equal(t, 5.0, result.WorstValues[schema.Complexity])
	})
}

func TestGetCheckResults(t *testing.T) {
	t.Run("no thresholds", func(t *testing.T) {
		_, err := GetCheckResults(context.Background(), testConfig(fixtureDir), nil)
		assert.ErrorContains(t, err, "no thresholds")
	})

	t.Run("fixture passes", func(t *testing.T) {
		cfg := testConfig(fixtureDir)
		cfg.Thresholds = map[schema.Indicator]float64{schema.Complexity: 20}

		result, err := GetCheckResults(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.True(t, result.Passed)
		assert.Equal(t, 3, result.TotalClasses)
		assert.Equal(t, 15.0, result.WorstValues[schema.Complexity])
	})

	t.Run("fixture fails", func(t *testing.T) {
		cfg := testConfig(fixtureDir)
		cfg.Thresholds = map[schema.Indicator]float64{schema.Complexity: 10}

		err := ExecuteCheck(context.Background(), cfg, nil)
		assert.ErrorIs(t, err, ErrCheckFailed)
		assert.ErrorContains(t, err, "1 violation(s) found")
	})
}

func TestPrintCheckResult(t *testing.T) {
	thresholds := map[schema.Indicator]float64{schema.Maintainability: -1, schema.Complexity: 20}

	t.Run("passed", func(t *testing.T) {
		var buf bytes.Buffer
		printCheckResult(&buf, &schema.CheckResult{
			Passed:       true,
			Version:      "1.0",
			TotalClasses: 4,
			Thresholds:   thresholds,
			WorstValues:  map[schema.Indicator]float64{schema.Maintainability: -0.5, schema.Complexity: 12},
		}, time.Second)

		out := buf.String()
		assert.Contains(t, out, "Policy Check Results:")
		assert.Contains(t, out, "maintainability=-1.00, complexity=20.00")
		assert.Contains(t, out, "Checked 4 classes in 1s")
		assert.Contains(t, out, "✅ All classes passed policy checks")
		assert.Contains(t, out, "complexity: 12.00")
	})

	t.Run("failed", func(t *testing.T) {
		var failed []schema.CheckFailedClass
		for i := range 7 {
			failed = append(failed, schema.CheckFailedClass{
				Path: "p/C" + string(rune('a'+i)), Indicator: schema.Complexity, Value: float64(21 + i), Threshold: 20,
			})
		}
		var buf bytes.Buffer
		printCheckResult(&buf, &schema.CheckResult{
			Version:       "1.0",
			TotalClasses:  7,
			Thresholds:    thresholds,
			FailedClasses: failed,
		}, time.Second)

		out := buf.String()
		assert.Contains(t, out, "❌ Policy check failed: 7 violation(s) found across 7 classes")
		assert.Contains(t, out, "Indicator: complexity (7 violations)")
		assert.Contains(t, out, "  - p/Cg (value: 27.00 > threshold: 20.00)")
		assert.Contains(t, out, "... and 2 more")
		assert.NotContains(t, out, "p/Ca ")
		assert.NotContains(t, out, "Indicator: maintainability")
	})
}
