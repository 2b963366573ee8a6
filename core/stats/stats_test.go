package stats

import (
	"context"
	"testing"

	"github.com/huangsam/codequal/core/algo"
	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected []float64
	}{
		{"empty", nil, []float64{}},
		{"distinct", []float64{30, 10, 20}, []float64{3, 1, 2}},
		{"ties average", []float64{10, 20, 20, 30}, []float64{1, 2.5, 2.5, 4}},
		{"all equal", []float64{5, 5, 5}, []float64{2, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Rank(tt.input))
		})
	}
}

func TestSpearman(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		coef, p, ok := Spearman([]float64{1, 2, 3, 4, 5}, []float64{5, 6, 7, 8, 7})
		require.True(t, ok)
		assert.InDelta(t, 0.8207826816681233, coef, 1e-9)
		assert.InDelta(t, 0.0885870053135438, p, 1e-6)
	})

	t.Run("perfect monotone", func(t *testing.T) {
		coef, p, ok := Spearman([]float64{1, 2, 3, 4}, []float64{1, 10, 100, 1000})
		require.True(t, ok)
		assert.InDelta(t, 1.0, coef, 1e-12)
		assert.InDelta(t, 0.0, p, 1e-9)
	})

	t.Run("perfect inverse", func(t *testing.T) {
		coef, _, ok := Spearman([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1})
		require.True(t, ok)
		assert.InDelta(t, -1.0, coef, 1e-12)
	})

	t.Run("constant column", func(t *testing.T) {
		_, _, ok := Spearman([]float64{1, 2, 3}, []float64{7, 7, 7})
		assert.False(t, ok)
	})

	t.Run("too few points", func(t *testing.T) {
		_, _, ok := Spearman([]float64{1, 2}, []float64{2, 1})
		assert.False(t, ok)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, _, ok := Spearman([]float64{1, 2, 3}, []float64{1, 2})
		assert.False(t, ok)
	})
}

func TestValidateFixture(t *testing.T) {
	v, err := metrics.Load("../metrics/testdata/jsoup", "jsoup")
	require.NoError(t, err)
	set, err := algo.ComputeIndicators(context.Background(), v, 2)
	require.NoError(t, err)
	table, err := algo.Merge(v, set, "jsoup")
	require.NoError(t, err)

	got := Validate(v, table, schema.Complexity)
	require.Len(t, got, len(ValidationMetrics))

	byName := make(map[string]schema.Correlation, len(got))
	for _, c := range got {
		byName[c.Metric] = c
		assert.Equal(t, 3, c.N)
	}

	// Complexity is WMC itself.
	assert.True(t, byName["WMC"].Defined)
	assert.InDelta(t, 1.0, byName["WMC"].Coefficient, 1e-12)
	assert.Equal(t, "LOC", got[0].Metric)
	assert.Equal(t, "LCOM5", got[len(got)-1].Metric)
}
