package core

import (
	"context"
	"testing"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "metrics/testdata/jsoup"

// testConfig returns a validated-looking config targeting the given results directories.
func testConfig(dirs ...string) *contract.Config {
	cfg := &contract.Config{
		Indicator:   schema.Complexity,
		ResultLimit: 10,
		Workers:     2,
		Precision:   2,
		Output:      schema.JSONOut,
	}
	cfg.SetProject("jhy/jsoup")
	return cfg.CloneWithVersions(dirs)
}

func TestGetScoreResults(t *testing.T) {
	t.Run("fixture", func(t *testing.T) {
		result, err := GetScoreResults(context.Background(), testConfig(fixtureDir), nil)
		require.NoError(t, err)

		assert.Equal(t, "jhy/jsoup", result.Project)
		assert.Equal(t, "jsoup", result.Version)
		assert.Equal(t, "jhy/jsoup(jsoup)", result.Tree.Name)
		assert.Equal(t, 20.0, result.Tree.Complexity)
		assert.Len(t, result.Classes, 3)
	})

	t.Run("wrong directory count", func(t *testing.T) {
		_, err := GetScoreResults(context.Background(), testConfig(fixtureDir, fixtureDir), nil)
		assert.Error(t, err)
	})

	t.Run("missing inputs", func(t *testing.T) {
		_, err := GetScoreResults(context.Background(), testConfig(t.TempDir()), nil)
		assert.ErrorIs(t, err, contract.ErrDataNotFound)
	})
}

func TestRankedClasses(t *testing.T) {
	result, err := GetScoreResults(context.Background(), testConfig(fixtureDir), nil)
	require.NoError(t, err)
	original := append([]schema.ClassScore(nil), result.Classes...)

	tests := []struct {
		name     string
		filter   string
		excludes []string
		limit    int
		expected []string
	}{
		{
			name:  "worst complexity first",
			limit: 2,
			expected: []string{
				"jsoup/src/main/java/org/jsoup/parser/Parser.java/Parser",
				"jsoup/src/main/java/org/jsoup/Jsoup.java/Jsoup",
			},
		},
		{
			name:   "path filter",
			filter: "jsoup/src/main/java/org/jsoup/parser",
			limit:  10,
			expected: []string{
				"jsoup/src/main/java/org/jsoup/parser/Parser.java/Parser",
				"jsoup/src/main/java/org/jsoup/parser/Token.java/Token",
			},
		},
		{
			name:     "excludes",
			excludes: []string{"jsoup/src/main/java/org/jsoup/parser/"},
			limit:    10,
			expected: []string{"jsoup/src/main/java/org/jsoup/Jsoup.java/Jsoup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(fixtureDir)
			cfg.PathFilter = tt.filter
			cfg.Excludes = tt.excludes
			cfg.ResultLimit = tt.limit

			ranked := RankedClasses(result.Classes, cfg)
			paths := make([]string, len(ranked))
			for i, r := range ranked {
				paths[i] = r.Path
				assert.Equal(t, i+1, r.Rank)
				assert.NotEmpty(t, r.Label)
			}
			assert.Equal(t, tt.expected, paths)
			assert.Equal(t, original, result.Classes, "ranking must not reorder the scored classes")
		})
	}
}

func TestGetTrendResults(t *testing.T) {
	t.Run("two versions", func(t *testing.T) {
		cfg := testConfig(fixtureDir, fixtureDir)
		cfg.VersionNames = []string{"1.14.1", "1.14.2"}

		result, err := GetTrendResults(context.Background(), cfg, nil)
		require.NoError(t, err)
		require.Len(t, result.Points, 2)

		assert.Equal(t, "jhy/jsoup", result.Project)
		assert.Equal(t, "1.14.1", result.Points[0].Version)
		assert.Equal(t, "1.14.2", result.Points[1].Version)
		assert.Equal(t, 3, result.Points[0].Classes)
		assert.Equal(t, []float64{20, 20}, result.Series(schema.Complexity))
	})

	t.Run("single version", func(t *testing.T) {
		_, err := GetTrendResults(context.Background(), testConfig(fixtureDir), nil)
		assert.Error(t, err)
	})

	t.Run("failing version", func(t *testing.T) {
		_, err := GetTrendResults(context.Background(), testConfig(fixtureDir, t.TempDir()), nil)
		assert.ErrorIs(t, err, contract.ErrDataNotFound)
	})
}

func TestGetValidateResults(t *testing.T) {
	result, err := GetValidateResults(context.Background(), testConfig(fixtureDir))
	require.NoError(t, err)

	assert.Equal(t, "jsoup", result.Version)
	assert.Equal(t, schema.Complexity, result.Indicator)
	require.Len(t, result.Correlations, 11)

	for _, c := range result.Correlations {
		if c.Metric == "WMC" {
			assert.True(t, c.Defined)
			assert.InDelta(t, 1.0, c.Coefficient, 1e-12)
		}
	}
}

func TestSuppressHeaderContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))
	assert.False(t, shouldSuppressHeader(context.WithValue(ctx, suppressHeaderKey, "yes")))
}

func TestHeadersEnabled(t *testing.T) {
	tests := []struct {
		name       string
		output     schema.OutputMode
		outputFile string
		expected   bool
	}{
		{"text", schema.TextOut, "", true},
		{"unset", "", "", true},
		{"json to stdout", schema.JSONOut, "", false},
		{"csv to file", schema.CSVOut, "out.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Output: tt.output, OutputFile: tt.outputFile}
			assert.Equal(t, tt.expected, headersEnabled(cfg))
		})
	}
}
