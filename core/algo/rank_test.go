package algo

import (
	"testing"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
)

func classesForRank() []schema.ClassScore {
	return []schema.ClassScore{
		{Path: "p/A", Indicators: schema.Indicators{Maintainability: 1.5, Complexity: 4}},
		{Path: "p/B", Indicators: schema.Indicators{Maintainability: -1.0, Complexity: 40}},
		{Path: "p/C", Indicators: schema.Indicators{Maintainability: 0.2, Complexity: 12}},
		{Path: "p/D", Indicators: schema.Indicators{Maintainability: 0.2, Complexity: 12}},
	}
}

func paths(classes []schema.ClassScore) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Path
	}
	return out
}

func TestRankClasses(t *testing.T) {
	tests := []struct {
		name     string
		ind      schema.Indicator
		limit    int
		expected []string
	}{
		{"higher is better ranks lowest first", schema.Maintainability, 10, []string{"p/B", "p/C", "p/D", "p/A"}},
		{"lower is better ranks highest first", schema.Complexity, 10, []string{"p/B", "p/C", "p/D", "p/A"}},
		{"limit", schema.Maintainability, 2, []string{"p/B", "p/C"}},
		{"zero limit", schema.Complexity, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankClasses(classesForRank(), tt.ind, tt.limit)
			assert.Equal(t, tt.expected, paths(got))
		})
	}
}

func TestRankClassesEmpty(t *testing.T) {
	assert.Empty(t, RankClasses(nil, schema.Maintainability, 10))
}

func TestRankDetails(t *testing.T) {
	details := []schema.ComparisonDetail{
		{Path: "p/A", Delta: 0.5, Indicator: schema.Maintainability},  // improved
		{Path: "p/B", Delta: -1.0, Indicator: schema.Maintainability}, // regressed
		{Path: "p/C", Delta: 10, Indicator: schema.Complexity},        // regressed
	}
	got := RankDetails(details, 2)
	assert.Equal(t, "p/C", got[0].Path)
	assert.Equal(t, "p/B", got[1].Path)
}
