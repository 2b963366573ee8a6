package algo

import (
	"context"
	"math"
	"testing"

	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup(t *testing.T) {
	s := schema.Series{Name: schema.Complexity}
	s.Append("a", 1)
	s.Append("b", 2)
	s.Append("a", 3)

	once := Dedup(s)
	assert.Equal(t, []schema.SeriesEntry{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, once.Entries)
	assert.Equal(t, schema.Complexity, once.Name)

	// Idempotent
	assert.Equal(t, once, Dedup(once))
}

func TestRewritePath(t *testing.T) {
	tests := []struct {
		path, short, expected string
	}{
		{"C:/work/jhy/jsoup/src/Jsoup.java/Jsoup", "jsoup", "jsoup/src/Jsoup.java/Jsoup"},
		{"/home/ci/proj/a/X", "proj", "proj/a/X"},
		{"other/a/X", "proj", "other/a/X"},
		{"proj/a/X", "", "proj/a/X"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, RewritePath(tt.path, tt.short))
		})
	}
}

func TestMergeFixture(t *testing.T) {
	v := loadFixture(t)
	set, err := ComputeIndicators(context.Background(), v, 4)
	require.NoError(t, err)

	table, err := Merge(v, set, "jsoup")
	require.NoError(t, err)

	require.Equal(t, 3, table.Len(), "duplicate class rows collapse to the first")
	assert.Equal(t, []string{
		"jsoup/src/main/java/org/jsoup/Jsoup.java/Jsoup",
		"jsoup/src/main/java/org/jsoup/parser/Parser.java/Parser",
		"jsoup/src/main/java/org/jsoup/parser/Token.java/Token",
	}, table.Paths())

	jsoup, ok := table.Lookup("jsoup/src/main/java/org/jsoup/Jsoup.java/Jsoup")
	require.True(t, ok)
	assert.Equal(t, "org.jsoup.Jsoup", jsoup.LongName)
	assert.Equal(t, 5.0, jsoup.Complexity)
	assert.InDelta(t, 7.0/60, jsoup.Readability, 1e-12)

	token, ok := table.Lookup("jsoup/src/main/java/org/jsoup/parser/Token.java/Token")
	require.True(t, ok)
	assert.Equal(t, MissingValue, token.Readability, "classes without violations get the neutral value")

	for _, row := range table.Rows {
		assert.GreaterOrEqual(t, row.Complexity, 0.0)
	}
}

func TestMergeFillsMissingAndNonFinite(t *testing.T) {
	classes := []metrics.Class{
		{LongName: "p.A", Path: "/src/p", Name: "A"},
		{LongName: "p.B", Path: "/src/p", Name: "B"},
	}
	v := metrics.NewVersion("dir", "p", classes, nil, nil)

	set := &IndicatorSet{
		Maintainability: schema.Series{Name: schema.Maintainability, Entries: []schema.SeriesEntry{{Key: "p.A", Value: 0.5}, {Key: "p.B", Value: math.NaN()}}},
		Testability:     schema.Series{Name: schema.Testability},
		Readability:     schema.Series{Name: schema.Readability, Entries: []schema.SeriesEntry{{Key: "p.A", Value: math.Inf(1)}}},
		Reusability:     schema.Series{Name: schema.Reusability},
		Inheritance:     schema.Series{Name: schema.Inheritance},
		Complexity:      schema.Series{Name: schema.Complexity, Entries: []schema.SeriesEntry{{Key: "p.A", Value: 3}, {Key: "p.A", Value: 99}}},
	}

	table, err := Merge(v, set, "src")
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	a, _ := table.Lookup("src/p/A")
	assert.Equal(t, 0.5, a.Maintainability)
	assert.Equal(t, MissingValue, a.Testability)
	assert.Equal(t, MissingValue, a.Readability)
	assert.Equal(t, 3.0, a.Complexity, "first occurrence wins")

	b, _ := table.Lookup("src/p/B")
	assert.Equal(t, MissingValue, b.Maintainability)
	assert.Equal(t, MissingValue, b.Complexity)
}

func TestMergeEmptyProject(t *testing.T) {
	v := metrics.NewVersion("results/empty", "p", nil, nil, nil)
	set, err := ComputeIndicators(context.Background(), v, 1)
	require.NoError(t, err)

	_, err = Merge(v, set, "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrEmptyProject)

	var empty *contract.EmptyProjectError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "results/empty", empty.Dir)
}
