package algo

import (
	"context"
	"testing"

	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../metrics/testdata/jsoup"

func loadFixture(t *testing.T) *metrics.Version {
	t.Helper()
	v, err := metrics.Load(fixtureDir, "jsoup")
	require.NoError(t, err)
	return v
}

func valueOf(t *testing.T, s schema.Series, key string) float64 {
	t.Helper()
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	require.Failf(t, "missing key", "%s not in series %s", key, s.Name)
	return 0
}

func TestComplexityAndInheritance(t *testing.T) {
	classes := []metrics.Class{
		{LongName: "proj.a.X", Path: "proj/a", Name: "X", WMC: 5, DIT: 1},
		{LongName: "proj.b.Y", Path: "proj/b", Name: "Y", WMC: 15, DIT: 2},
	}
	v := metrics.NewVersion("dir", "proj", classes, nil, nil)

	cx := ComplexityModel(v)
	assert.Equal(t, schema.Complexity, cx.Name)
	assert.Equal(t, []schema.SeriesEntry{{Key: "proj.a.X", Value: 5}, {Key: "proj.b.Y", Value: 15}}, cx.Entries)

	inh := InheritanceModel(v)
	assert.InDelta(t, 0.2, valueOf(t, inh, "proj.a.X"), 1e-12)
	assert.InDelta(t, 0.4, valueOf(t, inh, "proj.b.Y"), 1e-12)
}

func TestISO25010Fixture(t *testing.T) {
	v := loadFixture(t)
	res := ISO25010Model(v)

	require.Equal(t, len(v.Classes), res.Maintainability.Len())
	require.Equal(t, len(v.Classes), res.Testability.Len())

	// Worked by hand from the fixture rows.
	assert.InDelta(t, 140.5/90, valueOf(t, res.Maintainability, "org.jsoup.Jsoup"), 1e-9)
	assert.InDelta(t, 29.0/18, valueOf(t, res.Testability, "org.jsoup.Jsoup"), 1e-9)
	assert.InDelta(t, 13.0/30, valueOf(t, res.Maintainability, "org.jsoup.parser.Token"), 1e-9)

	for _, s := range []schema.Series{res.Maintainability, res.Testability} {
		for _, e := range s.Entries {
			assert.GreaterOrEqual(t, e.Value, -2.0, e.Key)
			assert.LessOrEqual(t, e.Value, 2.0, e.Key)
		}
	}

	// Lazy class per row: Jsoup 0, Parser 4/3, Token -2, Jsoup 0.
	assert.InDelta(t, -1.0/6, res.Summary.LazyClass, 1e-9)
}

func TestClassSmells(t *testing.T) {
	v := loadFixture(t)
	jsoup := v.Lookup("org.jsoup.Jsoup")[0]

	sm := ClassSmells(jsoup, v.MethodsOf(jsoup.LongName), v.Stats)
	assert.Equal(t, 2.0, sm.DuplicateCode)
	assert.InDelta(t, 5.0/3, sm.LongParameter, 1e-12)
	assert.InDelta(t, 4.0/3, sm.LongMethod, 1e-12)
	assert.Equal(t, 0.0, sm.LazyClass)
	assert.Equal(t, 1.5, sm.LargeClass)

	q := CombineSmells(sm)
	assert.Equal(t, q.Modularity, q.Reusability)
	assert.Equal(t, q.Modularity, q.Testability)
	assert.InDelta(t, 1.25, q.Analyzability, 1e-12)
}

func TestClassWithoutMethods(t *testing.T) {
	c := &metrics.Class{LongName: "p.Empty", NM: 0, WMC: 50, LOC: 1000, CBO: 9, DIT: 0}
	st := metrics.Stats{MeanLOC: 10, MeanCBO: 1}

	assert.Equal(t, 0.0, LongParameterScore(nil))
	assert.Equal(t, 0.0, LongMethodScore(nil))
	assert.Equal(t, -2.0, lazyDensity(c, st))
	assert.Equal(t, -2.0, lazyMethodCount(c))
}

func TestLazyClassRules(t *testing.T) {
	st := metrics.Stats{MeanLOC: 100, MeanCBO: 4}
	tests := []struct {
		name     string
		class    metrics.Class
		density  float64
		coupling float64
	}{
		{"big dense coupled", metrics.Class{NM: 2, WMC: 10, LOC: 150, CBO: 5, DIT: 1}, 2, 2},
		{"small sparse deep", metrics.Class{NM: 5, WMC: 5, LOC: 20, CBO: 1, DIT: 3}, -2, -2},
		{"big sparse", metrics.Class{NM: 5, WMC: 5, LOC: 150, CBO: 1, DIT: 1}, 0, 0},
		{"at the mean", metrics.Class{NM: 1, WMC: 3, LOC: 100, CBO: 4, DIT: 2}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.density, lazyDensity(&tt.class, st))
			assert.Equal(t, tt.coupling, lazyCoupling(&tt.class, st))
		})
	}
}

func TestReadabilityFixture(t *testing.T) {
	v := loadFixture(t)
	s := ReadabilityModel(v)

	require.Len(t, s.Entries, 2)
	assert.Equal(t, "org.jsoup.Jsoup", s.Entries[0].Key)
	// Documentation 3 + Code Style 4 over the mean LLOC of the duplicate rows.
	assert.InDelta(t, 7.0/60, s.Entries[0].Value, 1e-12)
	assert.Equal(t, "org.jsoup.parser.Parser", s.Entries[1].Key)
	assert.InDelta(t, 2.0/120, s.Entries[1].Value, 1e-12)
}

func TestReadabilityDropsUnknownClasses(t *testing.T) {
	classes := []metrics.Class{{LongName: "p.A", LLOC: 10}}
	violations := []metrics.Violation{
		{Package: "p", Class: "Ghost", Ruleset: "Design", Priority: 3},
		{Package: "p", Class: "A", Ruleset: "Performance", Priority: 1},
		{Package: "p", Class: "A", Ruleset: "Error Prone", Priority: 2},
	}
	v := metrics.NewVersion("dir", "p", classes, nil, violations)

	s := ReadabilityModel(v)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, "p.A", s.Entries[0].Key)
	assert.InDelta(t, 0.2, s.Entries[0].Value, 1e-12)
}

func TestReusabilityFixture(t *testing.T) {
	v := loadFixture(t)

	t.Run("documentation ratios", func(t *testing.T) {
		want := (10.0/26 + 2.0/3 + 30.0/5) / 3
		assert.InDelta(t, want, documentationScore(v, "org.jsoup.Jsoup"), 1e-9)
		assert.Equal(t, 0.0, documentationScore(v, "org.jsoup.parser.Token"))
	})

	t.Run("zero attributes and methods", func(t *testing.T) {
		classes := []metrics.Class{{LongName: "p.A", CLOC: 5}}
		methods := []metrics.Method{{LongName: "p.A.<clinit>()", LOC: 2, CLOC: 1}}
		small := metrics.NewVersion("dir", "p", classes, methods, nil)
		assert.Equal(t, 0.0, definitionComments(small, "p.A", 1))
	})

	t.Run("cohesion", func(t *testing.T) {
		assert.InDelta(t, 1.03259, CohesionScore(0), 1e-12)
		assert.InDelta(t, (-2.26852+103.259)/100, CohesionScore(1), 1e-12)
	})

	t.Run("series follows class rows", func(t *testing.T) {
		s := ReusabilityModel(v)
		require.Equal(t, len(v.Classes), s.Len())
		parts := ReuseParts(v)
		for i, e := range s.Entries {
			assert.Equal(t, v.Classes[i].LongName, e.Key)
			assert.InDelta(t, parts[i].Score(), e.Value, 1e-12)
		}
	})
}

func TestComputeIndicatorsMatchesSequential(t *testing.T) {
	v := loadFixture(t)

	set, err := ComputeIndicators(context.Background(), v, 2)
	require.NoError(t, err)

	iso := ISO25010Model(v)
	assert.Equal(t, ComplexityModel(v), set.Complexity)
	assert.Equal(t, InheritanceModel(v), set.Inheritance)
	assert.Equal(t, iso.Maintainability, set.Maintainability)
	assert.Equal(t, iso.Testability, set.Testability)
	assert.Equal(t, iso.Summary, set.Smells)
	assert.Equal(t, ReadabilityModel(v), set.Readability)
	assert.Equal(t, ReusabilityModel(v), set.Reusability)

	names := make([]schema.Indicator, 0, 6)
	for _, s := range set.Series() {
		names = append(names, s.Name)
	}
	assert.Equal(t, schema.AllIndicators, names)
}

func TestComputeIndicatorsCanceled(t *testing.T) {
	v := loadFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeIndicators(ctx, v, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
