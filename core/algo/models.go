package algo

import (
	"context"

	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
	"golang.org/x/sync/errgroup"
)

// IndicatorSet holds the six indicator series of one version, before merging.
type IndicatorSet struct {
	Maintainability schema.Series
	Testability     schema.Series
	Readability     schema.Series
	Reusability     schema.Series
	Inheritance     schema.Series
	Complexity      schema.Series
	Smells          schema.SmellSummary
}

// Series returns the six series in merge column order.
func (s *IndicatorSet) Series() []schema.Series {
	return []schema.Series{s.Maintainability, s.Testability, s.Readability, s.Reusability, s.Inheritance, s.Complexity}
}

// ComputeIndicators runs the five scoring models over a loaded version. The models
// only read the version, so they run concurrently on up to workers goroutines.
func ComputeIndicators(ctx context.Context, v *metrics.Version, workers int) (*IndicatorSet, error) {
	set := &IndicatorSet{}
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	// Each model writes to its own fields of set.
	models := []func(){
		func() { set.Complexity = ComplexityModel(v) },
		func() { set.Inheritance = InheritanceModel(v) },
		func() {
			res := ISO25010Model(v)
			set.Maintainability = res.Maintainability
			set.Testability = res.Testability
			set.Smells = res.Summary
		},
		func() { set.Readability = ReadabilityModel(v) },
		func() { set.Reusability = ReusabilityModel(v) },
	}
	for _, model := range models {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			model()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}
