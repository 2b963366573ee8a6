package algo

import (
	"sort"

	"github.com/huangsam/codequal/schema"
)

// RankClasses sorts classes worst-first by the given indicator and returns the top
// 'limit' classes. Worst means highest for lower-is-better indicators and lowest
// otherwise. Ties keep table order. If limit is greater than the number of classes,
// all classes are returned in sorted order.
func RankClasses(classes []schema.ClassScore, ind schema.Indicator, limit int) []schema.ClassScore {
	lowerIsBetter := schema.LowerIsBetter(ind)
	sort.SliceStable(classes, func(i, j int) bool {
		a, b := classes[i].Get(ind), classes[j].Get(ind)
		if lowerIsBetter {
			return a > b
		}
		return a < b
	})
	if len(classes) > limit {
		return classes[:limit]
	}
	return classes
}

// RankDetails sorts comparison details by the magnitude of their regression, worst
// first, and returns the top 'limit' entries.
func RankDetails(details []schema.ComparisonDetail, limit int) []schema.ComparisonDetail {
	sort.SliceStable(details, func(i, j int) bool {
		return regression(details[i]) > regression(details[j])
	})
	if len(details) > limit {
		return details[:limit]
	}
	return details
}

// regression is the signed change towards worse quality.
func regression(d schema.ComparisonDetail) float64 {
	if schema.LowerIsBetter(d.Indicator) {
		return d.Delta
	}
	return -d.Delta
}
