// Package algo has the scoring models, the indicator merger and ranking.
package algo

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Thresholds are the inclusive upper bounds of the 2, 1, 0 and -1 buckets.
// Anything above the last bound scores -2.
type Thresholds [4]float64

// Bucket thresholds for the code smell scores.
var (
	DuplicateCodeBuckets = Thresholds{0.03, 0.05, 0.1, 0.2}
	ParameterBuckets     = Thresholds{1, 3, 5, 7}
	NestingBuckets       = Thresholds{1, 2, 4, 6}
	MethodLOCBuckets     = Thresholds{7, 10, 13, 20}
	McCCBuckets          = Thresholds{1.1, 2.0, 3.1, 4.7}
	ClassNMBuckets       = Thresholds{4, 7, 10, 15}
	ClassWMCBuckets      = Thresholds{5, 14, 31, 47}
	ClassCLOCBuckets     = Thresholds{28, 70, 130, 195}
	ClassCBOBuckets      = Thresholds{1, 3, 5, 7}
)

// Bucket maps x onto {2, 1, 0, -1, -2}. NaN falls through to -2.
func Bucket(x float64, th Thresholds) float64 {
	switch {
	case x <= th[0]:
		return 2
	case x <= th[1]:
		return 1
	case x <= th[2]:
		return 0
	case x <= th[3]:
		return -1
	default:
		return -2
	}
}

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// median returns the middle value of xs, averaging the two middle values when
// len(xs) is even. An empty slice yields NaN.
func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MedianNormalize maps every value onto 1 / (1 + (x/median)^4), with the median
// taken over the whole column. A zero median follows IEEE division: positive
// values map to 0 and zeros map to NaN.
func MedianNormalize(col []float64) []float64 {
	m := median(col)
	out := make([]float64, len(col))
	for i, x := range col {
		out[i] = 1 / (1 + math.Pow(x/m, 4))
	}
	return out
}
