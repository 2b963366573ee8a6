// Package stats validates indicators against raw class metrics with rank correlation.
package stats

import (
	"math"
	"sort"

	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Metric is a raw class metric an indicator is validated against.
type Metric struct {
	Name  string
	Value func(c *metrics.Class) float64
}

// ValidationMetrics are the raw metrics used for validation, in report order.
var ValidationMetrics = []Metric{
	{"LOC", func(c *metrics.Class) float64 { return c.LOC }},
	{"SIZE2", func(c *metrics.Class) float64 { return c.NA + c.NM }},
	{"NLM", func(c *metrics.Class) float64 { return c.NLM }},
	{"NOC", func(c *metrics.Class) float64 { return c.NOC }},
	{"WMC", func(c *metrics.Class) float64 { return c.WMC }},
	{"RFC", func(c *metrics.Class) float64 { return c.RFC }},
	{"DIT", func(c *metrics.Class) float64 { return c.DIT }},
	{"CBO", func(c *metrics.Class) float64 { return c.CBO }},
	{"NOI", func(c *metrics.Class) float64 { return c.NOI }},
	{"NII", func(c *metrics.Class) float64 { return c.NII }},
	{"LCOM5", func(c *metrics.Class) float64 { return c.LCOM5 }},
}

// Rank returns the 1-based ranks of xs, giving tied values their average rank.
func Rank(xs []float64) []float64 {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		// Positions i..j-1 share the average of ranks i+1..j.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}

// Spearman returns the rank correlation of x and y and its two-sided p-value from
// Student's t distribution with n-2 degrees of freedom. ok is false when the
// coefficient is undefined.
func Spearman(x, y []float64) (coef, pValue float64, ok bool) {
	n := len(x)
	if n != len(y) || n < 3 {
		return 0, 0, false
	}
	coef = stat.Correlation(Rank(x), Rank(y), nil)
	if math.IsNaN(coef) {
		return 0, 0, false
	}
	if math.Abs(coef) >= 1 {
		return coef, 0, true
	}

	df := float64(n - 2)
	t := coef * math.Sqrt(df/((1-coef)*(1+coef)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * dist.Survival(math.Abs(t))
	return coef, pValue, true
}

// Validate correlates one indicator of the merged classes with every validation
// metric. Raw metrics come from the first class row with the same long name.
func Validate(v *metrics.Version, table *schema.ClassTable, ind schema.Indicator) []schema.Correlation {
	var scores []float64
	var rows []*metrics.Class
	for _, row := range table.Rows {
		classes := v.Lookup(row.LongName)
		if len(classes) == 0 {
			continue
		}
		scores = append(scores, row.Get(ind))
		rows = append(rows, classes[0])
	}

	out := make([]schema.Correlation, 0, len(ValidationMetrics))
	for _, m := range ValidationMetrics {
		raw := make([]float64, len(rows))
		for i, c := range rows {
			raw[i] = m.Value(c)
		}
		coef, p, ok := Spearman(scores, raw)
		out = append(out, schema.Correlation{
			Metric:      m.Name,
			Coefficient: coef,
			PValue:      p,
			N:           len(rows),
			Defined:     ok,
		})
	}
	return out
}
