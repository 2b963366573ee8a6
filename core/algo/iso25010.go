package algo

import (
	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
)

// Smells holds the five code smell scores of one class. Each lies in [-2, 2]
// and higher is healthier.
type Smells struct {
	DuplicateCode float64
	LongParameter float64
	LongMethod    float64
	LazyClass     float64
	LargeClass    float64
}

// Quality holds the ISO 25010 maintainability sub-characteristics of one class.
type Quality struct {
	Modularity    float64
	Reusability   float64
	Analyzability float64
	Modifiability float64
	Testability   float64
}

// Maintainability is the mean of the five sub-characteristics.
func (q Quality) Maintainability() float64 {
	return (q.Modularity + q.Reusability + q.Analyzability + q.Modifiability + q.Testability) / 5
}

// ISO25010Result is the output of the maintainability model.
type ISO25010Result struct {
	Maintainability schema.Series
	Testability     schema.Series
	Summary         schema.SmellSummary
}

// ISO25010Model scores every class row through the code smell model and returns the
// maintainability and testability series plus version-level smell means.
func ISO25010Model(v *metrics.Version) ISO25010Result {
	res := ISO25010Result{
		Maintainability: schema.Series{Name: schema.Maintainability},
		Testability:     schema.Series{Name: schema.Testability},
	}
	if len(v.Classes) == 0 {
		return res
	}

	var sum Smells
	for i := range v.Classes {
		c := &v.Classes[i]
		sm := ClassSmells(c, v.MethodsOf(c.LongName), v.Stats)
		q := CombineSmells(sm)
		res.Maintainability.Append(c.LongName, q.Maintainability())
		res.Testability.Append(c.LongName, q.Testability)

		sum.DuplicateCode += sm.DuplicateCode
		sum.LongParameter += sm.LongParameter
		sum.LongMethod += sm.LongMethod
		sum.LazyClass += sm.LazyClass
		sum.LargeClass += sm.LargeClass
	}

	n := float64(len(v.Classes))
	res.Summary = schema.SmellSummary{
		DuplicateCode: sum.DuplicateCode / n,
		LongParameter: sum.LongParameter / n,
		LongMethod:    sum.LongMethod / n,
		LazyClass:     sum.LazyClass / n,
		LargeClass:    sum.LargeClass / n,
	}
	return res
}

// ClassSmells computes the five smell scores of a class from its own row, its
// owned methods and the project-wide statistics.
func ClassSmells(c *metrics.Class, methods []*metrics.Method, st metrics.Stats) Smells {
	return Smells{
		DuplicateCode: DuplicateCodeScore(c),
		LongParameter: LongParameterScore(methods),
		LongMethod:    LongMethodScore(methods),
		LazyClass:     LazyClassScore(c, st),
		LargeClass:    LargeClassScore(c),
	}
}

// CombineSmells folds smell scores into the maintainability sub-characteristics.
func CombineSmells(s Smells) Quality {
	modularity := (s.DuplicateCode + s.LongMethod + s.LargeClass) / 3
	return Quality{
		Modularity:    modularity,
		Reusability:   modularity,
		Analyzability: (s.DuplicateCode + s.LongParameter + s.LongMethod + s.LazyClass) / 4,
		Modifiability: (s.DuplicateCode + s.LongParameter + s.LargeClass) / 3,
		Testability:   modularity,
	}
}

// DuplicateCodeScore buckets the clone coverage ratios CC and CLLC, then averages them.
func DuplicateCodeScore(c *metrics.Class) float64 {
	return (Bucket(c.CC, DuplicateCodeBuckets) + Bucket(c.CLLC, DuplicateCodeBuckets)) / 2
}

// LongParameterScore averages the bucketed parameter counts of the methods.
// A class without methods scores 0.
func LongParameterScore(methods []*metrics.Method) float64 {
	scores := make([]float64, len(methods))
	for i, m := range methods {
		scores[i] = Bucket(m.NUMPAR, ParameterBuckets)
	}
	return mean(scores)
}

// MethodScore averages the four bucketed sub-scores of one method.
func MethodScore(m *metrics.Method) float64 {
	return (Bucket(m.NUMPAR, ParameterBuckets) +
		Bucket(m.NL, NestingBuckets) +
		Bucket(m.LOC, MethodLOCBuckets) +
		Bucket(m.McCC, McCCBuckets)) / 4
}

// LongMethodScore averages MethodScore over the methods. A class without methods scores 0.
func LongMethodScore(methods []*metrics.Method) float64 {
	scores := make([]float64, len(methods))
	for i, m := range methods {
		scores[i] = MethodScore(m)
	}
	return mean(scores)
}

// LazyClassScore averages the method-count signal with the two density rules.
func LazyClassScore(c *metrics.Class, st metrics.Stats) float64 {
	return (lazyMethodCount(c) + lazyDensity(c, st) + lazyCoupling(c, st)) / 3
}

func lazyMethodCount(c *metrics.Class) float64 {
	if c.NM >= 1 {
		return 2
	}
	return -2
}

// lazyDensity compares LOC with the project mean and WMC per method with 2.
// A class without methods scores -2.
func lazyDensity(c *metrics.Class, st metrics.Stats) float64 {
	if c.NM == 0 {
		return -2
	}
	density := c.WMC / c.NM
	switch {
	case c.LOC >= st.MeanLOC && density > 2:
		return 2
	case c.LOC < st.MeanLOC && density <= 2:
		return -2
	default:
		return 0
	}
}

// lazyCoupling compares CBO with the project mean and DIT with 1.
func lazyCoupling(c *metrics.Class, st metrics.Stats) float64 {
	switch {
	case c.CBO >= st.MeanCBO && c.DIT <= 1:
		return 2
	case c.CBO < st.MeanCBO && c.DIT > 1:
		return -2
	default:
		return 0
	}
}

// LargeClassScore averages the bucketed NM, WMC, CLOC and CBO of the class.
func LargeClassScore(c *metrics.Class) float64 {
	return (Bucket(c.NM, ClassNMBuckets) +
		Bucket(c.WMC, ClassWMCBuckets) +
		Bucket(c.CLOC, ClassCLOCBuckets) +
		Bucket(c.CBO, ClassCBOBuckets)) / 4
}
