package algo

import (
	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
)

// Reuse holds the four parts of the reusability composite for one class.
type Reuse struct {
	Modularity    float64
	InterfaceSize float64
	Documentation float64
	Complexity    float64
}

// Score is the mean of the four parts. Higher is better.
func (r Reuse) Score() float64 {
	return (r.Modularity + r.InterfaceSize + r.Documentation + r.Complexity) / 4
}

// ReuseParts computes the reusability parts of every class row, in table order.
func ReuseParts(v *metrics.Version) []Reuse {
	n := len(v.Classes)
	npm := MedianNormalize(v.ClassColumn(func(c *metrics.Class) float64 { return c.NPM }))
	na := MedianNormalize(v.ClassColumn(func(c *metrics.Class) float64 { return c.NA }))
	wmc := MedianNormalize(v.ClassColumn(func(c *metrics.Class) float64 { return c.WMC }))
	locM := MedianNormalize(v.ClassColumn(func(c *metrics.Class) float64 {
		return meanMethodLOC(v.MethodsOf(c.LongName))
	}))

	parts := make([]Reuse, n)
	for i := range v.Classes {
		c := &v.Classes[i]
		parts[i] = Reuse{
			Modularity:    CohesionScore(c.LCOM5),
			InterfaceSize: npm[i],
			Documentation: documentationScore(v, c.LongName),
			Complexity:    0.5*(0.5*na[i]+0.5*locM[i]) + 0.5*wmc[i],
		}
	}
	return parts
}

// ReusabilityModel returns the reusability composite per class row.
func ReusabilityModel(v *metrics.Version) schema.Series {
	s := schema.Series{Name: schema.Reusability}
	for i, p := range ReuseParts(v) {
		s.Append(v.Classes[i].LongName, p.Score())
	}
	return s
}

// CohesionScore is the linear transform of LCOM5 standing in for modularity.
func CohesionScore(lcom5 float64) float64 {
	return (-2.26852*lcom5 + 103.259) / 100
}

func meanMethodLOC(methods []*metrics.Method) float64 {
	loc := make([]float64, len(methods))
	for i, m := range methods {
		loc[i] = m.LOC
	}
	return mean(loc)
}

// documentationScore averages three comment ratios of a class. All three are 0
// when the class has no methods.
func documentationScore(v *metrics.Version, longName string) float64 {
	methods := v.MethodsOf(longName)
	if len(methods) == 0 {
		return 0
	}

	cloc := make([]float64, len(methods))
	loc := make([]float64, len(methods))
	var commented, methodComments float64
	for i, m := range methods {
		cloc[i] = m.CLOC
		loc[i] = m.LOC
		methodComments += m.CLOC
		if m.CLOC > 0 {
			commented++
		}
	}

	clocPerLOC := mean(cloc) / mean(loc)
	commentedRatio := commented / float64(len(methods))
	return (clocPerLOC + commentedRatio + definitionComments(v, longName, methodComments)) / 3
}

// definitionComments divides the comment lines outside methods by NA+NM, averaging
// over duplicate class rows. It is 0 when NA+NM is 0.
func definitionComments(v *metrics.Version, longName string, methodComments float64) float64 {
	rows := v.Lookup(longName)
	classCLOC := make([]float64, len(rows))
	size := make([]float64, len(rows))
	for i, r := range rows {
		classCLOC[i] = r.CLOC
		size[i] = r.NA + r.NM
	}
	nam := mean(size)
	if nam == 0 {
		return 0
	}
	return (mean(classCLOC) - methodComments) / nam
}
