package algo

import (
	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
)

// ComplexityModel returns WMC per class row, unmodified. Lower is better.
func ComplexityModel(v *metrics.Version) schema.Series {
	s := schema.Series{Name: schema.Complexity}
	for i := range v.Classes {
		c := &v.Classes[i]
		s.Append(c.LongName, c.WMC)
	}
	return s
}

// InheritanceModel returns the mean of NOA, NOC, NOP, NOD and DIT per class row.
// Lower is better.
func InheritanceModel(v *metrics.Version) schema.Series {
	s := schema.Series{Name: schema.Inheritance}
	for i := range v.Classes {
		c := &v.Classes[i]
		s.Append(c.LongName, (c.NOA+c.NOC+c.NOP+c.NOD+c.DIT)/5)
	}
	return s
}
