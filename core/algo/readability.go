package algo

import (
	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/schema"
)

// RecognizedRulesets are the violation categories that count towards readability.
var RecognizedRulesets = map[string]struct{}{
	"Best Practices": {},
	"Documentation":  {},
	"Design":         {},
	"Code Style":     {},
	"Error Prone":    {},
}

// ReadabilityModel sums violation priorities per class within the recognized
// rulesets and divides by the class LLOC. Classes without violations are absent
// from the series; violations against unknown classes are dropped. Lower is better
// and the value is not inverted.
func ReadabilityModel(v *metrics.Version) schema.Series {
	var order []string
	sums := make(map[string]float64)
	for _, viol := range v.Violations {
		if _, ok := RecognizedRulesets[viol.Ruleset]; !ok {
			continue
		}
		key := viol.Key()
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += float64(viol.Priority)
	}

	s := schema.Series{Name: schema.Readability}
	for _, key := range order {
		rows := v.Lookup(key)
		if len(rows) == 0 {
			continue
		}
		lloc := make([]float64, len(rows))
		for i, r := range rows {
			lloc[i] = r.LLOC
		}
		s.Append(key, sums[key]/mean(lloc))
	}
	return s
}
