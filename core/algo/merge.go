package algo

import (
	"math"
	"strings"

	"github.com/huangsam/codequal/core/metrics"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// MissingValue fills indicators without evidence for a class.
const MissingValue = 1.0

// Dedup keeps the first entry per key, preserving order.
func Dedup(s schema.Series) schema.Series {
	seen := make(map[string]struct{}, len(s.Entries))
	out := schema.Series{Name: s.Name, Entries: make([]schema.SeriesEntry, 0, len(s.Entries))}
	for _, e := range s.Entries {
		if _, ok := seen[e.Key]; ok {
			continue
		}
		seen[e.Key] = struct{}{}
		out.Entries = append(out.Entries, e)
	}
	return out
}

// RewritePath slices an entity path from the first occurrence of the project
// short name. A path without the short name is returned unchanged.
func RewritePath(path, shortName string) string {
	if shortName == "" {
		return path
	}
	if i := strings.Index(path, shortName); i >= 0 {
		return path[i:]
	}
	return path
}

// Merge joins the six indicator series over the class table. Rows follow the first
// occurrence of each class long name; missing or non-finite values become MissingValue.
// A version without classes fails with *contract.EmptyProjectError.
func Merge(v *metrics.Version, set *IndicatorSet, shortName string) (*schema.ClassTable, error) {
	columns := make(map[schema.Indicator]map[string]float64, len(schema.AllIndicators))
	for _, s := range set.Series() {
		deduped := Dedup(s)
		col := make(map[string]float64, len(deduped.Entries))
		for _, e := range deduped.Entries {
			col[e.Key] = e.Value
		}
		columns[s.Name] = col
	}

	var rows []schema.ClassScore
	seen := make(map[string]struct{}, len(v.Classes))
	for i := range v.Classes {
		c := &v.Classes[i]
		if _, ok := seen[c.LongName]; ok {
			continue
		}
		seen[c.LongName] = struct{}{}

		row := schema.ClassScore{
			Path:     RewritePath(c.EntityPath(), shortName),
			LongName: c.LongName,
		}
		for _, ind := range schema.AllIndicators {
			val, ok := columns[ind][c.LongName]
			if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
				val = MissingValue
			}
			row.Set(ind, val)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &contract.EmptyProjectError{Dir: v.Dir}
	}
	return schema.NewClassTable(rows), nil
}
