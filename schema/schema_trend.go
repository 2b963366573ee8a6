package schema

// TrendPoint holds the root-level indicator totals of one version.
type TrendPoint struct {
	Version string `json:"version"`
	Classes int    `json:"classes"`
	Indicators
}

// TrendResult holds the trend points in version order.
type TrendResult struct {
	Project string       `json:"project"`
	Points  []TrendPoint `json:"points"`
}

// Series returns the values of one indicator across all points.
func (r TrendResult) Series(ind Indicator) []float64 {
	values := make([]float64, len(r.Points))
	for i, p := range r.Points {
		values[i] = p.Get(ind)
	}
	return values
}
