package schema

// Correlation is the rank correlation between an indicator and one raw metric.
// Defined is false when a column is constant or there are fewer than three
// classes; Coefficient and PValue are then zero.
type Correlation struct {
	Metric      string  `json:"metric"`
	Coefficient float64 `json:"coefficient"`
	PValue      float64 `json:"p_value"`
	N           int     `json:"n"`
	Defined     bool    `json:"defined"`
}

// ValidationResult holds the correlations of one indicator against raw metrics.
type ValidationResult struct {
	Version      string        `json:"version"`
	Indicator    Indicator     `json:"indicator"`
	Correlations []Correlation `json:"correlations"`
}
