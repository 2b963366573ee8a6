package schema

// EnrichedClassScore adds presentation data to a ClassScore.
type EnrichedClassScore struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ClassScore
}

// GetPlainLabel returns a plain text risk label for a maintainability-scale
// value in [-2, 2], where higher is healthier.
func GetPlainLabel(value float64) string {
	switch {
	case value < -1:
		return "Critical"
	case value < 0:
		return "High"
	case value < 1:
		return "Moderate"
	default:
		return "Low"
	}
}

// EnrichClasses adds rank and maintainability label to a list of class scores.
func EnrichClasses(classes []ClassScore) []EnrichedClassScore {
	output := make([]EnrichedClassScore, len(classes))
	for i, c := range classes {
		output[i] = EnrichedClassScore{
			Rank:       i + 1,
			Label:      GetPlainLabel(c.Maintainability),
			ClassScore: c,
		}
	}
	return output
}
