package schema

// ComparisonDetail holds the base value, target value, and delta of one entity path.
type ComparisonDetail struct {
	Path      string    `json:"path"`      // Entity path of the class
	Before    float64   `json:"before"`    // Value in the base version
	After     float64   `json:"after"`     // Value in the target version
	Delta     float64   `json:"delta"`     // After - Before
	Improved  bool      `json:"improved"`  // Whether the delta moves in the better direction
	Status    Status    `json:"status"`    // Whether the class is new, active or removed
	Indicator Indicator `json:"indicator"` // Indicator being compared
}

// ComparisonSummary has high-level deltas and counts.
type ComparisonSummary struct {
	BaseVersion   string     `json:"base_version"`
	TargetVersion string     `json:"target_version"`
	RootDelta     Indicators `json:"root_delta"`

	TotalNewClasses      int `json:"total_new_classes"`
	TotalRemovedClasses  int `json:"total_removed_classes"`
	TotalModifiedClasses int `json:"total_modified_classes"`
	TotalImproved        int `json:"total_improved"`
	TotalRegressed       int `json:"total_regressed"`
}

// ComparisonResult holds the comparison details and summary.
type ComparisonResult struct {
	Details []ComparisonDetail `json:"details"`
	Summary ComparisonSummary  `json:"summary"`
}
