package schema

import "time"

// RunInfo describes a scoring run when it begins.
type RunInfo struct {
	RunUUID   string
	Project   string
	Version   string
	StartTime time.Time
	Params    map[string]any
}

// ScoringRunRecord represents a row from the codequal_scoring_runs table.
type ScoringRunRecord struct {
	RunID         int64
	RunUUID       string
	Project       string
	Version       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalClasses  int32
	ConfigParams  *string
}

// ClassScoreRecord represents a row from the codequal_class_scores table.
type ClassScoreRecord struct {
	RunID           int64
	EntityPath      string
	LongName        string
	ScoredAt        time.Time
	Maintainability float64
	Testability     float64
	Readability     float64
	Reusability     float64
	Inheritance     float64
	Complexity      float64
	Label           string
}
