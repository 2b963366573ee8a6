package schema

// CheckResult holds the results of an indicator threshold check.
type CheckResult struct {
	Passed        bool
	Version       string
	TotalClasses  int
	Thresholds    map[Indicator]float64
	FailedClasses []CheckFailedClass
	WorstValues   map[Indicator]float64
}

// CheckFailedClass represents a class that crossed an indicator threshold.
type CheckFailedClass struct {
	Path      string
	Indicator Indicator
	Value     float64
	Threshold float64
}
