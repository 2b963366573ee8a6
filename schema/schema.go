// Package schema has the models shared by all parts of codequal.
package schema

// Indicators holds one value for each of the six indicators.
type Indicators struct {
	Maintainability float64 `json:"maintainability"`
	Testability     float64 `json:"testability"`
	Readability     float64 `json:"readability"`
	Reusability     float64 `json:"reusability"`
	Inheritance     float64 `json:"inheritance"`
	Complexity      float64 `json:"complexity"`
}

// Get returns the value of the given indicator.
func (in Indicators) Get(ind Indicator) float64 {
	switch ind {
	case Maintainability:
		return in.Maintainability
	case Testability:
		return in.Testability
	case Readability:
		return in.Readability
	case Reusability:
		return in.Reusability
	case Inheritance:
		return in.Inheritance
	case Complexity:
		return in.Complexity
	}
	return 0
}

// Set assigns the value of the given indicator.
func (in *Indicators) Set(ind Indicator, v float64) {
	switch ind {
	case Maintainability:
		in.Maintainability = v
	case Testability:
		in.Testability = v
	case Readability:
		in.Readability = v
	case Reusability:
		in.Reusability = v
	case Inheritance:
		in.Inheritance = v
	case Complexity:
		in.Complexity = v
	}
}

// Add accumulates every indicator of other into in.
func (in *Indicators) Add(other Indicators) {
	in.Maintainability += other.Maintainability
	in.Testability += other.Testability
	in.Readability += other.Readability
	in.Reusability += other.Reusability
	in.Inheritance += other.Inheritance
	in.Complexity += other.Complexity
}

// Sub returns in - other for every indicator.
func (in Indicators) Sub(other Indicators) Indicators {
	return Indicators{
		Maintainability: in.Maintainability - other.Maintainability,
		Testability:     in.Testability - other.Testability,
		Readability:     in.Readability - other.Readability,
		Reusability:     in.Reusability - other.Reusability,
		Inheritance:     in.Inheritance - other.Inheritance,
		Complexity:      in.Complexity - other.Complexity,
	}
}

// SeriesEntry is one keyed value of an indicator series.
type SeriesEntry struct {
	Key   string
	Value float64
}

// Series is an ordered mapping from class key to score. Keys may repeat
// until the series is deduplicated.
type Series struct {
	Name    Indicator
	Entries []SeriesEntry
}

// Append adds a keyed value to the series.
func (s *Series) Append(key string, value float64) {
	s.Entries = append(s.Entries, SeriesEntry{Key: key, Value: value})
}

// Len returns the number of entries.
func (s Series) Len() int {
	return len(s.Entries)
}

// ClassScore is one row of the merged per-class table.
type ClassScore struct {
	Path     string `json:"path"`      // Entity path starting at the project short name
	LongName string `json:"long_name"` // Long entity name from the class table
	Indicators
}

// ClassTable is the merged per-class table indexed by entity path.
type ClassTable struct {
	Rows  []ClassScore
	index map[string]int
}

// NewClassTable builds a table from rows, keeping the first row for each path.
func NewClassTable(rows []ClassScore) *ClassTable {
	t := &ClassTable{index: make(map[string]int, len(rows))}
	for _, r := range rows {
		if _, ok := t.index[r.Path]; ok {
			continue
		}
		t.index[r.Path] = len(t.Rows)
		t.Rows = append(t.Rows, r)
	}
	return t
}

// Lookup returns the row for an entity path.
func (t *ClassTable) Lookup(path string) (ClassScore, bool) {
	i, ok := t.index[path]
	if !ok {
		return ClassScore{}, false
	}
	return t.Rows[i], true
}

// Paths returns all entity paths in row order.
func (t *ClassTable) Paths() []string {
	paths := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		paths[i] = r.Path
	}
	return paths
}

// Len returns the number of rows.
func (t *ClassTable) Len() int {
	return len(t.Rows)
}
