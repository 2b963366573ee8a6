package schema

// HierarchyNode is a node of the aggregated tree. Leaves are classes; internal
// nodes are packages or directories and carry the sums of their children.
type HierarchyNode struct {
	Name     string           `json:"name"`
	Children []*HierarchyNode `json:"children"`
	Indicators
}

// IsLeaf reports whether the node has no children.
func (n *HierarchyNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChartNode is a single-indicator view of a HierarchyNode for hierarchical charts.
type ChartNode struct {
	Name     string      `json:"name"`
	Value    float64     `json:"value"`
	Children []ChartNode `json:"children,omitempty"`
}

// SmellSummary holds version-level means of the code smell scores.
type SmellSummary struct {
	DuplicateCode float64 `json:"duplicate_code"`
	LongParameter float64 `json:"long_parameter"`
	LongMethod    float64 `json:"long_method"`
	LazyClass     float64 `json:"lazy_class"`
	LargeClass    float64 `json:"large_class"`
}

// ScoreResult is the outcome of scoring one project version.
type ScoreResult struct {
	Project string         `json:"project"`
	Version string         `json:"version"`
	Tree    *HierarchyNode `json:"tree"`
	Classes []ClassScore   `json:"classes"`
	Smells  SmellSummary   `json:"smells"`
}
