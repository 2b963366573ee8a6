package schema

// Custom string types for type safety.
type (
	// Indicator names one of the six composite quality indicators.
	Indicator string

	// OutputMode represents the format of the output.
	OutputMode string

	// Status represents the status of an entity path across two versions.
	Status string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string
)

// All indicators computed per class.
const (
	Maintainability Indicator = "maintainability" // default
	Testability     Indicator = "testability"
	Readability     Indicator = "readability"
	Reusability     Indicator = "reusability"
	Inheritance     Indicator = "inheritance"
	Complexity      Indicator = "complexity"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All status supported.
const (
	NewStatus      Status = "new"
	ActiveStatus   Status = "active"
	InactiveStatus Status = "inactive"
	UnknownStatus  Status = "unknown"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllIndicators lists the indicators in merge column order.
var AllIndicators = []Indicator{Maintainability, Testability, Readability, Reusability, Inheritance, Complexity}

// ValidIndicators lists all valid indicators.
var ValidIndicators = map[Indicator]struct{}{
	Maintainability: {},
	Testability:     {},
	Readability:     {},
	Reusability:     {},
	Inheritance:     {},
	Complexity:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// LowerIsBetter reports the polarity of an indicator. Readability is a
// violation density and keeps its raw polarity.
func LowerIsBetter(ind Indicator) bool {
	switch ind {
	case Complexity, Inheritance, Readability:
		return true
	default:
		return false
	}
}
