package contract

import (
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/huangsam/codequal/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ThresholdsRawInput holds indicator threshold definitions from the YAML config file.
type ThresholdsRawInput struct {
	Maintainability *float64 `mapstructure:"maintainability"`
	Testability     *float64 `mapstructure:"testability"`
	Readability     *float64 `mapstructure:"readability"`
	Reusability     *float64 `mapstructure:"reusability"`
	Inheritance     *float64 `mapstructure:"inheritance"`
	Complexity      *float64 `mapstructure:"complexity"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	ResultsDirs  []string // One scan results directory per version
	Project      string   // Full project name, e.g. owner/name
	ShortName    string   // Last segment of Project, used for file names and path rewriting
	VersionNames []string // One version name per results directory

	Indicator   schema.Indicator
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Chart       bool // Emit the single-indicator tree instead of the class table
	Width       int  // Terminal width override (0 = auto-detect)
	PathFilter  string
	Excludes    []string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	// Thresholds is a mapping of [Indicator] = limit used by the check command
	Thresholds map[schema.Indicator]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ResultsDirs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Project           string `mapstructure:"project"`
	Versions          string `mapstructure:"versions"`
	Indicator         string `mapstructure:"indicator"`
	Filter            string `mapstructure:"filter"`
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Exclude           string `mapstructure:"exclude"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Detail            bool   `mapstructure:"detail"`
	Chart             bool   `mapstructure:"chart"`
	Width             int    `mapstructure:"width"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Indicator thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ResultsDirs != nil {
		clone.ResultsDirs = make([]string, len(c.ResultsDirs))
		copy(clone.ResultsDirs, c.ResultsDirs)
	}
	if c.VersionNames != nil {
		clone.VersionNames = make([]string, len(c.VersionNames))
		copy(clone.VersionNames, c.VersionNames)
	}
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.Thresholds != nil {
		clone.Thresholds = make(map[schema.Indicator]float64, len(c.Thresholds))
		maps.Copy(clone.Thresholds, c.Thresholds)
	}
	return &clone
}

// CloneWithVersions creates a copy of the Config that targets the given results
// directories. Version names are derived from the directory names.
func (c *Config) CloneWithVersions(dirs []string) *Config {
	clone := c.Clone()
	clone.ResultsDirs = make([]string, 0, len(dirs))
	clone.VersionNames = make([]string, 0, len(dirs))
	for _, d := range dirs {
		clean := filepath.Clean(d)
		clone.ResultsDirs = append(clone.ResultsDirs, clean)
		clone.VersionNames = append(clone.VersionNames, filepath.Base(clean))
	}
	return clone
}

// SetProject assigns the full project name and derives the short name.
func (c *Config) SetProject(project string) {
	c.Project = strings.Trim(strings.TrimSpace(project), "/")
	c.ShortName = ShortProjectName(c.Project)
}

// ShortProjectName returns the last '/' segment of a full project name.
func ShortProjectName(project string) string {
	project = strings.Trim(project, "/")
	if i := strings.LastIndex(project, "/"); i >= 0 {
		return project[i+1:]
	}
	return project
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processVersions(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// Cache and analysis must not share a SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PathFilter = input.Filter
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Chart = input.Chart
	cfg.Width = input.Width
	cfg.SetProject(input.Project)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Indicator Validation ---
	cfg.Indicator = schema.Indicator(strings.ToLower(input.Indicator))
	if _, ok := schema.ValidIndicators[cfg.Indicator]; !ok {
		return fmt.Errorf("invalid indicator '%s'. must be maintainability, testability, readability, reusability, inheritance, complexity", input.Indicator)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	// --- 5. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 6. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// processVersions pairs every results directory with a version name.
// Names come from --versions when given, otherwise from the directory names.
func processVersions(cfg *Config, input *ConfigRawInput) error {
	cfg.ResultsDirs = make([]string, 0, len(input.ResultsDirs))
	for _, d := range input.ResultsDirs {
		cfg.ResultsDirs = append(cfg.ResultsDirs, filepath.Clean(d))
	}

	if len(cfg.ResultsDirs) > 0 && cfg.Project == "" {
		return fmt.Errorf("--project is required when scoring results directories")
	}

	var names []string
	if input.Versions != "" {
		for v := range strings.SplitSeq(input.Versions, ",") {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		if len(names) != len(cfg.ResultsDirs) {
			return fmt.Errorf("--versions lists %d names for %d results directories", len(names), len(cfg.ResultsDirs))
		}
	} else {
		for _, d := range cfg.ResultsDirs {
			names = append(names, filepath.Base(d))
		}
	}
	cfg.VersionNames = names

	return nil
}

// processThresholds converts the raw threshold input into the final cfg.Thresholds map.
// Command-line --thresholds-override flag takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[schema.Indicator]float64)

	raw := map[schema.Indicator]*float64{
		schema.Maintainability: input.Thresholds.Maintainability,
		schema.Testability:     input.Thresholds.Testability,
		schema.Readability:     input.Thresholds.Readability,
		schema.Reusability:     input.Thresholds.Reusability,
		schema.Inheritance:     input.Thresholds.Inheritance,
		schema.Complexity:      input.Thresholds.Complexity,
	}
	for ind, v := range raw {
		if v != nil {
			thresholds[ind] = *v
		}
	}

	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	cfg.Thresholds = thresholds
	return nil
}

// parseThresholdsString parses a string like "maintainability:-1,complexity:50"
// into a map of Indicator to float64.
func parseThresholdsString(s string) (map[schema.Indicator]float64, error) {
	thresholds := make(map[schema.Indicator]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'indicator:value'", part)
		}

		ind := schema.Indicator(strings.ToLower(strings.TrimSpace(keyValue[0])))
		if _, ok := schema.ValidIndicators[ind]; !ok {
			return nil, fmt.Errorf("invalid indicator '%s'", keyValue[0])
		}

		valueStr := strings.TrimSpace(keyValue[1])
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for indicator %s: %w", valueStr, ind, err)
		}

		thresholds[ind] = value
	}

	return thresholds, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
