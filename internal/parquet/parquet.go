// Package parquet provides data structures and functions for exporting codequal
// scores to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/codequal/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoringRun represents one scoring run of a project version.
// This struct maps to the codequal_scoring_runs database table.
type ScoringRun struct {
	// RunID is the store identifier of this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier of this run
	RunUUID string `parquet:"run_uuid,snappy"`

	Project string `parquet:"project,snappy"`
	Version string `parquet:"version,snappy"`

	// StartTime is when scoring began (TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when scoring completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalClasses int32 `parquet:"total_classes,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ClassScore represents the indicators of one class recorded in a run.
// This struct maps to the codequal_class_scores database table.
type ClassScore struct {
	// RunID references the parent scoring run
	RunID int64 `parquet:"run_id,snappy"`

	EntityPath string    `parquet:"entity_path,snappy"`
	LongName   string    `parquet:"long_name,snappy"`
	ScoredAt   time.Time `parquet:"scored_at,snappy"`

	Maintainability float64 `parquet:"maintainability,snappy"`
	Testability     float64 `parquet:"testability,snappy"`
	Readability     float64 `parquet:"readability,snappy"`
	Reusability     float64 `parquet:"reusability,snappy"`
	Inheritance     float64 `parquet:"inheritance,snappy"`
	Complexity      float64 `parquet:"complexity,snappy"`

	// Label is the maintainability label at scoring time
	Label string `parquet:"label,snappy"`
}

// ClassIndicators is one row of a scored version, written by --output parquet.
type ClassIndicators struct {
	Rank            int32   `parquet:"rank,snappy"`
	Project         string  `parquet:"project,snappy"`
	Version         string  `parquet:"version,snappy"`
	EntityPath      string  `parquet:"entity_path,snappy"`
	LongName        string  `parquet:"long_name,snappy"`
	Maintainability float64 `parquet:"maintainability,snappy"`
	Testability     float64 `parquet:"testability,snappy"`
	Readability     float64 `parquet:"readability,snappy"`
	Reusability     float64 `parquet:"reusability,snappy"`
	Inheritance     float64 `parquet:"inheritance,snappy"`
	Complexity      float64 `parquet:"complexity,snappy"`
	Label           string  `parquet:"label,snappy"`
}

// WriteRows writes rows of any tagged struct type to w.
func WriteRows[T any](w io.Writer, data []T) error {
	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows into it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteScoringRunsParquet writes scoring runs to a Parquet file.
func WriteScoringRunsParquet(data []ScoringRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteClassScoresParquet writes recorded class scores to a Parquet file.
func WriteClassScoresParquet(data []ClassScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertScoringRunRecords converts store records for Parquet export.
func ConvertScoringRunRecords(records []schema.ScoringRunRecord) []ScoringRun {
	result := make([]ScoringRun, len(records))
	for i, record := range records {
		result[i] = ScoringRun{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			Project:       record.Project,
			Version:       record.Version,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalClasses:  record.TotalClasses,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertClassScoreRecords converts store records for Parquet export.
func ConvertClassScoreRecords(records []schema.ClassScoreRecord) []ClassScore {
	result := make([]ClassScore, len(records))
	for i, r := range records {
		result[i] = ClassScore{
			RunID:           r.RunID,
			EntityPath:      r.EntityPath,
			LongName:        r.LongName,
			ScoredAt:        r.ScoredAt,
			Maintainability: r.Maintainability,
			Testability:     r.Testability,
			Readability:     r.Readability,
			Reusability:     r.Reusability,
			Inheritance:     r.Inheritance,
			Complexity:      r.Complexity,
			Label:           r.Label,
		}
	}
	return result
}

// ConvertClassScores converts ranked classes of one version for Parquet output.
func ConvertClassScores(project, version string, classes []schema.EnrichedClassScore) []ClassIndicators {
	result := make([]ClassIndicators, len(classes))
	for i, c := range classes {
		result[i] = ClassIndicators{
			Rank:            int32(c.Rank),
			Project:         project,
			Version:         version,
			EntityPath:      c.Path,
			LongName:        c.LongName,
			Maintainability: c.Maintainability,
			Testability:     c.Testability,
			Readability:     c.Readability,
			Reusability:     c.Reusability,
			Inheritance:     c.Inheritance,
			Complexity:      c.Complexity,
			Label:           c.Label,
		}
	}
	return result
}
