// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/codequal/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking scoring runs and storing class scores.
type AnalysisStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(info schema.RunInfo) (int64, error)

	// EndRun updates the scoring run with completion data
	EndRun(runID int64, endTime time.Time, totalClasses int) error

	// RecordClassScores stores the six indicators of every class in one run
	RecordClassScores(runID int64, scoredAt time.Time, classes []schema.ClassScore) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllScoringRuns retrieves all scoring runs for export
	GetAllScoringRuns() ([]schema.ScoringRunRecord, error)

	// GetAllClassScores retrieves all class score rows for export
	GetAllClassScores() ([]schema.ClassScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
