package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// Table names for scoring run tracking.
const (
	scoringRunsTable = "codequal_scoring_runs"
	classScoresTable = "codequal_class_scores"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// A store without a connection records nothing
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables creates the run tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{scoringRunsTable, getCreateScoringRunsQuery(backend)},
		{classScoresTable, getCreateClassScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateScoringRunsQuery returns the CREATE TABLE query for codequal_scoring_runs.
func getCreateScoringRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(scoringRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid VARCHAR(36) NOT NULL,
				project VARCHAR(255) NOT NULL,
				version VARCHAR(255) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_classes INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				project TEXT NOT NULL,
				version TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_classes INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				project TEXT NOT NULL,
				version TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_classes INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateClassScoresQuery returns the CREATE TABLE query for codequal_class_scores.
func getCreateClassScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(classScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				entity_path VARCHAR(512) NOT NULL,
				long_name VARCHAR(512) NOT NULL,
				scored_at DATETIME(6) NOT NULL,
				maintainability DOUBLE NOT NULL,
				testability DOUBLE NOT NULL,
				readability DOUBLE NOT NULL,
				reusability DOUBLE NOT NULL,
				inheritance DOUBLE NOT NULL,
				complexity DOUBLE NOT NULL,
				label VARCHAR(50) NOT NULL,
				PRIMARY KEY (run_id, entity_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				entity_path TEXT NOT NULL,
				long_name TEXT NOT NULL,
				scored_at TIMESTAMPTZ NOT NULL,
				maintainability DOUBLE PRECISION NOT NULL,
				testability DOUBLE PRECISION NOT NULL,
				readability DOUBLE PRECISION NOT NULL,
				reusability DOUBLE PRECISION NOT NULL,
				inheritance DOUBLE PRECISION NOT NULL,
				complexity DOUBLE PRECISION NOT NULL,
				label TEXT NOT NULL,
				PRIMARY KEY (run_id, entity_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				entity_path TEXT NOT NULL,
				long_name TEXT NOT NULL,
				scored_at TEXT NOT NULL,
				maintainability REAL NOT NULL,
				testability REAL NOT NULL,
				readability REAL NOT NULL,
				reusability REAL NOT NULL,
				inheritance REAL NOT NULL,
				complexity REAL NOT NULL,
				label TEXT NOT NULL,
				PRIMARY KEY (run_id, entity_path)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new scoring run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginRun(info schema.RunInfo) (int64, error) {
	if as.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(info.Params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(scoringRunsTable, as.backend)
	columns := "run_uuid, project, version, start_time, config_params"
	args := []any{info.RunUUID, info.Project, info.Version, formatTime(info.StartTime, as.backend), string(configJSON)}

	var runID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING run_id`, quotedTableName, columns, placeholders(as.backend, len(args)))
		err = as.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, columns, placeholders(as.backend, len(args)))
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert scoring run: %w", err)
	}

	return runID, nil
}

// EndRun updates the scoring run with completion data.
func (as *AnalysisStoreImpl) EndRun(runID int64, endTime time.Time, totalClasses int) error {
	if as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(scoringRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(as.backend, 1))
	start := timeScanner{backend: as.backend}
	if err := as.db.QueryRow(query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, _, err := start.value()
	if err != nil {
		return err
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_classes = %s WHERE run_id = %s`,
		quotedTableName,
		placeholder(as.backend, 1), placeholder(as.backend, 2), placeholder(as.backend, 3), placeholder(as.backend, 4))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalClasses, runID); err != nil {
		return fmt.Errorf("failed to update scoring run: %w", err)
	}

	return nil
}

// RecordClassScores stores the six indicators of every class of a run in one transaction.
func (as *AnalysisStoreImpl) RecordClassScores(runID int64, scoredAt time.Time, classes []schema.ClassScore) error {
	if as.db == nil || len(classes) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, entity_path, long_name, scored_at, maintainability, testability,
		                readability, reusability, inheritance, complexity, label)
		VALUES (%s)
	`, quoteTableName(classScoresTable, as.backend), placeholders(as.backend, 11))

	tx, err := as.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare class score insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	at := formatTime(scoredAt, as.backend)
	for _, c := range classes {
		if _, err := stmt.Exec(runID, c.Path, c.LongName, at,
			c.Maintainability, c.Testability, c.Readability, c.Reusability, c.Inheritance, c.Complexity,
			schema.GetPlainLabel(c.Maintainability)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert class score for %s: %w", c.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit class scores: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the scoring run store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(scoringRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: as.backend}
		lastQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		if err := as.db.QueryRow(lastQuery).Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastTime, _, err := last.value()
		if err != nil {
			return status, err
		}
		status.LastRunTime = lastTime

		oldest := timeScanner{backend: as.backend}
		oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		if err := as.db.QueryRow(oldestQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestTime, _, err := oldest.value()
		if err != nil {
			return status, err
		}
		status.OldestRunTime = oldestTime

		classesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_classes), 0) FROM %s", runsTable)
		if err := as.db.QueryRow(classesQuery).Scan(&status.TotalClassesScored); err != nil {
			return status, fmt.Errorf("failed to get total classes scored: %w", err)
		}
	}

	for _, table := range []string{scoringRunsTable, classScoresTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllScoringRuns retrieves all scoring runs from the store.
func (as *AnalysisStoreImpl) GetAllScoringRuns() ([]schema.ScoringRunRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, project, version, start_time, end_time,
		run_duration_ms, total_classes, config_params FROM %s ORDER BY run_id`, quoteTableName(scoringRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoring runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScoringRunRecord
	for rows.Next() {
		var record schema.ScoringRunRecord
		var totalClasses sql.NullInt32
		start := timeScanner{backend: as.backend}
		end := timeScanner{backend: as.backend}
		if err := rows.Scan(&record.RunID, &record.RunUUID, &record.Project, &record.Version,
			start.dest(), end.dest(), &record.RunDurationMs, &totalClasses, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan scoring run: %w", err)
		}
		if record.StartTime, _, err = start.value(); err != nil {
			return nil, err
		}
		endTime, ok, err := end.value()
		if err != nil {
			return nil, err
		}
		if ok {
			record.EndTime = &endTime
		}
		record.TotalClasses = totalClasses.Int32
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scoring runs: %w", err)
	}

	return results, nil
}

// GetAllClassScores retrieves all class score rows from the store.
func (as *AnalysisStoreImpl) GetAllClassScores() ([]schema.ClassScoreRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, entity_path, long_name, scored_at, maintainability, testability,
		readability, reusability, inheritance, complexity, label
		FROM %s ORDER BY run_id, entity_path`, quoteTableName(classScoresTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query class scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ClassScoreRecord
	for rows.Next() {
		var r schema.ClassScoreRecord
		scoredAt := timeScanner{backend: as.backend}
		if err := rows.Scan(&r.RunID, &r.EntityPath, &r.LongName, scoredAt.dest(),
			&r.Maintainability, &r.Testability, &r.Readability, &r.Reusability, &r.Inheritance, &r.Complexity,
			&r.Label); err != nil {
			return nil, fmt.Errorf("failed to scan class score: %w", err)
		}
		if r.ScoredAt, _, err = scoredAt.value(); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class scores: %w", err)
	}

	return results, nil
}
