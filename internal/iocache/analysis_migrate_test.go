package iocache

import (
	"bytes"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysisNoneBackend(t *testing.T) {
	err := MigrateAnalysis(io.Discard, schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestMigrateAnalysisSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	var out bytes.Buffer
	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "to version 3")
	assert.True(t, tableExists(t, dbPath, scoringRunsTable))
	assert.True(t, tableExists(t, dbPath, classScoresTable))

	out.Reset()
	require.NoError(t, MigrateAnalysis(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "No migration needed")

	require.NoError(t, MigrateAnalysis(io.Discard, schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, scoringRunsTable))
	assert.False(t, tableExists(t, dbPath, classScoresTable))

	require.NoError(t, MigrateAnalysis(io.Discard, schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, scoringRunsTable))

	require.NoError(t, MigrateAnalysis(io.Discard, schema.SQLiteBackend, dbPath, 3))
	assert.True(t, tableExists(t, dbPath, classScoresTable))
}

func TestMigrateAnalysisThenStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	require.NoError(t, MigrateAnalysis(io.Discard, schema.SQLiteBackend, dbPath, -1))

	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err, "store tables must match the migrated schema")
	assert.NoError(t, store.Close())
}
