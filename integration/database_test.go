//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// runBackendScenario clears both stores, scores twice (miss then hit) and reads the status back.
func runBackendScenario(t *testing.T, env []string) {
	t.Helper()

	_, _, err := runCommand(t, env, "cache", "clear")
	require.NoError(t, err)

	_, _, err = runCommand(t, env, "analysis", "clear")
	require.NoError(t, err)

	for range 2 {
		_, _, err = runCommand(t, env, "score", fixtureDir, "--project", "jhy/jsoup", "--limit", "5")
		require.NoError(t, err)
	}

	out, _, err := runCommand(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Entries: 1")

	out, _, err = runCommand(t, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Runs: 2")
}

// backendEnv builds the environment selecting one SQL backend for both stores.
func backendEnv(backend, connStr string) []string {
	return []string{
		"CODEQUAL_CACHE_BACKEND=" + backend,
		"CODEQUAL_CACHE_DB_CONNECT=" + connStr,
		"CODEQUAL_ANALYSIS_BACKEND=" + backend,
		"CODEQUAL_ANALYSIS_DB_CONNECT=" + connStr,
	}
}

// TestCodequalWithMySQL tests the codequal CLI with a MySQL backend.
func TestCodequalWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "codequal",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/codequal?parseTime=true", host, port.Port())
	runBackendScenario(t, backendEnv("mysql", connStr))
}

// TestCodequalWithPostgres tests the codequal CLI with a PostgreSQL backend.
func TestCodequalWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendScenario(t, backendEnv("postgresql", connStr))
}
