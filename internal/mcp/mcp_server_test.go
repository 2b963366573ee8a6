package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/codequal/internal/contract"
	mcp_internal "github.com/huangsam/codequal/internal/mcp"
	"github.com/huangsam/codequal/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../core/metrics/testdata/jsoup"

func newServer(project string) *server.MCPServer {
	baseCfg := &contract.Config{
		Indicator:   schema.Complexity,
		ResultLimit: 10,
		Workers:     2,
		Precision:   2,
	}
	baseCfg.SetProject(project)

	// No stores: scoring runs uncached
	var mgr contract.CacheManager
	return mcp_internal.NewMCPServer(baseCfg, mgr)
}

// call invokes a registered tool handler directly.
func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerTools(t *testing.T) {
	s := newServer("jhy/jsoup")
	for _, name := range []string{"score_version", "trend_versions", "compare_versions", "validate_indicator"} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newServer("jhy/jsoup")

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		expected string
	}{
		{"score missing dir", "score_version", map[string]any{}, "dir is required"},
		{"score invalid indicator", "score_version", map[string]any{"dir": fixtureDir, "indicator": "speed"}, "invalid indicator"},
		{"score missing inputs", "score_version", map[string]any{"dir": t.TempDir()}, "scoring failed"},
		{"trend single dir", "trend_versions", map[string]any{"dirs": fixtureDir}, "at least two"},
		{"trend version mismatch", "trend_versions", map[string]any{"dirs": fixtureDir + "," + fixtureDir, "versions": "a"}, "1 names for 2 directories"},
		{"compare missing target", "compare_versions", map[string]any{"base_dir": fixtureDir}, "base_dir and target_dir are required"},
		{"validate missing dir", "validate_indicator", map[string]any{"indicator": "complexity"}, "dir is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, text(res), tt.expected)
		})
	}

	t.Run("missing project", func(t *testing.T) {
		res := call(t, newServer(""), "score_version", map[string]any{"dir": fixtureDir})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "project is required")
	})
}

func TestMCPServerHandlers_Fixture(t *testing.T) {
	s := newServer("jhy/jsoup")

	t.Run("score_version", func(t *testing.T) {
		res := call(t, s, "score_version", map[string]any{"dir": fixtureDir, "version": "1.14.3", "limit": 2.0})
		require.False(t, res.IsError, text(res))

		var payload struct {
			Version string                      `json:"version"`
			Root    schema.Indicators           `json:"root"`
			Classes []schema.EnrichedClassScore `json:"classes"`
		}
		require.NoError(t, json.Unmarshal([]byte(text(res)), &payload))
		assert.Equal(t, "1.14.3", payload.Version)
		assert.Equal(t, 20.0, payload.Root.Complexity)
		require.Len(t, payload.Classes, 2)
		assert.Equal(t, "jsoup/src/main/java/org/jsoup/parser/Parser.java/Parser", payload.Classes[0].Path)
	})

	t.Run("trend_versions", func(t *testing.T) {
		res := call(t, s, "trend_versions", map[string]any{"dirs": fixtureDir + "," + fixtureDir, "versions": "a,b"})
		require.False(t, res.IsError, text(res))

		var trend schema.TrendResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &trend))
		require.Len(t, trend.Points, 2)
		assert.Equal(t, "b", trend.Points[1].Version)
	})

	t.Run("compare_versions", func(t *testing.T) {
		res := call(t, s, "compare_versions", map[string]any{"base_dir": fixtureDir, "target_dir": fixtureDir, "indicator": "maintainability"})
		require.False(t, res.IsError, text(res))

		var cmp schema.ComparisonResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &cmp))
		assert.Empty(t, cmp.Details)
	})

	t.Run("validate_indicator", func(t *testing.T) {
		res := call(t, s, "validate_indicator", map[string]any{"dir": fixtureDir})
		require.False(t, res.IsError, text(res))

		var v schema.ValidationResult
		require.NoError(t, json.Unmarshal([]byte(text(res)), &v))
		assert.Equal(t, schema.Complexity, v.Indicator)
		assert.Len(t, v.Correlations, 11)
	})
}
