// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// indicatorEnum lists the accepted indicator names for tool parameters.
var indicatorEnum = []string{"maintainability", "testability", "readability", "reusability", "inheritance", "complexity"}

// NewMCPServer initializes and configures the codequal MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Codequal Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_version ---
	s.AddTool(mcp.NewTool("score_version",
		mcp.WithDescription("Score one scanned project version and rank its classes by a quality indicator."),
		mcp.WithString("dir", mcp.Description("Results directory holding {name}-Class.csv, {name}-Method.csv and sourcemeter/temp/{name}-PMD.xml."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Full project name such as owner/name. Defaults to the configured project.")),
		mcp.WithString("version", mcp.Description("Version name. Defaults to the directory name.")),
		mcp.WithString("indicator", mcp.Description("Indicator to rank by. Defaults to maintainability."), mcp.Enum(indicatorEnum...)),
		mcp.WithNumber("limit", mcp.Description("Limit the number of classes returned.")),
	), h.handleScoreVersion)

	// --- 2. Tool: trend_versions ---
	s.AddTool(mcp.NewTool("trend_versions",
		mcp.WithDescription("Score several versions in order and return the project-level indicator totals of each."),
		mcp.WithString("dirs", mcp.Description("Comma-separated results directories, oldest first."), mcp.Required()),
		mcp.WithString("versions", mcp.Description("Comma-separated version names, one per directory.")),
		mcp.WithString("project", mcp.Description("Full project name such as owner/name.")),
	), h.handleTrendVersions)

	// --- 3. Tool: compare_versions ---
	s.AddTool(mcp.NewTool("compare_versions",
		mcp.WithDescription("Compare the indicator values of every class between a base and a target version."),
		mcp.WithString("base_dir", mcp.Description("Results directory of the base version."), mcp.Required()),
		mcp.WithString("target_dir", mcp.Description("Results directory of the target version."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Full project name such as owner/name.")),
		mcp.WithString("indicator", mcp.Description("Indicator to compare."), mcp.Enum(indicatorEnum...)),
		mcp.WithNumber("limit", mcp.Description("Limit the number of changes returned.")),
	), h.handleCompareVersions)

	// --- 4. Tool: validate_indicator ---
	s.AddTool(mcp.NewTool("validate_indicator",
		mcp.WithDescription("Correlate one indicator with raw class metrics using Spearman rank correlation."),
		mcp.WithString("dir", mcp.Description("Results directory of the version."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Full project name such as owner/name.")),
		mcp.WithString("indicator", mcp.Description("Indicator to validate."), mcp.Enum(indicatorEnum...)),
	), h.handleValidateIndicator)

	return s
}

// StartMCPServer starts the codequal MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
