package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/codequal/core"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// scoreResponse is the payload of the score_version tool.
type scoreResponse struct {
	Project string                      `json:"project"`
	Version string                      `json:"version"`
	Root    schema.Indicators           `json:"root"`
	Smells  schema.SmellSummary         `json:"smells"`
	Classes []schema.EnrichedClassScore `json:"classes"`
}

// splitList splits a comma-separated parameter, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// configFor clones the base config for the given directories and applies the
// common project, indicator and limit parameters.
func (h *toolHandler) configFor(request mcp.CallToolRequest, dirs []string) (*contract.Config, error) {
	cfg := h.baseCfg.CloneWithVersions(dirs)
	if p := request.GetString("project", ""); p != "" {
		cfg.SetProject(p)
	}
	if cfg.Project == "" {
		return nil, errors.New("project is required")
	}
	if i := request.GetString("indicator", ""); i != "" {
		ind := schema.Indicator(strings.ToLower(i))
		if _, ok := schema.ValidIndicators[ind]; !ok {
			return nil, fmt.Errorf("invalid indicator '%s'", i)
		}
		cfg.Indicator = ind
	}
	if cfg.Indicator == "" {
		cfg.Indicator = schema.Maintainability
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = contract.DefaultResultLimit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = contract.DefaultWorkers
	}
	return cfg, nil
}

// jsonResult marshals a payload into a text tool result.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleScoreVersion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := request.GetString("dir", "")
	if dir == "" {
		return mcp.NewToolResultError("dir is required"), nil
	}
	cfg, err := h.configFor(request, []string{dir})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if v := request.GetString("version", ""); v != "" {
		cfg.VersionNames[0] = v
	}

	result, err := core.GetScoreResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	return jsonResult(scoreResponse{
		Project: result.Project,
		Version: result.Version,
		Root:    result.Tree.Indicators,
		Smells:  result.Smells,
		Classes: core.RankedClasses(result.Classes, cfg),
	}), nil
}

func (h *toolHandler) handleTrendVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dirs := splitList(request.GetString("dirs", ""))
	if len(dirs) < 2 {
		return mcp.NewToolResultError("dirs must list at least two results directories"), nil
	}
	cfg, err := h.configFor(request, dirs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if v := request.GetString("versions", ""); v != "" {
		names := splitList(v)
		if len(names) != len(dirs) {
			return mcp.NewToolResultError(fmt.Sprintf("versions lists %d names for %d directories", len(names), len(dirs))), nil
		}
		cfg.VersionNames = names
	}

	result, err := core.GetTrendResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleCompareVersions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	baseDir := request.GetString("base_dir", "")
	targetDir := request.GetString("target_dir", "")
	if baseDir == "" || targetDir == "" {
		return mcp.NewToolResultError("base_dir and target_dir are required"), nil
	}
	cfg, err := h.configFor(request, []string{baseDir, targetDir})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetCompareResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleValidateIndicator(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := request.GetString("dir", "")
	if dir == "" {
		return mcp.NewToolResultError("dir is required"), nil
	}
	cfg, err := h.configFor(request, []string{dir})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetValidateResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}
	return jsonResult(result), nil
}
