package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gohalstead/internal/analyzer"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler 持有工具处理函数的公共依赖。
type toolHandler struct {
	deps Deps
}

func (h *toolHandler) analyzerFor(language string) *analyzer.Analyzer {
	return analyzer.New(h.deps.Registry, language, h.deps.Fallback, h.deps.Options)
}

func jsonResult(value any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(value, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleAnalyzeCode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := request.GetString("code", "")
	if strings.TrimSpace(code) == "" {
		return mcp.NewToolResultError("code is required"), nil
	}
	filename := request.GetString("filename", "snippet")

	result, err := h.analyzerFor(request.GetString("language", "")).AnalyzeText(filename, code)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleAnalyzeFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	result, err := h.analyzerFor(request.GetString("language", "")).AnalyzeFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleListProfiles(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.deps.Registry.Languages()), nil
}

func (h *toolHandler) handleFileHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filepath := request.GetString("filepath", "")
	if filepath == "" {
		return mcp.NewToolResultError("filepath is required"), nil
	}

	history, err := h.deps.Store.History(ctx, filepath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history query failed: %v", err)), nil
	}
	return jsonResult(history), nil
}
