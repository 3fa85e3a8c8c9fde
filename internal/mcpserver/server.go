// Package mcpserver 通过 Model Context Protocol 暴露分析能力。
package mcpserver

import (
	"context"
	"io"
	"os"

	"gohalstead/internal/analyzer"
	"gohalstead/internal/languages"
	"gohalstead/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Deps 是工具处理函数依赖的组件。Store 为空时不注册 file_history。
type Deps struct {
	Registry *languages.Registry
	Fallback *languages.Profile
	Options  analyzer.Options
	Store    *store.Store
}

// NewServer 创建并注册全部工具，但不启动。
func NewServer(version string, deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"gohalstead",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{deps: deps}

	s.AddTool(mcp.NewTool("analyze_code",
		mcp.WithDescription("Compute Halstead metrics, LOC, keyword frequency, score and grade for a source snippet."),
		mcp.WithString("code", mcp.Description("Source code to analyze."), mcp.Required()),
		mcp.WithString("language", mcp.Description("Language profile name (e.g. python, javascript, go). Inferred from filename when omitted.")),
		mcp.WithString("filename", mcp.Description("Optional file name used for language inference and version/date metadata.")),
	), h.handleAnalyzeCode)

	s.AddTool(mcp.NewTool("analyze_file",
		mcp.WithDescription("Analyze a source file on disk."),
		mcp.WithString("path", mcp.Description("Path to the source file."), mcp.Required()),
		mcp.WithString("language", mcp.Description("Language profile name; inferred from the extension when omitted.")),
	), h.handleAnalyzeFile)

	s.AddTool(mcp.NewTool("list_profiles",
		mcp.WithDescription("List the available language profiles and their file extensions."),
	), h.handleListProfiles)

	if deps.Store != nil {
		s.AddTool(mcp.NewTool("file_history",
			mcp.WithDescription("Show stored results for a file across versions and dates."),
			mcp.WithString("filepath", mcp.Description("Displayed file path as stored in the results database."), mcp.Required()),
		), h.handleFileHistory)
	}

	return s
}

// Serve 在 stdio 上运行 MCP 服务，直到输入结束或 ctx 被取消。
func Serve(ctx context.Context, version string, deps Deps) error {
	return Listen(ctx, version, deps, os.Stdin, os.Stdout)
}

// Listen 在给定的输入输出上运行 MCP 服务。
func Listen(ctx context.Context, version string, deps Deps, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(NewServer(version, deps)).Listen(ctx, stdin, stdout)
}
