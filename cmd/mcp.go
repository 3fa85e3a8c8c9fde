package cmd

import (
	"gohalstead/internal/analyzer"
	"gohalstead/internal/languages"
	"gohalstead/internal/mcpserver"

	"github.com/spf13/cobra"
)

// newMCPCmd 创建 mcp 子命令，在 stdio 上启动 MCP 服务。
func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "以 MCP 服务方式运行（stdio）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps := mcpserver.Deps{
				Registry: a.registry,
				Fallback: languages.Python(),
				Options:  analyzer.Options{PathPrefix: a.cfg.PathPrefix},
			}

			db, err := a.openStore()
			if err != nil {
				return err
			}
			if db != nil {
				defer func() { _ = db.Close() }()
				deps.Store = db
			}

			return mcpserver.Serve(cmd.Context(), a.version, deps)
		},
	}
}
