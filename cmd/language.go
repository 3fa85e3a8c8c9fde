package cmd

import (
	"strconv"
	"strings"

	"gohalstead/internal/report"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示当前可用的语言画像、对应文件后缀与注释标记。
func newLanguageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示可用语言画像及后缀",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descriptors := a.registry.Languages()
			rows := make([][]string, 0, len(descriptors))
			for _, item := range descriptors {
				rows = append(rows, []string{
					item.Name,
					strings.Join(item.Extensions, ", "),
					item.CommentMarker,
					strconv.Itoa(item.Keywords),
					strconv.Itoa(item.Symbols),
				})
			}
			return report.PrintRows(cmd.OutOrStdout(), []string{"Language", "Extensions", "Comment", "Keywords", "Symbols"}, rows)
		},
	}
}
