package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"gohalstead/internal/config"
	"gohalstead/internal/report"

	"github.com/spf13/cobra"
)

// errStoreRequired 表示 history 子命令在未配置存储后端时被调用。
var errStoreRequired = errors.New("history requires a result store (use --store)")

// newHistoryCmd 创建 history 子命令，按日期与版本列出某个文件的历史结果。
// 示例：gohalstead history plotly/python/v5.0.0/graph.py --store sqlite
func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <filepath>",
		Short: "查看文件在各版本中的历史得分",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Store == config.StoreNone {
				return errStoreRequired
			}
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			entries, err := db.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.logger.Info("no stored results for %s", args[0])
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.RunID, 10),
					entry.Date,
					entry.Version,
					fmt.Sprintf("%.2f", entry.Volume),
					fmt.Sprintf("%.2f", entry.Difficulty),
					fmt.Sprintf("%.2f", entry.Effort),
					strconv.Itoa(entry.Score),
					entry.Grade,
					entry.Fingerprint,
				})
			}
			headers := []string{"Run", "Date", "Version", "Volume", "Difficulty", "Effort", "Score", "Grade", "Fingerprint"}
			return report.PrintRows(cmd.OutOrStdout(), headers, rows)
		},
	}
}
