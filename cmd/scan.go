package cmd

import (
	"github.com/spf13/cobra"
)

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	gohalstead scan .
//	gohalstead scan ./project -o result.parquet
func newScanCmd(a *app) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出 Halstead 度量",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			result, err := a.newService().ScanPath(cmd.Context(), target)
			if err != nil {
				return err
			}
			return a.finishBatch(cmd, result, false)
		},
	}

	scanCmd.Flags().StringP("output", "o", "", "合并报告路径（.csv/.json/.parquet），默认打印表格")

	return scanCmd
}
