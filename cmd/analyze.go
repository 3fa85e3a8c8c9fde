package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gohalstead/internal/model"
	"gohalstead/internal/progress"
	"gohalstead/internal/report"
	"gohalstead/internal/scanner"

	"github.com/spf13/cobra"
)

// errNoInput 表示单文件模式下没有给出输入且无法交互询问。
var errNoInput = errors.New("no input file given (use --input)")

// runSingle 分析单个文件。未指定输入时在终端中询问；
// 未指定 --output 时询问输出路径，空回答表示输出到控制台。
func (a *app) runSingle(cmd *cobra.Command) error {
	canPrompt := !a.cfg.NoPrompt && a.interactive()

	input := strings.TrimSpace(a.cfg.Input)
	if input == "" {
		if !canPrompt {
			return errNoInput
		}
		answer, err := a.asker.InputPath()
		if err != nil {
			return err
		}
		input = answer
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("the input file '%s' does not exist", input)
	}

	output := strings.TrimSpace(a.cfg.Output)
	if !cmd.Flags().Changed("output") && output == "" && canPrompt {
		answer, err := a.asker.OutputPath()
		if err != nil {
			return err
		}
		output = answer
	}

	result, err := a.newAnalyzer().AnalyzeFile(input)
	if err != nil {
		return err
	}

	if output == "" {
		if err := report.PrintConsole(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		if err := report.WriteResult(output, result); err != nil {
			return err
		}
		a.logger.Info("report written to %s", output)
	}

	return a.record(cmd.Context(), model.BatchResult{Source: input, Results: []model.Result{result}})
}

// runBatch 处理清单批量模式。
func (a *app) runBatch(cmd *cobra.Command) error {
	batch, err := scanner.LoadBatch(a.cfg.InputList, a.cfg.OutputList)
	if err != nil {
		return err
	}

	result, err := a.newService().RunBatch(cmd.Context(), batch)
	if err != nil {
		return err
	}
	return a.finishBatch(cmd, result, len(batch.Outputs) > 0)
}

func (a *app) newService() *scanner.Service {
	quiet := a.cfg.Quiet
	return scanner.NewService(
		a.newAnalyzer(),
		a.cfg.Workers,
		scanner.WithLogger(a.logger),
		scanner.WithProgress(func(total int) progress.Reporter {
			return progress.ForTerminal("analyzing", total, quiet)
		}),
	)
}

// finishBatch 写合并报告或打印汇总表，并按需写入结果存储。
// 已经逐文件写出报告且没有合并输出时，只打印一行汇总。
func (a *app) finishBatch(cmd *cobra.Command, result model.BatchResult, wroteFiles bool) error {
	output := strings.TrimSpace(a.cfg.Output)
	switch {
	case output != "":
		if err := report.WriteBatch(output, result); err != nil {
			return err
		}
		a.logger.Info("combined report for %d files written to %s", len(result.Results), output)
	case wroteFiles:
		summary := result.Summarize()
		a.logger.Info("wrote %d reports (%d skipped), average score %.2f", summary.Files, summary.Skipped, summary.AverageScore)
	default:
		if err := report.PrintBatchTable(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	}

	return a.record(cmd.Context(), result)
}

// record 在配置了存储后端时保存本次结果。
// 报告此时已经写出，写库失败只记录错误，不影响退出码；无法连接数据库仍然报错。
func (a *app) record(ctx context.Context, result model.BatchResult) error {
	db, err := a.openStore()
	if err != nil || db == nil {
		return err
	}
	defer func() { _ = db.Close() }()

	params := map[string]any{
		"language":    a.cfg.Language,
		"path_prefix": a.cfg.PathPrefix,
		"workers":     a.cfg.Workers,
	}
	runID, err := db.RecordBatch(ctx, result, params)
	if err != nil {
		a.logger.Error("failed to store results", err)
		return nil
	}
	a.logger.Info("stored %d results as run %d", len(result.Results), runID)
	return nil
}
