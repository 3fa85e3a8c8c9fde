// Package cmd 提供 gohalstead 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"gohalstead/internal/analyzer"
	"gohalstead/internal/config"
	"gohalstead/internal/languages"
	"gohalstead/internal/logging"
	"gohalstead/internal/prompt"
	"gohalstead/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app 保存一次命令执行期间共享的组件，在 PersistentPreRunE 中初始化。
type app struct {
	version     string
	v           *viper.Viper
	cfg         *config.Config
	registry    *languages.Registry
	logger      *logging.Logger
	asker       prompt.Asker
	interactive func() bool
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(version)
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}

// twoLetterFlags 兼容 -il / -ol 写法；pflag 的短参数只能是单个字符。
var twoLetterFlags = map[string]string{
	"-il": "--input-list",
	"-ol": "--output-list",
}

// normalizeArgs 在 cobra 解析前把两字母短参数改写为长参数。
func normalizeArgs(args []string) []string {
	normalized := make([]string, 0, len(args))
	for idx, arg := range args {
		if arg == "--" {
			return append(normalized, args[idx:]...)
		}
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := twoLetterFlags[name]; ok {
			if hasValue {
				arg = long + "=" + value
			} else {
				arg = long
			}
		}
		normalized = append(normalized, arg)
	}
	return normalized
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	a := &app{
		version:     version,
		v:           viper.New(),
		asker:       prompt.Terminal{},
		interactive: prompt.Interactive,
	}

	rootCmd := &cobra.Command{
		Use:   "gohalstead",
		Short: "Halstead 复杂度分析工具",
		Long: "gohalstead 基于词法分析统计 Halstead 度量、LOC 与关键字频次，\n" +
			"并给出 0~100 的得分与字母等级。支持单文件、清单批量与目录扫描。",
		Example: "  gohalstead -i example.py\n" +
			"  gohalstead -i example.py -o reports/example.csv\n" +
			"  gohalstead -b -il inputs.txt -ol outputs.txt -o combined.csv",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE:              a.runAnalyze,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "配置文件路径（默认 ./.gohalstead.yaml 或 $HOME/.gohalstead.yaml）")
	flags.StringP("language", "l", "", "强制使用的语言画像（python, javascript, typescript, go）")
	flags.String("profiles", "", "自定义语言画像 YAML 文件")
	flags.Int("workers", 0, "并发 worker 数量（默认 CPU 核数）")
	flags.String("path-prefix", "", "展示路径的起点，例如 plotly/python")
	flags.String("store", "", "结果存储后端: sqlite, mysql, postgres")
	flags.String("store-dsn", "", "结果存储连接串（sqlite 默认 gohalstead.db）")
	flags.Bool("no-color", false, "禁用彩色输出")
	flags.Bool("no-prompt", false, "缺少参数时不进入交互询问")
	flags.BoolP("quiet", "q", false, "只输出告警与错误")

	local := rootCmd.Flags()
	local.StringP("input", "i", "", "要分析的源文件")
	local.StringP("output", "o", "", "报告输出路径；批量模式下为合并报告（.csv/.json/.parquet）")
	local.BoolP("batch", "b", false, "批量模式，需要 --input-list")
	local.String("input-list", "", "批量模式的输入清单（可写作 -il）")
	local.String("output-list", "", "批量模式的逐文件输出清单（可写作 -ol）")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(a))
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newMCPCmd(a))

	return rootCmd
}

// setup 合并配置文件、环境变量与参数，并初始化画像注册中心与日志。
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	cfg, err := config.Load(a.v, a.v.GetString("config"))
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.NoColor {
		color.NoColor = true
	}
	a.logger = logging.New(cmd.ErrOrStderr(), cfg.Quiet, cfg.NoColor)

	a.registry = languages.NewRegistry()
	if cfg.Profiles != "" {
		if err := a.registry.LoadFile(cfg.Profiles); err != nil {
			return err
		}
	}
	return nil
}

// newAnalyzer 按配置创建 Analyzer，无法推断语言时回退到 Python。
func (a *app) newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(a.registry, a.cfg.Language, languages.Python(), analyzer.Options{
		PathPrefix: a.cfg.PathPrefix,
	})
}

// openStore 在配置了存储后端时打开数据库，否则返回 nil。
func (a *app) openStore() (*store.Store, error) {
	if a.cfg.Store == config.StoreNone {
		return nil, nil
	}
	return store.Open(a.cfg.Store, a.cfg.StoreDSN)
}

// runAnalyze 处理根命令：单文件或清单批量。
func (a *app) runAnalyze(cmd *cobra.Command, _ []string) error {
	if a.cfg.Batch {
		return a.runBatch(cmd)
	}
	return a.runSingle(cmd)
}
