// Package analyzer 把分词、度量和评分组合为单文件 Result。
package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gohalstead/internal/languages"
	"gohalstead/internal/metrics"
	"gohalstead/internal/model"
	"gohalstead/internal/scoring"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidUTF8 表示源文件不是合法 UTF-8，该文件整体失败。
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

// Options 控制 Result 的元数据生成。
type Options struct {
	// PathPrefix 为展示路径的起点，例如 plotly/python。
	PathPrefix string
}

// NewResult 基于原始行构建 Result，度量与评分只计算一次。
func NewResult(filePath string, lines []string, profile *languages.Profile, opts Options) model.Result {
	set := metrics.Compute(lines, profile)
	score, grade := scoring.ScoreAndGrade(set.LOC, set.Halstead, set.Keywords, set.AvgLineLength)

	return model.Result{
		Filepath:      TrimPathPrefix(filePath, opts.PathPrefix),
		Filename:      filepath.Base(normalizePath(filePath)),
		Language:      profile.Name(),
		Version:       ExtractVersion(filePath),
		Date:          ExtractDate(filePath),
		Fingerprint:   xxhash.Sum64String(strings.Join(lines, "")),
		LOC:           set.LOC,
		Halstead:      set.Halstead,
		Keywords:      set.Keywords,
		AvgLineLength: set.AvgLineLength,
		Score:         score,
		Grade:         grade,
	}
}

// ReadLines 读取全部行并保留行尾换行符；\r\n 与单独的 \r 统一为 \n。
// 非 UTF-8 内容返回 ErrInvalidUTF8。
func ReadLines(reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(bufio.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if !utf8.Valid(content) {
		return nil, ErrInvalidUTF8
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.SplitAfter(text, "\n")
	// SplitAfter 在以换行结尾时会多出一个空串。
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// AnalyzeFile 读取文件并生成 Result。
func AnalyzeFile(filePath string, profile *languages.Profile, opts Options) (model.Result, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return model.Result{}, err
	}
	defer func() { _ = file.Close() }()

	lines, err := ReadLines(file)
	if err != nil {
		return model.Result{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return NewResult(filePath, lines, profile, opts), nil
}

// Analyzer 绑定画像注册中心与选项，按文件后缀（或显式语言）选择画像。
type Analyzer struct {
	registry *languages.Registry
	language string
	fallback *languages.Profile
	opts     Options
}

// New 创建 Analyzer。language 为空时按后缀推断，推断失败回退到 fallback。
func New(registry *languages.Registry, language string, fallback *languages.Profile, opts Options) *Analyzer {
	return &Analyzer{
		registry: registry,
		language: strings.TrimSpace(language),
		fallback: fallback,
		opts:     opts,
	}
}

// ProfileFor 返回某个路径应使用的画像。
func (a *Analyzer) ProfileFor(filePath string) (*languages.Profile, error) {
	return a.registry.Resolve(a.language, filePath, a.fallback)
}

// Supports 判断目录扫描时是否纳入该文件：显式指定语言时全部纳入，否则按后缀。
func (a *Analyzer) Supports(filePath string) bool {
	if a.language != "" {
		return true
	}
	_, ok := a.registry.ProfileForFile(filePath)
	return ok
}

// AnalyzeFile 选择画像并分析单个文件。
func (a *Analyzer) AnalyzeFile(filePath string) (model.Result, error) {
	profile, err := a.ProfileFor(filePath)
	if err != nil {
		return model.Result{}, err
	}
	return AnalyzeFile(filePath, profile, a.opts)
}

// AnalyzeText 分析内存中的源码文本，name 仅用于元数据提取。
func (a *Analyzer) AnalyzeText(name string, text string) (model.Result, error) {
	profile, err := a.ProfileFor(name)
	if err != nil {
		return model.Result{}, err
	}
	lines, err := ReadLines(strings.NewReader(text))
	if err != nil {
		return model.Result{}, err
	}
	return NewResult(name, lines, profile, a.opts), nil
}
