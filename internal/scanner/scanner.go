// Package scanner 提供批量分析调度能力。
// 该层负责目录遍历、清单读取、任务分发、并发执行和结果聚合，不负责度量细节。
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gohalstead/internal/analyzer"
	"gohalstead/internal/logging"
	"gohalstead/internal/model"
	"gohalstead/internal/progress"
	"gohalstead/internal/report"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sourcegraph/conc/pool"
)

// Service 是扫描服务对象。
type Service struct {
	analyzer    *analyzer.Analyzer
	workers     int
	logger      *logging.Logger
	newProgress func(total int) progress.Reporter
	writeResult func(path string, result model.Result) error
}

// Option 调整 Service 的可选依赖。
type Option func(*Service)

// WithLogger 设置告警输出。
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithProgress 设置进度条工厂。
func WithProgress(factory func(total int) progress.Reporter) Option {
	return func(s *Service) {
		s.newProgress = factory
	}
}

// WithResultWriter 替换批量模式下逐文件报告的写出方式。
func WithResultWriter(writer func(path string, result model.Result) error) Option {
	return func(s *Service) {
		s.writeResult = writer
	}
}

// outcome 是单个任务的执行产物，按输入下标存放。
type outcome struct {
	result *model.Result
	err    error
}

// NewService 创建扫描服务。
func NewService(a *analyzer.Analyzer, workers int, opts ...Option) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	service := &Service{
		analyzer:    a,
		workers:     workers,
		logger:      logging.Discard(),
		newProgress: func(int) progress.Reporter { return progress.Nop{} },
		writeResult: report.WriteResult,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// AnalyzeFiles 并发分析一组文件，结果顺序与输入顺序一致。
// 单个文件失败只记录告警和 ScanError，不中断其余文件。
func (s *Service) AnalyzeFiles(ctx context.Context, paths []string) (model.BatchResult, error) {
	outcomes, err := s.run(ctx, paths)
	if err != nil {
		return model.BatchResult{}, err
	}
	return s.collect(paths, outcomes), nil
}

// ScanPath 扫描目录或单文件。目录模式按后缀筛选文件并遵循根目录的 .gitignore。
func (s *Service) ScanPath(ctx context.Context, targetPath string) (model.BatchResult, error) {
	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return model.BatchResult{}, errors.New("scan path is empty")
	}

	info, err := os.Stat(trimmedPath)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("stat path: %w", err)
	}

	var paths []string
	if info.IsDir() {
		paths, err = s.collectDirectory(filepath.Clean(trimmedPath))
		if err != nil {
			return model.BatchResult{}, err
		}
	} else {
		if !s.analyzer.Supports(trimmedPath) {
			return model.BatchResult{}, fmt.Errorf("unsupported file extension: %s", filepath.Ext(trimmedPath))
		}
		paths = []string{trimmedPath}
	}

	s.logger.Info("analyzing %d files under %s", len(paths), trimmedPath)
	batch, err := s.AnalyzeFiles(ctx, paths)
	if err != nil {
		return batch, err
	}
	batch.Source = trimmedPath
	return batch, nil
}

// collectDirectory 遍历目录，返回可识别语言的文件（按遍历顺序，即字典序）。
func (s *Service) collectDirectory(root string) ([]string, error) {
	var matcher *ignore.GitIgnore
	if compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = compiled
	}

	paths := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}
		relativePath = filepath.ToSlash(relativePath)

		if entry.IsDir() {
			if path != root && (entry.Name() == ".git" || ignored(matcher, relativePath+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignored(matcher, relativePath) || !s.analyzer.Supports(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

func ignored(matcher *ignore.GitIgnore, relativePath string) bool {
	return matcher != nil && matcher.MatchesPath(relativePath)
}

// run 在有界 goroutine 池中执行分析，结果写入对应下标。
func (s *Service) run(ctx context.Context, paths []string) ([]outcome, error) {
	outcomes := make([]outcome, len(paths))
	if len(paths) == 0 {
		return outcomes, nil
	}

	reporter := s.newProgress(len(paths))
	defer reporter.Finish()

	p := pool.New().WithMaxGoroutines(s.workers)
	for idx, path := range paths {
		p.Go(func() {
			defer reporter.Tick()

			if err := ctx.Err(); err != nil {
				outcomes[idx].err = err
				return
			}

			result, err := s.analyzer.AnalyzeFile(path)
			if err != nil {
				outcomes[idx].err = err
				return
			}
			outcomes[idx].result = &result
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// collect 按输入顺序组装 BatchResult，并对失败文件输出告警。
func (s *Service) collect(paths []string, outcomes []outcome) model.BatchResult {
	batch := model.BatchResult{
		Results: make([]model.Result, 0, len(paths)),
		Errors:  make([]model.ScanError, 0),
	}

	for idx, item := range outcomes {
		if item.err != nil {
			s.warnSkipped(paths[idx], item.err)
			batch.Errors = append(batch.Errors, model.ScanError{
				Path:  paths[idx],
				Error: item.err.Error(),
			})
			continue
		}
		batch.Results = append(batch.Results, *item.result)
	}
	return batch
}

func (s *Service) warnSkipped(path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warning("file %s does not exist, skipping", path)
		return
	}
	s.logger.Warning("skipping %s: %v", path, err)
}
