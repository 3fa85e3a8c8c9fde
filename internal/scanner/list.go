package scanner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gohalstead/internal/model"
)

var (
	// ErrInputListRequired 表示批量模式缺少 --input-list。
	ErrInputListRequired = errors.New("batch mode requires an input list")
	// ErrListLengthMismatch 表示输入清单与输出清单条目数不一致。
	ErrListLengthMismatch = errors.New("input and output lists have different lengths")
)

// Batch 描述一次清单驱动的批量任务。
// Outputs 为空表示不逐文件写报告；非空时第 i 个输出对应第 i 个输入。
type Batch struct {
	Source  string
	Inputs  []string
	Outputs []string
}

// ReadPathList 读取路径清单：每行一个路径，忽略空行和以 # 开头的行。
// 清单文件本身不存在时直接返回错误，由调用方终止整个批量任务。
func ReadPathList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	paths := make([]string, 0)
	lineScanner := bufio.NewScanner(file)
	for lineScanner.Scan() {
		line := strings.TrimSpace(lineScanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := lineScanner.Err(); err != nil {
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}
	return paths, nil
}

// LoadBatch 读取输入清单和可选的输出清单并校验长度。
func LoadBatch(inputList string, outputList string) (Batch, error) {
	if strings.TrimSpace(inputList) == "" {
		return Batch{}, ErrInputListRequired
	}

	inputs, err := ReadPathList(inputList)
	if err != nil {
		return Batch{}, err
	}

	batch := Batch{Source: inputList, Inputs: inputs}
	if strings.TrimSpace(outputList) == "" {
		return batch, nil
	}

	outputs, err := ReadPathList(outputList)
	if err != nil {
		return Batch{}, err
	}
	if len(outputs) != len(inputs) {
		return Batch{}, fmt.Errorf("%w: %d inputs, %d outputs", ErrListLengthMismatch, len(inputs), len(outputs))
	}
	batch.Outputs = outputs
	return batch, nil
}

// RunBatch 分析清单中的全部文件；设置了输出清单时逐文件写报告。
// 缺失文件与写出失败都只告警并记录在 Errors 中。
func (s *Service) RunBatch(ctx context.Context, batch Batch) (model.BatchResult, error) {
	if len(batch.Outputs) > 0 && len(batch.Outputs) != len(batch.Inputs) {
		return model.BatchResult{}, ErrListLengthMismatch
	}

	s.logger.Info("analyzing %d files from %s", len(batch.Inputs), batch.Source)
	outcomes, err := s.run(ctx, batch.Inputs)
	if err != nil {
		return model.BatchResult{}, err
	}

	result := s.collect(batch.Inputs, outcomes)
	result.Source = batch.Source

	if len(batch.Outputs) == 0 {
		return result, nil
	}

	for idx, item := range outcomes {
		if item.result == nil {
			continue
		}
		if err := s.writeResult(batch.Outputs[idx], *item.result); err != nil {
			s.logger.Warning("cannot write report for %s: %v", batch.Inputs[idx], err)
			result.Errors = append(result.Errors, model.ScanError{
				Path:  batch.Outputs[idx],
				Error: err.Error(),
			})
		}
	}
	return result, nil
}
