package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gohalstead/internal/model"
)

// Format 是报告文件格式，由输出路径后缀决定。
type Format string

const (
	FormatText    Format = "text"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// ErrUnsupportedFormat 表示合并报告不支持该后缀。
var ErrUnsupportedFormat = errors.New("unsupported report format")

// FormatForPath 按后缀选择格式；无法识别时为纯文本。
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".parquet":
		return FormatParquet
	default:
		return FormatText
	}
}

// WriteFile 创建文件并交给 render 写入；目录不存在时自动创建。
func WriteFile(path string, render func(io.Writer) error) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := render(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("write output file %s: %w", path, err)
	}
	return file.Close()
}

// WriteResult 把单文件结果写到 path：.csv 为单文件 CSV，其余后缀一律为文本报告。
func WriteResult(path string, result model.Result) error {
	return WriteFile(path, func(w io.Writer) error {
		if FormatForPath(path) == FormatCSV {
			return WriteCSV(w, result)
		}
		return WriteText(w, result)
	})
}

// WriteBatch 把批量结果写到 path：.csv 为合并 CSV，.json 为 JSON，.parquet 为 Parquet。
func WriteBatch(path string, batch model.BatchResult) error {
	format := FormatForPath(path)
	if format == FormatText {
		return fmt.Errorf("%w: %q (use .csv, .json or .parquet)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	return WriteFile(path, func(w io.Writer) error {
		switch format {
		case FormatCSV:
			return WriteCombinedCSV(w, batch.Results)
		case FormatJSON:
			return PrintJSON(w, batch)
		default:
			return WriteParquet(w, batch.Results)
		}
	})
}
