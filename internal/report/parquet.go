package report

import (
	"fmt"
	"io"

	"gohalstead/internal/model"

	"github.com/parquet-go/parquet-go"
)

// MetricRecord 是 Parquet 长表中的一行，字段与合并 CSV 一一对应，
// 另外保存语言、数值形式与内容指纹，便于下游直接做聚合。
type MetricRecord struct {
	Filepath    string  `parquet:"filepath,snappy"`
	Filename    string  `parquet:"filename,snappy"`
	Date        string  `parquet:"date,snappy"`
	Version     string  `parquet:"version,snappy"`
	Language    string  `parquet:"language,snappy"`
	Fingerprint uint64  `parquet:"fingerprint,snappy"`
	Section     string  `parquet:"section,snappy"`
	Metric      string  `parquet:"metric,snappy"`
	Value       string  `parquet:"value,snappy"`
	Numeric     float64 `parquet:"numeric,snappy"`
}

// MetricRecords 把结果展开为长表记录。
func MetricRecords(results []model.Result) []MetricRecord {
	records := make([]MetricRecord, 0, len(results)*24)
	for _, result := range results {
		for _, row := range AllRows(result) {
			records = append(records, MetricRecord{
				Filepath:    result.Filepath,
				Filename:    result.Filename,
				Date:        result.Date,
				Version:     result.Version,
				Language:    result.Language,
				Fingerprint: result.Fingerprint,
				Section:     row.Section,
				Metric:      row.Metric,
				Value:       row.Value,
				Numeric:     row.Numeric,
			})
		}
	}
	return records
}

// WriteParquet 以 Parquet 长表格式写出多个结果。
func WriteParquet(writer io.Writer, results []model.Result) error {
	pw := parquet.NewGenericWriter[MetricRecord](writer)

	if _, err := pw.Write(MetricRecords(results)); err != nil {
		_ = pw.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
