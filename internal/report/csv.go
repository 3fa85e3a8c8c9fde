package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gohalstead/internal/model"
)

// CombinedHeader 是合并 CSV 的表头。
var CombinedHeader = []string{"Filepath", "Filename", "Date", "Version", "Section", "Metric", "Value"}

// WriteCSV 输出单文件 CSV：Section,Metric,Value，每个分节之后空一行，
// 最后是平均行长、得分与等级三行两列记录。
func WriteCSV(writer io.Writer, result model.Result) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write([]string{"Section", "Metric", "Value"}); err != nil {
		return err
	}

	order, grouped := groupRows(SectionRows(result))
	for _, section := range order {
		for _, row := range grouped[section] {
			if err := csvWriter.Write([]string{row.Section, row.Metric, row.Value}); err != nil {
				return err
			}
		}
		if err := csvWriter.Write([]string{}); err != nil {
			return err
		}
	}

	tail := [][]string{
		{MetricAvgLineLength, formatFloat(result.AvgLineLength)},
		{MetricFinalScore, strconv.Itoa(result.Score)},
		{MetricGrade, result.Grade},
	}
	if err := csvWriter.WriteAll(tail); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteCombinedCSV 把多个结果写成一张长表，文件之间用空行分隔。
func WriteCombinedCSV(writer io.Writer, results []model.Result) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write(CombinedHeader); err != nil {
		return err
	}

	for _, result := range results {
		for _, row := range AllRows(result) {
			record := []string{
				result.Filepath,
				result.Filename,
				result.Date,
				result.Version,
				row.Section,
				row.Metric,
				row.Value,
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
		if err := csvWriter.Write([]string{}); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("write combined csv: %w", err)
	}
	return nil
}
