// Package report 把分析结果渲染为控制台表格、文本报告、CSV、JSON 与 Parquet。
// 所有格式共享同一份有序的 Section/Metric/Value 行，保证各格式字段一致。
package report

import (
	"fmt"
	"strconv"

	"gohalstead/internal/model"
)

// 报告中的分节名称。
const (
	SectionLOC      = "LOC Metrics"
	SectionHalstead = "Halstead Metrics"
	SectionKeywords = "Keyword Frequency"
	SectionGeneral  = "General"
	SectionResults  = "Results"
)

// 结果尾部的指标名称。
const (
	MetricAvgLineLength = "Average Line Length"
	MetricFinalScore    = "Final Score"
	MetricGrade         = "Grade"
)

// Row 是报告中的一行度量。Numeric 只在值为数值时有意义。
type Row struct {
	Section string
	Metric  string
	Value   string
	Numeric float64
}

func intRow(section string, metric string, value int) Row {
	return Row{Section: section, Metric: metric, Value: strconv.Itoa(value), Numeric: float64(value)}
}

func floatRow(section string, metric string, value float64) Row {
	return Row{Section: section, Metric: metric, Value: formatFloat(value), Numeric: value}
}

// formatFloat 统一保留两位小数。
func formatFloat(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// SectionRows 返回三个度量分节的行，顺序固定：LOC、Halstead、关键字频次。
func SectionRows(result model.Result) []Row {
	loc := result.LOC
	h := result.Halstead

	rows := []Row{
		intRow(SectionLOC, "Total Lines", loc.Total),
		intRow(SectionLOC, "Blank Lines", loc.Blank),
		intRow(SectionLOC, "Comment Lines", loc.Comment),
		intRow(SectionLOC, "Code Lines", loc.Code),

		intRow(SectionHalstead, "Unique Operators", h.DistinctOperators),
		intRow(SectionHalstead, "Unique Operands", h.DistinctOperands),
		intRow(SectionHalstead, "Total Operators", h.TotalOperators),
		intRow(SectionHalstead, "Total Operands", h.TotalOperands),
		intRow(SectionHalstead, "Vocabulary", h.Vocabulary),
		intRow(SectionHalstead, "Program Length", h.Length),
		floatRow(SectionHalstead, "Volume", h.Volume),
		floatRow(SectionHalstead, "Difficulty", h.Difficulty),
		floatRow(SectionHalstead, "Effort", h.Effort),
		floatRow(SectionHalstead, "Time", h.Time),
		floatRow(SectionHalstead, "Delivered Bugs", h.DeliveredBugs),
	}

	for _, item := range result.Keywords {
		rows = append(rows, intRow(SectionKeywords, item.Keyword, item.Count))
	}
	return rows
}

// AllRows 在度量分节之后追加平均行长、得分与等级，用于长表格式输出。
func AllRows(result model.Result) []Row {
	rows := SectionRows(result)
	rows = append(rows,
		floatRow(SectionGeneral, MetricAvgLineLength, result.AvgLineLength),
		intRow(SectionResults, MetricFinalScore, result.Score),
		Row{Section: SectionResults, Metric: MetricGrade, Value: result.Grade},
	)
	return rows
}

// groupRows 按分节聚合，保持首次出现顺序。
func groupRows(rows []Row) ([]string, map[string][]Row) {
	order := make([]string, 0)
	grouped := make(map[string][]Row)
	for _, row := range rows {
		if _, ok := grouped[row.Section]; !ok {
			order = append(order, row.Section)
		}
		grouped[row.Section] = append(grouped[row.Section], row)
	}
	return order, grouped
}
