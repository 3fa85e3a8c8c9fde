package report

import (
	"fmt"
	"io"

	"gohalstead/internal/model"
)

// WriteText 输出纯文本报告。
//
//	Code Analysis Report
//
//	LOC Metrics:
//	Total Lines: 12
//	...
//	Final Score: 85/100
//	Grade: A
func WriteText(writer io.Writer, result model.Result) error {
	if _, err := fmt.Fprintln(writer, "Code Analysis Report"); err != nil {
		return err
	}

	order, grouped := groupRows(SectionRows(result))
	for _, section := range order {
		if _, err := fmt.Fprintf(writer, "\n%s:\n", section); err != nil {
			return err
		}
		for _, row := range grouped[section] {
			if _, err := fmt.Fprintf(writer, "%s: %s\n", row.Metric, row.Value); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(writer, "\nAverage Line Length: %.2f characters\n", result.AvgLineLength); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "\nFinal Score: %d/100\nGrade: %s\n", result.Score, result.Grade)
	return err
}
