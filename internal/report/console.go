package report

import (
	"fmt"
	"io"
	"strings"

	"gohalstead/internal/model"
	"gohalstead/internal/scoring"

	"github.com/fatih/color"
)

var (
	titleColor  = color.New(color.FgGreen, color.Bold, color.Underline)
	labelColor  = color.New(color.Bold)
	valueColor  = color.New(color.FgMagenta)
	scoreColor  = color.New(color.FgHiCyan, color.Bold)
	reasonColor = color.New(color.FgYellow)
)

// gradeColors 按等级首字母着色。
var gradeColors = map[byte]*color.Color{
	'A': color.New(color.FgGreen, color.Bold),
	'B': color.New(color.FgCyan, color.Bold),
	'C': color.New(color.FgYellow, color.Bold),
	'D': color.New(color.FgMagenta, color.Bold),
	'F': color.New(color.FgRed, color.Bold),
}

// ColorGrade 返回着色后的等级文本；color.NoColor 为 true 时原样返回。
func ColorGrade(grade string) string {
	if grade == "" {
		return grade
	}
	if c, ok := gradeColors[grade[0]]; ok {
		return c.Sprint(grade)
	}
	return grade
}

// PrintConsole 在控制台展示单文件报告：每个分节一张表，末尾附扣分明细、得分与等级。
func PrintConsole(writer io.Writer, result model.Result) error {
	if _, err := titleColor.Fprintln(writer, "Code Analysis Report"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "%s (%s)\n\n", result.Filepath, result.Language); err != nil {
		return err
	}

	order, grouped := groupRows(SectionRows(result))
	for _, section := range order {
		if _, err := labelColor.Fprintln(writer, section); err != nil {
			return err
		}

		table := newTable(writer, []string{"Metric", "Value"})
		data := make([][]string, 0, len(grouped[section]))
		for _, row := range grouped[section] {
			data = append(data, []string{row.Metric, row.Value})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		writer,
		"%s %s\n\n",
		labelColor.Sprint("Average Line Length:"),
		valueColor.Sprintf("%.2f characters", result.AvgLineLength),
	); err != nil {
		return err
	}

	deductions := scoring.Deductions(result.LOC, result.Halstead, result.AvgLineLength)
	if len(deductions) > 0 {
		reasons := make([]string, 0, len(deductions))
		for _, item := range deductions {
			reasons = append(reasons, fmt.Sprintf("  -%d %s", item.Points, item.Reason))
		}
		if _, err := fmt.Fprintf(writer, "%s\n%s\n\n", labelColor.Sprint("Deductions:"), reasonColor.Sprint(strings.Join(reasons, "\n"))); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "%s %s\n", labelColor.Sprint("Final Score:"), scoreColor.Sprintf("%d/100", result.Score)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "%s %s\n", labelColor.Sprint("Grade:"), ColorGrade(result.Grade))
	return err
}
