package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gohalstead/internal/model"
	"gohalstead/internal/scoring"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBatchTable 使用表格展示批量结果：逐文件明细、按语言汇总和失败清单。
func PrintBatchTable(writer io.Writer, batch model.BatchResult) error {
	if batch.Source != "" {
		if _, err := fmt.Fprintf(writer, "SOURCE  %s\n\n", batch.Source); err != nil {
			return err
		}
	}

	files := newTable(writer, []string{"File", "Language", "Total", "Code", "Comment", "Blank", "Volume", "Effort", "Score", "Grade"})
	data := make([][]string, 0, len(batch.Results))
	for _, item := range batch.Results {
		data = append(data, []string{
			item.Filepath,
			item.Language,
			strconv.Itoa(item.LOC.Total),
			strconv.Itoa(item.LOC.Code),
			strconv.Itoa(item.LOC.Comment),
			strconv.Itoa(item.LOC.Blank),
			formatFloat(item.Halstead.Volume),
			formatFloat(item.Halstead.Effort),
			strconv.Itoa(item.Score),
			ColorGrade(item.Grade),
		})
	}
	if err := files.Bulk(data); err != nil {
		return err
	}
	if err := files.Render(); err != nil {
		return err
	}

	summary := batch.Summarize()
	if len(summary.Languages) > 0 {
		languages := newTable(writer, []string{"Language", "Files", "Total", "Code", "Comment", "Blank", "Avg Score"})
		data = data[:0]
		for _, item := range summary.Languages {
			data = append(data, []string{
				item.Language,
				strconv.Itoa(item.Files),
				strconv.Itoa(item.LOC.Total),
				strconv.Itoa(item.LOC.Code),
				strconv.Itoa(item.LOC.Comment),
				strconv.Itoa(item.LOC.Blank),
				formatFloat(item.AverageScore),
			})
		}
		if err := languages.Bulk(data); err != nil {
			return err
		}
		if err := languages.Render(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		writer,
		"Analyzed %d files (%d skipped), %d lines, average score %.2f\n",
		summary.Files,
		summary.Skipped,
		summary.TotalLines,
		summary.AverageScore,
	); err != nil {
		return err
	}
	if len(summary.Grades) > 0 {
		if _, err := fmt.Fprintf(writer, "Grades: %s\n", gradeDistribution(summary.Grades)); err != nil {
			return err
		}
	}

	if len(batch.Errors) > 0 {
		failures := newTable(writer, []string{"Error File", "Message"})
		data = data[:0]
		for _, item := range batch.Errors {
			data = append(data, []string{item.Path, item.Error})
		}
		if err := failures.Bulk(data); err != nil {
			return err
		}
		return failures.Render()
	}
	return nil
}

// gradeDistribution 按等级从高到低列出文件数，例如 "A+ 2, B 1"。
func gradeDistribution(grades map[string]int) string {
	keys := make([]string, 0, len(grades))
	for grade := range grades {
		keys = append(keys, grade)
	}
	sort.Slice(keys, func(i int, j int) bool {
		left, right := scoring.Rank(keys[i]), scoring.Rank(keys[j])
		if left != right {
			return left > right
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, len(keys))
	for _, grade := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", ColorGrade(grade), grades[grade]))
	}
	return strings.Join(parts, ", ")
}

// PrintRows 以统一样式输出一张简单表格。
func PrintRows(writer io.Writer, headers []string, rows [][]string) error {
	table := newTable(writer, headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func newTable(writer io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(writer,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)
	table.Header(headers)
	return table
}

// PrintJSON 把任意结果按易读 JSON 输出到 writer。
func PrintJSON(writer io.Writer, value any) error {
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
