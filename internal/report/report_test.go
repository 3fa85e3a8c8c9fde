package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gohalstead/internal/model"

	"github.com/fatih/color"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleResult() model.Result {
	return model.Result{
		Filepath: "plotly/python/demo.py",
		Filename: "demo.py",
		Language: "Python",
		Version:  "3.0.0",
		Date:     "2017-01-01",
		LOC:      model.LOCMetrics{Total: 12, Blank: 1, Comment: 0, Code: 11},
		Halstead: model.HalsteadMetrics{
			DistinctOperators: 4,
			DistinctOperands:  6,
			TotalOperators:    9,
			TotalOperands:     12,
			Vocabulary:        10,
			Length:            21,
			Volume:            69.76,
			Difficulty:        4,
			Effort:            279.04,
			Time:              15.502,
			DeliveredBugs:     0.023,
		},
		Keywords:      model.KeywordFrequency{{Keyword: "def", Count: 2}, {Keyword: "return", Count: 1}},
		AvgLineLength: 30.5,
		Score:         85,
		Grade:         "A",
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult()))

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "Code Analysis Report\n\nLOC Metrics:\nTotal Lines: 12\n"))
	assert.Contains(t, text, "\nHalstead Metrics:\n")
	assert.Contains(t, text, "Volume: 69.76\n")
	assert.Contains(t, text, "Delivered Bugs: 0.02\n")
	assert.Contains(t, text, "\nKeyword Frequency:\ndef: 2\nreturn: 1\n")
	assert.Contains(t, text, "\nAverage Line Length: 30.50 characters\n")
	assert.True(t, strings.HasSuffix(text, "\nFinal Score: 85/100\nGrade: A\n"))
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Equal(t, "Section,Metric,Value", lines[0])
	assert.Equal(t, "LOC Metrics,Total Lines,12", lines[1])
	// 4 行 LOC 后是空行。
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "Halstead Metrics,Unique Operators,4", lines[6])
	assert.Equal(t, "", lines[17])
	assert.Equal(t, "Keyword Frequency,def,2", lines[18])
	assert.Equal(t, "", lines[20])
	assert.Equal(t, []string{
		"Average Line Length,30.50",
		"Final Score,85",
		"Grade,A",
	}, lines[21:])
}

func TestWriteCombinedCSV(t *testing.T) {
	second := sampleResult()
	second.Filepath = "plotly/python/other.py"
	second.Filename = "other.py"
	second.Keywords = model.KeywordFrequency{{Keyword: model.NoneKeyword, Count: 0}}

	var buf bytes.Buffer
	require.NoError(t, WriteCombinedCSV(&buf, []model.Result{sampleResult(), second}))

	reader := csv.NewReader(strings.NewReader(buf.String()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, CombinedHeader, records[0])
	// 15 个度量 + 2 个关键字 + 平均行长 + 得分 + 等级，encoding/csv 读取时会跳过空行。
	first := records[1:21]
	assert.Equal(t, []string{"plotly/python/demo.py", "demo.py", "2017-01-01", "3.0.0", "LOC Metrics", "Total Lines", "12"}, first[0])
	assert.Equal(t, []string{"plotly/python/demo.py", "demo.py", "2017-01-01", "3.0.0", "General", "Average Line Length", "30.50"}, first[17])
	assert.Equal(t, []string{"plotly/python/demo.py", "demo.py", "2017-01-01", "3.0.0", "Results", "Grade", "A"}, first[19])
	assert.Equal(t, []string{"plotly/python/other.py", "other.py", "2017-01-01", "3.0.0", "Keyword Frequency", "None", "0"}, records[21+15])

	assert.Contains(t, buf.String(), "Results,Grade,A\n\nplotly/python/other.py")
	assert.True(t, strings.HasSuffix(buf.String(), "Results,Grade,A\n\n"))
}

func TestWriteCombinedCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCombinedCSV(&buf, nil))
	assert.Equal(t, "Filepath,Filename,Date,Version,Section,Metric,Value\n", buf.String())
}

func TestPrintConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintConsole(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Code Analysis Report")
	assert.Contains(t, out, "69.76")
	assert.Contains(t, out, "-10 no comment lines")
	assert.Contains(t, out, "Final Score: 85/100")
	assert.Contains(t, out, "Grade: A")
}

func TestPrintBatchTable(t *testing.T) {
	batch := model.BatchResult{
		Source:  "inputs.txt",
		Results: []model.Result{sampleResult()},
		Errors:  []model.ScanError{{Path: "missing.py", Error: "no such file"}},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintBatchTable(&buf, batch))

	out := buf.String()
	assert.Contains(t, out, "plotly/python/demo.py")
	assert.Contains(t, out, "Analyzed 1 files (1 skipped), 12 lines, average score 85.00")
	assert.Contains(t, out, "missing.py")
	assert.Contains(t, out, "Grades: A 1\n")
}

func TestGradeDistributionOrder(t *testing.T) {
	got := gradeDistribution(map[string]int{"B": 1, "F": 3, "A+": 2, "C-": 1})
	assert.Equal(t, "A+ 2, B 1, C- 1, F 3", got)
}

func TestColorGradeDisabled(t *testing.T) {
	assert.Equal(t, "A+", ColorGrade("A+"))
	assert.Equal(t, "", ColorGrade(""))
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatForPath("out/report.CSV"))
	assert.Equal(t, FormatJSON, FormatForPath("out.json"))
	assert.Equal(t, FormatParquet, FormatForPath("out.parquet"))
	assert.Equal(t, FormatText, FormatForPath("out.txt"))
	assert.Equal(t, FormatText, FormatForPath("report"))
}

func TestWriteResultCreatesDirectories(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "nested", "deeper", "report.txt")
	require.NoError(t, WriteResult(textPath, sampleResult()))
	content, err := os.ReadFile(textPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Code Analysis Report"))

	// 单文件模式下只有 .csv 改变格式，.json 也写文本报告。
	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, WriteResult(jsonPath, sampleResult()))
	content, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Code Analysis Report"))
}

func TestWriteBatchJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all.json")
	batch := model.BatchResult{Source: "inputs.txt", Results: []model.Result{sampleResult()}}
	require.NoError(t, WriteBatch(path, batch))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded model.BatchResult
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, batch.Source, decoded.Source)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, sampleResult(), decoded.Results[0])
}

func TestWriteBatchRejectsText(t *testing.T) {
	err := WriteBatch(filepath.Join(t.TempDir(), "all.txt"), model.BatchResult{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteBatchParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all.parquet")
	batch := model.BatchResult{Results: []model.Result{sampleResult()}}
	require.NoError(t, WriteBatch(path, batch))

	rows, err := parquet.ReadFile[MetricRecord](path)
	require.NoError(t, err)
	require.Len(t, rows, len(AllRows(sampleResult())))
	assert.Equal(t, "plotly/python/demo.py", rows[0].Filepath)
	assert.Equal(t, "Total Lines", rows[0].Metric)
	assert.Equal(t, 12.0, rows[0].Numeric)
	last := rows[len(rows)-1]
	assert.Equal(t, "Grade", last.Metric)
	assert.Equal(t, "A", last.Value)
}
