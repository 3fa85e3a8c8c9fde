package model

import "sort"

// Result 是单文件分析结果。
// 每个文件只创建一次，创建后不再修改；输出层与存储层只读取它。
type Result struct {
	Filepath      string           `json:"filepath"`
	Filename      string           `json:"filename"`
	Language      string           `json:"language"`
	Version       string           `json:"version"`
	Date          string           `json:"date"`
	Fingerprint   uint64           `json:"fingerprint"`
	LOC           LOCMetrics       `json:"loc_metrics"`
	Halstead      HalsteadMetrics  `json:"halstead_metrics"`
	Keywords      KeywordFrequency `json:"keyword_frequency"`
	AvgLineLength float64          `json:"average_line_length"`
	Score         int              `json:"score"`
	Grade         string           `json:"grade"`
}

// ScanError 记录单文件分析失败信息。
// 设计为"错误不阻断批量分析"，缺失文件只告警并跳过。
type ScanError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// BatchResult 是批量分析的完整输出模型，Results 保持输入顺序。
type BatchResult struct {
	Source  string      `json:"source"`
	Results []Result    `json:"results"`
	Errors  []ScanError `json:"errors"`
}

// Summary 汇总批量结果，用于控制台尾注与 MCP 输出。
type Summary struct {
	Files        int               `json:"files"`
	Skipped      int               `json:"skipped"`
	AverageScore float64           `json:"average_score"`
	TotalLines   int               `json:"total_lines"`
	Grades       map[string]int    `json:"grades"`
	Languages    []LanguageSummary `json:"languages"`
}

// LanguageSummary 是按语言聚合的统计。
type LanguageSummary struct {
	Language     string     `json:"language"`
	Files        int        `json:"files"`
	AverageScore float64    `json:"average_score"`
	LOC          LOCMetrics `json:"loc_metrics"`
}

// Add 把单文件 LOC 累加到当前汇总。
func (m *LOCMetrics) Add(other LOCMetrics) {
	m.Total += other.Total
	m.Blank += other.Blank
	m.Comment += other.Comment
	m.Code += other.Code
}

// Summarize 计算批量结果的汇总信息。
func (b BatchResult) Summarize() Summary {
	summary := Summary{
		Files:   len(b.Results),
		Skipped: len(b.Errors),
		Grades:  make(map[string]int),
	}
	if len(b.Results) == 0 {
		return summary
	}

	total := 0
	byLanguage := make(map[string]*LanguageSummary)
	scoreByLanguage := make(map[string]int)
	for _, item := range b.Results {
		total += item.Score
		summary.TotalLines += item.LOC.Total
		summary.Grades[item.Grade]++

		language, ok := byLanguage[item.Language]
		if !ok {
			language = &LanguageSummary{Language: item.Language}
			byLanguage[item.Language] = language
		}
		language.Files++
		language.LOC.Add(item.LOC)
		scoreByLanguage[item.Language] += item.Score
	}
	summary.AverageScore = float64(total) / float64(len(b.Results))

	summary.Languages = make([]LanguageSummary, 0, len(byLanguage))
	for name, item := range byLanguage {
		item.AverageScore = float64(scoreByLanguage[name]) / float64(item.Files)
		summary.Languages = append(summary.Languages, *item)
	}
	sort.Slice(summary.Languages, func(i int, j int) bool {
		return summary.Languages[i].Language < summary.Languages[j].Language
	})
	return summary
}
