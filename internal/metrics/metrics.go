// Package metrics 基于 token 序列与原始行计算 LOC、Halstead、关键字频次与平均行长。
// 所有函数都是纯函数，可以并发调用。
package metrics

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"gohalstead/internal/languages"
	"gohalstead/internal/model"
	"gohalstead/internal/tokenizer"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Set 是单文件的全部基础度量。
type Set struct {
	LOC           model.LOCMetrics
	Halstead      model.HalsteadMetrics
	Keywords      model.KeywordFrequency
	AvgLineLength float64
}

// Compute 一次性计算全部度量。
func Compute(lines []string, profile *languages.Profile) Set {
	return Set{
		LOC:           LOC(lines, profile),
		Halstead:      Halstead(lines, profile),
		Keywords:      KeywordFrequency(lines, profile),
		AvgLineLength: AverageLineLength(lines),
	}
}

// LOC 按原始行统计总行、空行、注释行和代码行。
// 注释行只识别行首（去掉空白后）出现注释标记的情况。
func LOC(lines []string, profile *languages.Profile) model.LOCMetrics {
	var loc model.LOCMetrics
	marker := profile.CommentMarker()

	loc.Total = len(lines)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			loc.Blank++
		case strings.HasPrefix(trimmed, marker):
			loc.Comment++
		}
	}
	loc.Code = loc.Total - loc.Blank - loc.Comment

	return loc
}

// Halstead 对拼接后的文本分词并计算 Halstead 度量。
func Halstead(lines []string, profile *languages.Profile) model.HalsteadMetrics {
	tokens := tokenizer.Tokenize(strings.Join(lines, " "), profile)
	return FromTokens(tokens, profile)
}

// FromTokens 把 token 划分为运算符与操作数并推导派生指标。
func FromTokens(tokens []string, profile *languages.Profile) model.HalsteadMetrics {
	operators := make(map[string]int)
	operands := make(map[string]int)

	var h model.HalsteadMetrics
	for _, token := range tokens {
		if profile.IsOperator(token) {
			operators[token]++
			h.TotalOperators++
			continue
		}
		operands[token]++
		h.TotalOperands++
	}
	h.DistinctOperators = len(operators)
	h.DistinctOperands = len(operands)

	derive(&h)
	return h
}

// derive 根据基础计数计算派生指标，退化情况返回 0 而不是报错。
func derive(h *model.HalsteadMetrics) {
	h.Vocabulary = h.DistinctOperators + h.DistinctOperands
	h.Length = h.TotalOperators + h.TotalOperands

	// V = N * log2(n)
	h.Volume = 0
	if h.Vocabulary > 0 {
		h.Volume = float64(h.Length) * math.Log2(float64(h.Vocabulary))
	}

	// D = (n1/2) * (N2/n2)
	h.Difficulty = 0
	if h.DistinctOperands > 0 {
		h.Difficulty = (float64(h.DistinctOperators) / 2.0) *
			(float64(h.TotalOperands) / float64(h.DistinctOperands))
	}

	h.Effort = h.Difficulty * h.Volume
	h.Time = h.Effort / 18.0
	h.DeliveredBugs = h.Volume / 3000.0
}

// KeywordFrequency 在原始文本（未分词、含注释与字符串）上按单词边界统计关键字。
// 没有任何关键字时返回哨兵 {"None": 0}。
func KeywordFrequency(lines []string, profile *languages.Profile) model.KeywordFrequency {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, word := range wordPattern.FindAllString(strings.Join(lines, " "), -1) {
		if !profile.IsKeyword(word) {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	if len(order) == 0 {
		return model.KeywordFrequency{{Keyword: model.NoneKeyword, Count: 0}}
	}

	frequency := make(model.KeywordFrequency, 0, len(order))
	for _, keyword := range order {
		frequency = append(frequency, model.KeywordCount{Keyword: keyword, Count: counts[keyword]})
	}
	return frequency
}

// AverageLineLength 返回非空行的平均字符数（按 rune 计，保留读入时的换行符）。
func AverageLineLength(lines []string) float64 {
	total := 0
	count := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total += utf8.RuneCountInString(line)
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
