// Package model 定义 gohalstead 的核心数据模型。
// 这些结构会被度量引擎、评分引擎、输出层和存储层共同使用。
package model

// NoneKeyword 是关键字频次为空时使用的哨兵键，保证报表结构稳定。
const NoneKeyword = "None"

// LOCMetrics 表示一组行级统计值。
//
// 注意：
// - 注释行只识别"去掉首尾空白后以注释标记开头"的行
// - 行尾注释与块注释不计入注释行
// - Code = Total - Blank - Comment
type LOCMetrics struct {
	Total   int `json:"total_lines"`
	Blank   int `json:"blank_lines"`
	Comment int `json:"comment_lines"`
	Code    int `json:"code_lines"`
}

// HalsteadMetrics 表示 Halstead 软件科学度量。
type HalsteadMetrics struct {
	DistinctOperators int     `json:"distinct_operators"` // n1
	DistinctOperands  int     `json:"distinct_operands"`  // n2
	TotalOperators    int     `json:"total_operators"`    // N1
	TotalOperands     int     `json:"total_operands"`     // N2
	Vocabulary        int     `json:"vocabulary"`         // n = n1 + n2
	Length            int     `json:"length"`             // N = N1 + N2
	Volume            float64 `json:"volume"`             // V = N * log2(n)
	Difficulty        float64 `json:"difficulty"`         // D = (n1/2) * (N2/n2)
	Effort            float64 `json:"effort"`             // E = D * V
	Time              float64 `json:"time"`               // T = E / 18
	DeliveredBugs     float64 `json:"delivered_bugs"`     // B = V / 3000
}

// KeywordCount 是单个关键字的出现次数。
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// KeywordFrequency 按首次出现顺序记录关键字频次。
// 为空时只包含哨兵 {"None": 0}。
type KeywordFrequency []KeywordCount

// Count 返回指定关键字的次数，不存在时为 0。
func (f KeywordFrequency) Count(keyword string) int {
	for _, item := range f {
		if item.Keyword == keyword {
			return item.Count
		}
	}
	return 0
}

// Map 返回 map 形式的副本，存储层以 JSON 对象保存。
func (f KeywordFrequency) Map() map[string]int {
	result := make(map[string]int, len(f))
	for _, item := range f {
		result[item.Keyword] = item.Count
	}
	return result
}
