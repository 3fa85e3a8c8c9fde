// Package scoring 根据度量结果计算 0~100 的得分与字母等级。
package scoring

import "gohalstead/internal/model"

// Threshold 是等级阈值表中的一项。
type Threshold struct {
	Grade string
	Min   int
}

// thresholds 自上而下匹配，首个满足 score >= Min 的等级胜出。
var thresholds = []Threshold{
	{"A+", 90},
	{"A", 85},
	{"A-", 80},
	{"B+", 75},
	{"B", 70},
	{"B-", 65},
	{"C+", 60},
	{"C", 55},
	{"C-", 50},
	{"D+", 45},
	{"D", 40},
}

// FailGrade 是低于全部阈值时的等级。
const FailGrade = "F"

// 扣分规则常量。
const (
	baseScore = 100

	noCommentPenalty       = 10
	lowCommentRatioPenalty = 5
	lowCommentRatio        = 0.2
	commentRatioMinLines   = 10

	effortLimit       = 500
	effortPenalty     = 15
	difficultyLimit   = 10
	difficultyPenalty = 10
	vocabularyLimit   = 20
	vocabularyPenalty = 5
	longLineLimit     = 80
	shortLineLimit    = 20
	lineLengthPenalty = 5
)

// Deduction 记录一条扣分原因，用于 explain 输出。
type Deduction struct {
	Reason string
	Points int
}

// ScoreAndGrade 从 100 分开始按规则扣分并查表得到等级。
// 得分不做 [0,100] 截断，多项扣分时可能为负。
func ScoreAndGrade(loc model.LOCMetrics, halstead model.HalsteadMetrics, _ model.KeywordFrequency, avgLineLength float64) (int, string) {
	score := baseScore
	for _, deduction := range Deductions(loc, halstead, avgLineLength) {
		score -= deduction.Points
	}
	return score, Grade(score)
}

// Deductions 返回命中的全部扣分项，顺序与规则表一致。
func Deductions(loc model.LOCMetrics, halstead model.HalsteadMetrics, avgLineLength float64) []Deduction {
	var result []Deduction

	if loc.Comment < 1 {
		result = append(result, Deduction{"no comment lines", noCommentPenalty})
	}
	if loc.Code > commentRatioMinLines && loc.Total > commentRatioMinLines &&
		float64(loc.Comment)/float64(loc.Code) < lowCommentRatio {
		result = append(result, Deduction{"comment-to-code ratio below 0.2", lowCommentRatioPenalty})
	}

	if halstead.Effort > effortLimit {
		result = append(result, Deduction{"effort above 500", effortPenalty})
	}
	if halstead.Difficulty > difficultyLimit {
		result = append(result, Deduction{"difficulty above 10", difficultyPenalty})
	}
	if halstead.Vocabulary > vocabularyLimit {
		result = append(result, Deduction{"vocabulary above 20", vocabularyPenalty})
	}

	if avgLineLength > longLineLimit {
		result = append(result, Deduction{"average line length above 80", lineLengthPenalty})
	} else if avgLineLength < shortLineLimit {
		result = append(result, Deduction{"average line length below 20", lineLengthPenalty})
	}

	return result
}

// Grade 按阈值表查找等级。
func Grade(score int) string {
	for _, threshold := range thresholds {
		if score >= threshold.Min {
			return threshold.Grade
		}
	}
	return FailGrade
}

// Rank 返回等级的序号，数值越大等级越高；未知等级返回 -1。
func Rank(grade string) int {
	if grade == FailGrade {
		return 0
	}
	for idx, threshold := range thresholds {
		if threshold.Grade == grade {
			return len(thresholds) - idx
		}
	}
	return -1
}
