package metrics

import (
	"math"
	"testing"

	"gohalstead/internal/languages"
	"gohalstead/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHalsteadSimpleAssignment(t *testing.T) {
	h := Halstead([]string{"x = 1\n"}, languages.Python())

	assert.Equal(t, 1, h.DistinctOperators)
	assert.Equal(t, 2, h.DistinctOperands)
	assert.Equal(t, 1, h.TotalOperators)
	assert.Equal(t, 2, h.TotalOperands)
	assert.Equal(t, 3, h.Vocabulary)
	assert.Equal(t, 3, h.Length)
	assert.InDelta(t, 3*math.Log2(3), h.Volume, 1e-9)
	assert.InDelta(t, 0.5, h.Difficulty, 1e-9)
	assert.InDelta(t, h.Difficulty*h.Volume, h.Effort, 1e-9)
	assert.InDelta(t, h.Effort/18, h.Time, 1e-9)
	assert.InDelta(t, h.Volume/3000, h.DeliveredBugs, 1e-9)
}

func TestEmptyFile(t *testing.T) {
	set := Compute([]string{}, languages.Python())

	assert.Equal(t, model.LOCMetrics{}, set.LOC)
	assert.Equal(t, 0.0, set.AvgLineLength)
	assert.Equal(t, 0.0, set.Halstead.Volume)
	assert.Equal(t, 0.0, set.Halstead.Difficulty)
	assert.Equal(t, 0, set.Halstead.Vocabulary)
	assert.Equal(t, model.KeywordFrequency{{Keyword: "None", Count: 0}}, set.Keywords)
}

func TestHalsteadOnlyOperators(t *testing.T) {
	h := FromTokens([]string{"(", ")", "+"}, languages.Python())

	assert.Equal(t, 3, h.Vocabulary)
	assert.Equal(t, 0, h.DistinctOperands)
	assert.Equal(t, 0.0, h.Difficulty)
	assert.Equal(t, 0.0, h.Effort)
	assert.Greater(t, h.Volume, 0.0)
}

// TestHalsteadInvariants 对多种输入检查 vocabulary/length 恒等式。
func TestHalsteadInvariants(t *testing.T) {
	inputs := [][]string{
		{},
		{"\n"},
		{"# comment only\n"},
		{"def f(a, b):\n", "    return a is not b\n"},
		{"s = \"a + b\"  # tail\n", "t = s * 2\n"},
		{"for i in range(10):\n", "    if i not in seen: seen.add(i)\n"},
	}

	for _, lines := range inputs {
		h := Halstead(lines, languages.Python())
		assert.Equal(t, h.DistinctOperators+h.DistinctOperands, h.Vocabulary)
		assert.Equal(t, h.TotalOperators+h.TotalOperands, h.Length)
		if h.Vocabulary == 0 {
			assert.Equal(t, 0.0, h.Volume)
		}
		if h.DistinctOperands == 0 {
			assert.Equal(t, 0.0, h.Difficulty)
		}
	}
}

func TestLOC(t *testing.T) {
	lines := []string{
		"# header\n",
		"\n",
		"   \n",
		"x = 1  # trailing comment is code\n",
		"    # indented comment\n",
		"s = \"# not a comment\"\n",
		"y = 2",
	}

	loc := LOC(lines, languages.Python())

	assert.Equal(t, model.LOCMetrics{Total: 7, Blank: 2, Comment: 2, Code: 3}, loc)
}

func TestLOCStringHashIsNotComment(t *testing.T) {
	loc := LOC([]string{"s = \"# not a comment\"\n"}, languages.Python())
	assert.Equal(t, 0, loc.Comment)
	assert.Equal(t, 1, loc.Code)
}

func TestLOCUsesProfileMarker(t *testing.T) {
	lines := []string{"// js comment\n", "# not a js comment\n", "let a = 1;\n"}
	loc := LOC(lines, languages.JavaScript())
	assert.Equal(t, 1, loc.Comment)
	assert.Equal(t, 2, loc.Code)
}

func TestKeywordFrequency(t *testing.T) {
	lines := []string{
		"import os\n",
		"def f(x):\n",
		"    if x is not None and x in items:\n",
		"        return x  # return early\n",
	}

	freq := KeywordFrequency(lines, languages.Python())

	require.NotEmpty(t, freq)
	assert.Equal(t, "import", freq[0].Keyword)
	assert.Equal(t, 2, freq.Count("return"))
	assert.Equal(t, 1, freq.Count("is"))
	assert.Equal(t, 1, freq.Count("not"))
	assert.Equal(t, 1, freq.Count("in"))
	assert.Equal(t, 0, freq.Count("items"))
}

func TestKeywordFrequencyNone(t *testing.T) {
	freq := KeywordFrequency([]string{"x = 1\n", "y = x * 2\n"}, languages.Python())

	assert.Equal(t, model.KeywordFrequency{{Keyword: "None", Count: 0}}, freq)
	assert.Equal(t, map[string]int{"None": 0}, freq.Map())
}

func TestAverageLineLength(t *testing.T) {
	assert.Equal(t, 0.0, AverageLineLength(nil))
	assert.Equal(t, 0.0, AverageLineLength([]string{"\n", "  \n"}))

	// 换行符计入行长。
	avg := AverageLineLength([]string{"abc\n", "\n", "abcdefg\n"})
	assert.InDelta(t, 6.0, avg, 1e-9)

	// 按字符而不是字节计数。
	assert.InDelta(t, 2.0, AverageLineLength([]string{"é\n"}), 1e-9)
}
