package tokenizer

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gohalstead/internal/languages"
)

// 占位符使用私有区字符包裹序号，源码中的标识符不可能与之冲突。
const (
	placeholderOpen  = "\uE000"
	placeholderClose = "\uE001"
)

// patterns 按画像缓存编译好的交替正则。画像不可变，因此缓存永不失效。
var patterns sync.Map // map[*languages.Profile]*regexp.Regexp

// Tokenize 把文本切分为有序 token 序列。
//
// 处理流程：
//  1. 逐行剥离单行注释（字符串内的注释标记不生效）
//  2. 字符串/模板字面量整体保护，不参与后续替换
//  3. 双词运算符替换为占位符
//  4. 单个有序交替正则从左到右匹配：字面量、占位符、符号（长者优先）、关键字、标识符/数字
//  5. 占位符还原为原始双词运算符
func Tokenize(text string, profile *languages.Profile) []string {
	tokens := make([]string, 0)
	if text == "" {
		return tokens
	}

	stripped := StripComments(text, profile.CommentMarker())
	transformed, placeholders := substituteMultiWord(stripped, profile.MultiWordOperators())

	for _, match := range patternFor(profile).FindAllString(transformed, -1) {
		if original, ok := placeholders[match]; ok {
			match = original
		}
		tokens = append(tokens, match)
	}

	return tokens
}

// substituteMultiWord 在字符串保护区之外把双词运算符替换为占位符，
// 返回替换后的文本以及 placeholder -> 原始运算符 映射。
func substituteMultiWord(text string, operators []string) (string, map[string]string) {
	placeholders := make(map[string]string)

	var builder strings.Builder
	builder.Grow(len(text))

	for idx := 0; idx < len(text); {
		if isQuote(rune(text[idx])) {
			end := literalEnd(text, idx)
			builder.WriteString(text[idx:end])
			idx = end
			continue
		}

		if op, opIdx, ok := multiWordAt(text, idx, operators); ok {
			placeholder := placeholderOpen + strconv.Itoa(opIdx) + placeholderClose
			placeholders[placeholder] = op
			builder.WriteString(placeholder)
			idx += len(op)
			continue
		}

		_, size := utf8.DecodeRuneInString(text[idx:])
		builder.WriteString(text[idx : idx+size])
		idx += size
	}

	return builder.String(), placeholders
}

// literalEnd 返回从 start 处引号开始的字面量结束位置（不含）。
// 未闭合的字面量一直延伸到文本末尾。
func literalEnd(text string, start int) int {
	quote := text[start]
	for j := start + 1; j < len(text); j++ {
		if text[j] == quote && (j == start+1 || text[j-1] != '\\') {
			return j + 1
		}
	}
	return len(text)
}

// multiWordAt 检查 idx 处是否有满足单词边界的双词运算符。
func multiWordAt(text string, idx int, operators []string) (string, int, bool) {
	for opIdx, op := range operators {
		if !strings.HasPrefix(text[idx:], op) {
			continue
		}
		if idx > 0 {
			before, _ := utf8.DecodeLastRuneInString(text[:idx])
			if isAlnum(before) {
				continue
			}
		}
		if after := idx + len(op); after < len(text) {
			next, _ := utf8.DecodeRuneInString(text[after:])
			if isAlnum(next) {
				continue
			}
		}
		return op, opIdx, true
	}
	return "", 0, false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// patternFor 返回画像对应的交替正则，首次使用时编译。
func patternFor(profile *languages.Profile) *regexp.Regexp {
	if cached, ok := patterns.Load(profile); ok {
		return cached.(*regexp.Regexp)
	}
	compiled := regexp.MustCompile(buildPattern(profile))
	actual, _ := patterns.LoadOrStore(profile, compiled)
	return actual.(*regexp.Regexp)
}

// buildPattern 组装交替正则。Go regexp 采用最左优先语义，
// 同一位置上排在前面的分支优先匹配。
func buildPattern(profile *languages.Profile) string {
	prefix := ""
	if p := profile.LiteralPrefixes(); p != "" {
		prefix = "[" + regexp.QuoteMeta(p) + "]*"
	}

	alternatives := []string{
		prefix + `"(?:[^"\\]|\\[\s\S])*"`,
		prefix + `'(?:[^'\\]|\\[\s\S])*'`,
		"`(?:[^`\\\\]|\\\\[\\s\\S])*`",
		regexp.QuoteMeta(placeholderOpen) + `\d+` + regexp.QuoteMeta(placeholderClose),
	}

	if symbols := profile.SortedSymbols(); len(symbols) > 0 {
		quoted := make([]string, len(symbols))
		for idx, symbol := range symbols {
			quoted[idx] = regexp.QuoteMeta(symbol)
		}
		alternatives = append(alternatives, strings.Join(quoted, "|"))
	}

	if keywords := profile.Keywords(); len(keywords) > 0 {
		quoted := make([]string, len(keywords))
		for idx, keyword := range keywords {
			quoted[idx] = regexp.QuoteMeta(keyword)
		}
		alternatives = append(alternatives, `\b(?:`+strings.Join(quoted, "|")+`)\b`)
	}

	alternatives = append(alternatives, `[\p{L}\p{N}_]+`)
	return strings.Join(alternatives, "|")
}
