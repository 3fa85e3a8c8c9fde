// Package tokenizer 把源码文本切分为词法单元。
// 这不是完整的语法解析器：它只做单遍词法近似，保证字符串字面量不被拆分、
// 注释被剔除、双词运算符被合并，足以支撑 Halstead 计数。
package tokenizer

import "strings"

// scanState 是注释剥离状态机的状态。
type scanState int

const (
	// stateNormal 表示处于代码中，可以识别注释标记。
	stateNormal scanState = iota
	// stateInString 表示处于字符串中，注释标记被字符串吞掉。
	stateInString
)

// isQuote 判断字符是否开启字符串：双引号、单引号和模板字符串反引号。
func isQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '`'
}

// commentStripper 是单行注释剥离 FSM，状态为 {Normal, InString(quote)}。
// 每一行都从 Normal 开始，跨行字符串不延续状态。
type commentStripper struct {
	marker []rune
	state  scanState
	quote  rune
}

// newCommentStripper 创建状态机，marker 为 1~2 个字符的注释标记。
func newCommentStripper(marker string) *commentStripper {
	return &commentStripper{marker: []rune(marker)}
}

// reset 回到 Normal 状态。
func (s *commentStripper) reset() {
	s.state = stateNormal
	s.quote = 0
}

// commentStart 返回注释起始的 rune 下标，没有注释时返回 -1。
func (s *commentStripper) commentStart(runes []rune) int {
	s.reset()

	for idx, current := range runes {
		switch s.state {
		case stateNormal:
			if isQuote(current) {
				s.state = stateInString
				s.quote = current
				continue
			}
			if s.matchesMarker(runes, idx) {
				return idx
			}
		case stateInString:
			// 紧挨着反斜杠的引号是转义引号，不会关闭字符串。
			if current == s.quote && (idx == 0 || runes[idx-1] != '\\') {
				s.reset()
			}
		}
	}

	return -1
}

// matchesMarker 判断 idx 处是否以注释标记开头。
func (s *commentStripper) matchesMarker(runes []rune, idx int) bool {
	if len(s.marker) == 0 || idx+len(s.marker) > len(runes) {
		return false
	}
	for offset, r := range s.marker {
		if runes[idx+offset] != r {
			return false
		}
	}
	return true
}

// StripLine 删除单行中从注释标记到行尾的内容，字符串中的标记不受影响。
func StripLine(line string, marker string) string {
	return newCommentStripper(marker).strip(line)
}

func (s *commentStripper) strip(line string) string {
	runes := []rune(line)
	pos := s.commentStart(runes)
	if pos < 0 {
		return line
	}
	return string(runes[:pos])
}

// StripComments 对文本逐行剥离单行注释，保留换行结构。
func StripComments(text string, marker string) string {
	stripper := newCommentStripper(marker)
	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		lines[idx] = stripper.strip(line)
	}
	return strings.Join(lines, "\n")
}
