// Package languages 定义语言画像（Profile）与注册中心。
// 画像描述某种语言里哪些词法单元属于运算符：关键字、符号、双词运算符和单行注释标记。
// 画像在启动时构建，之后只读，可在多个 goroutine 之间共享。
package languages

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrInvalidProfile 表示画像定义不合法。
var ErrInvalidProfile = errors.New("invalid language profile")

// Spec 是画像的可序列化定义，既用于内置语言，也用于 YAML 自定义语言。
type Spec struct {
	Name               string   `yaml:"name" json:"name"`
	Extensions         []string `yaml:"extensions" json:"extensions"`
	Keywords           []string `yaml:"keywords" json:"keywords"`
	Symbols            []string `yaml:"symbols" json:"symbols"`
	MultiWordOperators []string `yaml:"multi_word_operators" json:"multi_word_operators"`
	CommentMarker      string   `yaml:"comment_marker" json:"comment_marker"`
	LiteralPrefixes    string   `yaml:"literal_prefixes" json:"literal_prefixes"`
}

// Profile 是不可变的语言画像。
//
// 注意：
// - symbols 保留声明顺序，SortedSymbols 返回按长度降序的副本（<= 先于 <）
// - 所有切片访问器都返回副本，调用方无法修改画像内部状态
type Profile struct {
	name          string
	extensions    []string
	keywords      []string
	symbols       []string
	sortedSymbols []string
	multiWordOps  []string
	commentMarker string
	literalPrefix string

	keywordSet  map[string]struct{}
	operatorSet map[string]struct{}
}

// NewProfile 校验 Spec 并构建画像。
func NewProfile(spec Spec) (*Profile, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidProfile)
	}

	markerLen := utf8.RuneCountInString(spec.CommentMarker)
	if markerLen < 1 || markerLen > 2 {
		return nil, fmt.Errorf("%w: %s: comment marker must be 1 or 2 characters, got %q", ErrInvalidProfile, name, spec.CommentMarker)
	}

	for _, symbol := range spec.Symbols {
		if symbol == "" || strings.ContainsAny(symbol, " \t\r\n") {
			return nil, fmt.Errorf("%w: %s: bad symbol %q", ErrInvalidProfile, name, symbol)
		}
	}

	for _, op := range spec.MultiWordOperators {
		if len(strings.Fields(op)) != 2 || strings.Join(strings.Fields(op), " ") != op {
			return nil, fmt.Errorf("%w: %s: multi-word operator %q must be two words separated by one space", ErrInvalidProfile, name, op)
		}
	}

	for _, r := range spec.LiteralPrefixes {
		if !isASCIILetter(r) {
			return nil, fmt.Errorf("%w: %s: literal prefix %q must be ASCII letters", ErrInvalidProfile, name, spec.LiteralPrefixes)
		}
	}

	p := &Profile{
		name:          name,
		extensions:    normalizeExtensions(spec.Extensions),
		keywords:      dedupe(spec.Keywords),
		symbols:       dedupe(spec.Symbols),
		multiWordOps:  dedupe(spec.MultiWordOperators),
		commentMarker: spec.CommentMarker,
		literalPrefix: spec.LiteralPrefixes,
		keywordSet:    make(map[string]struct{}),
		operatorSet:   make(map[string]struct{}),
	}

	p.sortedSymbols = append([]string(nil), p.symbols...)
	sort.SliceStable(p.sortedSymbols, func(i int, j int) bool {
		return len(p.sortedSymbols[i]) > len(p.sortedSymbols[j])
	})

	for _, keyword := range p.keywords {
		p.keywordSet[keyword] = struct{}{}
		p.operatorSet[keyword] = struct{}{}
	}
	for _, symbol := range p.symbols {
		p.operatorSet[symbol] = struct{}{}
	}
	for _, op := range p.multiWordOps {
		p.operatorSet[op] = struct{}{}
	}

	return p, nil
}

// MustProfile 用于内置画像，定义错误属于编程错误。
func MustProfile(spec Spec) *Profile {
	p, err := NewProfile(spec)
	if err != nil {
		panic(err)
	}
	return p
}

// Name 返回语言名称。
func (p *Profile) Name() string {
	return p.name
}

// Extensions 返回后缀列表（小写，带点号）。
func (p *Profile) Extensions() []string {
	return append([]string(nil), p.extensions...)
}

// Keywords 按声明顺序返回关键字。
func (p *Profile) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// Symbols 按声明顺序返回符号。
func (p *Profile) Symbols() []string {
	return append([]string(nil), p.symbols...)
}

// SortedSymbols 返回按长度降序排列的符号，长度相同时保持声明顺序。
func (p *Profile) SortedSymbols() []string {
	return append([]string(nil), p.sortedSymbols...)
}

// MultiWordOperators 返回双词运算符，例如 "is not"。
func (p *Profile) MultiWordOperators() []string {
	return append([]string(nil), p.multiWordOps...)
}

// CommentMarker 返回单行注释标记。
func (p *Profile) CommentMarker() string {
	return p.commentMarker
}

// LiteralPrefixes 返回字符串字面量允许的前缀字母，例如 Python 的 f/r/b。
func (p *Profile) LiteralPrefixes() string {
	return p.literalPrefix
}

// IsKeyword 判断 token 是否为关键字。
func (p *Profile) IsKeyword(token string) bool {
	_, ok := p.keywordSet[token]
	return ok
}

// IsOperator 判断 token 是否为运算符（符号 ∪ 关键字 ∪ 双词运算符）。
// 其余 token（标识符、字面量、数字）一律视为操作数。
func (p *Profile) IsOperator(token string) bool {
	_, ok := p.operatorSet[token]
	return ok
}

func normalizeExtensions(extensions []string) []string {
	result := make([]string, 0, len(extensions))
	seen := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		result = append(result, ext)
	}
	return result
}

func dedupe(items []string) []string {
	result := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
