package languages

// 内置画像。
// Python 与 JavaScript 的关键字刻意排除了 True/False/None、true/false 等常量，
// 它们按操作数计数。

var pythonProfile = MustProfile(Spec{
	Name:       "Python",
	Extensions: []string{".py", ".pyw"},
	Keywords: []string{
		"and", "as", "assert", "async",
		"await", "break", "class", "continue", "def", "del", "elif",
		"else", "except", "finally", "for", "from", "global", "if",
		"import", "in", "is", "lambda", "nonlocal", "not", "or",
		"pass", "raise", "return", "try", "while", "with", "yield",
	},
	Symbols: []string{
		"(", ")", "[", "]", ":", ",", ";", "+", "-", "*", "/", "|", "&",
		"<", ">", "=", ".", "%", "{", "}", "==", "!=", "<=", ">=", "~", "^",
		"<<", ">>", "**", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
		"<<=", ">>=", "**=", "//", "//=", "@", "@=", "->", "...", ":=", "!",
	},
	MultiWordOperators: []string{"is not", "not in"},
	CommentMarker:      "#",
	LiteralPrefixes:    "frbFRB",
})

var javaScriptKeywords = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends",
	"finally", "for", "function", "if", "import", "in", "instanceof",
	"new", "null", "return", "super", "switch", "this", "throw",
	"try", "typeof", "var", "void", "while", "with",
	"let", "static", "yield", "await",
	"implements", "interface", "package", "private", "protected",
	"arguments", "as", "async", "eval", "from", "get", "of", "set",
}

var javaScriptSymbols = []string{
	"?.", "{", "(", ")", "[", "]", ".", "...", ",", ";", "<", ">", "<=", ">=",
	"==", "!=", "===", "!==", "+", "-", "*", "%", "**", "++", "--", "<<",
	">>", ">>>", "&", "|", "^", "!", "~", "&&", "||", "??", "?", ":", "=",
	"+=", "-=", "*=", "%=", "**=", "<<=", ">>=", ">>>=", "&=", "|=", "^=",
	"&&=", "||=", "??=", "=>", "/", "/=", "}",
}

var javaScriptProfile = MustProfile(Spec{
	Name:          "JavaScript",
	Extensions:    []string{".js", ".mjs", ".cjs", ".jsx"},
	Keywords:      javaScriptKeywords,
	Symbols:       javaScriptSymbols,
	CommentMarker: "//",
})

var typeScriptProfile = MustProfile(Spec{
	Name:       "TypeScript",
	Extensions: []string{".ts", ".tsx", ".mts", ".cts"},
	Keywords: append(append([]string(nil), javaScriptKeywords...),
		"abstract", "declare", "enum", "keyof", "namespace", "public",
		"readonly", "satisfies", "type", "infer", "is",
	),
	Symbols:       javaScriptSymbols,
	CommentMarker: "//",
})

var goProfile = MustProfile(Spec{
	Name:       "Go",
	Extensions: []string{".go"},
	Keywords: []string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if",
		"import", "interface", "map", "package", "range", "return",
		"select", "struct", "switch", "type", "var",
	},
	Symbols: []string{
		"+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>", "&^",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", "&^=",
		"&&", "||", "<-", "++", "--", "==", "<", ">", "=", "!", "~",
		"!=", "<=", ">=", ":=", "...", "(", ")", "[", "]", "{", "}",
		",", ";", ".", ":",
	},
	CommentMarker: "//",
})

// Python 返回内置 Python 画像，这是原始分析对象使用的默认画像。
func Python() *Profile {
	return pythonProfile
}

// JavaScript 返回内置 JavaScript 画像。
func JavaScript() *Profile {
	return javaScriptProfile
}

// TypeScript 返回内置 TypeScript 画像。
func TypeScript() *Profile {
	return typeScriptProfile
}

// Go 返回内置 Go 画像。
func Go() *Profile {
	return goProfile
}

// Builtins 返回全部内置画像。
func Builtins() []*Profile {
	return []*Profile{pythonProfile, javaScriptProfile, typeScriptProfile, goProfile}
}
