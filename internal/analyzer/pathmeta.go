package analyzer

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

var quarterPattern = regexp.MustCompile(`Q\d+_(\d{4}-\d{2}-\d{2})`)

// normalizePath 统一使用正斜杠，兼容 Windows 路径。
func normalizePath(filePath string) string {
	return strings.ReplaceAll(filePath, "\\", "/")
}

// ExtractVersion 从形如 name-X.Y.Z 的路径段中提取版本号。
// 从最内层向外查找，最后一个"破折号后缀同时包含数字和点"的段胜出；
// 文件名段在判断前去掉扩展名。找不到时返回空字符串。
//
//	versions/plotly.py-3.0.0/plotly/_line.py -> 3.0.0
func ExtractVersion(filePath string) string {
	segments := strings.Split(normalizePath(filePath), "/")
	for idx := len(segments) - 1; idx >= 0; idx-- {
		segment := segments[idx]
		if idx == len(segments)-1 {
			segment = strings.TrimSuffix(segment, path.Ext(segment))
		}

		dash := strings.LastIndex(segment, "-")
		if dash < 0 || dash == len(segment)-1 {
			continue
		}

		suffix := segment[dash+1:]
		if strings.Contains(suffix, ".") && strings.IndexFunc(suffix, unicode.IsDigit) >= 0 {
			return suffix
		}
	}
	return ""
}

// ExtractDate 提取季度目录标签 Q<n>_YYYY-MM-DD 中的日期部分。
//
//	versions/2017/Q1_2017-01-01/plotly/_line.py -> 2017-01-01
func ExtractDate(filePath string) string {
	match := quarterPattern.FindStringSubmatch(normalizePath(filePath))
	if match == nil {
		return ""
	}
	return match[1]
}

// TrimPathPrefix 让展示路径从 prefix 处开始（例如 plotly/python），
// prefix 为空或不存在时只做分隔符归一化。
func TrimPathPrefix(filePath string, prefix string) string {
	normalized := normalizePath(filePath)
	prefix = strings.Trim(normalizePath(prefix), "/")
	if prefix == "" {
		return normalized
	}
	if idx := strings.Index(normalized, prefix); idx >= 0 {
		return normalized[idx:]
	}
	return normalized
}
