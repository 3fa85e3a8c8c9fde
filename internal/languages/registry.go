package languages

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownLanguage 表示按名称或后缀找不到画像。
var ErrUnknownLanguage = errors.New("unknown language")

// LanguageDescriptor 用于对外展示语言及后缀信息。
type LanguageDescriptor struct {
	Name          string   `json:"name"`
	Extensions    []string `json:"extensions"`
	CommentMarker string   `json:"comment_marker"`
	Keywords      int      `json:"keywords"`
	Symbols       int      `json:"symbols"`
}

// Registry 管理画像注册与后缀映射。
// 注册只发生在启动阶段，之后只读。
type Registry struct {
	profiles     []*Profile
	profileByExt map[string]*Profile
}

// NewRegistry 创建并注册所有内置画像。
func NewRegistry() *Registry {
	registry := &Registry{
		profileByExt: make(map[string]*Profile),
	}
	for _, profile := range Builtins() {
		registry.Register(profile)
	}
	return registry
}

// Register 注册画像；同名画像会被整体替换（包括后缀映射）。
func (r *Registry) Register(profile *Profile) {
	for idx, existing := range r.profiles {
		if strings.EqualFold(existing.Name(), profile.Name()) {
			for ext, owner := range r.profileByExt {
				if owner == existing {
					delete(r.profileByExt, ext)
				}
			}
			r.profiles[idx] = profile
			r.mapExtensions(profile)
			return
		}
	}

	r.profiles = append(r.profiles, profile)
	r.mapExtensions(profile)
}

func (r *Registry) mapExtensions(profile *Profile) {
	for _, ext := range profile.Extensions() {
		r.profileByExt[ext] = profile
	}
}

// ProfileForFile 根据文件后缀查找画像。
func (r *Registry) ProfileForFile(path string) (*Profile, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	profile, ok := r.profileByExt[ext]
	return profile, ok
}

// Lookup 按名称（大小写不敏感）查找画像。
func (r *Registry) Lookup(name string) (*Profile, error) {
	for _, profile := range r.profiles {
		if strings.EqualFold(profile.Name(), strings.TrimSpace(name)) {
			return profile, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// Resolve 优先使用显式语言名，否则按后缀推断，都失败时返回 fallback。
func (r *Registry) Resolve(language string, path string, fallback *Profile) (*Profile, error) {
	if strings.TrimSpace(language) != "" {
		return r.Lookup(language)
	}
	if profile, ok := r.ProfileForFile(path); ok {
		return profile, nil
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: no profile for %s", ErrUnknownLanguage, path)
}

// Languages 返回已注册语言清单，按名称排序。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.profiles))
	for _, profile := range r.profiles {
		extensions := profile.Extensions()
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:          profile.Name(),
			Extensions:    extensions,
			CommentMarker: profile.CommentMarker(),
			Keywords:      len(profile.Keywords()),
			Symbols:       len(profile.Symbols()),
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
