package languages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSortedSymbolsLongestFirst 确认较长符号排在其前缀之前。
func TestSortedSymbolsLongestFirst(t *testing.T) {
	sorted := Python().SortedSymbols()

	index := make(map[string]int, len(sorted))
	for i, symbol := range sorted {
		index[symbol] = i
	}

	assert.Less(t, index["<="], index["<"])
	assert.Less(t, index["**="], index["**"])
	assert.Less(t, index["//="], index["//"])
	assert.Less(t, index["..."], index["."])

	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, len(sorted[i-1]), len(sorted[i]))
	}
}

func TestIsOperator(t *testing.T) {
	profile := Python()

	tests := []struct {
		token string
		want  bool
	}{
		{"=", true},
		{"==", true},
		{"if", true},
		{"is not", true},
		{"not in", true},
		{"None", false},
		{"x", false},
		{"\"if\"", false},
		{"42", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, profile.IsOperator(tt.token))
		})
	}
}

func TestProfileAccessorsReturnCopies(t *testing.T) {
	profile := Python()

	keywords := profile.Keywords()
	keywords[0] = "mutated"
	symbols := profile.SortedSymbols()
	symbols[0] = "mutated"

	assert.Equal(t, "and", profile.Keywords()[0])
	assert.NotEqual(t, "mutated", profile.SortedSymbols()[0])
	assert.False(t, profile.IsOperator("mutated"))
}

func TestNewProfileValidation(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"empty name", Spec{CommentMarker: "#"}},
		{"empty marker", Spec{Name: "X"}},
		{"long marker", Spec{Name: "X", CommentMarker: "###"}},
		{"three word operator", Spec{Name: "X", CommentMarker: "#", MultiWordOperators: []string{"is not in"}}},
		{"single word operator", Spec{Name: "X", CommentMarker: "#", MultiWordOperators: []string{"isnot"}}},
		{"whitespace symbol", Spec{Name: "X", CommentMarker: "#", Symbols: []string{"a b"}}},
		{"bad prefix", Spec{Name: "X", CommentMarker: "#", LiteralPrefixes: "f1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile(tt.spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

// TestRegistryLanguages 确认注册中心包含全部内置语言。
func TestRegistryLanguages(t *testing.T) {
	registry := NewRegistry()
	languages := registry.Languages()

	require.Len(t, languages, 4)
	assert.Equal(t, "Go", languages[0].Name)

	for _, extension := range []string{".py", ".js", ".jsx", ".ts", ".go"} {
		_, ok := registry.ProfileForFile("x" + extension)
		assert.True(t, ok, "missing profile for extension %s", extension)
	}

	_, ok := registry.ProfileForFile("README.md")
	assert.False(t, ok)
}

func TestRegistryResolve(t *testing.T) {
	registry := NewRegistry()

	profile, err := registry.Resolve("javascript", "a.py", nil)
	require.NoError(t, err)
	assert.Equal(t, "JavaScript", profile.Name())

	profile, err = registry.Resolve("", "pkg/a.PY", nil)
	require.NoError(t, err)
	assert.Equal(t, "Python", profile.Name())

	profile, err = registry.Resolve("", "notes.txt", Python())
	require.NoError(t, err)
	assert.Equal(t, "Python", profile.Name())

	_, err = registry.Resolve("", "notes.txt", nil)
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	_, err = registry.Resolve("cobol", "a.py", nil)
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestLoadProfilesOverridesBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := strings.Join([]string{
		"profiles:",
		"  - name: Lua",
		"    extensions: [lua]",
		"    comment_marker: \"--\"",
		"    keywords: [and, end, function, local]",
		"    symbols: [\"=\", \"==\", \"~=\", \"(\", \")\"]",
		"  - name: python",
		"    extensions: [\".pyx\"]",
		"    comment_marker: \"#\"",
		"    keywords: [def]",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	registry := NewRegistry()
	require.NoError(t, registry.LoadFile(path))

	lua, ok := registry.ProfileForFile("init.lua")
	require.True(t, ok)
	assert.Equal(t, "Lua", lua.Name())
	assert.Equal(t, "--", lua.CommentMarker())
	assert.True(t, lua.IsOperator("~="))

	_, ok = registry.ProfileForFile("a.py")
	assert.False(t, ok, "overridden profile should drop old extensions")

	py, ok := registry.ProfileForFile("a.pyx")
	require.True(t, ok)
	assert.Equal(t, []string{"def"}, py.Keywords())
	assert.Len(t, registry.Languages(), 5)
}

func TestLoadProfilesRejectsUnknownField(t *testing.T) {
	_, err := LoadProfiles(strings.NewReader("profiles:\n  - name: X\n    comment_marker: \"#\"\n    colour: red\n"))
	assert.Error(t, err)
}

func TestLoadProfilesEmpty(t *testing.T) {
	profiles, err := LoadProfiles(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
