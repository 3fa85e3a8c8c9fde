package languages

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// profileFile 是自定义画像 YAML 文件的顶层结构：
//
//	profiles:
//	  - name: Lua
//	    extensions: [".lua"]
//	    comment_marker: "--"
//	    keywords: [and, break, do, else, end]
//	    symbols: ["==", "~=", "=", "(", ")"]
//	    multi_word_operators: []
type profileFile struct {
	Profiles []Spec `yaml:"profiles"`
}

// LoadProfiles 从 YAML 读取自定义画像定义。
func LoadProfiles(reader io.Reader) ([]*Profile, error) {
	var file profileFile
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make([]*Profile, 0, len(file.Profiles))
	for _, spec := range file.Profiles {
		profile, err := NewProfile(spec)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// LoadFile 读取 YAML 画像文件并注册到 registry，同名画像覆盖内置定义。
func (r *Registry) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open profiles file: %w", err)
	}
	defer func() { _ = file.Close() }()

	profiles, err := LoadProfiles(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, profile := range profiles {
		r.Register(profile)
	}
	return nil
}
