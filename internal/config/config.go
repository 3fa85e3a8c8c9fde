// Package config 汇总配置文件、环境变量和命令行参数，产出校验后的 Config。
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 是环境变量前缀，例如 GOHALSTEAD_WORKERS。
const EnvPrefix = "GOHALSTEAD"

// 结果存储后端。
const (
	StoreNone     = ""
	StoreSQLite   = "sqlite"
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
)

// DefaultSQLiteDSN 是 sqlite 后端未指定 DSN 时使用的文件。
const DefaultSQLiteDSN = "gohalstead.db"

// ErrInvalidConfig 表示配置值不合法。
var ErrInvalidConfig = errors.New("invalid configuration")

// Config 是解析完成的运行配置。
type Config struct {
	Input      string `mapstructure:"input"`
	Output     string `mapstructure:"output"`
	Batch      bool   `mapstructure:"batch"`
	InputList  string `mapstructure:"input-list"`
	OutputList string `mapstructure:"output-list"`
	Language   string `mapstructure:"language"`
	Profiles   string `mapstructure:"profiles"`
	Workers    int    `mapstructure:"workers"`
	PathPrefix string `mapstructure:"path-prefix"`
	Store      string `mapstructure:"store"`
	StoreDSN   string `mapstructure:"store-dsn"`
	NoColor    bool   `mapstructure:"no-color"`
	NoPrompt   bool   `mapstructure:"no-prompt"`
	Quiet      bool   `mapstructure:"quiet"`
}

// SetDefaults 在一个地方声明全部默认值。
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("store", StoreNone)
	v.SetDefault("store-dsn", "")
	v.SetDefault("path-prefix", "")
	v.SetDefault("language", "")
	v.SetDefault("profiles", "")
}

// Load 读取配置文件（--config 指定，或 . 与 $HOME 下的 .gohalstead.yaml）、
// 环境变量与已绑定的参数，然后校验。配置文件不存在不算错误。
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".gohalstead")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验并归一化配置。
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreNone:
	case StoreSQLite:
		if c.StoreDSN == "" {
			c.StoreDSN = DefaultSQLiteDSN
		}
	case StoreMySQL, StorePostgres:
		if c.StoreDSN == "" {
			return fmt.Errorf("%w: store %s requires --store-dsn", ErrInvalidConfig, c.Store)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q (allowed: sqlite, mysql, postgres)", ErrInvalidConfig, c.Store)
	}

	if c.OutputList != "" && !c.Batch {
		return fmt.Errorf("%w: --output-list requires --batch", ErrInvalidConfig)
	}
	return nil
}
