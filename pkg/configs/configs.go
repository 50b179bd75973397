// Package configs 提供 gosloc 的配置加载与校验
//
// 配置来源优先级：命令行 > 环境变量 (GOSLOC_*) > 配置文件 > 默认值
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"github.com/yeisme/gosloc/pkg/sloc"
)

// EnvPrefix 环境变量前缀，例如 GOSLOC_COUNT_STRICT=false
const EnvPrefix = "GOSLOC"

// Config 应用配置结构
type Config struct {
	Version string      `mapstructure:"version" json:"version" yaml:"version" toml:"version"`
	Log     LogConfig   `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	App     AppConfig   `mapstructure:"app" json:"app" yaml:"app" toml:"app"`
	Count   CountConfig `mapstructure:"count" json:"count" yaml:"count" toml:"count"`
	Watch   WatchConfig `mapstructure:"watch" json:"watch" yaml:"watch" toml:"watch"`
	// Languages 追加或覆盖内置语言规则
	Languages []sloc.Rule `mapstructure:"languages" json:"languages,omitempty" yaml:"languages,omitempty" toml:"languages,omitempty"`
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setCountConfigDefaults(v)
	setWatchConfigDefaults(v)
}

var globalConfig *Config

// searchPaths 配置文件搜索路径
func searchPaths() []string {
	paths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/gosloc",
	}
	if runtime.GOOS == "windows" {
		paths = append(paths, "$USERPROFILE", "$APPDATA/gosloc")
	} else {
		paths = append(paths, "/etc/gosloc")
	}
	return paths
}

// findConfigFile 按搜索路径、文件名与扩展名的组合查找第一个存在的配置文件
func findConfigFile() string {
	names := []string{".gosloc", "gosloc"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, dir := range searchPaths() {
		for _, name := range names {
			for _, ext := range extensions {
				file := os.ExpandEnv(filepath.Join(dir, name+"."+ext))
				if st, err := os.Stat(file); err == nil && !st.IsDir() {
					return file
				}
			}
		}
	}
	return ""
}

// NewViper 创建带默认值与环境变量绑定的 viper 实例，configPath 为空时自动搜索配置文件
func NewViper(configPath string) *viper.Viper {
	v := viper.New()
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadConfig 加载配置文件；没有找到配置文件时使用默认值
func LoadConfig(configPath string) (*Config, *viper.Viper, error) {
	v := NewViper(configPath)

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		if err := os.MkdirAll(filepath.Dir(config.Log.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	globalConfig = &config
	return &config, v, nil
}

// GetConfig 获取全局配置，尚未加载时按默认搜索路径加载
func GetConfig() *Config {
	if globalConfig != nil {
		return globalConfig
	}
	config, _, err := LoadConfig("")
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}
	return config
}

// Validate 检查配置中的取值范围，返回所有问题的合并错误
func (c *Config) Validate() error {
	var errs []error
	if err := c.Count.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative: %d", c.Watch.Debounce))
	}
	for i, r := range c.Languages {
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("languages[%d]: name is required", i))
		}
		if len(r.Extensions) == 0 && len(r.Filenames) == 0 {
			errs = append(errs, fmt.Errorf("languages[%d] %q: extensions or filenames required", i, r.Name))
		}
		for _, d := range r.RawDelimiters {
			if !strings.ContainsRune(r.StringDelimiters, d) {
				errs = append(errs, fmt.Errorf("languages[%d] %q: raw delimiter %q is not a string delimiter", i, r.Name, d))
			}
		}
		for j, p := range r.BlockComments {
			if p.Open == "" || p.Close == "" {
				errs = append(errs, fmt.Errorf("languages[%d] %q: block_comments[%d] needs open and close", i, r.Name, j))
			}
		}
	}
	return errors.Join(errs...)
}

// RuleTable 返回内置规则叠加配置中 languages 段后的规则表
func (c *Config) RuleTable() *sloc.Table {
	if len(c.Languages) == 0 {
		return sloc.DefaultTable()
	}
	t := sloc.DefaultTable().Clone()
	for _, r := range c.Languages {
		t.Register(r)
	}
	return t
}
