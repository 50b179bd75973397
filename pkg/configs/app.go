package configs

import (
	"github.com/spf13/viper"
)

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Debug   bool   `mapstructure:"debug" json:"debug" yaml:"debug" toml:"debug"`
	Verbose bool   `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`
	Quiet   bool   `mapstructure:"quiet" json:"quiet" yaml:"quiet" toml:"quiet"` // 安静模式，禁止所有日志输出
	NoColor bool   `mapstructure:"no_color" json:"no_color" yaml:"no_color" toml:"no_color"`
}

// WatchConfig watch 命令的监听配置
type WatchConfig struct {
	Recursive      bool     `mapstructure:"recursive" json:"recursive" yaml:"recursive" toml:"recursive"`
	Debounce       int      `mapstructure:"debounce" json:"debounce" yaml:"debounce" toml:"debounce"`                             // 防抖时间，毫秒
	IgnorePatterns []string `mapstructure:"ignore_patterns" json:"ignore_patterns" yaml:"ignore_patterns" toml:"ignore_patterns"` // 额外忽略的 glob
	GitIgnore      bool     `mapstructure:"git_ignore" json:"git_ignore" yaml:"git_ignore" toml:"git_ignore"`                     // 是否使用 .gitignore
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gosloc")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)
	v.SetDefault("app.no_color", false)
}

func setWatchConfigDefaults(v *viper.Viper) {
	v.SetDefault("watch.recursive", true)
	v.SetDefault("watch.debounce", 300)
	v.SetDefault("watch.ignore_patterns", []string{
		"**/*.tmp",
		"**/*.swp",
		"**/*.log",
		"**/node_modules/**",
		"**/vendor/**",
	})
	v.SetDefault("watch.git_ignore", true)
}
