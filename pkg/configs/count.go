package configs

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"github.com/yeisme/gosloc/pkg/sloc"
)

// ReportTypes 支持的报告类型
var ReportTypes = []string{"console", "json", "yaml", "toml", "markdown", "table"}

// CountConfig count 命令的配置
type CountConfig struct {
	// Strict 为 false 时未识别扩展名的文件也会被计入（按纯空白判断）
	Strict     bool   `mapstructure:"strict" json:"strict" yaml:"strict" toml:"strict"`
	ReportType string `mapstructure:"report_type" json:"report_type" yaml:"report_type" toml:"report_type"`
	// ReportFile json 报告的输出文件
	ReportFile string `mapstructure:"report_file" json:"report_file" yaml:"report_file" toml:"report_file"`

	Include          []string `mapstructure:"include" json:"include" yaml:"include" toml:"include"`
	Exclude          []string `mapstructure:"exclude" json:"exclude" yaml:"exclude" toml:"exclude"`
	RespectGitignore bool     `mapstructure:"respect_gitignore" json:"respect_gitignore" yaml:"respect_gitignore" toml:"respect_gitignore"`
	FollowSymlinks   bool     `mapstructure:"follow_symlinks" json:"follow_symlinks" yaml:"follow_symlinks" toml:"follow_symlinks"`
	MaxFileSize      int64    `mapstructure:"max_file_size" json:"max_file_size" yaml:"max_file_size" toml:"max_file_size"` // 字节，0 表示不限制
	Concurrency      int      `mapstructure:"concurrency" json:"concurrency" yaml:"concurrency" toml:"concurrency"`         // 0 表示 CPU 核数
	SkipBinary       bool     `mapstructure:"skip_binary" json:"skip_binary" yaml:"skip_binary" toml:"skip_binary"`

	WithFiles  bool `mapstructure:"with_files" json:"with_files" yaml:"with_files" toml:"with_files"`
	ByLanguage bool `mapstructure:"by_language" json:"by_language" yaml:"by_language" toml:"by_language"`

	BlankInBlockEmpty     bool `mapstructure:"blank_in_block_empty" json:"blank_in_block_empty" yaml:"blank_in_block_empty" toml:"blank_in_block_empty"`
	CombinedCommentsMixed bool `mapstructure:"combined_comments_mixed" json:"combined_comments_mixed" yaml:"combined_comments_mixed" toml:"combined_comments_mixed"`
}

func setCountConfigDefaults(v *viper.Viper) {
	v.SetDefault("count.strict", true)
	v.SetDefault("count.report_type", "console")
	v.SetDefault("count.report_file", "sloc.json")
	v.SetDefault("count.include", []string{})
	v.SetDefault("count.exclude", []string{})
	v.SetDefault("count.respect_gitignore", true)
	v.SetDefault("count.follow_symlinks", false)
	v.SetDefault("count.max_file_size", 0)
	v.SetDefault("count.concurrency", 0)
	v.SetDefault("count.skip_binary", true)
	v.SetDefault("count.with_files", false)
	v.SetDefault("count.by_language", false)
	v.SetDefault("count.blank_in_block_empty", sloc.DefaultPolicy.BlankLinesInBlockAreEmpty)
	v.SetDefault("count.combined_comments_mixed", sloc.DefaultPolicy.CombinedCommentsAreMixed)
}

// Policy 返回配置对应的分类策略
func (c CountConfig) Policy() sloc.Policy {
	return sloc.Policy{
		BlankLinesInBlockAreEmpty: c.BlankInBlockEmpty,
		CombinedCommentsAreMixed:  c.CombinedCommentsMixed,
	}
}

// Validate 检查 count 段的取值
func (c CountConfig) Validate() error {
	var errs []error
	if !slices.Contains(ReportTypes, strings.ToLower(c.ReportType)) {
		errs = append(errs, fmt.Errorf("count.report_type %q is not one of %s", c.ReportType, strings.Join(ReportTypes, ", ")))
	}
	if c.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("count.max_file_size must not be negative: %d", c.MaxFileSize))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("count.concurrency must not be negative: %d", c.Concurrency))
	}
	if strings.ToLower(c.ReportType) == "json" && strings.TrimSpace(c.ReportFile) == "" {
		errs = append(errs, errors.New("count.report_file is required for the json report"))
	}
	return errors.Join(errs...)
}
