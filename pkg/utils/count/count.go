// Package count 负责发现待统计的文件并把它们交给 sloc 统计
package count

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/sloc"
)

// Options 用于控制文件发现与统计行为
// 所有字段均为可选，零值表示采用默认策略
type Options struct {
	// 过滤与遍历
	Include          []string // 仅统计匹配这些 glob 的路径（优先级高于 Exclude）
	Exclude          []string // 排除匹配这些 glob 的路径
	RespectGitignore bool     // 是否遵循根目录下的 .gitignore
	FollowSymlinks   bool     // 是否统计符号链接指向的文件
	MaxFileSizeBytes int64    // 超过该大小的文件将被跳过（0 表示不限制）
	SkipBinary       bool     // 跳过前 512 字节含 NUL 的文件

	// 并发控制
	Concurrency int // 并发读取数量（<=0 表示 CPU 核数）

	// 统计
	Strict bool        // 严格模式下未识别扩展名的文件不计入
	Table  *sloc.Table // nil 表示内置规则表
	Policy sloc.Policy

	Logger *zerolog.Logger // nil 表示不输出日志
}

// OptionsFromConfig 由 count 配置段构造选项
func OptionsFromConfig(c configs.CountConfig, table *sloc.Table) Options {
	return Options{
		Include:          c.Include,
		Exclude:          c.Exclude,
		RespectGitignore: c.RespectGitignore,
		FollowSymlinks:   c.FollowSymlinks,
		MaxFileSizeBytes: c.MaxFileSize,
		SkipBinary:       c.SkipBinary,
		Concurrency:      c.Concurrency,
		Strict:           c.Strict,
		Table:            table,
		Policy:           c.Policy(),
	}
}

func (o Options) slocOptions() sloc.Options {
	policy := o.Policy
	return sloc.Options{
		Strict:  o.Strict,
		Table:   o.Table,
		Policy:  &policy,
		Workers: o.Concurrency,
	}
}

// ScanError 单个路径的读取错误，不会中断整次统计
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Result 一次统计的结果
type Result struct {
	// Files 按路径排序的单文件结果
	Files []sloc.FileRecord
	Total sloc.TotalRecord
	// Errors 无法读取的路径
	Errors []*ScanError
	// Skipped 严格模式下因扩展名未识别而被排除的文件数
	Skipped int
	// Binary 因内容为二进制而被跳过的文件数
	Binary int
	// Strict 统计时使用的模式
	Strict bool
}

// Languages 按规则名汇总单文件结果，未识别的文件归入 "Unknown"
func (r *Result) Languages() map[string]*sloc.TotalRecord {
	out := make(map[string]*sloc.TotalRecord)
	for _, f := range r.Files {
		lang := f.Language
		if lang == "" {
			lang = "Unknown"
		}
		t, ok := out[lang]
		if !ok {
			t = &sloc.TotalRecord{}
			out[lang] = t
		}
		t.Include(f)
	}
	return out
}
