// Package report 把统计结果渲染为控制台摘要、表格或结构化文件
package report

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/yeisme/gosloc/pkg/sloc"
	"github.com/yeisme/gosloc/pkg/utils/count"
)

// 报告类型
const (
	TypeConsole  = "console"
	TypeJSON     = "json"
	TypeYAML     = "yaml"
	TypeTOML     = "toml"
	TypeMarkdown = "markdown"
	TypeTable    = "table"
)

// Stdout 作为 ReportFile 时表示写到 Options.Out
const Stdout = "-"

// Options 控制报告内容与去向
type Options struct {
	Type string
	// ReportFile json 报告写入的文件，默认 sloc.json
	ReportFile string
	WithFiles  bool
	ByLanguage bool
	// Out 控制台输出，nil 表示 os.Stdout
	Out io.Writer
}

// Reporter 输出一次统计的结果
type Reporter interface {
	Report(res *count.Result) error
}

// ReporterFunc 把函数适配为 Reporter
type ReporterFunc func(res *count.Result) error

// Report 实现 Reporter
func (f ReporterFunc) Report(res *count.Result) error { return f(res) }

// New 按类型创建 Reporter
func New(opts Options) (Reporter, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	switch strings.ToLower(opts.Type) {
	case "", TypeConsole:
		return ReporterFunc(func(res *count.Result) error { return writeConsole(opts.Out, res, opts) }), nil
	case TypeJSON:
		return ReporterFunc(func(res *count.Result) error { return writeJSONReport(res, opts) }), nil
	case TypeYAML:
		return ReporterFunc(func(res *count.Result) error { return writeYAML(opts.Out, NewDocument(res, opts)) }), nil
	case TypeTOML:
		return ReporterFunc(func(res *count.Result) error { return writeTOML(opts.Out, NewDocument(res, opts)) }), nil
	case TypeMarkdown:
		return ReporterFunc(func(res *count.Result) error { return writeMarkdown(opts.Out, res, opts) }), nil
	case TypeTable:
		return ReporterFunc(func(res *count.Result) error { return writeTables(opts.Out, res, opts) }), nil
	default:
		return nil, fmt.Errorf("unknown reporter %q", opts.Type)
	}
}

// Document 结构化报告的内容，顶层字段与总计记录一致
type Document struct {
	sloc.TotalRecord `yaml:",inline"`
	Files            []sloc.FileRecord `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
	Languages        []LanguageRecord  `json:"languages,omitempty" yaml:"languages,omitempty" toml:"languages,omitempty"`
}

// LanguageRecord 单个语言的汇总
type LanguageRecord struct {
	Language         string `json:"language" yaml:"language" toml:"language"`
	sloc.TotalRecord `yaml:",inline"`
}

// NewDocument 按选项构造报告文档
func NewDocument(res *count.Result, opts Options) Document {
	doc := Document{TotalRecord: res.Total}
	if opts.WithFiles {
		doc.Files = res.Files
	}
	if opts.ByLanguage {
		doc.Languages = Languages(res)
	}
	return doc
}

// Languages 返回按语言名排序的汇总，"Unknown" 排在最后
func Languages(res *count.Result) []LanguageRecord {
	byLang := res.Languages()
	out := make([]LanguageRecord, 0, len(byLang))
	for name, t := range byLang {
		out = append(out, LanguageRecord{Language: name, TotalRecord: *t})
	}
	slices.SortFunc(out, func(a, b LanguageRecord) int {
		if (a.Language == "Unknown") != (b.Language == "Unknown") {
			if a.Language == "Unknown" {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Language, b.Language)
	})
	return out
}
