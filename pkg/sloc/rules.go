// Package sloc 实现行分类引擎：按语言的注释语法逐行判断 source / comment / empty，
// 并把单文件结果折叠为总计。包内不做任何文件系统访问或输出格式化。
package sloc

import "strings"

// Pair 表示一对块注释起止标记
type Pair struct {
	Open  string `mapstructure:"open" json:"open" yaml:"open" toml:"open"`
	Close string `mapstructure:"close" json:"close" yaml:"close" toml:"close"`
}

// Rule 描述一种语言的注释语法
//
// StringDelimiters 中的每个字符都被视为字符串定界符，字符串内部的注释标记不生效。
// 反斜杠在字符串内转义下一个字符，RawDelimiters 中的定界符与 NoEscape 的语言除外。
// CharLiterals 为 true 时 'x'、'\n' 形式的字符字面量整体视为代码，
// 不成对的单引号（如 Rust 的生命周期 'a）只是普通字符。
type Rule struct {
	Name             string   `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Extensions       []string `mapstructure:"extensions" json:"extensions" yaml:"extensions" toml:"extensions"`
	Filenames        []string `mapstructure:"filenames" json:"filenames,omitempty" yaml:"filenames,omitempty" toml:"filenames,omitempty"`
	LineComments     []string `mapstructure:"line_comments" json:"line_comments,omitempty" yaml:"line_comments,omitempty" toml:"line_comments,omitempty"`
	BlockComments    []Pair   `mapstructure:"block_comments" json:"block_comments,omitempty" yaml:"block_comments,omitempty" toml:"block_comments,omitempty"`
	StringDelimiters string   `mapstructure:"string_delimiters" json:"string_delimiters,omitempty" yaml:"string_delimiters,omitempty" toml:"string_delimiters,omitempty"`
	RawDelimiters    string   `mapstructure:"raw_delimiters" json:"raw_delimiters,omitempty" yaml:"raw_delimiters,omitempty" toml:"raw_delimiters,omitempty"`
	NoEscape         bool     `mapstructure:"no_escape" json:"no_escape,omitempty" yaml:"no_escape,omitempty" toml:"no_escape,omitempty"`
	CharLiterals     bool     `mapstructure:"char_literals" json:"char_literals,omitempty" yaml:"char_literals,omitempty" toml:"char_literals,omitempty"`
}

// isDelimiter 判断字节 c 是否为该规则的字符串定界符
func (r *Rule) isDelimiter(c byte) bool {
	return strings.IndexByte(r.StringDelimiters, c) >= 0
}

// escapes 判断以 quote 开始的字符串中反斜杠是否为转义符
func (r *Rule) escapes(quote byte) bool {
	return !r.NoEscape && strings.IndexByte(r.RawDelimiters, quote) < 0
}

// 常用注释语法片段
var (
	cStyleBlock = []Pair{{Open: "/*", Close: "*/"}}
	htmlBlock   = []Pair{{Open: "<!--", Close: "-->"}}
	slashLine   = []string{"//"}
	hashLine    = []string{"#"}
)

// builtinRules 内置语言表
// 新语言只需要在这里追加数据，或者在配置文件的 languages 段声明
var builtinRules = []Rule{
	{Name: "C", Extensions: []string{".c", ".h"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "C++", Extensions: []string{".cc", ".cpp", ".cxx", ".c++", ".hh", ".hpp", ".hxx", ".inl"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "C#", Extensions: []string{".cs"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "Objective-C", Extensions: []string{".m", ".mm"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "Java", Extensions: []string{".java"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "Kotlin", Extensions: []string{".kt", ".kts"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "Scala", Extensions: []string{".scala", ".sc"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"`},
	{Name: "Groovy", Extensions: []string{".groovy", ".gradle"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "Go", Extensions: []string{".go"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: "\"'`", RawDelimiters: "`"},
	{Name: "Rust", Extensions: []string{".rs"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"`, CharLiterals: true},
	{Name: "Swift", Extensions: []string{".swift"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"`},
	{Name: "Dart", Extensions: []string{".dart"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "JavaScript", Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: "\"'`"},
	{Name: "TypeScript", Extensions: []string{".ts", ".mts", ".cts", ".tsx"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: "\"'`"},
	{Name: "PHP", Extensions: []string{".php"}, LineComments: []string{"//", "#"}, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "CSS", Extensions: []string{".css"}, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "SCSS", Extensions: []string{".scss", ".less", ".styl"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "Protobuf", Extensions: []string{".proto"}, LineComments: slashLine, BlockComments: cStyleBlock, StringDelimiters: `"'`},
	{Name: "HTML", Extensions: []string{".html", ".htm", ".xhtml", ".vue", ".svelte"}, BlockComments: htmlBlock},
	{Name: "XML", Extensions: []string{".xml", ".xsd", ".xsl", ".svg", ".plist"}, BlockComments: htmlBlock},
	{Name: "Markdown", Extensions: []string{".md", ".markdown"}, BlockComments: htmlBlock},
	{Name: "Python", Extensions: []string{".py", ".pyi", ".pyw"}, LineComments: hashLine, StringDelimiters: `"'`},
	{Name: "Ruby", Extensions: []string{".rb", ".rake", ".gemspec"}, Filenames: []string{"Rakefile", "Gemfile"}, LineComments: hashLine, BlockComments: []Pair{{Open: "=begin", Close: "=end"}}, StringDelimiters: `"'`},
	{Name: "Perl", Extensions: []string{".pl", ".pm"}, LineComments: hashLine, StringDelimiters: `"'`},
	{Name: "Shell", Extensions: []string{".sh", ".bash", ".zsh", ".fish", ".ksh"}, LineComments: hashLine, StringDelimiters: `"'`, RawDelimiters: `'`},
	{Name: "PowerShell", Extensions: []string{".ps1", ".psm1"}, LineComments: hashLine, BlockComments: []Pair{{Open: "<#", Close: "#>"}}, StringDelimiters: `"'`, NoEscape: true},
	{Name: "CoffeeScript", Extensions: []string{".coffee"}, LineComments: hashLine, BlockComments: []Pair{{Open: "###", Close: "###"}}, StringDelimiters: `"'`},
	{Name: "R", Extensions: []string{".r"}, LineComments: hashLine, StringDelimiters: `"'`},
	{Name: "YAML", Extensions: []string{".yaml", ".yml"}, LineComments: hashLine, StringDelimiters: `"'`, RawDelimiters: `'`},
	{Name: "TOML", Extensions: []string{".toml"}, LineComments: hashLine, StringDelimiters: `"'`, RawDelimiters: `'`},
	{Name: "INI", Extensions: []string{".ini", ".cfg", ".conf"}, LineComments: []string{"#", ";"}},
	{Name: "Make", Extensions: []string{".mk", ".mak"}, Filenames: []string{"Makefile", "GNUmakefile"}, LineComments: hashLine},
	{Name: "Dockerfile", Extensions: []string{".dockerfile"}, Filenames: []string{"Dockerfile", "Containerfile"}, LineComments: hashLine},
	{Name: "CMake", Extensions: []string{".cmake"}, Filenames: []string{"CMakeLists.txt"}, LineComments: hashLine, BlockComments: []Pair{{Open: "#[[", Close: "]]"}}, StringDelimiters: `"`},
	{Name: "SQL", Extensions: []string{".sql"}, LineComments: []string{"--"}, BlockComments: cStyleBlock, StringDelimiters: `'"`, NoEscape: true},
	{Name: "Lua", Extensions: []string{".lua"}, LineComments: []string{"--"}, BlockComments: []Pair{{Open: "--[[", Close: "]]"}}, StringDelimiters: `"'`},
	{Name: "Haskell", Extensions: []string{".hs", ".lhs"}, LineComments: []string{"--"}, BlockComments: []Pair{{Open: "{-", Close: "-}"}}, StringDelimiters: `"`},
	{Name: "Elm", Extensions: []string{".elm"}, LineComments: []string{"--"}, BlockComments: []Pair{{Open: "{-", Close: "-}"}}, StringDelimiters: `"`},
	{Name: "OCaml", Extensions: []string{".ml", ".mli"}, BlockComments: []Pair{{Open: "(*", Close: "*)"}}, StringDelimiters: `"`},
	{Name: "F#", Extensions: []string{".fs", ".fsi", ".fsx"}, LineComments: slashLine, BlockComments: []Pair{{Open: "(*", Close: "*)"}}, StringDelimiters: `"`},
	{Name: "Lisp", Extensions: []string{".lisp", ".lsp", ".cl", ".el", ".clj", ".cljs", ".edn", ".scm"}, LineComments: []string{";"}, BlockComments: []Pair{{Open: "#|", Close: "|#"}}, StringDelimiters: `"`},
	{Name: "Erlang", Extensions: []string{".erl", ".hrl"}, LineComments: []string{"%"}, StringDelimiters: `"`},
	{Name: "TeX", Extensions: []string{".tex", ".sty", ".cls"}, LineComments: []string{"%"}},
	{Name: "Assembly", Extensions: []string{".asm", ".s"}, LineComments: []string{";", "#"}},
	{Name: "Visual Basic", Extensions: []string{".vb", ".vbs", ".bas"}, LineComments: []string{"'"}, StringDelimiters: `"`, NoEscape: true},
}
