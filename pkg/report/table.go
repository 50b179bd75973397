package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yeisme/gosloc/pkg/sloc"
	"github.com/yeisme/gosloc/pkg/style"
	"github.com/yeisme/gosloc/pkg/utils/count"
)

var countHeaders = []string{"total", "source", "comment", "single", "block", "mixed", "empty"}

func countCells(c sloc.Counts) []string {
	return []string{
		strconv.Itoa(c.Total),
		strconv.Itoa(c.Source),
		strconv.Itoa(c.Comment),
		strconv.Itoa(c.Single),
		strconv.Itoa(c.Block),
		strconv.Itoa(c.Mixed),
		strconv.Itoa(c.Empty),
	}
}

// LanguageTable 构建语言汇总表（含 TOTAL 行）
func LanguageTable(res *count.Result) style.Table {
	t := style.Table{Headers: append([]string{"language", "files"}, append(countHeaders, "source%")...)}
	for _, l := range Languages(res) {
		row := append([]string{l.Language, strconv.Itoa(l.File)}, countCells(l.Counts)...)
		t.Rows = append(t.Rows, append(row, percent(l.Source, res.Total.Source)))
	}
	t.Footer = append([]string{"TOTAL", strconv.Itoa(res.Total.File)}, countCells(res.Total.Counts)...)
	t.Footer = append(t.Footer, percent(res.Total.Source, res.Total.Source))
	return t
}

// FileTable 构建单文件明细表
func FileTable(res *count.Result) style.Table {
	t := style.Table{Headers: append([]string{"path", "language"}, countHeaders...)}
	for _, f := range res.Files {
		lang := f.Language
		if lang == "" {
			lang = "Unknown"
		}
		t.Rows = append(t.Rows, append([]string{f.Path, lang}, countCells(f.Counts)...))
	}
	return t
}

func percent(part, whole int) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(whole))
}

// writeTables 输出总计表，按选项附加语言表与文件表
func writeTables(w io.Writer, res *count.Result, opts Options) error {
	mode := "strict"
	if !res.Strict {
		mode = "tolerant"
	}
	summary := style.Table{
		Headers: append([]string{"mode", "files"}, countHeaders...),
		Rows:    [][]string{append([]string{mode, strconv.Itoa(res.Total.File)}, countCells(res.Total.Counts)...)},
	}
	if err := style.PrintTable(w, summary, 0); err != nil {
		return err
	}
	if opts.ByLanguage {
		if err := style.PrintTable(w, LanguageTable(res), 0); err != nil {
			return err
		}
	}
	if opts.WithFiles && len(res.Files) > 0 {
		return style.PrintTable(w, FileTable(res), 0)
	}
	return nil
}

// Markdown 返回 Markdown 格式的报告文本
func Markdown(res *count.Result, opts Options) string {
	var b strings.Builder
	mode := "strict"
	if !res.Strict {
		mode = "tolerant"
	}
	fmt.Fprintf(&b, "# Source lines\n\n%d files read in %s mode.\n\n", res.Total.File, mode)
	writeMarkdownTable(&b, style.Table{
		Headers: []string{"metric", "lines"},
		Rows: [][]string{
			{"physical lines", strconv.Itoa(res.Total.Total)},
			{"lines of source code", strconv.Itoa(res.Total.Source)},
			{"total comment", strconv.Itoa(res.Total.Comment)},
			{"single-line", strconv.Itoa(res.Total.Single)},
			{"block", strconv.Itoa(res.Total.Block)},
			{"mixed", strconv.Itoa(res.Total.Mixed)},
			{"empty", strconv.Itoa(res.Total.Empty)},
		},
	})
	if opts.ByLanguage && len(res.Files) > 0 {
		b.WriteString("\n## Languages\n\n")
		writeMarkdownTable(&b, LanguageTable(res))
	}
	if opts.WithFiles && len(res.Files) > 0 {
		b.WriteString("\n## Files\n\n")
		writeMarkdownTable(&b, FileTable(res))
	}
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, t style.Table) {
	row := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	row(t.Headers)
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	row(sep)
	for _, r := range t.Rows {
		row(r)
	}
	if len(t.Footer) > 0 {
		footer := append([]string(nil), t.Footer...)
		footer[0] = "**" + footer[0] + "**"
		row(footer)
	}
}

func writeMarkdown(w io.Writer, res *count.Result, opts Options) error {
	return style.RenderMarkdown(w, Markdown(res, opts), 0, "")
}
