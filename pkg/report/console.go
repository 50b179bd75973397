package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/yeisme/gosloc/pkg/style"
	"github.com/yeisme/gosloc/pkg/utils/count"
)

const (
	consoleRule       = "-------------------------------"
	consoleLabelWidth = 22
)

type consoleLine struct {
	label string
	value int
	style lipgloss.Style
}

// writeConsole 输出摘要块:
//
//	-------------------------------
//	        physical lines : 12
//	  lines of source code : 8
//	...
//	  number of files read : 2
//	           strict mode
//	-------------------------------
func writeConsole(w io.Writer, res *count.Result, opts Options) error {
	t := res.Total
	plain := lipgloss.NewStyle()
	counts := []consoleLine{
		{"physical lines", t.Total, style.SourceStyle},
		{"lines of source code", t.Source, style.SourceStyle},
		{"total comment", t.Comment, style.CommentStyle},
		{"single-line", t.Single, plain},
		{"block", t.Block, plain},
		{"mixed", t.Mixed, plain},
		{"empty", t.Empty, style.EmptyStyle},
	}

	lines := []string{consoleRule}
	for _, c := range counts {
		lines = append(lines, consoleValue(c))
	}
	lines = append(lines, "", consoleValue(consoleLine{"number of files read", t.File, style.SourceStyle}))
	if res.Strict {
		lines = append(lines, style.StrictStyle.Render(runewidth.FillLeft("strict mode", consoleLabelWidth)+" "))
	} else {
		lines = append(lines, style.TolerantStyle.Render(runewidth.FillLeft("tolerant mode", consoleLabelWidth)+" "))
	}
	lines = append(lines, consoleRule)

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	if opts.ByLanguage && len(res.Files) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := style.PrintTable(w, LanguageTable(res), 0); err != nil {
			return err
		}
	}
	if opts.WithFiles && len(res.Files) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return style.PrintTable(w, FileTable(res), 0)
	}
	return nil
}

func consoleValue(c consoleLine) string {
	return fmt.Sprintf("%s : %s", runewidth.FillLeft(c.label, consoleLabelWidth), c.style.Render(strconv.Itoa(c.value)))
}
