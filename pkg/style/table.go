package style

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"
)

// Table 一张待渲染的表格
type Table struct {
	Headers []string
	Rows    [][]string
	// Footer 合计行，为空时不渲染
	Footer []string
}

// PrintTable 渲染表格；全部为整数的列右对齐
// width: 期望的表格宽度；<=0 时探测终端宽度，探测失败则按内容自然宽度输出
func PrintTable(w io.Writer, t Table, width int) error {
	if width <= 0 {
		width = detectTerminalWidth(w)
	}

	rows := t.Rows
	if len(t.Footer) > 0 {
		rows = append(append([][]string(nil), t.Rows...), t.Footer)
	}
	numeric := numericColumns(rows, len(t.Headers))
	footerRow := len(t.Rows)

	baseStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := baseStyle.Foreground(lipgloss.Color("252")).Bold(true)
	footerStyle := baseStyle.Bold(true)

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = strings.ToUpper(h)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := baseStyle
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case len(t.Footer) > 0 && row == footerRow:
				s = footerStyle
			}
			if col < len(numeric) && numeric[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// numericColumns 标记所有非空单元格都是整数的列
func numericColumns(rows [][]string, cols int) []bool {
	numeric := make([]bool, cols)
	for c := range numeric {
		numeric[c] = len(rows) > 0
	}
	for _, row := range rows {
		for c := range numeric {
			if c >= len(row) || row[c] == "" {
				continue
			}
			if _, err := strconv.Atoi(row[c]); err != nil {
				numeric[c] = false
			}
		}
	}
	return numeric
}

// detectTerminalWidth 尝试从 writer 获取终端宽度，失败则返回 0
func detectTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && xterm.IsTerminal(f.Fd()) {
		if cols, _, err := xterm.GetSize(f.Fd()); err == nil && cols > 0 {
			return cols
		}
	}
	// 某些环境会设置 COLUMNS
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// IsTerminal 报告 w 是否连接到终端
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}
