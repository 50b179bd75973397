package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// KeyValue 一行标签与取值
type KeyValue struct {
	Key   string
	Value string
	// Style 取值的样式，零值表示不着色
	Style lipgloss.Style
}

// PrintHeading 打印一个区块标题
func PrintHeading(w io.Writer, title string) error {
	_, err := fmt.Fprintln(w, TitleStyle.Render(strings.ToUpper(title)))
	return err
}

// PrintKeyValues 以标签左对齐的方式打印键值对，按显示宽度对齐
func PrintKeyValues(w io.Writer, pairs []KeyValue) error {
	width := 0
	for _, p := range pairs {
		width = max(width, runewidth.StringWidth(p.Key))
	}
	for _, p := range pairs {
		label := MutedStyle.Render(runewidth.FillRight(p.Key, width))
		if _, err := fmt.Fprintf(w, "  %s  %s\n", label, p.Style.Render(p.Value)); err != nil {
			return err
		}
	}
	return nil
}
