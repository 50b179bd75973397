package style

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 渲染 Markdown 文本并写入 w
//
// width<=0 时使用终端宽度，结果限制在 [80, 120]；颜色关闭时使用 notty 主题输出纯文本
func RenderMarkdown(w io.Writer, input string, width int, theme string) error {
	if theme == "" {
		theme = "dracula"
	}
	if !ColorEnabled() || !IsTerminal(w) {
		theme = "notty"
	}
	if width <= 0 {
		width = detectTerminalWidth(w)
	}
	width = min(max(width, 80), 120)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(input)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
