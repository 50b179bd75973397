// Package style 提供终端着色、表格与结构化文本的高亮输出
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// 定义一套颜色，方便管理和修改
const (
	// 主题强调色，用于标题背景等
	ColorAccentPrimary = lipgloss.Color("#33A1FF")
	// 强调背景上的文本颜色
	ColorAccentText = lipgloss.Color("#FFFFFF")
	// 普通文本
	ColorText = lipgloss.Color("#E4E4E4")
	// 边框
	ColorBorder = lipgloss.Color("#444444")
	// 次要信息，如标签与注释
	ColorMuted = lipgloss.Color("#6B7280")

	// 行分类颜色
	ColorSource  = lipgloss.Color("#22C55E") // 代码行、文件数
	ColorComment = lipgloss.Color("#06B6D4") // 注释
	ColorEmpty   = lipgloss.Color("#FF5555") // 空行
	// 统计模式颜色
	ColorStrict   = lipgloss.Color("#FF5555")
	ColorTolerant = lipgloss.Color("#EAB308")

	// 结构化文本高亮
	ColorKey    = lipgloss.Color("#55BCF4")
	ColorString = ColorAccentText
	ColorNumber = lipgloss.Color("#D4EC19")
	ColorBool   = lipgloss.Color("#DFAB49")
	ColorNull   = lipgloss.Color("#6272A4")
	ColorPunct  = ColorMuted
)

// 常用样式，渲染时遵循全局颜色开关
var (
	SourceStyle   = lipgloss.NewStyle().Foreground(ColorSource)
	CommentStyle  = lipgloss.NewStyle().Foreground(ColorComment)
	EmptyStyle    = lipgloss.NewStyle().Foreground(ColorEmpty)
	StrictStyle   = lipgloss.NewStyle().Foreground(ColorStrict)
	TolerantStyle = lipgloss.NewStyle().Foreground(ColorTolerant)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	TitleStyle    = lipgloss.NewStyle().Foreground(ColorAccentText).Background(ColorAccentPrimary).Bold(true).Padding(0, 1)

	keyStyle    = lipgloss.NewStyle().Foreground(ColorKey).Bold(true)
	stringStyle = lipgloss.NewStyle().Foreground(ColorString)
	numberStyle = lipgloss.NewStyle().Foreground(ColorNumber)
	boolStyle   = lipgloss.NewStyle().Foreground(ColorBool)
	nullStyle   = lipgloss.NewStyle().Foreground(ColorNull)
	punctStyle  = lipgloss.NewStyle().Foreground(ColorPunct)
)

// SetColorEnabled 打开或关闭颜色输出；关闭后所有样式退化为纯文本
func SetColorEnabled(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorEnabled 报告当前是否会输出颜色
func ColorEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}
