package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// syntax 描述一种结构化文本的行格式
type syntax struct {
	sep     byte   // 键值分隔符
	comment string // 行注释前缀
	tables  bool   // 是否有 [table] 表头
}

var (
	jsonSyntax = syntax{sep: ':'}
	yamlSyntax = syntax{sep: ':', comment: "#"}
	tomlSyntax = syntax{sep: '=', comment: "#", tables: true}
)

// PrintJSON 以缩进并高亮的 JSON 输出 v
func PrintJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeHighlighted(w, string(b)+"\n", jsonSyntax)
}

// PrintYAML 以高亮的 YAML 输出 v
func PrintYAML(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return writeHighlighted(w, buf.String(), yamlSyntax)
}

// PrintTOML 以高亮的 TOML 输出 v
func PrintTOML(w io.Writer, v any) error {
	b, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	return writeHighlighted(w, string(b), tomlSyntax)
}

func writeHighlighted(w io.Writer, src string, syn syntax) error {
	_, err := fmt.Fprint(w, highlight(src, syn))
	return err
}

// highlight 逐行高亮：键、标点、字符串、数字、布尔与 null
func highlight(src string, syn syntax) string {
	var out strings.Builder
	for i, line := range strings.Split(src, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		highlightLine(&out, line, syn)
	}
	return out.String()
}

func highlightLine(out *strings.Builder, line string, syn syntax) {
	body := strings.TrimLeft(line, " \t")
	out.WriteString(line[:len(line)-len(body)])

	switch {
	case body == "":
		return
	case syn.comment != "" && strings.HasPrefix(body, syn.comment):
		out.WriteString(MutedStyle.Render(body))
		return
	case syn.tables && strings.HasPrefix(body, "["):
		out.WriteString(keyStyle.Render(body))
		return
	}

	// yaml 列表项
	if syn.comment != "" && !syn.tables && (body == "-" || strings.HasPrefix(body, "- ")) {
		out.WriteString(punctStyle.Render("-"))
		rest := strings.TrimLeft(body[1:], " ")
		out.WriteString(body[1 : len(body)-len(rest)])
		body = rest
	}

	if idx := indexUnquoted(body, syn.sep); idx > 0 {
		key := strings.TrimRight(body[:idx], " ")
		out.WriteString(keyStyle.Render(key))
		out.WriteString(body[len(key):idx])
		out.WriteString(punctStyle.Render(string(syn.sep)))
		body = body[idx+1:]
	}
	writeValue(out, body)
}

// writeValue 高亮值部分
func writeValue(out *strings.Builder, s string) {
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			out.WriteByte(c)
			i++
		case c == '"' || c == '\'':
			j := quotedEnd(s, i)
			out.WriteString(stringStyle.Render(s[i:j]))
			i = j
		case strings.IndexByte("{}[],", c) >= 0:
			out.WriteString(punctStyle.Render(string(c)))
			i++
		default:
			j := i
			for j < len(s) && strings.IndexByte(" \t{}[],", s[j]) < 0 {
				j++
			}
			out.WriteString(scalarStyle(s[i:j]).Render(s[i:j]))
			i = j
		}
	}
}

func scalarStyle(word string) lipgloss.Style {
	switch word {
	case "true", "false":
		return boolStyle
	case "null", "~":
		return nullStyle
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return numberStyle
	}
	return stringStyle
}

// quotedEnd 返回从 i 开始的引号字符串结束后的位置
// 双引号支持反斜杠转义，单引号以连续两个单引号转义
func quotedEnd(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch {
		case q == '"' && s[j] == '\\':
			j++
		case s[j] == q && q == '\'' && j+1 < len(s) && s[j+1] == '\'':
			j++
		case s[j] == q:
			return j + 1
		}
	}
	return len(s)
}

// indexUnquoted 返回第一个不在引号中的 target 的位置，找不到返回 -1
func indexUnquoted(s string, target byte) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			i = quotedEnd(s, i) - 1
		case target:
			return i
		}
	}
	return -1
}
