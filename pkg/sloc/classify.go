package sloc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Policy 集中定义两个没有统一答案的边界行为
type Policy struct {
	// BlankLinesInBlockAreEmpty 为 true 时，处于未闭合块注释中的空白行计为 Empty，
	// 否则计为 BlockComment
	BlankLinesInBlockAreEmpty bool `mapstructure:"blank_in_block_empty" json:"blank_in_block_empty" yaml:"blank_in_block_empty" toml:"blank_in_block_empty"`
	// CombinedCommentsAreMixed 为 true 时，同一行既有块注释又有行注释但没有代码（如 "/* x */ // y"）
	// 计为 Mixed，否则计为 BlockComment
	CombinedCommentsAreMixed bool `mapstructure:"combined_comments_mixed" json:"combined_comments_mixed" yaml:"combined_comments_mixed" toml:"combined_comments_mixed"`
}

// DefaultPolicy 默认策略：块注释中的空行算 Empty，块注释与行注释同行算 Mixed
var DefaultPolicy = Policy{
	BlankLinesInBlockAreEmpty: true,
	CombinedCommentsAreMixed:  true,
}

// ScanState 是跨行携带的最小状态
// 零值表示不在块注释中
type ScanState struct {
	InBlockComment bool `json:"in_block_comment"`
	// Pair 为当前块注释在 Rule.BlockComments 中的下标，仅当 InBlockComment 时有效
	Pair int `json:"pair"`
}

// Classifier 按给定策略分类行
// 零值的两个策略开关都为 false，一般使用 NewClassifier
type Classifier struct {
	Policy Policy
}

// NewClassifier 创建使用 DefaultPolicy 的分类器
func NewClassifier() Classifier {
	return Classifier{Policy: DefaultPolicy}
}

// ClassifyLine 使用 DefaultPolicy 对一行分类，返回分类与下一行的起始状态
// 纯函数：相同输入总是得到相同输出
func ClassifyLine(line string, rule *Rule, state ScanState) (Category, ScanState) {
	return NewClassifier().ClassifyLine(line, rule, state)
}

// segments 记录一行中出现过的内容种类
type segments struct {
	code   bool
	single bool
	block  bool
}

type tokenKind int

const (
	noToken tokenKind = iota
	lineToken
	blockToken
)

// ClassifyLine 从左到右扫描一行，rule 为 nil 时只做空白判断
func (c Classifier) ClassifyLine(line string, rule *Rule, state ScanState) (Category, ScanState) {
	if isBlank(line) {
		if state.InBlockComment && rule != nil && !c.Policy.BlankLinesInBlockAreEmpty {
			return BlockComment, state
		}
		return Empty, state
	}
	if rule == nil {
		return Source, ScanState{}
	}

	var seg segments
	i := 0

	if state.InBlockComment {
		if state.Pair < 0 || state.Pair >= len(rule.BlockComments) {
			state = ScanState{}
		} else {
			// 块注释内部不识别字符串
			closeTok := rule.BlockComments[state.Pair].Close
			end := strings.Index(line, closeTok)
			seg.block = true
			if end < 0 {
				return BlockComment, state
			}
			i = end + len(closeTok)
			state = ScanState{}
		}
	}

	var (
		quote   byte
		escapes bool
	)
	for i < len(line) {
		ch := line[i]

		if quote != 0 {
			switch {
			case ch == '\\' && escapes:
				i += 2
			case ch == quote:
				quote = 0
				i++
			default:
				i++
			}
			continue
		}

		if n := spaceAt(line, i); n > 0 {
			i += n
			continue
		}

		kind, pair, width := matchToken(line, i, rule)
		switch kind {
		case lineToken:
			seg.single = true
			i = len(line)
		case blockToken:
			seg.block = true
			p := rule.BlockComments[pair]
			body := i + width
			end := strings.Index(line[body:], p.Close)
			if end < 0 {
				state = ScanState{InBlockComment: true, Pair: pair}
				i = len(line)
				continue
			}
			i = body + end + len(p.Close)
		default:
			seg.code = true
			if ch == '\'' && rule.CharLiterals {
				if n := charLiteralLen(line[i:]); n > 0 {
					i += n
					continue
				}
			}
			if rule.isDelimiter(ch) {
				quote, escapes = ch, rule.escapes(ch)
			}
			i++
		}
	}

	return c.resolve(seg), state
}

// resolve 按优先级合并一行内的片段: code+comment > comment > code > empty
func (c Classifier) resolve(seg segments) Category {
	switch {
	case seg.code && (seg.single || seg.block):
		return Mixed
	case seg.single && seg.block:
		if c.Policy.CombinedCommentsAreMixed {
			return Mixed
		}
		return BlockComment
	case seg.block:
		return BlockComment
	case seg.single:
		return SingleLineComment
	case seg.code:
		return Source
	default:
		return Empty
	}
}

// matchToken 返回位置 i 处最长的注释起始标记
// 长度相同时块注释优先，例如 Lua 的 "--[[" 胜过 "--"
func matchToken(line string, i int, rule *Rule) (tokenKind, int, int) {
	rest := line[i:]
	kind, pair, width := noToken, 0, 0
	for _, tok := range rule.LineComments {
		if tok != "" && len(tok) > width && strings.HasPrefix(rest, tok) {
			kind, width = lineToken, len(tok)
		}
	}
	for idx, p := range rule.BlockComments {
		if p.Open != "" && p.Close != "" && len(p.Open) >= width && strings.HasPrefix(rest, p.Open) {
			kind, pair, width = blockToken, idx, len(p.Open)
		}
	}
	return kind, pair, width
}

// charLiteralLen 返回 s 开头字符字面量（'x' 或 '\n'、'\u{1F600}'）的字节长度，不是字面量返回 0
func charLiteralLen(s string) int {
	if len(s) < 3 {
		return 0
	}
	if s[1] == '\\' {
		// 转义序列最长为 \u{10FFFF}
		if end := strings.IndexByte(s[3:min(len(s), 13)], '\''); end >= 0 {
			return end + 4
		}
		return 0
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	if 1+size < len(s) && s[1+size] == '\'' {
		return size + 2
	}
	return 0
}

// spaceAt 返回位置 i 处空白字符的字节宽度，不是空白返回 0
// 非法 UTF-8 字节不算空白
func spaceAt(s string, i int) int {
	ch := s[i]
	if ch < utf8.RuneSelf {
		switch ch {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return 1
		}
		return 0
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError || !unicode.IsSpace(r) {
		return 0
	}
	return size
}

func isBlank(s string) bool {
	for i := 0; i < len(s); {
		n := spaceAt(s, i)
		if n == 0 {
			return false
		}
		i += n
	}
	return true
}
