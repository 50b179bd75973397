package sloc

import "iter"

// Accumulator 逐行折叠一个文件，携带跨行的 ScanState
// 非并发安全，每个文件使用独立的实例
type Accumulator struct {
	classifier Classifier
	rule       *Rule
	state      ScanState
	record     FileRecord
}

// NewAccumulator 创建使用 DefaultPolicy 的累加器，rule 为 nil 表示未识别的文件
func NewAccumulator(path string, rule *Rule) *Accumulator {
	return NewClassifier().NewAccumulator(path, rule)
}

// NewAccumulator 创建使用当前策略的累加器
func (c Classifier) NewAccumulator(path string, rule *Rule) *Accumulator {
	a := &Accumulator{
		classifier: c,
		rule:       rule,
		record:     FileRecord{Path: path},
	}
	if rule != nil {
		a.record.Language = rule.Name
	}
	return a
}

// Feed 分类一行（不含换行符）并计数
func (a *Accumulator) Feed(line string) Category {
	cat, next := a.classifier.ClassifyLine(line, a.rule, a.state)
	a.state = next
	a.record.Record(cat)
	return cat
}

// State 返回下一行的起始状态
func (a *Accumulator) State() ScanState {
	return a.state
}

// Record 返回当前结果
// 文件末尾仍未闭合的块注释不视为错误，状态直接丢弃
func (a *Accumulator) Record() FileRecord {
	return a.record
}

// Accumulate 使用 DefaultPolicy 统计一个文件的全部内容
func Accumulate(path string, content []byte, rule *Rule) FileRecord {
	return NewClassifier().Accumulate(path, content, rule)
}

// Accumulate 统计一个文件的全部内容
func (c Classifier) Accumulate(path string, content []byte, rule *Rule) FileRecord {
	a := c.NewAccumulator(path, rule)
	for line := range Lines(content) {
		a.Feed(line)
	}
	return a.Record()
}

// Lines 按物理行切分内容，支持 "\n"、"\r\n" 与单独的 "\r"
// 结尾没有换行符的最后一行同样产出；换行符之后的空尾部不算一行
func Lines(content []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for i := 0; i < len(content); i++ {
			switch content[i] {
			case '\n':
				if !yield(string(content[start:i])) {
					return
				}
				start = i + 1
			case '\r':
				if !yield(string(content[start:i])) {
					return
				}
				if i+1 < len(content) && content[i+1] == '\n' {
					i++
				}
				start = i + 1
			}
		}
		if start < len(content) {
			yield(string(content[start:]))
		}
	}
}
