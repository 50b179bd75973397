package sloc

// Category 是一行的分类结果，每行恰好属于一种
type Category int

const (
	// Empty 仅包含空白字符的行
	Empty Category = iota
	// Source 只包含代码的行
	Source
	// SingleLineComment 只包含行注释的行
	SingleLineComment
	// BlockComment 属于块注释（开始、延续或结束）且没有代码的行
	BlockComment
	// Mixed 同时包含代码与注释的行
	Mixed
)

var categoryNames = [...]string{
	Empty:             "empty",
	Source:            "source",
	SingleLineComment: "single",
	BlockComment:      "block",
	Mixed:             "mixed",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// IsComment 报告该分类是否计入 comment 总数
func (c Category) IsComment() bool {
	return c == SingleLineComment || c == BlockComment || c == Mixed
}

// Counts 是一组行计数
//
// 约束: Comment == Single + Block + Mixed, Total == Source + Comment + Empty
type Counts struct {
	Total   int `json:"total" yaml:"total" toml:"total"`
	Source  int `json:"source" yaml:"source" toml:"source"`
	Comment int `json:"comment" yaml:"comment" toml:"comment"`
	Single  int `json:"single" yaml:"single" toml:"single"`
	Block   int `json:"block" yaml:"block" toml:"block"`
	Mixed   int `json:"mixed" yaml:"mixed" toml:"mixed"`
	Empty   int `json:"empty" yaml:"empty" toml:"empty"`
}

// Record 把一行的分类计入计数
func (c *Counts) Record(cat Category) {
	c.Total++
	switch cat {
	case Source:
		c.Source++
	case SingleLineComment:
		c.Single++
		c.Comment++
	case BlockComment:
		c.Block++
		c.Comment++
	case Mixed:
		c.Mixed++
		c.Comment++
	default:
		c.Empty++
	}
}

// Add 逐字段累加
func (c *Counts) Add(other Counts) {
	c.Total += other.Total
	c.Source += other.Source
	c.Comment += other.Comment
	c.Single += other.Single
	c.Block += other.Block
	c.Mixed += other.Mixed
	c.Empty += other.Empty
}

// Valid 检查计数之间的恒等关系
func (c Counts) Valid() bool {
	for _, v := range []int{c.Total, c.Source, c.Comment, c.Single, c.Block, c.Mixed, c.Empty} {
		if v < 0 {
			return false
		}
	}
	return c.Comment == c.Single+c.Block+c.Mixed && c.Total == c.Source+c.Comment+c.Empty
}

// FileRecord 单文件统计结果，在文件所有行处理完后不再变化
type FileRecord struct {
	Path string `json:"path" yaml:"path" toml:"path"`
	// Language 为匹配到的规则名，未识别文件为空
	Language string `json:"-" yaml:"-" toml:"-"`
	Counts   `yaml:",inline"`
}

// TotalRecord 所有被计入文件的逐字段总和
type TotalRecord struct {
	Counts `yaml:",inline"`
	File   int `json:"file" yaml:"file" toml:"file"`
}

// Include 把一个文件结果并入总计
func (t *TotalRecord) Include(rec FileRecord) {
	t.Counts.Add(rec.Counts)
	t.File++
}
