package sloc

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Table 是扩展名到注释规则的映射表
// 查找对扩展名大小写不敏感；并发读安全
type Table struct {
	mu         sync.RWMutex
	rules      []*Rule
	byExt      map[string]*Rule
	byFilename map[string]*Rule
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable 返回包含全部内置规则的共享表
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = NewTable(builtinRules...)
	})
	return defaultTable
}

// NewTable 使用给定规则创建一张新表，后注册的规则覆盖同名扩展名
func NewTable(rules ...Rule) *Table {
	t := &Table{
		byExt:      make(map[string]*Rule),
		byFilename: make(map[string]*Rule),
	}
	for _, r := range rules {
		t.Register(r)
	}
	return t
}

// Clone 复制一张表，便于在共享默认表的基础上追加用户规则
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c := &Table{
		rules:      append([]*Rule(nil), t.rules...),
		byExt:      make(map[string]*Rule, len(t.byExt)),
		byFilename: make(map[string]*Rule, len(t.byFilename)),
	}
	for k, v := range t.byExt {
		c.byExt[k] = v
	}
	for k, v := range t.byFilename {
		c.byFilename[k] = v
	}
	return c
}

// Register 注册一条规则；规则在注册后不再修改
func (t *Table) Register(rule Rule) {
	r := rule
	r.Extensions = make([]string, 0, len(rule.Extensions))
	for _, ext := range rule.Extensions {
		if n := normalizeExt(ext); n != "" {
			r.Extensions = append(r.Extensions, n)
		}
	}
	r.Filenames = append([]string(nil), rule.Filenames...)
	r.LineComments = nonEmpty(rule.LineComments)
	r.BlockComments = make([]Pair, 0, len(rule.BlockComments))
	for _, p := range rule.BlockComments {
		if p.Open != "" && p.Close != "" {
			r.BlockComments = append(r.BlockComments, p)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rules = append(t.rules, &r)
	for _, ext := range r.Extensions {
		t.byExt[ext] = &r
	}
	for _, name := range r.Filenames {
		t.byFilename[strings.ToLower(name)] = &r
	}
}

// Lookup 按扩展名查找规则，接受 "go"、".go"、".GO" 等写法
func (t *Table) Lookup(ext string) (*Rule, bool) {
	n := normalizeExt(ext)
	if n == "" {
		return nil, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.byExt[n]
	return r, ok
}

// LookupPath 先按文件名（Makefile、Dockerfile 等）匹配，再按扩展名匹配
func (t *Table) LookupPath(path string) (*Rule, bool) {
	base := strings.ToLower(filepath.Base(path))
	t.mu.RLock()
	r, ok := t.byFilename[base]
	t.mu.RUnlock()
	if ok {
		return r, true
	}
	return t.Lookup(filepath.Ext(path))
}

// Rules 返回按名称排序的规则快照
func (t *Table) Rules() []Rule {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[*Rule]bool, len(t.rules))
	out := make([]Rule, 0, len(t.rules))
	for _, r := range t.rules {
		// 被覆盖的旧规则不再出现在任何索引中时跳过
		if seen[r] || !t.indexed(r) {
			continue
		}
		seen[r] = true
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *Table) indexed(r *Rule) bool {
	for _, ext := range r.Extensions {
		if t.byExt[ext] == r {
			return true
		}
	}
	for _, name := range r.Filenames {
		if t.byFilename[strings.ToLower(name)] == r {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
