// Package languages 提供语言规则的查找、模糊搜索与展示
package languages

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/yeisme/gosloc/pkg/sloc"
	"github.com/yeisme/gosloc/pkg/style"
)

// ErrNoMatch 没有规则匹配查询
var ErrNoMatch = errors.New("no language matches")

// Resolve 查找规则：先按名称、扩展名或文件名精确匹配，否则进行模糊搜索
//
// 精确匹配或模糊结果只有一个时返回该规则，否则返回全部候选
func Resolve(table *sloc.Table, query string) (*sloc.Rule, []sloc.Rule) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, table.Rules()
	}
	for _, r := range table.Rules() {
		if strings.EqualFold(r.Name, q) {
			return &r, nil
		}
	}
	if r, ok := table.LookupPath(q); ok {
		return r, nil
	}
	if r, ok := table.Lookup(q); ok {
		return r, nil
	}
	matches := FindFuzzy(table, q)
	if len(matches) == 1 {
		return &matches[0], nil
	}
	return nil, matches
}

// FindFuzzy 在规则名、扩展名与文件名中模糊搜索，按名称排序
func FindFuzzy(table *sloc.Table, query string) []sloc.Rule {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []sloc.Rule
	for _, r := range table.Rules() {
		if fuzzy.MatchFold(q, r.Name) || strings.Contains(searchText(r), q) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func searchText(r sloc.Rule) string {
	parts := append([]string{r.Name}, r.Extensions...)
	parts = append(parts, r.Filenames...)
	return strings.ToLower(strings.Join(parts, " "))
}

// InteractiveSelect 使用 fuzzyfinder 在候选中交互选择一项
func InteractiveSelect(rules []sloc.Rule) (*sloc.Rule, error) {
	if len(rules) == 0 {
		return nil, ErrNoMatch
	}
	idx, err := fuzzyfinder.Find(rules,
		func(i int) string {
			return fmt.Sprintf("%s  %s", rules[i].Name, strings.Join(rules[i].Extensions, " "))
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			return describe(rules[i])
		}),
	)
	if err != nil {
		return nil, err
	}
	sel := rules[idx]
	return &sel, nil
}

func describe(r sloc.Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.Name)
	fmt.Fprintf(&b, "extensions:     %s\n", joinOrDash(r.Extensions))
	if len(r.Filenames) > 0 {
		fmt.Fprintf(&b, "filenames:      %s\n", strings.Join(r.Filenames, " "))
	}
	fmt.Fprintf(&b, "line comments:  %s\n", joinOrDash(r.LineComments))
	fmt.Fprintf(&b, "block comments: %s\n", joinOrDash(pairs(r.BlockComments)))
	fmt.Fprintf(&b, "strings:        %s\n", orDash(r.StringDelimiters))
	switch {
	case r.NoEscape:
		b.WriteString("escapes:        none\n")
	case r.RawDelimiters != "":
		fmt.Fprintf(&b, "raw strings:    %s\n", r.RawDelimiters)
	}
	if r.CharLiterals {
		b.WriteString("char literals:  'x'\n")
	}
	return b.String()
}

// Tree 把规则转换为树形展示
func Tree(r sloc.Rule) style.TreeNode {
	leaves := func(title string, items []string) style.TreeNode {
		node := style.TreeNode{Text: title}
		for _, it := range items {
			node.Children = append(node.Children, style.TreeNode{Text: it})
		}
		if len(items) == 0 {
			node.Children = []style.TreeNode{{Text: "-"}}
		}
		return node
	}
	root := style.TreeNode{Text: r.Name}
	root.Children = append(root.Children, leaves("extensions", r.Extensions))
	if len(r.Filenames) > 0 {
		root.Children = append(root.Children, leaves("filenames", r.Filenames))
	}
	root.Children = append(root.Children,
		leaves("line comments", r.LineComments),
		leaves("block comments", pairs(r.BlockComments)),
		leaves("strings", strings.Split(r.StringDelimiters, "")),
	)
	return root
}

// Table 把规则列表转换为表格
func Table(rules []sloc.Rule) style.Table {
	t := style.Table{Headers: []string{"language", "extensions", "line", "block", "strings"}}
	for _, r := range rules {
		exts := append(append([]string(nil), r.Extensions...), r.Filenames...)
		t.Rows = append(t.Rows, []string{
			r.Name,
			joinOrDash(exts),
			joinOrDash(r.LineComments),
			joinOrDash(pairs(r.BlockComments)),
			orDash(r.StringDelimiters),
		})
	}
	return t
}

func pairs(ps []sloc.Pair) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Open+" "+p.Close)
	}
	return out
}

func joinOrDash(items []string) string {
	return orDash(strings.Join(items, " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
