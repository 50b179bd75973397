package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeNode 树形输出的一个节点
type TreeNode struct {
	Text     string
	Children []TreeNode
}

// PrintTree 以圆角连接符渲染树
func PrintTree(w io.Writer, root TreeNode) error {
	t := buildTree(root).
		Enumerator(tree.RoundedEnumerator).
		RootStyle(lipgloss.NewStyle().Bold(true)).
		ItemStyle(lipgloss.NewStyle().Foreground(ColorText)).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorBorder))
	_, err := fmt.Fprintln(w, t)
	return err
}

func buildTree(node TreeNode) *tree.Tree {
	t := tree.New().Root(node.Text)
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			t.Child(child.Text)
			continue
		}
		t.Child(buildTree(child))
	}
	return t
}

// PrintList 以圆点列表渲染 items
func PrintList(w io.Writer, items ...string) error {
	l := list.New().
		Enumerator(list.Bullet).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccentPrimary).MarginRight(1)).
		ItemStyle(lipgloss.NewStyle().Foreground(ColorText))
	for _, it := range items {
		l.Item(it)
	}
	_, err := fmt.Fprintln(w, l)
	return err
}
