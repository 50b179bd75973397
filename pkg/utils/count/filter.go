package count

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// vcsDirs 任意层级都会被跳过的版本控制目录
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// Filter 判断某个相对路径（使用 `/` 分隔）是否参与统计
//
// 优先级与 include/exclude 的约定:
//  1. 版本控制目录与 .gitignore 命中的路径总是被排除
//  2. Include 非空时只有命中 Include 的文件被统计
//  3. Include 为空时命中 Exclude 的文件与目录被排除
type Filter struct {
	include []string
	exclude []string
	gi      gitignore.GitIgnore
}

// NewFilter 创建过滤器；respectGitignore 为 true 时加载 root 下的 .gitignore
func NewFilter(root string, include, exclude []string, respectGitignore bool) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = normalizePatterns(include); err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	if f.exclude, err = normalizePatterns(exclude); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	if respectGitignore {
		f.gi = loadGitIgnore(root)
	}
	return f, nil
}

// SkipDir 报告是否应跳过整个目录
func (f *Filter) SkipDir(rel string) bool {
	if _, ok := vcsDirs[path.Base(rel)]; ok {
		return true
	}
	if f.ignored(rel, true) {
		return true
	}
	// 有 Include 时不按 Exclude 剪枝，避免排除掉被 Include 命中的子文件
	if len(f.include) == 0 && matchAny(rel, f.exclude, true) {
		return true
	}
	return false
}

// IncludeFile 报告文件是否参与统计
func (f *Filter) IncludeFile(rel string) bool {
	if f.ignored(rel, false) {
		return false
	}
	if len(f.include) > 0 {
		return matchAny(rel, f.include, false)
	}
	return !matchAny(rel, f.exclude, false)
}

func (f *Filter) ignored(rel string, isDir bool) bool {
	if f == nil || f.gi == nil {
		return false
	}
	match := f.gi.Relative(rel, isDir)
	return match != nil && match.Ignore()
}

// normalizePatterns 统一分隔符，去掉前导 `./`，并校验 doublestar 语法
func normalizePatterns(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		p = strings.TrimPrefix(p, "./")
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
		out = append(out, p)
	}
	return out, nil
}

// matchAny 检查 rel 是否命中任意模式
//
// 不含 `/` 的模式同时匹配文件名；`dir/`、`dir/**` 形式的模式匹配目录本身及其所有子项
func matchAny(rel string, patterns []string, isDir bool) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(strings.TrimSuffix(p, "/"), "/") {
			if ok, _ := doublestar.Match(strings.TrimSuffix(p, "/"), path.Base(rel)); ok && (isDir || !strings.HasSuffix(p, "/")) {
				return true
			}
		}
		if prefix, ok := dirPrefix(p); ok {
			if m, _ := doublestar.Match(prefix, rel); m && isDir {
				return true
			}
			if underDir(rel, prefix) {
				return true
			}
		}
	}
	return false
}

// dirPrefix 返回 `dir/` 或 `dir/**` 模式的目录部分
func dirPrefix(p string) (string, bool) {
	if before, ok := strings.CutSuffix(p, "/**"); ok && before != "" {
		return before, true
	}
	if before, ok := strings.CutSuffix(p, "/"); ok && before != "" {
		return before, true
	}
	return "", false
}

// underDir 报告 rel 的某个祖先目录是否命中 prefix
func underDir(rel, prefix string) bool {
	dir := path.Dir(rel)
	for dir != "." && dir != "/" {
		if ok, _ := doublestar.Match(prefix, dir); ok {
			return true
		}
		if !strings.Contains(prefix, "/") {
			if ok, _ := doublestar.Match(prefix, path.Base(dir)); ok {
				return true
			}
		}
		dir = path.Dir(dir)
	}
	return false
}

// loadGitIgnore 读取 root 下的 .gitignore；文件不存在或无法读取时返回 nil
func loadGitIgnore(root string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()
	return gitignore.New(f, root, nil)
}
