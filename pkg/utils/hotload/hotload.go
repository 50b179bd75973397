// Package hotload 监听目录中的文件变更，并在防抖后触发回调
package hotload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/yeisme/gosloc/pkg/configs"
	"github.com/yeisme/gosloc/pkg/utils/count"
)

const defaultDebounce = 300 * time.Millisecond

// Func 防抖后的回调，changed 为本轮发生变化的文件（已排序）
type Func func(ctx context.Context, changed []string)

// Options 监听选项
type Options struct {
	Root   string
	Config configs.WatchConfig
	Logger *zerolog.Logger // nil 表示不输出日志
}

// Watcher 负责把 fsnotify 事件过滤、去重并合并成批次
type Watcher struct {
	root     string
	cfg      configs.WatchConfig
	log      zerolog.Logger
	filter   *count.Filter
	fsw      *fsnotify.Watcher
	cache    stateCache
	pending  map[string]struct{}
	truncate map[string]fileState
}

// New 创建 Watcher：建立初始状态缓存并注册需要监听的目录
func New(opts Options) (*Watcher, error) {
	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		root = wd
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	filter, err := count.NewFilter(root, nil, opts.Config.IgnorePatterns, opts.Config.GitIgnore)
	if err != nil {
		return nil, fmt.Errorf("watch ignore patterns: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		cfg:      opts.Config,
		log:      logger,
		filter:   filter,
		fsw:      fsw,
		cache:    make(stateCache),
		pending:  make(map[string]struct{}),
		truncate: make(map[string]fileState),
	}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.log.Debug().Str("root", root).Int("files", len(w.cache)).Strs("dirs", fsw.WatchList()).Msg("watcher ready")
	return w, nil
}

// Watch 创建 Watcher 并运行到 ctx 结束
func Watch(ctx context.Context, opts Options, hook Func) error {
	w, err := New(opts)
	if err != nil {
		return err
	}
	return w.Run(ctx, hook)
}

// Run 处理事件直到 ctx 结束；回调在事件循环中串行执行
func (w *Watcher) Run(ctx context.Context, hook Func) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.log.Error().Err(err).Msg("close watcher")
		}
	}()

	debounce := time.Duration(w.cfg.Debounce) * time.Millisecond
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")
		case <-timerC:
			timerC = nil
			if changed := w.flush(); len(changed) > 0 {
				w.log.Info().Int("files", len(changed)).Msg("change detected")
				hook(ctx, changed)
			}
		}
	}
}

// handle 过滤单个事件，需要安排一次 flush 时返回 true
func (w *Watcher) handle(ev fsnotify.Event) bool {
	rel := w.rel(ev.Name)
	w.log.Trace().Str("op", ev.Op.String()).Str("path", rel).Msg("event")

	switch {
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		info, err := os.Stat(ev.Name)
		if err != nil {
			return w.forget(ev.Name)
		}
		if info.IsDir() {
			if ev.Has(fsnotify.Create) && w.cfg.Recursive && !w.filter.SkipDir(rel) {
				if err := w.addTree(ev.Name); err != nil {
					w.log.Warn().Err(err).Str("path", rel).Msg("add directory")
				}
			}
			return false
		}
		if !w.filter.IncludeFile(rel) {
			return false
		}
		return w.update(ev.Name, info)
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return w.forget(ev.Name)
	}
	return false
}

// update 比较文件的新旧状态
func (w *Watcher) update(path string, info fs.FileInfo) bool {
	next := newFileState(path, info)
	prev, tracked := w.cache[path]
	w.cache[path] = next

	// 编辑器保存时常先截断为 0 字节再写入内容，此时与截断前的状态比较
	// 截断本身不加入 pending，但仍需安排一次 flush：防抖结束时文件仍为空则按变更处理
	if next.size == 0 && tracked && prev.size > 0 {
		w.truncate[path] = prev
		return true
	}
	if before, ok := w.truncate[path]; ok {
		delete(w.truncate, path)
		prev, tracked = before, true
	}
	if tracked && next.sameContent(prev) {
		return false
	}
	w.pending[path] = struct{}{}
	return true
}

// forget 处理删除；只有之前被跟踪的文件才算变更
func (w *Watcher) forget(path string) bool {
	if _, ok := w.cache[path]; !ok {
		return false
	}
	delete(w.cache, path)
	delete(w.truncate, path)
	w.pending[path] = struct{}{}
	return true
}

// flush 取出并清空待处理的路径；截断后没有再写入的文件同样算作变更
func (w *Watcher) flush() []string {
	for p := range w.truncate {
		w.pending[p] = struct{}{}
	}
	clear(w.truncate)
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	clear(w.pending)
	slices.Sort(changed)
	return changed
}

// addTree 注册 dir 及其（递归模式下）未被忽略的子目录，并记录文件初始状态
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("walk %s: %w", dir, err)
			}
			return nil
		}
		rel := w.rel(path)
		if d.IsDir() {
			if path != w.root && (w.filter.SkipDir(rel) || (!w.cfg.Recursive && path != dir)) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				w.log.Warn().Err(err).Str("path", rel).Msg("add directory")
			}
			return nil
		}
		if !d.Type().IsRegular() || !w.filter.IncludeFile(rel) {
			return nil
		}
		if info, err := d.Info(); err == nil {
			w.cache[path] = newFileState(path, info)
		}
		return nil
	})
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
