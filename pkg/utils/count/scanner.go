package count

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yeisme/gosloc/pkg/sloc"
)

// binarySniffLen 判断二进制时检查的前缀长度
const binarySniffLen = 512

// Scanner 遍历路径并统计其中的文件
type Scanner struct {
	opts Options
	log  zerolog.Logger
}

// NewScanner 创建扫描器
func NewScanner(opts Options) *Scanner {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Scanner{opts: opts, log: logger}
}

// Scan 统计 roots 中的所有文件，roots 可以是文件或目录
//
// 单个路径的读取失败记录在 Result.Errors 中；只有 ctx 取消或过滤模式非法时返回错误
// 结果按路径排序后折叠，与并发度无关
func (s *Scanner) Scan(ctx context.Context, roots []string) (*Result, error) {
	res := &Result{Strict: s.opts.Strict}

	// 步骤1: 收集文件路径
	paths, err := s.collect(ctx, roots, res)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("files", len(paths)).Strs("roots", roots).Msg("files collected")

	// 步骤2: 并发读取与统计
	outcomes, err := s.process(ctx, paths)
	if err != nil {
		return nil, err
	}

	// 步骤3: 按路径顺序折叠
	agg := sloc.NewAggregator(s.opts.slocOptions())
	for i, o := range outcomes {
		switch {
		case o.err != nil:
			s.log.Warn().Err(o.err).Str("path", paths[i]).Msg("read failed")
			res.Errors = append(res.Errors, &ScanError{Path: paths[i], Err: o.err})
		case o.binary:
			s.log.Debug().Str("path", paths[i]).Msg("binary file skipped")
			res.Binary++
		case !o.ok:
			s.log.Debug().Str("path", paths[i]).Msg("unrecognized file skipped")
			agg.Skip()
		default:
			agg.Fold(o.rec)
		}
	}
	res.Files = agg.Files()
	res.Total = agg.Total()
	res.Skipped = agg.Skipped()
	return res, nil
}

// collect 展开 roots，返回去重排序后的文件路径（使用 `/` 分隔）
func (s *Scanner) collect(ctx context.Context, roots []string, res *Result) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0, 256)
	add := func(p string) {
		p = filepath.ToSlash(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := os.Stat(root)
		if err != nil {
			res.Errors = append(res.Errors, &ScanError{Path: filepath.ToSlash(root), Err: err})
			continue
		}
		// 显式给出的文件不经过过滤
		if !st.IsDir() {
			add(root)
			continue
		}

		filter, err := NewFilter(root, s.opts.Include, s.opts.Exclude, s.opts.RespectGitignore)
		if err != nil {
			return nil, err
		}
		if err := s.walk(ctx, root, filter, add, res); err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}

// walk 使用 filepath.WalkDir 遍历单个目录
func (s *Scanner) walk(ctx context.Context, root string, filter *Filter, add func(string), res *Result) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// 无法进入的目录或无法读取的条目不影响其余部分
			res.Errors = append(res.Errors, &ScanError{Path: filepath.ToSlash(path), Err: walkErr})
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel := toRelSlash(root, path)
		if d.IsDir() {
			if filter.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !filter.IncludeFile(rel) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !s.opts.FollowSymlinks {
				return nil
			}
			st, err := os.Stat(path)
			if err != nil || st.IsDir() {
				// 断开的链接与指向目录的链接都不统计
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if overSize(path, s.opts.MaxFileSizeBytes) {
			s.log.Debug().Str("path", rel).Msg("file over size limit skipped")
			return nil
		}
		add(path)
		return nil
	})
}

type outcome struct {
	rec    sloc.FileRecord
	ok     bool
	binary bool
	err    error
}

// process 使用 worker pool 读取并统计文件，结果按 paths 的下标返回
func (s *Scanner) process(ctx context.Context, paths []string) ([]outcome, error) {
	out := make([]outcome, len(paths))
	if len(paths) == 0 {
		return out, ctx.Err()
	}

	conc := min(prepareConcurrency(s.opts.Concurrency), len(paths))
	opts := s.opts.slocOptions()
	inCh := make(chan int)
	var wg sync.WaitGroup

	wg.Add(conc)
	for range conc {
		go func() {
			defer wg.Done()
			for idx := range inCh {
				out[idx] = s.processFile(paths[idx], opts)
			}
		}()
	}

dispatch:
	for idx := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case inCh <- idx:
		}
	}
	close(inCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// processFile 读取并统计单个文件
func (s *Scanner) processFile(path string, opts sloc.Options) outcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return outcome{err: err}
	}
	if s.opts.SkipBinary && isBinary(content) {
		return outcome{binary: true}
	}
	rec, ok := sloc.Process(sloc.Input{Path: path, Content: content}, opts)
	return outcome{rec: rec, ok: ok}
}

// isBinary 前 512 字节中出现 NUL 即视为二进制
func isBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), binarySniffLen)], 0) >= 0
}

// toRelSlash 将 path 转换为相对 root、使用 `/` 分隔的路径
func toRelSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// overSize 检查文件大小是否超过 limit，limit <= 0 表示不限制
func overSize(path string, limit int64) bool {
	if limit <= 0 {
		return false
	}
	if st, err := os.Stat(path); err == nil {
		return st.Size() > limit
	}
	// 获取状态失败时交给读取阶段报告错误
	return false
}

// prepareConcurrency 确定 worker 数量，未指定时使用 CPU 核数
func prepareConcurrency(c int) int {
	if c > 0 {
		return c
	}
	return max(runtime.NumCPU(), 1)
}
