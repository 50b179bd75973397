package sloc

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
)

// Input 一个待统计的文件
type Input struct {
	Path    string
	Content []byte
	// Extension 为空时从 Path 推导
	Extension string
}

// Options 控制聚合行为
type Options struct {
	// Strict 为 true 时未识别扩展名的文件被完全排除；
	// 为 false 时按纯空白判断计数（非空行都算 source）
	Strict bool
	// Table 为 nil 时使用 DefaultTable
	Table *Table
	// Policy 为 nil 时使用 DefaultPolicy
	Policy *Policy
	// Workers 仅用于 CountConcurrent，<=0 时取 CPU 核数
	Workers int
}

func (o Options) table() *Table {
	if o.Table != nil {
		return o.Table
	}
	return DefaultTable()
}

func (o Options) classifier() Classifier {
	if o.Policy != nil {
		return Classifier{Policy: *o.Policy}
	}
	return NewClassifier()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return max(runtime.NumCPU(), 1)
}

// RuleFor 解析输入对应的规则
func (o Options) RuleFor(in Input) (*Rule, bool) {
	if in.Extension != "" {
		return o.table().Lookup(in.Extension)
	}
	return o.table().LookupPath(in.Path)
}

// Process 统计单个输入；严格模式下未识别的文件返回 ok=false
func Process(in Input, opts Options) (FileRecord, bool) {
	rule, known := opts.RuleFor(in)
	if !known && opts.Strict {
		return FileRecord{}, false
	}
	return opts.classifier().Accumulate(in.Path, in.Content, rule), true
}

// Aggregator 按到达顺序折叠文件结果
// 非并发安全；并发场景使用 CountConcurrent
type Aggregator struct {
	opts    Options
	files   []FileRecord
	total   TotalRecord
	skipped int
}

// NewAggregator 创建聚合器
func NewAggregator(opts Options) *Aggregator {
	return &Aggregator{opts: opts}
}

// Add 统计并折叠一个输入，返回该文件的结果；被跳过时 ok=false
func (a *Aggregator) Add(in Input) (FileRecord, bool) {
	rec, ok := Process(in, a.opts)
	if !ok {
		a.skipped++
		return FileRecord{}, false
	}
	a.Fold(rec)
	return rec, true
}

// Fold 折叠一个已经统计好的结果
func (a *Aggregator) Fold(rec FileRecord) {
	a.files = append(a.files, rec)
	a.total.Include(rec)
}

// Skip 记录一个被严格模式排除的文件
func (a *Aggregator) Skip() {
	a.skipped++
}

// Files 返回按到达顺序排列的单文件结果
func (a *Aggregator) Files() []FileRecord {
	return append([]FileRecord(nil), a.files...)
}

// Total 返回当前总计
func (a *Aggregator) Total() TotalRecord {
	return a.total
}

// Skipped 返回被严格模式排除的文件数
func (a *Aggregator) Skipped() int {
	return a.skipped
}

// Count 顺序统计所有输入
func Count(inputs []Input, opts Options) ([]FileRecord, TotalRecord) {
	agg := NewAggregator(opts)
	for _, in := range inputs {
		agg.Add(in)
	}
	return agg.Files(), agg.Total()
}

// CountConcurrent 并发统计多个文件，结果按输入顺序折叠，与 Count 的输出一致
//
// ctx 取消后不再分发新的文件，只返回按输入顺序连续完成的前缀部分，并返回 ctx.Err()
func CountConcurrent(ctx context.Context, inputs []Input, opts Options) ([]FileRecord, TotalRecord, error) {
	type result struct {
		idx  int
		rec  FileRecord
		ok   bool
		done bool
	}

	inCh := make(chan int)
	outCh := make(chan result)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range inCh {
			rec, ok := Process(inputs[idx], opts)
			outCh <- result{idx: idx, rec: rec, ok: ok, done: true}
		}
	}

	conc := min(opts.workers(), max(len(inputs), 1))
	wg.Add(conc)
	for range conc {
		go worker()
	}

	go func() {
		defer close(outCh)
	dispatch:
		for idx := range inputs {
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
	}()

	slots := make([]result, len(inputs))
	for r := range outCh {
		slots[r.idx] = r
	}

	agg := NewAggregator(opts)
	for _, r := range slots {
		if !r.done {
			break
		}
		if !r.ok {
			agg.Skip()
			continue
		}
		agg.Fold(r.rec)
	}
	return agg.Files(), agg.Total(), ctx.Err()
}

// ExtensionOf 返回路径的小写扩展名（含点号）
func ExtensionOf(path string) string {
	return normalizeExt(filepath.Ext(path))
}
