package sloc

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func sampleInputs() []Input {
	return []Input{
		{Path: "/a/b/foo.js", Content: []byte("var a = 10;")},
		{Path: "/a/b/moo.bak", Content: []byte("var a = 10, b= 20;")},
	}
}

func Test_Count_Strict(t *testing.T) {
	files, total := Count(sampleInputs(), Options{Strict: true})
	if len(files) != 1 || files[0].Path != "/a/b/foo.js" {
		t.Fatalf("unexpected files %+v", files)
	}
	want := TotalRecord{Counts: Counts{Total: 1, Source: 1}, File: 1}
	if total != want {
		t.Fatalf("got %+v, want %+v", total, want)
	}
}

func Test_Count_Tolerant(t *testing.T) {
	files, total := Count(sampleInputs(), Options{Strict: false})
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	want := TotalRecord{Counts: Counts{Total: 2, Source: 2}, File: 2}
	if total != want {
		t.Fatalf("got %+v, want %+v", total, want)
	}
}

func Test_Count_ExtensionOverride(t *testing.T) {
	in := []Input{{Path: "script", Extension: "PY", Content: []byte("# c\nx = 1\n")}}
	files, total := Count(in, Options{Strict: true})
	if total.File != 1 || files[0].Single != 1 || files[0].Source != 1 {
		t.Fatalf("unexpected result %+v", files)
	}
}

func Test_Count_Empty(t *testing.T) {
	files, total := Count(nil, Options{Strict: true})
	if len(files) != 0 || total != (TotalRecord{}) {
		t.Fatalf("expected zero result, got %+v %+v", files, total)
	}
}

func Test_Aggregator_Skipped(t *testing.T) {
	agg := NewAggregator(Options{Strict: true})
	for _, in := range sampleInputs() {
		agg.Add(in)
	}
	if agg.Skipped() != 1 || agg.Total().File != 1 {
		t.Fatalf("skipped=%d file=%d", agg.Skipped(), agg.Total().File)
	}
	// 返回的切片是副本
	files := agg.Files()
	files[0].Path = "changed"
	if agg.Files()[0].Path == "changed" {
		t.Fatal("Files should return a copy")
	}
}

func Test_Aggregator_CustomTable(t *testing.T) {
	table := DefaultTable().Clone()
	table.Register(Rule{Name: "Backup", Extensions: []string{"bak"}, LineComments: []string{"//"}})
	opts := Options{Strict: true, Table: table}
	_, total := Count([]Input{{Path: "x.bak", Content: []byte("// only comment\n")}}, opts)
	if total.File != 1 || total.Single != 1 {
		t.Fatalf("custom rule not applied: %+v", total)
	}
	if _, ok := DefaultTable().Lookup(".bak"); ok {
		t.Fatal("clone must not modify the default table")
	}
}

func manyInputs(n int) []Input {
	exts := []string{".go", ".py", ".bak", ".js", ".lua"}
	inputs := make([]Input, 0, n)
	for i := range n {
		body := fmt.Sprintf("// %d\nx = %d /* y */\n\n--[[ z\n", i, i)
		inputs = append(inputs, Input{
			Path:    fmt.Sprintf("f%03d%s", i, exts[i%len(exts)]),
			Content: []byte(body),
		})
	}
	return inputs
}

func Test_CountConcurrent_MatchesCount(t *testing.T) {
	inputs := manyInputs(100)
	for _, strict := range []bool{true, false} {
		opts := Options{Strict: strict, Workers: 7}
		wantFiles, wantTotal := Count(inputs, opts)
		gotFiles, gotTotal, err := CountConcurrent(context.Background(), inputs, opts)
		if err != nil {
			t.Fatalf("CountConcurrent error: %v", err)
		}
		if gotTotal != wantTotal {
			t.Fatalf("strict=%v total %+v != %+v", strict, gotTotal, wantTotal)
		}
		if len(gotFiles) != len(wantFiles) {
			t.Fatalf("strict=%v files %d != %d", strict, len(gotFiles), len(wantFiles))
		}
		for i := range wantFiles {
			if gotFiles[i] != wantFiles[i] {
				t.Fatalf("strict=%v file %d: %+v != %+v", strict, i, gotFiles[i], wantFiles[i])
			}
		}
	}
}

func Test_CountConcurrent_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files, total, err := CountConcurrent(ctx, manyInputs(10), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(files) != 0 || total.File != 0 {
		t.Fatalf("expected nothing processed, got %d files", len(files))
	}
}

func Test_CountConcurrent_NoInputs(t *testing.T) {
	files, total, err := CountConcurrent(context.Background(), nil, Options{})
	if err != nil || len(files) != 0 || total != (TotalRecord{}) {
		t.Fatalf("unexpected result %v %+v %v", files, total, err)
	}
}

func Test_ExtensionOf(t *testing.T) {
	if ExtensionOf("/x/Foo.JS") != ".js" || ExtensionOf("Makefile") != "" {
		t.Fatal("ExtensionOf")
	}
}
