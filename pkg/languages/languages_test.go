package languages

import (
	"strings"
	"testing"

	"github.com/yeisme/gosloc/pkg/sloc"
)

func Test_Resolve(t *testing.T) {
	table := sloc.DefaultTable()
	cases := map[string]string{
		"go":         "Go",
		"GO":         "Go",
		".py":        "Python",
		"rs":         "Rust",
		"Makefile":   "Make",
		"src/app.ts": "TypeScript",
	}
	for q, want := range cases {
		r, _ := Resolve(table, q)
		if r == nil || r.Name != want {
			t.Fatalf("Resolve(%q) = %+v, want %s", q, r, want)
		}
	}

	r, all := Resolve(table, "")
	if r != nil || len(all) != len(table.Rules()) {
		t.Fatalf("empty query should return every rule, got %d", len(all))
	}
}

func Test_FindFuzzy(t *testing.T) {
	table := sloc.NewTable(
		sloc.Rule{Name: "JavaScript", Extensions: []string{".js"}},
		sloc.Rule{Name: "Java", Extensions: []string{".java"}},
		sloc.Rule{Name: "Rust", Extensions: []string{".rs"}},
	)
	got := FindFuzzy(table, "jav")
	if len(got) != 2 || got[0].Name != "Java" || got[1].Name != "JavaScript" {
		t.Fatalf("FindFuzzy = %+v", got)
	}
	if got := FindFuzzy(table, "  "); got != nil {
		t.Fatalf("blank query = %+v", got)
	}
	if got := FindFuzzy(table, "zzz"); len(got) != 0 {
		t.Fatalf("unexpected matches %+v", got)
	}
}

func Test_TreeAndTable(t *testing.T) {
	r, ok := sloc.DefaultTable().Lookup(".go")
	if !ok {
		t.Fatal("go rule missing")
	}
	tree := Tree(*r)
	if tree.Text != "Go" || len(tree.Children) != 4 {
		t.Fatalf("tree = %+v", tree)
	}
	if tree.Children[2].Children[0].Text != "/* */" {
		t.Fatalf("block comments = %+v", tree.Children[2])
	}

	tbl := Table([]sloc.Rule{*r, {Name: "Plain"}})
	if len(tbl.Rows) != 2 || tbl.Rows[1][1] != "-" || tbl.Rows[1][4] != "-" {
		t.Fatalf("table rows = %v", tbl.Rows)
	}
	if d := describe(*r); !strings.Contains(d, "line comments:  //") || !strings.Contains(d, "raw strings:    `") {
		t.Fatalf("describe = %q", describe(*r))
	}
}

func Test_InteractiveSelect_Empty(t *testing.T) {
	if _, err := InteractiveSelect(nil); err != ErrNoMatch {
		t.Fatalf("err = %v", err)
	}
}
