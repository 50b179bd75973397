package sloc

import (
	"sort"
	"testing"
)

func Test_Table_Lookup(t *testing.T) {
	table := DefaultTable()
	for _, ext := range []string{"js", ".js", ".JS", " Js "} {
		r, ok := table.Lookup(ext)
		if !ok || r.Name != "JavaScript" {
			t.Fatalf("Lookup(%q) = %v, %v", ext, r, ok)
		}
	}
	for _, ext := range []string{"", ".", "bak", ".unknown"} {
		if _, ok := table.Lookup(ext); ok {
			t.Fatalf("Lookup(%q) should miss", ext)
		}
	}
}

func Test_Table_LookupPath(t *testing.T) {
	table := DefaultTable()
	cases := map[string]string{
		"/src/Makefile":      "Make",
		"Dockerfile":         "Dockerfile",
		"dir/CMakeLists.txt": "CMake",
		"pkg/main.GO":        "Go",
		"web/index.html":     "HTML",
		"scripts/build.sh":   "Shell",
		"lib/tasks/x.rake":   "Ruby",
		"conf/settings.toml": "TOML",
	}
	for path, want := range cases {
		r, ok := table.LookupPath(path)
		if !ok || r.Name != want {
			t.Fatalf("LookupPath(%q) = %v, %v; want %s", path, r, ok, want)
		}
	}
	if _, ok := table.LookupPath("README"); ok {
		t.Fatal("README should not match any rule")
	}
}

func Test_Table_RegisterOverride(t *testing.T) {
	table := NewTable(
		Rule{Name: "Old", Extensions: []string{".x"}},
		Rule{Name: "New", Extensions: []string{"X"}, LineComments: []string{"", "!"}, BlockComments: []Pair{{Open: "(", Close: ""}}},
	)
	r, ok := table.Lookup("x")
	if !ok || r.Name != "New" {
		t.Fatalf("expected override, got %v", r)
	}
	if len(r.LineComments) != 1 || len(r.BlockComments) != 0 {
		t.Fatalf("empty tokens should be dropped: %+v", r)
	}
	rules := table.Rules()
	if len(rules) != 1 || rules[0].Name != "New" {
		t.Fatalf("overridden rule should not be listed: %+v", rules)
	}
}

func Test_Table_Rules(t *testing.T) {
	rules := DefaultTable().Rules()
	if len(rules) < 40 {
		t.Fatalf("expected builtin rules, got %d", len(rules))
	}
	if !sort.SliceIsSorted(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name }) {
		t.Fatal("rules should be sorted by name")
	}
	seen := map[string]bool{}
	for _, r := range rules {
		if seen[r.Name] {
			t.Fatalf("duplicate rule %s", r.Name)
		}
		seen[r.Name] = true
		for _, p := range r.BlockComments {
			if p.Open == "" || p.Close == "" {
				t.Fatalf("rule %s has empty block token", r.Name)
			}
		}
	}
}

func Test_Table_ExtensionsUnique(t *testing.T) {
	owner := map[string]string{}
	for _, r := range builtinRules {
		for _, ext := range r.Extensions {
			n := normalizeExt(ext)
			if prev, ok := owner[n]; ok {
				t.Fatalf("extension %s claimed by %s and %s", n, prev, r.Name)
			}
			owner[n] = r.Name
		}
	}
}
