package sloc

import (
	"testing"
)

func mustRule(t *testing.T, ext string) *Rule {
	t.Helper()
	r, ok := DefaultTable().Lookup(ext)
	if !ok {
		t.Fatalf("no rule for %s", ext)
	}
	return r
}

func Test_ClassifyLine_SingleLines(t *testing.T) {
	js := mustRule(t, ".js")
	goRule := mustRule(t, ".go")
	py := mustRule(t, ".py")
	html := mustRule(t, ".html")
	lua := mustRule(t, ".lua")
	rs := mustRule(t, ".rs")
	sql := mustRule(t, ".sql")
	vb := mustRule(t, ".vb")
	sh := mustRule(t, ".sh")

	cases := []struct {
		name string
		rule *Rule
		line string
		want Category
	}{
		{"source", js, "var a = 10;", Source},
		{"single", js, "// comment", SingleLineComment},
		{"indented single", js, "    // comment", SingleLineComment},
		{"trailing comment", js, "var a = 1; // note", Mixed},
		{"inline block", js, "/* inline */", BlockComment},
		{"block between code", js, "a /* b */ c", Mixed},
		{"code after block", js, "/* b */ c()", Mixed},
		{"block then line comment", js, "/* x */ // y", Mixed},
		{"empty", js, "", Empty},
		{"whitespace", js, " \t  ", Empty},
		{"slashes in string", goRule, `s := "hello // world"`, Source},
		{"block open in string", js, `x = "/* not a comment"`, Source},
		{"escaped quote", js, `c = '\'' // c`, Mixed},
		{"escaped quote hides marker", js, `s = "a\" // b"`, Source},
		{"raw string", goRule, "s := `/* raw */`", Source},
		{"hash in string", py, `value = "hello # world"`, Source},
		{"hash comment", py, "# real comment", SingleLineComment},
		{"slashes are code in python", py, "a // b", Source},
		{"html comment", html, "<!-- a -->", BlockComment},
		{"html mixed", html, "<p>x</p> <!-- a -->", Mixed},
		{"lua line", lua, "-- line", SingleLineComment},
		{"lua block one line", lua, "--[[ a ]]", BlockComment},
		{"unterminated escape", js, `x = "abc\`, Source},
		{"invalid utf8", js, "\xff\xfe", Source},
		{"unicode space only", js, " 　", Empty},
		{"unicode code", js, "变量 = 1", Source},
		{"go raw string ends with backslash", goRule, "p := `C:\\` // x", Mixed},
		{"js template keeps escapes", js, "s = `a\\` // b`", Source},
		{"rust char literal quote", rs, `let q = '"'; // x`, Mixed},
		{"rust escaped char literal", rs, `let q = '\''; // x`, Mixed},
		{"rust unicode char literal", rs, `let c = '\u{1F600}'; // x`, Mixed},
		{"rust lifetime", rs, `fn f<'a>(s: &'a str) {} // x`, Mixed},
		{"rust string hides marker", rs, `let s = "// x";`, Source},
		{"sql no escapes", sql, `select 'a\' -- x`, Mixed},
		{"sql doubled quote", sql, `select 'it''s -- no'`, Source},
		{"vb no escapes", vb, `s = "C:\" ' x`, Mixed},
		{"shell single quote is raw", sh, `echo 'a\' # x`, Mixed},
		{"shell double quote escapes", sh, `echo "a\" # x"`, Source},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, state := ClassifyLine(tc.line, tc.rule, ScanState{})
			if got != tc.want {
				t.Fatalf("ClassifyLine(%q) = %s, want %s", tc.line, got, tc.want)
			}
			if state.InBlockComment {
				t.Fatalf("ClassifyLine(%q) left block comment open", tc.line)
			}
		})
	}
}

func Test_ClassifyLine_BlockAcrossLines(t *testing.T) {
	js := mustRule(t, ".js")

	cat, state := ClassifyLine("/* start", js, ScanState{})
	if cat != BlockComment || !state.InBlockComment {
		t.Fatalf("line 1: %s %+v", cat, state)
	}
	cat, state2 := ClassifyLine("still comment // not a line comment", js, state)
	if cat != BlockComment || state2 != state {
		t.Fatalf("middle: %s %+v", cat, state2)
	}
	cat, state3 := ClassifyLine("end */ var x;", js, state2)
	if cat != Mixed || state3.InBlockComment {
		t.Fatalf("line 2: %s %+v", cat, state3)
	}

	cat, state = ClassifyLine("*/", js, ScanState{InBlockComment: true})
	if cat != BlockComment || state.InBlockComment {
		t.Fatalf("close only: %s %+v", cat, state)
	}

	// 关闭后又打开新的块注释
	cat, state = ClassifyLine("a */ b /* c", js, ScanState{InBlockComment: true})
	if cat != Mixed || !state.InBlockComment {
		t.Fatalf("reopen: %s %+v", cat, state)
	}

	// 块注释中的字符串定界符不生效
	cat, state = ClassifyLine(`" */ x = 1`, js, ScanState{InBlockComment: true})
	if cat != Mixed || state.InBlockComment {
		t.Fatalf("quote in comment: %s %+v", cat, state)
	}
}

func Test_ClassifyLine_PairIndex(t *testing.T) {
	rule := &Rule{
		Name:          "multi",
		LineComments:  []string{"--"},
		BlockComments: []Pair{{Open: "/*", Close: "*/"}, {Open: "--[[", Close: "]]"}},
	}
	cat, state := ClassifyLine("x = 1 --[[ open", rule, ScanState{})
	if cat != Mixed || !state.InBlockComment || state.Pair != 1 {
		t.Fatalf("open: %s %+v", cat, state)
	}
	// "*/" 不是当前块注释的结束标记
	cat, state = ClassifyLine("*/ still", rule, state)
	if cat != BlockComment || !state.InBlockComment {
		t.Fatalf("wrong close: %s %+v", cat, state)
	}
	cat, state = ClassifyLine("]]", rule, state)
	if cat != BlockComment || state.InBlockComment {
		t.Fatalf("close: %s %+v", cat, state)
	}
}

func Test_ClassifyLine_SameOpenAndClose(t *testing.T) {
	coffee := mustRule(t, ".coffee")
	steps := []struct {
		line    string
		want    Category
		inBlock bool
	}{
		{"###", BlockComment, true},
		{"doc text # here", BlockComment, true},
		{"###", BlockComment, false},
		{"x = 1 # note", Mixed, false},
		{"### inline ###", BlockComment, false},
	}
	var state ScanState
	for i, s := range steps {
		var cat Category
		cat, state = ClassifyLine(s.line, coffee, state)
		if cat != s.want || state.InBlockComment != s.inBlock {
			t.Fatalf("step %d %q: %s %+v", i, s.line, cat, state)
		}
	}
}

func Test_ClassifyLine_Policy(t *testing.T) {
	js := mustRule(t, ".js")
	in := ScanState{InBlockComment: true}

	cat, state := ClassifyLine("", js, in)
	if cat != Empty || state != in {
		t.Fatalf("default blank in block: %s %+v", cat, state)
	}

	strict := Classifier{Policy: Policy{BlankLinesInBlockAreEmpty: false, CombinedCommentsAreMixed: false}}
	cat, state = strict.ClassifyLine("   ", js, in)
	if cat != BlockComment || state != in {
		t.Fatalf("policy blank in block: %s %+v", cat, state)
	}
	cat, _ = strict.ClassifyLine("/* x */ // y", js, ScanState{})
	if cat != BlockComment {
		t.Fatalf("policy combined: %s", cat)
	}
	// 不在块注释中的空行不受策略影响
	cat, _ = strict.ClassifyLine("", js, ScanState{})
	if cat != Empty {
		t.Fatalf("policy blank outside block: %s", cat)
	}
}

func Test_ClassifyLine_NilRule(t *testing.T) {
	cat, state := ClassifyLine("// looks like a comment", nil, ScanState{})
	if cat != Source || state.InBlockComment {
		t.Fatalf("nil rule: %s", cat)
	}
	if cat, _ := ClassifyLine("  ", nil, ScanState{}); cat != Empty {
		t.Fatalf("nil rule blank: %s", cat)
	}
	empty := &Rule{Name: "plain"}
	if cat, _ := ClassifyLine("/* x */", empty, ScanState{}); cat != Source {
		t.Fatalf("rule without markers: %s", cat)
	}
}

func Test_ClassifyLine_StaleState(t *testing.T) {
	py := mustRule(t, ".py")
	cat, state := ClassifyLine("x = 1", py, ScanState{InBlockComment: true, Pair: 3})
	if cat != Source || state.InBlockComment {
		t.Fatalf("stale state: %s %+v", cat, state)
	}
}

func Test_ClassifyLine_Idempotent(t *testing.T) {
	js := mustRule(t, ".js")
	lines := []string{"var a;", "/* a", "b */ c // d", "", `"/*"`, "*/"}
	states := []ScanState{{}, {InBlockComment: true}}
	for _, line := range lines {
		for _, st := range states {
			c1, s1 := ClassifyLine(line, js, st)
			c2, s2 := ClassifyLine(line, js, st)
			if c1 != c2 || s1 != s2 {
				t.Fatalf("not pure for %q %+v", line, st)
			}
		}
	}
}

func Test_Category_String(t *testing.T) {
	if Mixed.String() != "mixed" || Empty.String() != "empty" || Category(42).String() != "unknown" {
		t.Fatal("category names")
	}
	if !Mixed.IsComment() || Source.IsComment() || Empty.IsComment() {
		t.Fatal("IsComment")
	}
}
