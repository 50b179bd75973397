package configs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeisme/gosloc/pkg/sloc"
)

func Test_DefaultConfig(t *testing.T) {
	c, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}
	if !c.Count.Strict || c.Count.ReportType != "console" || c.Count.ReportFile != "sloc.json" {
		t.Fatalf("unexpected count defaults: %+v", c.Count)
	}
	// NUL 字节开头的文件默认跳过，--skip-binary=false 时交给分类器尽力统计
	if !c.Count.SkipBinary {
		t.Fatal("skip_binary should default to true")
	}
	if c.Count.Policy() != sloc.DefaultPolicy {
		t.Fatalf("policy defaults differ: %+v", c.Count.Policy())
	}
	if c.App.Name != "gosloc" || c.Watch.Debounce != 300 {
		t.Fatalf("unexpected defaults: %+v %+v", c.App, c.Watch)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func Test_LoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gosloc.yaml")
	content := `
count:
  strict: false
  report_type: json
  report_file: out/report.json
  exclude:
    - "vendor/**"
  blank_in_block_empty: false
languages:
  - name: Foo
    extensions: [".foo"]
    line_comments: ["!!"]
    block_comments:
      - open: "(:"
        close: ":)"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, v, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if v.ConfigFileUsed() != path {
		t.Fatalf("config file used = %q", v.ConfigFileUsed())
	}
	if c.Count.Strict || c.Count.ReportType != "json" || c.Count.ReportFile != "out/report.json" {
		t.Fatalf("file values not applied: %+v", c.Count)
	}
	if len(c.Count.Exclude) != 1 || c.Count.Exclude[0] != "vendor/**" {
		t.Fatalf("exclude = %v", c.Count.Exclude)
	}
	if c.Count.Policy().BlankLinesInBlockAreEmpty || !c.Count.Policy().CombinedCommentsAreMixed {
		t.Fatalf("policy = %+v", c.Count.Policy())
	}
	// 未出现在文件中的键保持默认值
	if !c.Count.RespectGitignore {
		t.Fatal("respect_gitignore default lost")
	}

	table := c.RuleTable()
	r, ok := table.Lookup("FOO")
	if !ok || r.Name != "Foo" || len(r.BlockComments) != 1 || r.BlockComments[0].Close != ":)" {
		t.Fatalf("custom language not registered: %+v", r)
	}
	if _, ok := sloc.DefaultTable().Lookup(".foo"); ok {
		t.Fatal("default table must stay untouched")
	}
	if _, ok := table.Lookup(".go"); !ok {
		t.Fatal("builtin rules should remain available")
	}
}

func Test_LoadConfig_Env(t *testing.T) {
	t.Setenv("GOSLOC_COUNT_REPORT_TYPE", "markdown")
	t.Setenv("GOSLOC_COUNT_STRICT", "false")
	path := filepath.Join(t.TempDir(), "gosloc.toml")
	if err := os.WriteFile(path, []byte("[count]\nreport_type = \"table\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, _, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Count.ReportType != "markdown" || c.Count.Strict {
		t.Fatalf("env should override file: %+v", c.Count)
	}
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	if _, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for explicit missing file")
	}
}

func Test_Validate(t *testing.T) {
	c, _ := DefaultConfig()
	c.Count.ReportType = "xml"
	c.Count.Concurrency = -1
	c.Watch.Debounce = -5
	c.Languages = []sloc.Rule{
		{Name: ""},
		{Name: "Bad", Extensions: []string{".b"}, BlockComments: []sloc.Pair{{Open: "<"}}},
		{Name: "Raw", Extensions: []string{".raw"}, StringDelimiters: `"`, RawDelimiters: "`"},
	}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"report_type", "concurrency", "debounce", "name is required", "needs open and close", "is not a string delimiter"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q should mention %q", msg, want)
		}
	}
}

func Test_CreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []OutputFormat{FormatYAML, FormatJSON, FormatTOML} {
		path := filepath.Join(dir, "sub", DefaultConfigPath(format))
		if err := CreateDefaultConfig(path, format, false); err != nil {
			t.Fatalf("%s: create: %v", format, err)
		}
		if err := CreateDefaultConfig(path, format, false); err == nil {
			t.Fatalf("%s: expected error on existing file", format)
		}
		if err := CreateDefaultConfig(path, format, true); err != nil {
			t.Fatalf("%s: force overwrite: %v", format, err)
		}
		c, _, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("%s: reload: %v", format, err)
		}
		if c.Count.ReportFile != "sloc.json" || !c.Count.Strict {
			t.Fatalf("%s: reloaded config differs: %+v", format, c.Count)
		}
	}
	if err := CreateDefaultConfig(filepath.Join(dir, "x.txt"), FormatText, false); err == nil {
		t.Fatal("text format should be rejected")
	}
}

func Test_ParseOutputFormat(t *testing.T) {
	cases := map[string]OutputFormat{"yml": FormatYAML, "JSON": FormatJSON, "toml": FormatTOML, "txt": FormatText}
	for in, want := range cases {
		got, err := ParseOutputFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseOutputFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}

func Test_OutputData_Plain(t *testing.T) {
	c, _ := DefaultConfig()
	var buf bytes.Buffer
	if err := OutputData(c.Count, FormatJSON, &buf, false); err != nil {
		t.Fatalf("OutputData: %v", err)
	}
	if !strings.Contains(buf.String(), `"report_file": "sloc.json"`) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
	buf.Reset()
	if err := OutputData(c.Count, FormatTOML, &buf, false); err != nil {
		t.Fatalf("OutputData toml: %v", err)
	}
	if !strings.Contains(buf.String(), "report_type = 'console'") && !strings.Contains(buf.String(), `report_type = "console"`) {
		t.Fatalf("unexpected toml: %s", buf.String())
	}
}

func Test_GetConfigSection(t *testing.T) {
	v := NewViper(writeTemp(t, "count:\n  strict: false\n"))
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("read: %v", err)
	}
	sec, err := GetConfigSection(v, "count", true)
	if err != nil {
		t.Fatalf("GetConfigSection: %v", err)
	}
	cc, ok := sec.(CountConfig)
	if !ok || cc.Strict {
		t.Fatalf("unexpected section %#v", sec)
	}
	if _, err := GetConfigSection(v, "nope", true); err == nil {
		t.Fatal("expected unknown section error")
	}
	if raw, err := GetConfigSection(v, "", false); err != nil || raw == nil {
		t.Fatalf("raw settings: %v %v", raw, err)
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
