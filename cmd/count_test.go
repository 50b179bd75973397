package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yeisme/gosloc/pkg/configs"
	gctx "github.com/yeisme/gosloc/pkg/context"
	"github.com/yeisme/gosloc/pkg/style"
)

func setupTestContext(t *testing.T) {
	t.Helper()
	cfg, err := configs.DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}
	nop := zerolog.Nop()
	slocCtx = &gctx.SlocContext{Config: cfg, Logger: &nop}
	log = &nop
	style.SetColorEnabled(false)
}

func Test_countConfig(t *testing.T) {
	setupTestContext(t)
	slocCtx.Config.Count.Exclude = []string{"dist/"}

	cmd := &cobra.Command{Use: "count"}
	var f countFlags
	addCountFlags(cmd, &f)
	if err := cmd.Flags().Parse([]string{"--tolerant", "-e", "vendor/**", "-r", "table", "-C", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := countConfig(cmd.Flags(), &f)
	if err != nil {
		t.Fatalf("countConfig: %v", err)
	}
	if cfg.Strict {
		t.Fatal("--tolerant should disable strict mode")
	}
	if cfg.ReportType != "table" || cfg.Concurrency != 2 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if strings.Join(cfg.Exclude, ",") != "dist/,vendor/**" {
		t.Fatalf("exclude = %v", cfg.Exclude)
	}
	// 未设置的标志保留配置值
	if !cfg.SkipBinary || !cfg.RespectGitignore || !cfg.BlankInBlockEmpty {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func Test_countConfig_Invalid(t *testing.T) {
	setupTestContext(t)
	cmd := &cobra.Command{Use: "count"}
	var f countFlags
	addCountFlags(cmd, &f)
	if err := cmd.Flags().Parse([]string{"-r", "xml"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := countConfig(cmd.Flags(), &f); err == nil {
		t.Fatal("expected error for unknown reporter")
	}
}

func Test_runCount(t *testing.T) {
	setupTestContext(t)
	dir := t.TempDir()
	files := map[string]string{
		"a.js":  "// c\nvar a = 1;\n\n",
		"b.txt": "plain\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "count"}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	cfg := slocCtx.Config.Count
	if err := runCount(t.Context(), cmd, cfg, []string{dir}); err != nil {
		t.Fatalf("runCount: %v", err)
	}
	text := out.String()
	for _, want := range []string{"physical lines : 3", "number of files read : 1", "strict mode"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func Test_addCountFlags_ReportFileUsage(t *testing.T) {
	cmd := &cobra.Command{Use: "count"}
	var f countFlags
	addCountFlags(cmd, &f)
	usage := cmd.Flags().Lookup("report-file").Usage
	if !strings.Contains(usage, "json") || strings.Contains(usage, "yaml") || strings.Contains(usage, "toml") {
		t.Fatalf("report-file usage = %q", usage)
	}
}
