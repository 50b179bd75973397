package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/yeisme/gosloc/pkg/utils/count"
	"gopkg.in/yaml.v3"
)

// writeJSONReport 把报告写入 ReportFile；文件名为 "-" 时写到 Out
func writeJSONReport(res *count.Result, opts Options) error {
	doc := NewDocument(res, opts)
	if opts.ReportFile == Stdout {
		return writeJSON(opts.Out, doc)
	}
	path := opts.ReportFile
	if path == "" {
		path = "sloc.json"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := writeJSON(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}

func writeTOML(w io.Writer, v any) error {
	if err := toml.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode toml report: %w", err)
	}
	return nil
}
