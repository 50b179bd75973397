package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yeisme/gosloc/pkg/configs"
)

func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := consoleOut
	consoleOut = &buf
	t.Cleanup(func() { consoleOut = old })
	return &buf
}

func Test_parseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.WarnLevel,
		"bogus":   zerolog.WarnLevel,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func Test_InitLogger_Quiet(t *testing.T) {
	buf := captureConsole(t)
	logger := InitLogger(context.Background(), &configs.LogConfig{Level: "trace"}, &configs.AppConfig{Quiet: true})
	logger.Error().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("quiet logger wrote %q", buf.String())
	}
}

func Test_InitLogger_JSONConsole(t *testing.T) {
	buf := captureConsole(t)
	logger := InitLogger(context.Background(), &configs.LogConfig{Level: "info", JSON: true, Mode: "console"}, &configs.AppConfig{Name: "gosloc"})
	logger.Debug().Msg("filtered")
	logger.Info().Str("path", "a.go").Msg("counted")
	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Fatalf("debug event should be filtered: %s", out)
	}
	if !strings.Contains(out, `"path":"a.go"`) || !strings.Contains(out, `"message":"counted"`) {
		t.Fatalf("unexpected output: %s", out)
	}
	if GetLogger() != logger {
		t.Fatal("global logger not updated")
	}
}

func Test_InitLogger_File(t *testing.T) {
	captureConsole(t)
	path := filepath.Join(t.TempDir(), "logs", "gosloc.log")
	logger := InitLogger(context.Background(), &configs.LogConfig{Level: "info", Mode: "file", FilePath: path, MaxSize: 1}, &configs.AppConfig{})
	logger.Warn().Msg("to file")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("log file content %q", data)
	}
}
