package context

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func Test_InitSlocContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gosloc.yaml")
	if err := os.WriteFile(path, []byte("count:\n  strict: false\napp:\n  debug: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, err := InitSlocContext(context.Background(), GlobalFlags{ConfigPath: path, Quiet: true, NoColor: true})
	if err != nil {
		t.Fatalf("InitSlocContext: %v", err)
	}
	if ctx.Config.Count.Strict {
		t.Fatal("config file not applied")
	}
	if !ctx.Config.App.Quiet || !ctx.Config.App.NoColor {
		t.Fatalf("flags should override app config: %+v", ctx.Config.App)
	}
	if ctx.Viper == nil || ctx.Logger == nil {
		t.Fatal("viper and logger must be set")
	}
}

func Test_InitSlocContext_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("count: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := InitSlocContext(context.Background(), GlobalFlags{ConfigPath: path}); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
