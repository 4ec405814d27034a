package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xiaomi388/templater/pkg/types"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := Default()
	want.Storage = types.StorageConfig{Backend: types.StorageBackendSQLite, Path: "/tmp/t.db", SkipMalformed: true}
	want.Log = LogConfig{Level: "debug", File: "/tmp/templater.log"}
	want.Display.Width = 72
	want.Watch = false

	if err := Dump(path, want); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected warn, got %q", cfg.Log.Level)
	}
	if cfg.Storage.Backend != types.StorageBackendJSON || cfg.Display.Width != types.DefaultSummaryWidth || !cfg.Watch {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvStoreBackend, "sqlite")
	t.Setenv(EnvStorePath, "/data/templates.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvWatch, "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != types.StorageBackendSQLite || cfg.Storage.Path != "/data/templates.db" {
		t.Errorf("storage not overridden: %+v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" || cfg.Watch {
		t.Errorf("log/watch not overridden: %+v", cfg)
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvLogFile, "")
	_ = os.Unsetenv(EnvLogFile)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvLogFile+"=from-dotenv.log\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.File != "from-dotenv.log" {
		t.Errorf("expected log file from .env, got %q", cfg.Log.File)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"backend": func(c *Config) { c.Storage.Backend = "csv" },
		"level":   func(c *Config) { c.Log.Level = "loud" },
		"width":   func(c *Config) { c.Display.Width = 0 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}
