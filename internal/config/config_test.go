package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskscreen/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Seed.Source != config.SeedBuiltin {
		t.Errorf("expected seed source %q, got %q", config.SeedBuiltin, cfg.Seed.Source)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.Log.Level)
	}
}

func TestLoad_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	settings := "seed:\n  source: file\n  file: tasks.yaml\nlog:\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(settings), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed.Source != config.SeedFile {
		t.Errorf("expected seed source file, got %q", cfg.Seed.Source)
	}
	if got, want := cfg.SeedFilePath(), filepath.Join(dir, "tasks.yaml"); got != want {
		t.Errorf("expected seed path %q, got %q", want, got)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TASKSCREEN_SEED_SOURCE", "google")
	t.Setenv("TASKSCREEN_SEED_LIST", "Compras")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed.Source != config.SeedGoogle {
		t.Errorf("expected seed source google, got %q", cfg.Seed.Source)
	}
	if cfg.Seed.List != "Compras" {
		t.Errorf("expected seed list Compras, got %q", cfg.Seed.List)
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("seed:\n  source: cloud\n"), 0600); err != nil {
		t.Fatalf("failed to write config.yaml: %v", err)
	}

	_, err := config.Load(dir)
	if err == nil || err.Error() != "unknown seed source: cloud" {
		t.Errorf("expected unknown seed source error, got %v", err)
	}
}

func TestValidate_FileSourceNeedsPath(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.Seed.Source = config.SeedFile
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for file source without path")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "taskscreen") {
		t.Errorf("unexpected config dir %q", got)
	}
}

func TestSeedFilePath_Absolute(t *testing.T) {
	cfg, _ := config.New("/etc/taskscreen")
	cfg.Seed.File = "/srv/seed.yaml"
	if got := cfg.SeedFilePath(); got != "/srv/seed.yaml" {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}
}
