package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultUsesHardwareParallelism(t *testing.T) {
	cfg := Default()
	if cfg.Workers <= 0 {
		t.Fatalf("Workers = %d, want > 0", cfg.Workers)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadYAMLOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xcdecode.yaml")
	if err := os.WriteFile(path, []byte("workers: 4\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMissingYAMLFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xcdecode.yaml")
	if err := os.WriteFile(path, []byte("workers: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("XCDECODE_WORKERS", "9")
	t.Setenv("XCDECODE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 9 {
		t.Errorf("Workers = %d, want 9 (env override)", cfg.Workers)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn (env override)", cfg.LogLevel)
	}
}
