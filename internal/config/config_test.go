package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", cfg.Project.Version)
	}
	if cfg.AnalysisModel() != defaultModel {
		t.Fatalf("expected default model %q, got %q", defaultModel, cfg.AnalysisModel())
	}
	if !cfg.SeedDemoData() {
		t.Fatalf("demo data should be seeded by default")
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	proflowDir := filepath.Join(projectDir, ProflowDir)
	if err := os.MkdirAll(proflowDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
analysis:
  model: claude-sonnet-4-5
  api_key: "  key-from-file  "
board:
  seed_demo_data: false
`)
	if err := os.WriteFile(filepath.Join(proflowDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.AnalysisModel() != "claude-sonnet-4-5" {
		t.Fatalf("wrong model: %s", cfg.AnalysisModel())
	}
	if cfg.AnalysisAPIKey() != "key-from-file" {
		t.Fatalf("api key should be trimmed, got %q", cfg.AnalysisAPIKey())
	}
	if cfg.SeedDemoData() {
		t.Fatalf("seed_demo_data: false should disable seeding")
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	projectDir := t.TempDir()
	proflowDir := filepath.Join(projectDir, ProflowDir)
	if err := os.MkdirAll(proflowDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(proflowDir, "config.yaml"), []byte("version: -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(projectDir); err == nil {
		t.Fatalf("expected validation error for negative version")
	}
}

func TestInitProflowDirWritesDefaultConfig(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitProflowDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(projectDir, ProflowDir, "config.yaml"))
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if !strings.Contains(string(data), "seed_demo_data") {
		t.Fatalf("default config missing board section")
	}
	if _, err := os.Stat(filepath.Join(projectDir, ProflowDir, "logs")); err != nil {
		t.Fatalf("logs dir not created: %v", err)
	}

	// A second init must not clobber an edited config.
	edited := "version: 1\nanalysis:\n  model: custom\n"
	if err := os.WriteFile(filepath.Join(projectDir, ProflowDir, "config.yaml"), []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitProflowDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(projectDir, ProflowDir, "config.yaml"))
	if !strings.Contains(string(data), "custom") {
		t.Fatalf("re-init must keep the existing config")
	}
}
