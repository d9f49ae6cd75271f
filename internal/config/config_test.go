package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", Overrides{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Adapter != "ec2" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoadFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
adapter = "nlb"
region = "eu-west-1"
read_only = true

[timeouts]
default_seconds = 15
max_seconds = 60

[timeouts.per_tool]
list_load_balancers = 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	region := "us-west-2"
	cfg, err := Load(path, Overrides{Region: &region})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Adapter != "nlb" || !cfg.ReadOnly {
		t.Fatalf("file values not applied: %#v", cfg)
	}
	if cfg.Region != "us-west-2" {
		t.Fatalf("override not applied: %s", cfg.Region)
	}
	if cfg.Timeouts.DefaultSeconds != 15 || cfg.Timeouts.PerTool["list_load_balancers"] != 5 {
		t.Fatalf("timeouts not parsed: %#v", cfg.Timeouts)
	}
}

func TestLoadmissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), Overrides{}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
