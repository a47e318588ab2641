package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_ExplicitMissingPathErrors(t *testing.T) {
	t.Setenv("TAILOR_CONFIG", "")

	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "absent.yaml") {
		t.Fatalf("got %v, want an error naming the missing file", err)
	}
}

func TestLoadConfig_EnvMissingPathErrors(t *testing.T) {
	t.Setenv("TAILOR_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := loadConfig("")
	if err == nil || !strings.Contains(err.Error(), "absent.yaml") {
		t.Fatalf("got %v, want an error naming the missing file", err)
	}
}

func TestLoadConfig_ImplicitMissingUsesDefaults(t *testing.T) {
	t.Setenv("TAILOR_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorePath != "tailor.db" {
		t.Errorf("store path = %q, want default", cfg.StorePath)
	}
}

func TestLoadConfig_ExplicitExistingPathParses(t *testing.T) {
	path := writeTempFile(t, "tailor.yaml", "store_path: custom.db\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StorePath != "custom.db" {
		t.Errorf("store path = %q, want custom.db", cfg.StorePath)
	}
}
