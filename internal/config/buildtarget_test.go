package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadBuildTargetMissingFile(t *testing.T) {
	// Given
	dir := t.TempDir()

	// When
	cfg, err := loadBuildTarget(filepath.Join(dir, "nope.json"))

	// Then
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OperatingSystem != runtime.GOOS || cfg.Linker == nil || cfg.Runtime == nil {
		t.Errorf("expected host defaults, got %+v", cfg)
	}
}

func TestLoadBuildTarget(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "linux_amd64.json")
	data := `{
		"arch": "amd64",
		"os": "linux",
		"linker": {"command": "ld.lld", "flags": ["--gc-sections"]},
		"runtime": {"searchDirs": ["/opt/musl/lib"], "static": true}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	// When
	cfg, err := loadBuildTarget(path)

	// Then
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Linker.Command != "ld.lld" || len(cfg.Linker.Flags) != 1 {
		t.Errorf("unexpected linker %+v", cfg.Linker)
	}
	if !cfg.Runtime.Static || len(cfg.Runtime.SearchDirs) != 1 || cfg.Runtime.SearchDirs[0] != "/opt/musl/lib" {
		t.Errorf("unexpected runtime %+v", cfg.Runtime)
	}
}

func TestLoadBuildTargetInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte(`{"linker": }`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadBuildTarget(path); err == nil {
		t.Errorf("expected an error for invalid JSON")
	}
}

func TestSetVerbose(t *testing.T) {
	defer Set("verbose", false)
	Set("verbose", true)
	if !Verbose() {
		t.Errorf("verbose flag not set")
	}
}

func TestLoadNamedBuildTarget(t *testing.T) {
	// Given
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "build_targets"), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(base, "build_targets", "musl.json")
	if err := os.WriteFile(path, []byte(`{"name": "musl", "runtime": {"static": true}}`), 0644); err != nil {
		t.Fatal(err)
	}
	oldBase, oldTarget := config.Base, BuildTargetName()
	defer func() {
		config.Base = oldBase
		Set("target", oldTarget)
	}()
	config.Base = base

	// When
	Set("target", "musl")
	cfg, err := LoadBuildTarget()

	// Then
	if err != nil {
		t.Fatal(err)
	}
	if BuildTargetName() != "musl" || cfg.Name != "musl" || !cfg.Runtime.Static {
		t.Errorf("unexpected build target %+v", cfg)
	}
}
