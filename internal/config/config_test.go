package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitStrataDir(t *testing.T) {
	root := t.TempDir()
	if err := InitStrataDir(root); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, dir := range []string{"system", "modules"} {
		if _, err := os.Stat(filepath.Join(root, StrataDir, dir)); err != nil {
			t.Fatalf("expected %s to exist: %v", dir, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, StrataDir, "config.yaml")); err != nil {
		t.Fatalf("expected default config: %v", err)
	}

	// A second init must not clobber an existing config.
	path := filepath.Join(root, StrataDir, "config.yaml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := InitStrataDir(root); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "version: 2\n" {
		t.Fatalf("config was clobbered: %q", data)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, err := NewConfig(root)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if len(cfg.SystemLocations()) == 0 {
		t.Fatalf("expected default system locations")
	}
	if cfg.SystemLocations()[0] != filepath.Join(root, StrataDir, "system") {
		t.Fatalf("unexpected system location: %v", cfg.SystemLocations())
	}
	if cfg.OwnLocation() == "" {
		t.Fatalf("expected a default own location")
	}
}

func TestNewConfigLoadsProjectFile(t *testing.T) {
	root := t.TempDir()
	if err := InitStrataDir(root); err != nil {
		t.Fatalf("init: %v", err)
	}
	custom := `version: 1
system_locations:
  - /opt/strata/system
early_locations:
  - mods
modules:
  - community.review
  - "  "
`
	path := filepath.Join(root, StrataDir, "config.yaml")
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := NewConfig(root)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if got := cfg.SystemLocations(); len(got) != 1 || got[0] != filepath.Clean("/opt/strata/system") {
		t.Fatalf("unexpected system locations: %v", got)
	}
	if got := cfg.EarlyLocations(); len(got) != 1 || got[0] != filepath.Join(root, "mods") {
		t.Fatalf("unexpected early locations: %v", got)
	}
	if got := cfg.Modules(); len(got) != 1 || got[0] != "community.review" {
		t.Fatalf("unexpected modules: %v", got)
	}
}

func TestNewConfigRejectsMalformedYAML(t *testing.T) {
	root := t.TempDir()
	if err := InitStrataDir(root); err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(root, StrataDir, "config.yaml")
	if err := os.WriteFile(path, []byte(":\t not yaml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := NewConfig(root); err == nil {
		t.Fatalf("expected decode error")
	}
}
