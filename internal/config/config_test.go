package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Script.Timeout.Value() != 5*time.Second {
		t.Errorf("script timeout = %v, want 5s", cfg.Script.Timeout.Value())
	}
	if cfg.Scenario.Dir != "scenarios" {
		t.Errorf("scenario dir = %q", cfg.Scenario.Dir)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Watch.Debounce.Value() != 200*time.Millisecond {
		t.Error("defaults should survive a missing file")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewind.toml")
	content := `
[script]
timeout = "1s"

[watch]
debounce = "50ms"

[ui]
show_ids = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Script.Timeout.Value() != time.Second {
		t.Errorf("timeout = %v, want 1s", cfg.Script.Timeout.Value())
	}
	if cfg.Watch.Debounce.Value() != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", cfg.Watch.Debounce.Value())
	}
	if !cfg.UI.ShowIDs {
		t.Error("show_ids should be true")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[script\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("broken TOML should be an error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REWIND_SCRIPT_TIMEOUT", "2s")
	t.Setenv("REWIND_SCENARIO_DIR", "/tmp/scen")
	t.Setenv("REWIND_UI_SHOW_IDS", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Script.Timeout.Value() != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", cfg.Script.Timeout.Value())
	}
	if cfg.Scenario.Dir != "/tmp/scen" {
		t.Errorf("scenario dir = %q", cfg.Scenario.Dir)
	}
	if !cfg.UI.ShowIDs {
		t.Error("show_ids should be true")
	}
}

func TestEnvIgnoresUnparsable(t *testing.T) {
	t.Setenv("REWIND_SCRIPT_TIMEOUT", "not-a-duration")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Script.Timeout.Value() != 5*time.Second {
		t.Error("unparsable env value should leave the default intact")
	}
}
