package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
full_refresh_interval = "2m"
coalesce_delay = "500ms"
default_four_level = true
mock = true
mock_dir = "/var/lib/inkwire"
spi_port = "SPI0.0"
dc_pin = "GPIO22"
width = 1024
height = 768
vcom_mv = 1800
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.FullRefreshInterval != 2*time.Minute {
		t.Errorf("FullRefreshInterval = %v, want 2m", cfg.FullRefreshInterval)
	}
	if cfg.CoalesceDelay != 500*time.Millisecond {
		t.Errorf("CoalesceDelay = %v, want 500ms", cfg.CoalesceDelay)
	}
	if !cfg.DefaultFourLevel {
		t.Error("DefaultFourLevel = false, want true")
	}
	if !cfg.Mock {
		t.Error("Mock = false, want true")
	}
	if cfg.MockDir != "/var/lib/inkwire" {
		t.Errorf("MockDir = %q, want /var/lib/inkwire", cfg.MockDir)
	}
	if cfg.DCPin != "GPIO22" {
		t.Errorf("DCPin = %q, want GPIO22", cfg.DCPin)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("dimensions = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}
	if cfg.VcomMV != 1800 {
		t.Errorf("VcomMV = %d, want 1800", cfg.VcomMV)
	}
	// Fields absent from the file keep their defaults.
	if cfg.BusyPin != "GPIO24" {
		t.Errorf("BusyPin = %q, want default GPIO24", cfg.BusyPin)
	}
}

func TestApplyFileConfig_FlagPrecedence(t *testing.T) {
	path := writeConfigFile(t, `
width = 1024
coalesce_delay = "5s"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Width = 480
	changed := map[string]bool{"width": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Width != 480 {
		t.Errorf("Width = %d, want flag value 480", cfg.Width)
	}
	if cfg.CoalesceDelay != 5*time.Second {
		t.Errorf("CoalesceDelay = %v, want file value 5s", cfg.CoalesceDelay)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	path := writeConfigFile(t, `coalesce_delay = "soon"`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Error("ApplyFileConfig = nil, want parse error")
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadFileConfig = nil, want error for missing file")
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfigFile(t, "")
	if !FileExists(path) {
		t.Error("FileExists(existing file) = false")
	}
	if FileExists(filepath.Join(t.TempDir(), "nope.toml")) {
		t.Error("FileExists(missing file) = true")
	}
	if FileExists(filepath.Dir(path)) {
		t.Error("FileExists(directory) = true")
	}
}
