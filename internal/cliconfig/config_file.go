package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	FullRefreshInterval string `toml:"full_refresh_interval"`
	CoalesceDelay       string `toml:"coalesce_delay"`
	DefaultFourLevel    *bool  `toml:"default_four_level"`

	Mock    *bool  `toml:"mock"`
	MockDir string `toml:"mock_dir"`

	SPIPort     string `toml:"spi_port"`
	DCPin       string `toml:"dc_pin"`
	CSPin       string `toml:"cs_pin"`
	ResetPin    string `toml:"reset_pin"`
	BusyPin     string `toml:"busy_pin"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	VcomMV      int    `toml:"vcom_mv"`
	MaxTransfer int    `toml:"max_transfer"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.inkwire/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".inkwire", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDuration("full-refresh-interval", fc.FullRefreshInterval, &cfg.FullRefreshInterval); err != nil {
		return err
	}
	if err := s.setDuration("coalesce-delay", fc.CoalesceDelay, &cfg.CoalesceDelay); err != nil {
		return err
	}
	s.setBool("default-four-level", fc.DefaultFourLevel, &cfg.DefaultFourLevel)

	s.setBool("mock", fc.Mock, &cfg.Mock)
	s.setString("mock-dir", fc.MockDir, &cfg.MockDir)

	s.setString("spi-port", fc.SPIPort, &cfg.SPIPort)
	s.setString("dc-pin", fc.DCPin, &cfg.DCPin)
	s.setString("cs-pin", fc.CSPin, &cfg.CSPin)
	s.setString("reset-pin", fc.ResetPin, &cfg.ResetPin)
	s.setString("busy-pin", fc.BusyPin, &cfg.BusyPin)
	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)
	s.setInt("vcom-mv", fc.VcomMV, &cfg.VcomMV)
	s.setInt("max-transfer", fc.MaxTransfer, &cfg.MaxTransfer)

	return nil
}

// FileExists reports whether the given path exists and is a regular file.
func FileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}
