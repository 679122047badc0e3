package cliconfig

import "os"

// Environment variable names understood by ApplyEnvConfig.
const (
	envFullRefreshInterval = "INKWIRE_FULL_REFRESH_INTERVAL"
	envCoalesceDelay       = "INKWIRE_COALESCE_DELAY"
	envDefaultFourLevel    = "INKWIRE_DEFAULT_FOUR_LEVEL"
	envMock                = "INKWIRE_MOCK"
	envMockDir             = "INKWIRE_MOCK_DIR"
	envSPIPort             = "INKWIRE_SPI_PORT"
	envVcomMV              = "INKWIRE_VCOM_MV"
)

// ApplyEnvConfig applies INKWIRE_* environment variables to the Config.
// Values override file config but are overridden by explicitly set flags
// (checked via the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDuration("full-refresh-interval", os.Getenv(envFullRefreshInterval), &cfg.FullRefreshInterval); err != nil {
		return err
	}
	if err := s.setDuration("coalesce-delay", os.Getenv(envCoalesceDelay), &cfg.CoalesceDelay); err != nil {
		return err
	}
	s.setBoolFromString("default-four-level", os.Getenv(envDefaultFourLevel), &cfg.DefaultFourLevel)
	s.setBoolFromString("mock", os.Getenv(envMock), &cfg.Mock)
	s.setString("mock-dir", os.Getenv(envMockDir), &cfg.MockDir)
	s.setString("spi-port", os.Getenv(envSPIPort), &cfg.SPIPort)
	if err := s.setIntFromString("vcom-mv", os.Getenv(envVcomMV), &cfg.VcomMV); err != nil {
		return err
	}

	return nil
}
