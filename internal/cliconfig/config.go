// Package cliconfig holds the command-line configuration surface for the
// inkwire daemon: defaults, validation, and the file/env/flag merge order
// (flags beat environment, environment beats file, file beats defaults).
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/inkwire/inkwire/internal/domain"
)

// Config holds CLI configuration for inkwire.
type Config struct {
	// Reconciliation timing and policy.
	FullRefreshInterval time.Duration
	CoalesceDelay       time.Duration
	DefaultFourLevel    bool

	// Panel selection.
	Mock    bool
	MockDir string

	// Physical panel wiring and calibration.
	SPIPort     string
	DCPin       string
	CSPin       string
	ResetPin    string
	BusyPin     string
	Width       int
	Height      int
	VcomMV      int
	MaxTransfer int
}

// DefaultConfig returns a Config with default values. Pin defaults follow the
// common e-paper HAT wiring on a Raspberry Pi header.
func DefaultConfig() Config {
	return Config{
		FullRefreshInterval: 60 * time.Second,
		CoalesceDelay:       time.Second,
		MockDir:             "inkwire-frames",
		SPIPort:             "",
		DCPin:               "GPIO25",
		CSPin:               "GPIO8",
		ResetPin:            "GPIO17",
		BusyPin:             "GPIO24",
		Width:               800,
		Height:              600,
		VcomMV:              1520,
		MaxTransfer:         4096,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.FullRefreshInterval <= 0 {
		return fmt.Errorf("%w: full refresh interval must be positive", domain.ErrInvalidConfig)
	}
	if c.CoalesceDelay < 0 {
		return fmt.Errorf("%w: coalesce delay must not be negative", domain.ErrInvalidConfig)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: panel dimensions %dx%d", domain.ErrInvalidConfig, c.Width, c.Height)
	}
	// Two pixels per byte on the wire; an odd row count cannot be packed.
	if c.Width%2 != 0 {
		return fmt.Errorf("%w: panel width must be even, got %d", domain.ErrInvalidConfig, c.Width)
	}
	if c.MaxTransfer <= 0 {
		return fmt.Errorf("%w: max transfer must be positive", domain.ErrInvalidConfig)
	}
	if c.VcomMV <= 0 {
		return fmt.Errorf("%w: vcom must be positive millivolts", domain.ErrInvalidConfig)
	}

	if c.Mock && c.MockDir == "" {
		c.MockDir = "inkwire-frames"
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
