// Package config holds server configuration: where AbletonOSC listens,
// where it sends replies, and how long to wait for them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// OSC connection to the AbletonOSC remote script.
	OSC OSCConfig `yaml:"osc"`

	// Logging.
	Logging LoggingConfig `yaml:"logging"`
}

// OSCConfig describes the UDP endpoints of the AbletonOSC bridge.
type OSCConfig struct {
	Host        string        `yaml:"host"`
	SendPort    int           `yaml:"send_port"`
	ReceivePort int           `yaml:"receive_port"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration matching a stock AbletonOSC install.
func Default() *Config {
	return &Config{
		OSC: OSCConfig{
			Host:        "127.0.0.1",
			SendPort:    11000,
			ReceivePort: 11001,
			Timeout:     5 * time.Second,
		},
	}
}

// Load reads configuration with the usual precedence: defaults, then the
// YAML file at path (if path is non-empty it must exist), then environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from ABLETON_OSC_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("ABLETON_OSC_HOST"); v != "" {
		c.OSC.Host = v
	}
	if v := os.Getenv("ABLETON_OSC_SEND_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ABLETON_OSC_SEND_PORT: %w", err)
		}
		c.OSC.SendPort = port
	}
	if v := os.Getenv("ABLETON_OSC_RECEIVE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ABLETON_OSC_RECEIVE_PORT: %w", err)
		}
		c.OSC.ReceivePort = port
	}
	if v := os.Getenv("ABLETON_OSC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ABLETON_OSC_TIMEOUT: %w", err)
		}
		c.OSC.Timeout = d
	}
	return nil
}

// Validate rejects configurations that cannot possibly work.
func (c *Config) Validate() error {
	if c.OSC.Host == "" {
		return fmt.Errorf("osc host cannot be empty")
	}
	if c.OSC.SendPort <= 0 || c.OSC.SendPort > 65535 {
		return fmt.Errorf("osc send_port out of range: %d", c.OSC.SendPort)
	}
	if c.OSC.ReceivePort <= 0 || c.OSC.ReceivePort > 65535 {
		return fmt.Errorf("osc receive_port out of range: %d", c.OSC.ReceivePort)
	}
	if c.OSC.SendPort == c.OSC.ReceivePort {
		return fmt.Errorf("osc send_port and receive_port must differ")
	}
	if c.OSC.Timeout <= 0 {
		return fmt.Errorf("osc timeout must be positive")
	}
	return nil
}
