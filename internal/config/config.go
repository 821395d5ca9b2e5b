// Package config loads sensor and recorder settings from a JSON file.
// All fields are pointers so a partial file only overrides what it
// names; unset fields fall back to the documented defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/banshee-data/netft/internal/netft"
)

// Defaults applied for fields absent from the config file.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultDBPath       = "netft_readings.db"
)

// SensorConfig is the on-disk configuration schema.
type SensorConfig struct {
	Host            *string  `json:"host,omitempty"`
	UDPPort         *int     `json:"udp_port,omitempty"`
	TCPPort         *int     `json:"tcp_port,omitempty"`
	Timeout         *string  `json:"timeout,omitempty"` // duration string like "2s"
	CountsPerForce  *float64 `json:"counts_per_force,omitempty"`
	CountsPerTorque *float64 `json:"counts_per_torque,omitempty"`
	PollInterval    *string  `json:"poll_interval,omitempty"` // duration string like "100ms"
	DBPath          *string  `json:"db_path,omitempty"`
}

// Load reads and parses a config file. A missing file is an error; use
// an empty SensorConfig when no file is configured.
func Load(path string) (*SensorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg SensorConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ClientConfig assembles a netft.Config from the file values plus
// defaults. Host and positive count divisors are required; netft.New
// performs the final validation.
func (c *SensorConfig) ClientConfig() (netft.Config, error) {
	cfg := netft.Config{}
	if c.Host != nil {
		cfg.Host = *c.Host
	}
	if c.UDPPort != nil {
		cfg.UDPPort = *c.UDPPort
	}
	if c.TCPPort != nil {
		cfg.TCPPort = *c.TCPPort
	}
	if c.Timeout != nil {
		d, err := time.ParseDuration(*c.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid timeout %q: %w", *c.Timeout, err)
		}
		cfg.Timeout = d
	}
	if c.CountsPerForce != nil {
		cfg.Scale.CountsPerForce = *c.CountsPerForce
	}
	if c.CountsPerTorque != nil {
		cfg.Scale.CountsPerTorque = *c.CountsPerTorque
	}
	return cfg, nil
}

// PollIntervalDuration returns the configured poll cadence or the default.
func (c *SensorConfig) PollIntervalDuration() (time.Duration, error) {
	if c.PollInterval == nil {
		return DefaultPollInterval, nil
	}
	d, err := time.ParseDuration(*c.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll_interval %q: %w", *c.PollInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("poll_interval must be positive, got %s", d)
	}
	return d, nil
}

// DBPathOrDefault returns the configured readings database path.
func (c *SensorConfig) DBPathOrDefault() string {
	if c.DBPath != nil && *c.DBPath != "" {
		return *c.DBPath
	}
	return DefaultDBPath
}
