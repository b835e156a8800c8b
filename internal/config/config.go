// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"kitchenops/internal/kitchen"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port        int `yaml:"port"`
		MetricsPort int `yaml:"metrics_port"`
	} `yaml:"server"`

	Database struct {
		// Driver is "sqlite3" or "postgres"; empty selects the in-memory
		// demo store.
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	Auth struct {
		// JWTSecret enables bearer-token authentication when set.
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	Planner struct {
		HoldDecayFactor    float64 `yaml:"hold_decay_factor"`
		CriticalRatio      float64 `yaml:"critical_ratio"`
		WarningRatio       float64 `yaml:"warning_ratio"`
		ModelVersion       string  `yaml:"model_version"`
		SubstituteLimit    int     `yaml:"substitute_limit"`
		DefaultQueueLimit  int     `yaml:"default_queue_limit"`
		DefaultHoldMinutes int     `yaml:"default_hold_minutes"`
	} `yaml:"planner"`
}

// Default returns a configuration suitable for local development: demo store,
// standard ports, no authentication.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.MetricsPort = 9090
	kitchenDefaults := kitchen.DefaultConfig()
	cfg.Planner.HoldDecayFactor = kitchenDefaults.HoldDecayFactor
	cfg.Planner.CriticalRatio = kitchenDefaults.CriticalRatio
	cfg.Planner.WarningRatio = kitchenDefaults.WarningRatio
	cfg.Planner.ModelVersion = kitchenDefaults.ModelVersion
	cfg.Planner.SubstituteLimit = kitchenDefaults.SubstituteLimit
	cfg.Planner.DefaultQueueLimit = kitchenDefaults.DefaultQueueLimit
	cfg.Planner.DefaultHoldMinutes = kitchenDefaults.DefaultHoldMinutes
	return cfg
}

// Load reads the configuration file at path over the defaults, then applies
// environment overrides. A missing file is not an error: defaults plus
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KITCHENOPS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("KITCHENOPS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.MetricsPort = port
		}
	}
	if v := os.Getenv("KITCHENOPS_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("KITCHENOPS_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("KITCHENOPS_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}

// Kitchen converts the planner section to the decision layer's configuration,
// falling back to defaults for unset values.
func (c *Config) Kitchen() kitchen.Config {
	cfg := kitchen.DefaultConfig()
	if c.Planner.HoldDecayFactor > 0 {
		cfg.HoldDecayFactor = c.Planner.HoldDecayFactor
	}
	if c.Planner.CriticalRatio > 0 {
		cfg.CriticalRatio = c.Planner.CriticalRatio
	}
	if c.Planner.WarningRatio > 0 {
		cfg.WarningRatio = c.Planner.WarningRatio
	}
	if c.Planner.ModelVersion != "" {
		cfg.ModelVersion = c.Planner.ModelVersion
	}
	if c.Planner.SubstituteLimit > 0 {
		cfg.SubstituteLimit = c.Planner.SubstituteLimit
	}
	if c.Planner.DefaultQueueLimit > 0 {
		cfg.DefaultQueueLimit = c.Planner.DefaultQueueLimit
	}
	if c.Planner.DefaultHoldMinutes > 0 {
		cfg.DefaultHoldMinutes = c.Planner.DefaultHoldMinutes
	}
	return cfg
}
