package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSeedURL is the endpoint the console seeds itself from when no
// other source is configured.
const DefaultSeedURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Seed configuration. SeedFile, when set, takes priority over SeedURL.
	SeedURL     string
	SeedFile    string
	SeedTimeout time.Duration

	// Logging configuration
	LogLevel string
}

// fileConfig is the YAML shape of an optional config file. Every field is
// optional; unset fields keep their defaults and environment variables
// override both.
type fileConfig struct {
	ServerPort   string `yaml:"server_port"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
	IdleTimeout  string `yaml:"idle_timeout"`
	SeedURL      string `yaml:"seed_url"`
	SeedFile     string `yaml:"seed_file"`
	SeedTimeout  string `yaml:"seed_timeout"`
	LogLevel     string `yaml:"log_level"`
}

// Load builds the configuration in three layers: defaults, then an
// optional YAML file, then environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerPort:   "8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		SeedURL:      DefaultSeedURL,
		SeedTimeout:  30 * time.Second,
		LogLevel:     "info",
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile overlays values from a YAML config file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.ServerPort != "" {
		c.ServerPort = fc.ServerPort
	}
	if fc.SeedURL != "" {
		c.SeedURL = fc.SeedURL
	}
	if fc.SeedFile != "" {
		c.SeedFile = fc.SeedFile
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{
		{fc.ReadTimeout, &c.ReadTimeout},
		{fc.WriteTimeout, &c.WriteTimeout},
		{fc.IdleTimeout, &c.IdleTimeout},
		{fc.SeedTimeout, &c.SeedTimeout},
	} {
		if d.raw == "" {
			continue
		}
		dur, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse config file duration %q: %w", d.raw, err)
		}
		*d.dst = dur
	}

	return nil
}

// applyEnv overlays values from environment variables.
func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.ReadTimeout = getEnvDuration("HTTP_READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvDuration("HTTP_WRITE_TIMEOUT", c.WriteTimeout)
	c.IdleTimeout = getEnvDuration("HTTP_IDLE_TIMEOUT", c.IdleTimeout)
	c.SeedURL = getEnv("SEED_URL", c.SeedURL)
	c.SeedFile = getEnv("SEED_FILE", c.SeedFile)
	c.SeedTimeout = getEnvDuration("SEED_TIMEOUT", c.SeedTimeout)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric: %q", c.ServerPort)
	}
	if c.SeedURL == "" && c.SeedFile == "" {
		return fmt.Errorf("one of SEED_URL or SEED_FILE is required")
	}
	if c.SeedTimeout < time.Second {
		return fmt.Errorf("SEED_TIMEOUT must be at least 1s")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
