// Package config loads blueprint's configuration from a YAML file with
// environment-variable overrides.
//
// Precedence, highest first:
//  1. Environment variables (BLUEPRINT_SERVER_PORT, BLUEPRINT_DATABASE_PATH, ...)
//  2. YAML config file (~/.config/blueprint/config.yaml by default)
//  3. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "BLUEPRINT_"

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// ServerConfig holds the HTTP API listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DefaultPath returns the default config file location,
// ~/.config/blueprint/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "blueprint", "config.yaml"), nil
}

// Load reads configuration from configPath (the default path when empty),
// applies BLUEPRINT_* environment overrides, and fills in defaults. A missing
// config file is not an error; defaults plus environment apply.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		var err error
		configPath, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	// BLUEPRINT_SERVER_PORT -> server.port, BLUEPRINT_DATABASE_PATH ->
	// database.path, BLUEPRINT_SERVER_SHUTDOWN_TIMEOUT ->
	// server.shutdown_timeout. The first underscore after the prefix splits
	// section from field; later underscores stay in the field name.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Database.Path = filepath.Join(home, ".blueprint", "blueprint.db")
		} else {
			cfg.Database.Path = "blueprint.db"
		}
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8099
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate rejects values that would fail at startup anyway, with a clearer
// message.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not a zerolog level", c.Log.Level)
	}
	return nil
}
