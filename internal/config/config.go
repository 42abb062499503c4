// Package config loads the YAML configuration file with strict field
// validation, mirroring the defaults of the earliest iteration of the
// tracker (40 carts, "Ready for Walk up" as the seeded status).
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the full process configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Fleet   FleetConfig   `yaml:"fleet"`
	Auth    AuthConfig    `yaml:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Dir     string `yaml:"dir"`     // data directory (json backend, users file)
	DB      string `yaml:"db"`      // database path (sqlite backend)

	// RetentionDays prunes history older than this many days at append
	// time. Zero keeps everything.
	RetentionDays int `yaml:"retention_days"`
}

// FleetConfig defines the fixed registry and the status set.
type FleetConfig struct {
	// Count and Prefix generate "Cart 1".."Cart N" style names.
	// Names, when non-empty, overrides generation.
	Count  int      `yaml:"count"`
	Prefix string   `yaml:"prefix"`
	Names  []string `yaml:"names"`

	Statuses      []string `yaml:"statuses"`
	Fallback      string   `yaml:"fallback"`
	DefaultStatus string   `yaml:"default_status"`
	CommentMaxLen int      `yaml:"comment_max_len"`
}

// AuthConfig configures the login gate.
type AuthConfig struct {
	Enabled           bool `yaml:"enabled"`
	SessionTTLMinutes int  `yaml:"session_ttl_minutes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Listen: ":8080"},
		Storage: StorageConfig{
			Backend: BackendJSON,
			Dir:     "./data",
			DB:      "./carts.db",
		},
		Fleet: FleetConfig{
			Count:         40,
			Prefix:        "Cart ",
			Statuses:      fleet.DefaultStatuses,
			Fallback:      fleet.Fallback,
			DefaultStatus: "Ready for Walk up",
			CommentMaxLen: 200,
		},
		Auth: AuthConfig{
			Enabled:           true,
			SessionTTLMinutes: 720,
		},
	}
}

// Load reads the config file at path, layered over the defaults. An empty
// path or a missing file yields the defaults; unknown keys (typos) and
// invalid values are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// Strict decoding catches typos like "statues:" for "statuses:".
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}

	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the json backend")
		}
	case BackendSQLite:
		if c.Storage.DB == "" {
			return fmt.Errorf("storage.db is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("storage.retention_days must not be negative")
	}

	if len(c.Fleet.Names) == 0 && c.Fleet.Count <= 0 {
		return fmt.Errorf("fleet.count must be positive when fleet.names is empty")
	}
	if len(c.Fleet.Statuses) == 0 {
		return fmt.Errorf("fleet.statuses must not be empty")
	}
	if c.Fleet.Fallback == "" {
		return fmt.Errorf("fleet.fallback is required")
	}
	if c.Fleet.CommentMaxLen < 0 {
		return fmt.Errorf("fleet.comment_max_len must not be negative")
	}

	if c.Auth.Enabled && c.Auth.SessionTTLMinutes <= 0 {
		return fmt.Errorf("auth.session_ttl_minutes must be positive")
	}

	return nil
}

// CartNames returns the registry identifiers: the explicit list when given,
// otherwise the generated "Cart 1".."Cart N" names.
func (c *Config) CartNames() []string {
	if len(c.Fleet.Names) > 0 {
		return c.Fleet.Names
	}
	return fleet.GeneratedNames(c.Fleet.Count, c.Fleet.Prefix)
}
