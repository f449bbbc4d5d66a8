// Package config handles library and demo-server configuration: one driver
// sub-config per manager kind, the table definition location, and YAML file
// plus environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Driver selects and parameterizes one driver for a manager kind.
type Driver struct {
	// Driver is the driver key ("slice", "sql", "cookie", "html", ...).
	// Empty selects the manager's default.
	Driver string `yaml:"driver"`
	// Options carries driver-specific settings (DSN, base path, ...).
	Options map[string]string `yaml:"options"`
}

// Option returns a driver option value, or def when unset.
func (d Driver) Option(key, def string) string {
	if v, ok := d.Options[key]; ok && v != "" {
		return v
	}
	return def
}

// Tables configures the bulk table-definition loading mechanism.
type Tables struct {
	// Location is a directory of *.yaml table definitions, or a single
	// definition file.
	Location string `yaml:"location"`
}

// Config is the full configuration consumed by the facade and the demo
// server.
type Config struct {
	Store     Driver `yaml:"store"`
	Session   Driver `yaml:"session"`
	View      Driver `yaml:"view"`
	Paginator Driver `yaml:"paginator"`
	Tables    Tables `yaml:"tables"`

	// PageSize is the default rows-per-page for tables that declare none.
	PageSize int `yaml:"page_size"`

	// Demo server settings.
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"` // debug, info, warn, error
	Env        string `yaml:"env"`       // "development" (default) or "production"
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Store:      Driver{Driver: "slice"},
		Session:    Driver{Driver: "memory"},
		View:       Driver{Driver: "html"},
		Paginator:  Driver{Driver: "offset"},
		PageSize:   25,
		ListenAddr: ":8080",
		LogLevel:   "info",
		Env:        "development",
	}
}

// Load reads configuration from an optional YAML file, then overlays
// CARPENTER_* environment variables, then fills remaining defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		raw, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CARPENTER_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("CARPENTER_SESSION_DRIVER"); v != "" {
		cfg.Session.Driver = v
	}
	if v := os.Getenv("CARPENTER_VIEW_DRIVER"); v != "" {
		cfg.View.Driver = v
	}
	if v := os.Getenv("CARPENTER_PAGINATOR_DRIVER"); v != "" {
		cfg.Paginator.Driver = v
	}
	if v := os.Getenv("CARPENTER_TABLES_LOCATION"); v != "" {
		cfg.Tables.Location = v
	}
	if v := os.Getenv("CARPENTER_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("CARPENTER_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("CARPENTER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CARPENTER_ENV"); v != "" {
		cfg.Env = v
	}
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = def.Store.Driver
	}
	if cfg.Session.Driver == "" {
		cfg.Session.Driver = def.Session.Driver
	}
	if cfg.View.Driver == "" {
		cfg.View.Driver = def.View.Driver
	}
	if cfg.Paginator.Driver == "" {
		cfg.Paginator.Driver = def.Paginator.Driver
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Env == "" {
		cfg.Env = def.Env
	}
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be KEY=VALUE; comments (#) and blanks are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Env vars already set take precedence.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes matching surrounding double or single quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
