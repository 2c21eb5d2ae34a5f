package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the calculator service.
type Server struct {
	// Network
	ListenAddress string `yaml:"listen_address"`

	// Database
	Database Database `yaml:"database"`

	// Security: bcrypt hash of the API key required for mutating build
	// endpoints. Empty disables the check.
	APIKeyHash string `yaml:"api_key_hash"`

	// Logging
	Log Log `yaml:"log"`
}

// Database holds connection parameters. Dialect selects the backend:
// "sqlite" (default, local file) or "postgres".
type Database struct {
	Dialect string `yaml:"dialect"`

	// SQLite
	Path string `yaml:"path"`

	// PostgreSQL
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the connection string for the configured dialect.
func (d Database) DSN() string {
	if d.Dialect == "postgres" {
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
		)
	}
	return d.Path
}

// Log holds logging configuration.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json

	// Optional rotating log file; empty disables file logging.
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// Defaults returns the configuration used when no file is present: an
// embedded SQLite store next to the binary and text logging at info level.
func Defaults() Server {
	return Server{
		ListenAddress: "127.0.0.1:8480",
		Database: Database{
			Dialect: "sqlite",
			Path:    "zzzcalc.db",
			SSLMode: "disable",
		},
		Log: Log{
			Level:          "info",
			Format:         "text",
			FileMaxSizeMB:  20,
			FileMaxBackups: 3,
			FileMaxAgeDays: 14,
		},
	}
}

// Load reads server configuration from a YAML file. A missing file is not
// an error: the defaults are returned as-is.
func Load(path string) (Server, error) {
	cfg := Defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Database.Dialect != "sqlite" && cfg.Database.Dialect != "postgres" {
		return cfg, fmt.Errorf("unknown database dialect %q", cfg.Database.Dialect)
	}
	return cfg, nil
}
