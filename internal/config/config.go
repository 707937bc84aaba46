package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/repshape/internal/storage"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver     string         `yaml:"driver"`
	Path       string         `yaml:"path"`
	Migrations string         `yaml:"migrations"`
	Postgres   DatabaseConfig `yaml:"postgres"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File enables rotating file output in addition to stdout.
	File string `yaml:"file"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Options converts the storage section for storage.Open.
func (s StorageConfig) Options() storage.Options {
	return storage.Options{
		Driver:         s.Driver,
		Path:           s.Path,
		DSN:            s.Postgres.DSN(),
		MigrationsPath: s.Migrations,
	}
}

// Default returns the configuration used when no file is given: a local
// SQLite database and an HTTP server on localhost.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage: StorageConfig{
			Driver:     "sqlite",
			Path:       "data/repshape.db",
			Migrations: "migrations",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix REPSHAPE_ and underscore-separated paths:
//
//	REPSHAPE_SERVER_HOST, REPSHAPE_SERVER_PORT,
//	REPSHAPE_STORAGE_DRIVER, REPSHAPE_STORAGE_PATH, REPSHAPE_STORAGE_MIGRATIONS,
//	REPSHAPE_DB_HOST, REPSHAPE_DB_PORT, REPSHAPE_DB_NAME,
//	REPSHAPE_DB_USER, REPSHAPE_DB_PASSWORD, REPSHAPE_DB_SSLMODE,
//	REPSHAPE_LOG_LEVEL, REPSHAPE_LOG_FILE
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("REPSHAPE_SERVER_HOST", &cfg.Server.Host)
	num("REPSHAPE_SERVER_PORT", &cfg.Server.Port)
	str("REPSHAPE_STORAGE_DRIVER", &cfg.Storage.Driver)
	str("REPSHAPE_STORAGE_PATH", &cfg.Storage.Path)
	str("REPSHAPE_STORAGE_MIGRATIONS", &cfg.Storage.Migrations)
	str("REPSHAPE_DB_HOST", &cfg.Storage.Postgres.Host)
	num("REPSHAPE_DB_PORT", &cfg.Storage.Postgres.Port)
	str("REPSHAPE_DB_NAME", &cfg.Storage.Postgres.Name)
	str("REPSHAPE_DB_USER", &cfg.Storage.Postgres.User)
	str("REPSHAPE_DB_PASSWORD", &cfg.Storage.Postgres.Password)
	str("REPSHAPE_DB_SSLMODE", &cfg.Storage.Postgres.SSLMode)
	str("REPSHAPE_LOG_LEVEL", &cfg.Log.Level)
	str("REPSHAPE_LOG_FILE", &cfg.Log.File)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for sqlite")
		}
	case "postgres":
		db := c.Storage.Postgres
		if db.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if db.Port == 0 {
			return fmt.Errorf("storage.postgres.port is required")
		}
		if db.Name == "" {
			return fmt.Errorf("storage.postgres.name is required")
		}
		if db.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
		if c.Storage.Migrations == "" {
			return fmt.Errorf("storage.migrations is required for postgres")
		}
	default:
		return fmt.Errorf("storage.driver must be sqlite or postgres, got %q", c.Storage.Driver)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
