// Package config loads server and CLI settings from defaults, an optional
// YAML file and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port      string   `yaml:"port"`
	PublicURL string   `yaml:"public_url"`
	LogLevel  string   `yaml:"log_level"`
	Origins   []string `yaml:"cors_origins"`
	Store     Store    `yaml:"store"`
}

type Store struct {
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	SQLitePath    string `yaml:"sqlite_path"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Port:     "7521",
		LogLevel: "info",
		Origins:  []string{"*"},
		Store: Store{
			Driver:        DriverSQLite,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "weekboard",
			SQLitePath:    "data/weekboard.db",
		},
	}
}

// Load builds the configuration. path may be empty; otherwise it names a YAML
// file whose values override the defaults. Environment variables win over both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.PublicURL = getEnv("PUBLIC_URL", cfg.PublicURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.Origins = splitList(origins)
	}
	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.MongoURI = getEnv("MONGODB_URI", cfg.Store.MongoURI)
	cfg.Store.MongoDatabase = getEnv("MONGODB_DATABASE", cfg.Store.MongoDatabase)
	cfg.Store.SQLitePath = getEnv("SQLITE_PATH", cfg.Store.SQLitePath)

	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + cfg.Port
	}
	return cfg, cfg.Validate()
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unknown store driver %q (want %s, %s or %s)", c.Store.Driver, DriverMemory, DriverSQLite, DriverMongo)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	return nil
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
