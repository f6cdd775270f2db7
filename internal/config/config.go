package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration. Loaded once at startup and passed
// by value into the components that need it; never mutated at runtime.
type Config struct {
	WordPress WordPressConfig `yaml:"wordpress"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	LogLevel  string          `yaml:"log_level"`
}

// WordPressConfig holds the remote site URL and the service account.
type WordPressConfig struct {
	URL      string        `yaml:"url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DatabaseConfig configures the SQLite override store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ReconcileConfig configures the orphan-override sweep.
type ReconcileConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval"`
}

// ParseInterval returns the sweep interval as time.Duration.
func (r ReconcileConfig) ParseInterval() time.Duration {
	d, err := time.ParseDuration(r.Interval)
	if err != nil {
		return time.Hour
	}
	return d
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		WordPress: WordPressConfig{Timeout: 30 * time.Second},
		Database:  DatabaseConfig{Path: "./pressdesk.db"},
		Server:    ServerConfig{Port: 8080},
		Reconcile: ReconcileConfig{Enabled: true, Interval: "1h"},
		LogLevel:  "info",
	}
}

// Load reads configuration from an optional YAML file and applies env
// var overrides. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WordPress.URL == "" {
		return fmt.Errorf("wordpress url is required (WORDPRESS_URL)")
	}
	if c.WordPress.Username == "" || c.WordPress.Password == "" {
		return fmt.Errorf("wordpress service credentials are required (WORDPRESS_USERNAME, WORDPRESS_PASSWORD)")
	}
	return nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORDPRESS_URL"); v != "" {
		cfg.WordPress.URL = v
	}
	if v := os.Getenv("WORDPRESS_USERNAME"); v != "" {
		cfg.WordPress.Username = v
	}
	if v := os.Getenv("WORDPRESS_PASSWORD"); v != "" {
		cfg.WordPress.Password = v
	}
	if v := os.Getenv("PRESSDESK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PRESSDESK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PRESSDESK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
