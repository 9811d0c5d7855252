package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultPort     = "8082"
	DefaultDBDriver = "sqlite3"
	DefaultDBDSN    = "kegiatan.db"

	devSecret = "kegiatan-dev-secret-change-me"
)

type Config struct {
	Port     string `yaml:"port"`
	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`
	Secret   string `yaml:"secret"`

	Env          string `yaml:"env"`
	LogLevel     string `yaml:"log_level"`
	LogPretty    bool   `yaml:"log_pretty"`
	Timezone     string `yaml:"timezone"`
	StaticDir    string `yaml:"static_dir"`
	CookieSecure bool   `yaml:"cookie_secure"`

	MaxOpenConns           int `yaml:"max_open_conns"`
	MaxIdleConns           int `yaml:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `yaml:"conn_max_lifetime_seconds"`

	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

func Default() *Config {
	return &Config{
		Port:                   DefaultPort,
		DBDriver:               DefaultDBDriver,
		DBDSN:                  DefaultDBDSN,
		Env:                    "development",
		LogLevel:               "info",
		Timezone:               "Local",
		StaticDir:              "public",
		ShutdownTimeoutSeconds: 10,
	}
}

// Load reads the YAML file on top of the defaults. A missing file is not an
// error.
func Load(filename string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return config, nil
}

// LoadWithEnv loads .env (if present), then the YAML file, then applies
// environment overrides.
func LoadWithEnv(filename string) (*Config, error) {
	_ = godotenv.Load()

	config, err := Load(filename)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PORT":           &c.Port,
		"DB_DRIVER":      &c.DBDriver,
		"DB_DSN":         &c.DBDSN,
		"SESSION_SECRET": &c.Secret,
		"APP_ENV":        &c.Env,
		"LOG_LEVEL":      &c.LogLevel,
		"TIMEZONE":       &c.Timezone,
		"STATIC_DIR":     &c.StaticDir,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"COOKIE_SECURE": &c.CookieSecure,
		"LOG_PRETTY":    &c.LogPretty,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("db_dsn is required")
	}

	if c.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("secret is required outside development")
		}
		c.Secret = devSecret
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

// Location is the zone in which activity end dates are evaluated.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
