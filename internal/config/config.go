// Package config loads PointLedger settings.
//
// Precedence: YAML config file, then defaults for any zero values, then
// POINTLEDGER_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MinPollInterval is the finest allowed rollover polling cadence.
const MinPollInterval = time.Minute

// Config holds every setting.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Rollover RolloverConfig `yaml:"rollover"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

// LogConfig configures the console and rolling file logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// RolloverConfig configures the day boundary check.
type RolloverConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

// HTTPConfig configures the local JSON adapter.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "pointledger", "config.yml"), nil
}

// Load reads path (a missing file is fine), fills defaults and applies env overrides.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Rollover.PollInterval < MinPollInterval {
		cfg.Rollover.PollInterval = MinPollInterval
	}
	return cfg, nil
}

func loadYAML(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read config '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not parse config '%s': %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "file"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = 28
	}
	if cfg.Rollover.PollInterval == 0 {
		cfg.Rollover.PollInterval = time.Minute
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "127.0.0.1:8787"
	}
}

func applyEnvOverrides(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("POINTLEDGER_STORE", &cfg.Store.Backend)
	setString("POINTLEDGER_STORE_PATH", &cfg.Store.Path)
	setString("POINTLEDGER_REDIS_ADDR", &cfg.Store.RedisAddr)
	setString("POINTLEDGER_REDIS_PASSWORD", &cfg.Store.RedisPassword)
	setString("POINTLEDGER_REDIS_PREFIX", &cfg.Store.RedisPrefix)
	setString("POINTLEDGER_LOG_LEVEL", &cfg.Log.Level)
	setString("POINTLEDGER_LOG_PATH", &cfg.Log.Path)
	setString("POINTLEDGER_HTTP_ADDR", &cfg.HTTP.Addr)

	if v := os.Getenv("POINTLEDGER_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POINTLEDGER_REDIS_DB: %w", err)
		}
		cfg.Store.RedisDB = n
	}
	if v := os.Getenv("POINTLEDGER_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid POINTLEDGER_POLL_INTERVAL: %w", err)
		}
		cfg.Rollover.PollInterval = d
	}
	return nil
}
