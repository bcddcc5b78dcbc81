package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const MAX_NUMBER_CACHED = 3

type Config struct {
	Port          int    `yaml:"port"`
	GinMode       string `yaml:"gin_mode"`
	LogLevel      string `yaml:"log_level"`
	RedisURL      string `yaml:"redis_url"`
	ElasticURL    string `yaml:"elastic_url"`
	ElasticIndex  string `yaml:"elastic_index"`
	ActivityLimit int    `yaml:"activity_limit"`
}

func Default() *Config {
	return &Config{
		Port:          8080,
		GinMode:       "release",
		LogLevel:      "info",
		ElasticIndex:  "books",
		ActivityLimit: MAX_NUMBER_CACHED,
	}
}

// Load applies the YAML file at path (when path is not empty) and then the
// environment on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnvInt("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.ElasticURL = getEnv("ELASTIC_URL", cfg.ElasticURL)
	cfg.ElasticIndex = getEnv("ELASTIC_INDEX", cfg.ElasticIndex)
	cfg.ActivityLimit = getEnvInt("ACTIVITY_LIMIT", cfg.ActivityLimit)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode: %q", cfg.GinMode)
	}
	if cfg.ActivityLimit <= 0 {
		return fmt.Errorf("invalid activity limit: %d (must be positive)", cfg.ActivityLimit)
	}
	return nil
}

func (cfg *Config) Addr() string {
	return ":" + strconv.Itoa(cfg.Port)
}

func (cfg *Config) SlogLevel() slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
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

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
