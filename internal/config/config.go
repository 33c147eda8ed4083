package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	minSecretKeyLength        = 32
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	DBPath             string        `yaml:"db_path"`
	Port               string        `yaml:"port"`
	Timezone           string        `yaml:"timezone"`
	SecretKey          string        `yaml:"secret_key"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
	WellnessWindowDays int           `yaml:"wellness_window_days"`
	InsightWindowDays  int           `yaml:"insight_window_days"`
	TokenTTL           time.Duration `yaml:"token_ttl"`
}

func Default() Config {
	return Config{
		DBPath:             filepath.Join("data", "blossom.db"),
		Port:               "8080",
		Timezone:           "UTC",
		LogLevel:           "info",
		LogFormat:          "console",
		WellnessWindowDays: 14,
		InsightWindowDays:  30,
		TokenTTL:           30 * 24 * time.Hour,
	}
}

// Load layers the YAML file at path (when non-empty) and then environment
// variables over the defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(raw []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Timezone = getEnv("TZ", cfg.Timezone)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.WellnessWindowDays, err = getEnvInt("WELLNESS_WINDOW_DAYS", cfg.WellnessWindowDays); err != nil {
		return err
	}
	if cfg.InsightWindowDays, err = getEnvInt("INSIGHT_WINDOW_DAYS", cfg.InsightWindowDays); err != nil {
		return err
	}
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: TOKEN_TTL: %v", ErrInvalidConfig, err)
		}
		cfg.TokenTTL = ttl
	}
	return nil
}

func (cfg Config) Validate() error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q must be a number between 1 and 65535", ErrInvalidConfig, cfg.Port)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be console or json", ErrInvalidConfig, cfg.LogFormat)
	}
	if cfg.WellnessWindowDays <= 0 || cfg.InsightWindowDays <= 0 {
		return fmt.Errorf("%w: analysis windows must be positive", ErrInvalidConfig)
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("%w: token_ttl must be positive", ErrInvalidConfig)
	}
	if cfg.SecretKey != "" {
		if _, err := cfg.ResolveSecretKey(); err != nil {
			return err
		}
	}
	return nil
}

// AuthEnabled reports whether API requests must carry a signed token.
func (cfg Config) AuthEnabled() bool {
	return cfg.SecretKey != ""
}

func (cfg Config) ResolveSecretKey() (string, error) {
	secret := strings.TrimSpace(cfg.SecretKey)
	switch {
	case secret == "":
		return "", fmt.Errorf("%w: secret_key is required", ErrInvalidConfig)
	case secret == insecureSecretPlaceholder:
		return "", fmt.Errorf("%w: secret_key uses the insecure placeholder", ErrInvalidConfig)
	case len(secret) < minSecretKeyLength:
		return "", fmt.Errorf("%w: secret_key must be at least %d characters", ErrInvalidConfig, minSecretKeyLength)
	}
	return secret, nil
}

// Location never fails on a validated config.
func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
	}
	return value, nil
}
