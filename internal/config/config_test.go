package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"DB_PATH", "PORT", "TZ", "SECRET_KEY", "LOG_LEVEL", "LOG_FORMAT",
	"WELLNESS_WINDOW_DAYS", "INSIGHT_WINDOW_DAYS", "TOKEN_TTL",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blossom.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
	if cfg.AuthEnabled() {
		t.Fatal("expected auth disabled without a secret")
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location())
	}
}

func TestLoadLayersFileThenEnvironment(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfigFile(t, `
db_path: /var/lib/blossom/journal.db
port: "9090"
timezone: Europe/Berlin
log_format: json
wellness_window_days: 21
token_ttl: 48h
`)
	t.Setenv("PORT", "7070")
	t.Setenv("INSIGHT_WINDOW_DAYS", "45")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.DBPath != "/var/lib/blossom/journal.db" {
		t.Fatalf("expected db path from file, got %q", cfg.DBPath)
	}
	if cfg.Port != "7070" {
		t.Fatalf("expected env port override, got %q", cfg.Port)
	}
	if cfg.Timezone != "Europe/Berlin" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected timezone/format %q/%q", cfg.Timezone, cfg.LogFormat)
	}
	if cfg.WellnessWindowDays != 21 || cfg.InsightWindowDays != 45 {
		t.Fatalf("unexpected windows %d/%d", cfg.WellnessWindowDays, cfg.InsightWindowDays)
	}
	if cfg.TokenTTL != 48*time.Hour {
		t.Fatalf("expected 48h token ttl, got %s", cfg.TokenTTL)
	}
}

func TestLoadRejectsUnknownYAMLField(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfigFile(t, "prot: 8080\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "prot") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearConfigEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "non numeric port", mutate: func(cfg *Config) { cfg.Port = "http" }},
		{name: "port out of range", mutate: func(cfg *Config) { cfg.Port = "70000" }},
		{name: "empty db path", mutate: func(cfg *Config) { cfg.DBPath = " " }},
		{name: "unknown timezone", mutate: func(cfg *Config) { cfg.Timezone = "Mars/Olympus" }},
		{name: "unknown log level", mutate: func(cfg *Config) { cfg.LogLevel = "chatty" }},
		{name: "unknown log format", mutate: func(cfg *Config) { cfg.LogFormat = "xml" }},
		{name: "zero wellness window", mutate: func(cfg *Config) { cfg.WellnessWindowDays = 0 }},
		{name: "negative insight window", mutate: func(cfg *Config) { cfg.InsightWindowDays = -3 }},
		{name: "zero token ttl", mutate: func(cfg *Config) { cfg.TokenTTL = 0 }},
		{name: "short secret", mutate: func(cfg *Config) { cfg.SecretKey = "too-short-secret" }},
		{name: "placeholder secret", mutate: func(cfg *Config) { cfg.SecretKey = insecureSecretPlaceholder }},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := Default()
			testCase.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WELLNESS_WINDOW_DAYS", "two weeks")
	if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for window, got %v", err)
	}

	clearConfigEnv(t)
	t.Setenv("TOKEN_TTL", "forever")
	if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for ttl, got %v", err)
	}
}

func TestResolveSecretKey(t *testing.T) {
	cfg := Default()
	if _, err := cfg.ResolveSecretKey(); err == nil {
		t.Fatal("expected error when secret is empty")
	}

	valid := "0123456789abcdef0123456789abcdef"
	cfg.SecretKey = "  " + valid + "  "
	secret, err := cfg.ResolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
	if !cfg.AuthEnabled() {
		t.Fatal("expected auth enabled with a secret")
	}
}
