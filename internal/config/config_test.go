package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DefaultLanguage != "auto" {
		t.Errorf("DefaultLanguage = %s, want auto", cfg.DefaultLanguage)
	}
	if cfg.MorphCacheSize != 4096 {
		t.Errorf("MorphCacheSize = %d, want 4096", cfg.MorphCacheSize)
	}
	if cfg.ASCIIFastPath {
		t.Error("ASCIIFastPath must default to off")
	}
	if !cfg.AuditEnabled {
		t.Error("AuditEnabled must default to on")
	}
	if cfg.RateLimitRPS != 50 || cfg.RateLimitBurst != 100 {
		t.Errorf("rate limit = %f/%d, want 50/100", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DEFAULT_LANGUAGE", "uk")
	t.Setenv("ASCII_FASTPATH_ENABLED", "true")
	t.Setenv("MORPH_CACHE_SIZE", "128")
	t.Setenv("ENTITY_HINTS_TIMEOUT", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %s", cfg.Port)
	}
	if cfg.DefaultLanguage != "uk" {
		t.Errorf("DefaultLanguage = %s", cfg.DefaultLanguage)
	}
	if !cfg.ASCIIFastPath {
		t.Error("ASCIIFastPath not picked up")
	}
	if cfg.MorphCacheSize != 128 {
		t.Errorf("MorphCacheSize = %d", cfg.MorphCacheSize)
	}
	if cfg.EntityHintsTimeout != 250*time.Millisecond {
		t.Errorf("EntityHintsTimeout = %s", cfg.EntityHintsTimeout)
	}
}

// Непарсящееся значение окружения откатывается к значению по умолчанию
func TestLoadConfigMalformedEnv(t *testing.T) {
	t.Setenv("MORPH_CACHE_SIZE", "many")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MorphCacheSize != 4096 {
		t.Errorf("MorphCacheSize = %d, want fallback 4096", cfg.MorphCacheSize)
	}
	if cfg.RateLimitRPS != 50 {
		t.Errorf("RateLimitRPS = %f, want fallback 50", cfg.RateLimitRPS)
	}
}

func validConfig() *Config {
	return &Config{
		Port:                "8080",
		ServiceDatabasePath: "service.db",
		MaxOpenConns:        10,
		MaxIdleConns:        5,
		ConnMaxLifetime:     5 * time.Minute,
		DefaultLanguage:     "auto",
		MorphCacheSize:      4096,
		EventsBufferSize:    100,
		RateLimitRPS:        50,
		RateLimitBurst:      100,
		LogLevel:            "INFO",
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"empty port", func(c *Config) { c.Port = "" }, "port is required"},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"empty db path", func(c *Config) { c.ServiceDatabasePath = "" }, "service database path"},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 20 }, "cannot be greater"},
		{"bad language", func(c *Config) { c.DefaultLanguage = "de" }, "invalid default language"},
		{"zero cache", func(c *Config) { c.MorphCacheSize = 0 }, "cache size"},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, "RPS must be positive"},
		{"bad log level", func(c *Config) { c.LogLevel = "VERBOSE" }, "invalid log level"},
		{"hints timeout too small", func(c *Config) {
			c.EntityHintsEnabled = true
			c.EntityHintsTimeout = time.Millisecond
		}, "entity hints timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.message)
			}
		})
	}
}

// Все нарушения собираются в одно сообщение
func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = ""
	cfg.DefaultLanguage = "de"
	cfg.RateLimitRPS = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"port is required", "invalid default language", "RPS"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q misses %q", err.Error(), fragment)
		}
	}
}
