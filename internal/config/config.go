package config

import (
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервиса нормализации
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Базы данных
	ServiceDatabasePath string `json:"service_database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Словари: каталог с YAML-файлами поверх встроенных по умолчанию
	DictionariesDir string `json:"dictionaries_dir"`

	// Нормализация
	DefaultLanguage           string `json:"default_language"`
	MorphCacheSize            int    `json:"morph_cache_size"`
	ASCIIFastPath             bool   `json:"ascii_fastpath"`
	AllowCrossLangDiminutives bool   `json:"allow_cross_lang_diminutives"`
	EventsBufferSize          int    `json:"events_buffer_size"`

	// Подсказки распознавателя сущностей
	EntityHintsEnabled bool          `json:"entity_hints_enabled"`
	EntityHintsTimeout time.Duration `json:"entity_hints_timeout"`

	// Аудит результатов в сервисной БД
	AuditEnabled bool `json:"audit_enabled"`

	// Ограничение частоты запросов
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// LoadConfig загружает конфигурацию из переменных окружения
// с разумными значениями по умолчанию.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port: getEnv("SERVER_PORT", "8080"),

		ServiceDatabasePath: getEnv("SERVICE_DATABASE_PATH", "service.db"),

		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		DictionariesDir: os.Getenv("DICTIONARIES_DIR"),

		DefaultLanguage:           getEnv("DEFAULT_LANGUAGE", "auto"),
		MorphCacheSize:            getEnvInt("MORPH_CACHE_SIZE", 4096),
		ASCIIFastPath:             getEnvBool("ASCII_FASTPATH_ENABLED", false),
		AllowCrossLangDiminutives: getEnvBool("CROSS_LANG_DIMINUTIVES", false),
		EventsBufferSize:          getEnvInt("EVENTS_BUFFER_SIZE", 100),

		EntityHintsEnabled: getEnvBool("ENTITY_HINTS_ENABLED", false),
		EntityHintsTimeout: getEnvDuration("ENTITY_HINTS_TIMEOUT", 500*time.Millisecond),

		AuditEnabled: getEnvBool("AUDIT_ENABLED", true),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 100),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
