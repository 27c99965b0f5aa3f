package main

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"namenorm/database"
	"namenorm/dictionaries"
	"namenorm/entityhints"
	"namenorm/internal/config"
	"namenorm/normalization"
	"namenorm/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	setupLogger(cfg.LogLevel)

	store, err := loadDictionaries(cfg)
	if err != nil {
		log.Fatalf("Ошибка загрузки словарей: %v", err)
	}

	var hints entityhints.Provider
	if cfg.EntityHintsEnabled {
		hints = entityhints.WithTimeout(entityhints.NewProseProvider(), cfg.EntityHintsTimeout)
		slog.Info("Entity hints enabled", "timeout", cfg.EntityHintsTimeout)
	}

	normalizer := normalization.NewNormalizerWithCacheSize(store, nil, hints, cfg.MorphCacheSize)

	var serviceDB *database.ServiceDB
	if cfg.AuditEnabled {
		serviceDB, err = database.NewServiceDBWithConfig(cfg.ServiceDatabasePath, database.DBConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			log.Fatalf("Ошибка открытия сервисной базы данных: %v", err)
		}
		defer serviceDB.Close()
		slog.Info("Audit store opened", "path", cfg.ServiceDatabasePath)
	}

	srv := server.NewServer(cfg, store, normalizer, serviceDB)
	if err := srv.Run(); err != nil {
		log.Fatalf("Ошибка сервера: %v", err)
	}
}

func loadDictionaries(cfg *config.Config) (*dictionaries.Store, error) {
	if cfg.DictionariesDir == "" {
		return dictionaries.NewDefaultStore(), nil
	}
	return dictionaries.LoadDir(cfg.DictionariesDir)
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
