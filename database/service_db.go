package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"namenorm/normalization"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServiceDB хранилище аудита нормализации поверх SQLite.
// Реализует normalization.AuditStore.
type ServiceDB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// NormalizationRecord сохраненная запись аудита
type NormalizationRecord struct {
	ID            int64   `json:"id"`
	RequestID     string  `json:"request_id"`
	Input         string  `json:"input"`
	Normalized    string  `json:"normalized"`
	Language      string  `json:"language"`
	Confidence    float64 `json:"confidence"`
	Success       bool    `json:"success"`
	Persons       string  `json:"persons"`
	Organizations string  `json:"organizations"`
	DurationMS    int64   `json:"duration_ms"`
	CreatedAt     string  `json:"created_at"`
}

// StoreStats агрегированная статистика хранилища
type StoreStats struct {
	Total         int64   `json:"total"`
	Succeeded     int64   `json:"succeeded"`
	Failed        int64   `json:"failed"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	Languages     int64   `json:"languages"`
}

// NewServiceDB создает подключение к базе аудита и применяет схему
func NewServiceDB(dbPath string) (*ServiceDB, error) {
	config := DBConfig{}

	// Для in-memory SQLite требуется использовать ровно одно соединение,
	// иначе каждое новое соединение будет получать пустую БД без таблиц.
	if isInMemoryDB(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	return NewServiceDBWithConfig(dbPath, config)
}

// isInMemoryDB определяет, что путь относится к in-memory SQLite
func isInMemoryDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	// Формат file:memdb?mode=memory&cache=shared также хранит БД в памяти
	if strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory") {
		return true
	}
	return false
}

// NewServiceDBWithConfig создает подключение с явной конфигурацией пула
func NewServiceDBWithConfig(dbPath string, config DBConfig) (*ServiceDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open service database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		// SQLite плохо справляется с большим количеством одновременных
		// соединений, ограничиваем пул
		conn.SetMaxOpenConns(10)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping service database: %w", err)
	}

	db := &ServiceDB{
		conn:   conn,
		logger: slog.Default().With("component", "service_db"),
	}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return db, nil
}

func (db *ServiceDB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS normalization_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT NOT NULL,
		input TEXT NOT NULL,
		normalized TEXT NOT NULL,
		language TEXT NOT NULL,
		confidence REAL NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		persons TEXT NOT NULL DEFAULT '[]',
		organizations TEXT NOT NULL DEFAULT '[]',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_normalization_records_request
		ON normalization_records(request_id);
	CREATE INDEX IF NOT EXISTS idx_normalization_records_created
		ON normalization_records(created_at);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create normalization_records: %w", err)
	}
	return nil
}

// Close закрывает подключение
func (db *ServiceDB) Close() error {
	return db.conn.Close()
}

// SaveNormalization сохраняет результат нормализации одного входа
func (db *ServiceDB) SaveNormalization(requestID, input string, result *normalization.Result, duration time.Duration) error {
	if result == nil {
		return fmt.Errorf("nil result for request %s", requestID)
	}

	personsJSON, err := json.Marshal(result.Persons)
	if err != nil {
		return fmt.Errorf("failed to marshal persons: %w", err)
	}
	orgsJSON, err := json.Marshal(result.Organizations)
	if err != nil {
		return fmt.Errorf("failed to marshal organizations: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO normalization_records
			(request_id, input, normalized, language, confidence, success, persons, organizations, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		requestID,
		input,
		result.Normalized,
		result.Language,
		result.Confidence,
		boolToInt(result.Success),
		string(personsJSON),
		string(orgsJSON),
		duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert normalization record: %w", err)
	}
	return nil
}

// Recent возвращает последние записи аудита, новые первыми
func (db *ServiceDB) Recent(limit int) ([]NormalizationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT id, request_id, input, normalized, language, confidence, success,
			persons, organizations, duration_ms, COALESCE(created_at, '')
		FROM normalization_records
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := []NormalizationRecord{}
	for rows.Next() {
		var rec NormalizationRecord
		var success int
		if err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&rec.Input,
			&rec.Normalized,
			&rec.Language,
			&rec.Confidence,
			&success,
			&rec.Persons,
			&rec.Organizations,
			&rec.DurationMS,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Success = success != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats возвращает агрегированную статистику хранилища
func (db *ServiceDB) Stats() (*StoreStats, error) {
	stats := &StoreStats{}

	err := db.conn.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(success), 0),
			COALESCE(AVG(duration_ms), 0),
			COUNT(DISTINCT language)
		FROM normalization_records`).Scan(
		&stats.Total,
		&stats.Succeeded,
		&stats.AvgDurationMS,
		&stats.Languages,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	stats.Failed = stats.Total - stats.Succeeded
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
