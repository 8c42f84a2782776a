// Package archive сохраняет результаты расчётов (VWC и потоки газов)
// в выбранное хранилище. Архивирование опционально: вычислительное
// ядро от него не зависит, сбой архива не влияет на расчёт.
package archive

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pv/soil-sensor-go/internal/seriesio"
	"github.com/pv/soil-sensor-go/pkg/gasflux"
)

// VWCRun — один прогон пересчёта влажности: метаданные плюс все строки.
type VWCRun struct {
	RunID    uuid.UUID
	Source   string // путь к входному файлу
	SoilType string
	SavedAt  time.Time
	Records  []seriesio.VWCRecord
}

// FluxRecord — результат одного замера камеры.
type FluxRecord struct {
	RunID     uuid.UUID
	Collar    string
	Replicate string
	SavedAt   time.Time
	Result    gasflux.Result
}

// Archive — приёмник результатов. Реализации: sqlite, postgres,
// clickhouse, influxdb.
type Archive interface {
	SaveVWCRun(ctx context.Context, run VWCRun) error
	SaveFlux(ctx context.Context, rec FluxRecord) error
	Close()
}

// NewRunID возвращает идентификатор прогона для записей архива.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// распознаватели DSN: выбор бэкенда делает вызывающий код по схеме
// строки подключения

// IsSQLiteDSN распознаёт путь к файлу SQLite.
func IsSQLiteDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "sqlite://"),
		strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		dsn == ":memory:":
		return true
	default:
		return false
	}
}

// IsPostgresDSN распознаёт строку подключения PostgreSQL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// IsClickHouseDSN распознаёт строку подключения ClickHouse.
func IsClickHouseDSN(dsn string) bool {
	return strings.HasPrefix(strings.ToLower(dsn), "clickhouse://")
}

// IsInfluxDSN распознаёт HTTP URL InfluxDB 1.x.
func IsInfluxDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "influxdb://")
}
