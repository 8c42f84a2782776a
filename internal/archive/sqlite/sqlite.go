package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/pv/soil-sensor-go/internal/archive"
)

type Config struct {
	Source string
}

type Store struct {
	db *sql.DB
}

// New открывает (или создаёт) файл SQLite и готовит схему архива.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("sqlite: database path is empty")
	}
	db, err := sql.Open("sqlite", cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	store := &Store{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{vwcSchemaSQL, fluxSchemaSQL} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) SaveVWCRun(ctx context.Context, run archive.VWCRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertVWCSQL)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	for _, rec := range run.Records {
		_, err := stmt.ExecContext(ctx,
			run.RunID.String(),
			run.Source,
			run.SoilType,
			run.SavedAt.UTC().Format("2006-01-02 15:04:05"),
			rec.Time.Format("2006-01-02 15:04:05"),
			rec.Raw,
			nullableFloat(rec.TempC),
			rec.VWC,
		)
		if err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("sqlite: insert vwc row: %w", err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit vwc run: %w", err)
	}
	return nil
}

func (s *Store) SaveFlux(ctx context.Context, rec archive.FluxRecord) error {
	_, err := s.db.ExecContext(ctx, insertFluxSQL,
		rec.RunID.String(),
		rec.Collar,
		rec.Replicate,
		rec.SavedAt.UTC().Format("2006-01-02 15:04:05"),
		rec.Result.FluxCO2,
		rec.Result.FluxCH4,
		rec.Result.FluxH2O,
		rec.Result.R2CO2,
		rec.Result.R2CH4,
		rec.Result.R2H2O,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert flux row: %w", err)
	}
	return nil
}

// nullableFloat превращает NaN в NULL: SQLite не хранит NaN.
func nullableFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

const vwcSchemaSQL = `
CREATE TABLE IF NOT EXISTS vwc_history (
	run_id    TEXT NOT NULL,
	source    TEXT,
	soil_type TEXT NOT NULL,
	saved_at  TEXT NOT NULL,
	ts        TEXT NOT NULL,
	raw       REAL NOT NULL,
	temp      REAL,
	vwc       REAL NOT NULL
);
`

const fluxSchemaSQL = `
CREATE TABLE IF NOT EXISTS flux_history (
	run_id    TEXT NOT NULL,
	collar    TEXT,
	replicate TEXT,
	saved_at  TEXT NOT NULL,
	flux_co2  REAL NOT NULL,
	flux_ch4  REAL NOT NULL,
	flux_h2o  REAL NOT NULL,
	r2_co2    REAL NOT NULL,
	r2_ch4    REAL NOT NULL,
	r2_h2o    REAL NOT NULL
);
`

const insertVWCSQL = `
INSERT INTO vwc_history(run_id, source, soil_type, saved_at, ts, raw, temp, vwc)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`

const insertFluxSQL = `
INSERT INTO flux_history(run_id, collar, replicate, saved_at, flux_co2, flux_ch4, flux_h2o, r2_co2, r2_ch4, r2_h2o)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// NormalizeSource убирает префикс sqlite:// из DSN.
func NormalizeSource(src string) string {
	if strings.HasPrefix(src, "sqlite://") {
		return strings.TrimPrefix(src, "sqlite://")
	}
	return src
}
